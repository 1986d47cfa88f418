package entitystore

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"
	"github.com/rotisserie/eris"
	"github.com/wI2L/jsondiff"

	"pkg.world.dev/entitystore/codec"
)

// EntityState is the JSON view of one live entity.
type EntityState struct {
	ID         EntityID                   `json:"id"`
	Name       string                     `json:"name,omitempty"`
	Components map[string]json.RawMessage `json:"components"`
}

// Snapshot is a point-in-time JSON view of every live entity, ordered by id. It is a debugging aid, not a
// persistence format: there is no way to load one back into a Manager.
type Snapshot []EntityState

// ComponentTypeInfo describes one component store.
type ComponentTypeInfo struct {
	Type  ComponentType `json:"type"`
	Count int           `json:"count"`
}

// Snapshot encodes every live entity and its components.
func (m *Manager) Snapshot() (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(Snapshot, 0, len(m.entities))
	for id := range m.entities {
		state := EntityState{
			ID:         id,
			Name:       m.names[id],
			Components: make(map[string]json.RawMessage),
		}
		for _, c := range m.componentsOnEntity(id) {
			bz, err := codec.Encode(c)
			if err != nil {
				return nil, eris.Wrapf(err, "failed to encode component %q of entity %s", c.Name(), id)
			}
			state.Components[c.Name()] = bz
		}
		snapshot = append(snapshot, state)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return bytes.Compare(snapshot[i].ID[:], snapshot[j].ID[:]) < 0
	})
	return snapshot, nil
}

// ComponentTypes lists every component store, including emptied ones, in creation order.
func (m *Manager) ComponentTypes() []ComponentTypeInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]ComponentTypeInfo, 0, len(m.storeOrder))
	for _, typ := range m.storeOrder {
		infos = append(infos, ComponentTypeInfo{Type: typ, Count: len(m.stores[typ].items)})
	}
	return infos
}

// ComponentSchema returns the JSON schema of the first component attached under typ.
func (m *Manager) ComponentSchema(typ ComponentType) ([]byte, error) {
	m.mu.RLock()
	store, ok := m.stores[typ]
	m.mu.RUnlock()
	if !ok {
		return nil, eris.Wrapf(ErrNoSuchComponentType, "component type %q", typ)
	}
	return SerializeComponentSchema(store.prototype)
}

func SerializeComponentSchema(c Component) ([]byte, error) {
	schema, err := jsonschema.Reflect(c).MarshalJSON()
	if err != nil {
		return nil, eris.Wrapf(err, "component %q must be json serializable", c.Name())
	}
	return schema, nil
}

// DiffSnapshots returns the JSON patch that turns from into to. An empty patch means no observable change.
func DiffSnapshots(from, to Snapshot) (jsondiff.Patch, error) {
	fromBz, err := codec.Encode(from)
	if err != nil {
		return nil, err
	}
	toBz, err := codec.Encode(to)
	if err != nil {
		return nil, err
	}
	patch, err := jsondiff.CompareJSON(fromBz, toBz)
	if err != nil {
		return nil, eris.Wrap(err, "failed to compare snapshots")
	}
	return patch, nil
}

// DecodeComponent decodes the component of type T recorded in the entity state.
func DecodeComponent[T Component](state EntityState) (T, error) {
	typ := TypeFor[T]()
	bz, ok := state.Components[typ.String()]
	if !ok {
		var zero T
		return zero, eris.Wrapf(ErrMissingComponent, "entity %s missing component %q in snapshot", state.ID, typ)
	}
	return codec.Decode[T](bz)
}
