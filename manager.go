package entitystore

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pkg.world.dev/entitystore/statsd"
)

const unnamedEntity = "<unnamed>"

// componentStore holds every component of a single type, keyed by entity.
type componentStore struct {
	typ ComponentType
	// prototype is the first component ever attached to this store. It is only used to describe the type.
	prototype Component
	items     map[EntityID]Component
}

func newComponentStore(c Component) *componentStore {
	return &componentStore{
		typ:       TypeOf(c),
		prototype: c,
		items:     make(map[EntityID]Component),
	}
}

// Manager owns every entity and all component data. All of its methods are safe for concurrent use.
//
// A single lock guards the whole store collection: queries share it, mutations hold it exclusively. This keeps
// multi-store operations such as KillEntity atomic without a lock ordering between stores.
type Manager struct {
	mu sync.RWMutex

	frozen       bool
	strictFreeze bool

	entities map[EntityID]struct{}
	names    map[EntityID]string

	// stores grows monotonically; storeOrder lists its keys in creation order.
	stores     map[ComponentType]*componentStore
	storeOrder []ComponentType

	logger     zerolog.Logger
	metricTags []string
}

// NewManager creates an empty, active Manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		entities: make(map[EntityID]struct{}),
		names:    make(map[EntityID]string),
		stores:   make(map[ComponentType]*componentStore),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEntity registers a fresh entity and returns its id. When the manager is frozen nothing is created and
// NilEntity is returned; callers must check for it.
func (m *Manager) CreateEntity() (EntityID, error) {
	return m.createEntity("", false)
}

// CreateNamedEntity is CreateEntity that also records a human-readable name for the new entity.
func (m *Manager) CreateNamedEntity(name string) (EntityID, error) {
	return m.createEntity(name, true)
}

func (m *Manager) createEntity(name string, named bool) (EntityID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return NilEntity, m.rejectFrozen("create entity")
	}

	id := newEntityID()
	m.entities[id] = struct{}{}
	if named {
		m.names[id] = name
	}

	statsd.Incr("entities.created", m.metricTags...)
	m.logger.Debug().
		Str("entity_id", id.String()).
		Str("entity_name", name).
		Msg("entity created")
	return id, nil
}

// KillEntity removes the entity from every component store, the live set and the name table. Unknown ids are
// ignored, so repeated kills are safe.
func (m *Manager) KillEntity(id EntityID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return m.rejectFrozen("kill entity")
	}

	for _, typ := range m.storeOrder {
		delete(m.stores[typ].items, id)
	}
	_, alive := m.entities[id]
	delete(m.entities, id)
	delete(m.names, id)

	if alive {
		statsd.Incr("entities.killed", m.metricTags...)
		m.logger.Debug().Str("entity_id", id.String()).Msg("entity killed")
	}
	return nil
}

// AddComponent attaches component to the entity under the component's type, creating that type's store on
// first use. An existing component of the same type is replaced.
func (m *Manager) AddComponent(id EntityID, component Component) error {
	if err := validateComponent(component); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return m.rejectFrozen("add component")
	}

	typ := TypeOf(component)
	store, ok := m.stores[typ]
	if !ok {
		store = newComponentStore(component)
		m.stores[typ] = store
		m.storeOrder = append(m.storeOrder, typ)
	}
	store.items[id] = component

	m.logger.Debug().
		Str("entity_id", id.String()).
		Str("component_name", typ.String()).
		Msg("component added")
	return nil
}

// RemoveComponent detaches the component whose type matches the passed instance.
func (m *Manager) RemoveComponent(id EntityID, component Component) error {
	if err := validateComponent(component); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return m.rejectFrozen("remove component")
	}

	typ := TypeOf(component)
	store, err := m.lookup(id, typ, "remove")
	if err != nil {
		return err
	}
	delete(store.items, id)

	m.logger.Debug().
		Str("entity_id", id.String()).
		Str("component_name", typ.String()).
		Msg("component removed")
	return nil
}

// GetComponent returns the entity's component of the given type. It fails with ErrNoSuchComponentType when no
// component of that type was ever attached to any entity, and with ErrMissingComponent when the entity lacks
// one. Use HasComponent when absence is expected.
func (m *Manager) GetComponent(id EntityID, typ ComponentType) (Component, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	store, err := m.lookup(id, typ, "get")
	if err != nil {
		return nil, err
	}
	return store.items[id], nil
}

// HasComponent reports whether the entity has a component of the given type. It never fails.
func (m *Manager) HasComponent(id EntityID, typ ComponentType) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	store, ok := m.stores[typ]
	if !ok {
		return false
	}
	_, ok = store.items[id]
	return ok
}

// ComponentsOnEntity collects the entity's component from every store, in store creation order.
// This scans all stores and is meant for debugging and bulk operations, not hot loops.
func (m *Manager) ComponentsOnEntity(id EntityID) []Component {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.componentsOnEntity(id)
}

func (m *Manager) componentsOnEntity(id EntityID) []Component {
	components := make([]Component, 0)
	for _, typ := range m.storeOrder {
		if c, ok := m.stores[typ].items[id]; ok {
			components = append(components, c)
		}
	}
	return components
}

// ComponentsOfType returns every component of the given type, in no particular order.
func (m *Manager) ComponentsOfType(typ ComponentType) []Component {
	m.mu.RLock()
	defer m.mu.RUnlock()

	store, ok := m.stores[typ]
	if !ok {
		return []Component{}
	}
	components := make([]Component, 0, len(store.items))
	for _, c := range store.items {
		components = append(components, c)
	}
	return components
}

// EntitiesPossessing returns the ids of every entity that has a component of the given type, in no particular
// order.
func (m *Manager) EntitiesPossessing(typ ComponentType) []EntityID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	store, ok := m.stores[typ]
	if !ok {
		return []EntityID{}
	}
	ids := make([]EntityID, 0, len(store.items))
	for id := range store.items {
		ids = append(ids, id)
	}
	return ids
}

// Entities returns the ids of all live entities, in no particular order.
func (m *Manager) Entities() []EntityID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]EntityID, 0, len(m.entities))
	for id := range m.entities {
		ids = append(ids, id)
	}
	return ids
}

func (m *Manager) EntityCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

func (m *Manager) IsAlive(id EntityID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entities[id]
	return ok
}

// Freeze rejects entity creation, component attachment and removal, and kills until Unfreeze is called.
// Queries keep working and no data is discarded.
func (m *Manager) Freeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = true
}

func (m *Manager) Unfreeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen = false
}

func (m *Manager) IsFrozen() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.frozen
}

// lookup must be called with the lock held.
func (m *Manager) lookup(id EntityID, typ ComponentType, op string) (*componentStore, error) {
	store, ok := m.stores[typ]
	if !ok {
		return nil, eris.Wrapf(ErrNoSuchComponentType, "%s failed: entity %s (name: %s) component type %q",
			op, id, m.nameOrPlaceholder(id), typ)
	}
	if _, ok = store.items[id]; !ok {
		return nil, eris.Wrapf(ErrMissingComponent, "%s failed: entity %s (name: %s) missing component %q",
			op, id, m.nameOrPlaceholder(id), typ)
	}
	return store, nil
}

// rejectFrozen must be called with the lock held.
func (m *Manager) rejectFrozen(op string) error {
	statsd.Incr("mutations.rejected_frozen", m.metricTags...)
	m.logger.Debug().Str("operation", op).Msg("mutation ignored, entity manager is frozen")
	if m.strictFreeze {
		return eris.Wrapf(ErrFrozen, "cannot %s", op)
	}
	return nil
}

func validateComponent(c Component) error {
	if c == nil {
		return eris.Wrap(ErrNilComponent, "")
	}
	if rv := reflect.ValueOf(c); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return eris.Wrapf(ErrNilComponent, "nil %T", c)
	}
	if c.Name() == "" {
		return eris.Wrapf(ErrEmptyComponentName, "component of type %T", c)
	}
	return nil
}
