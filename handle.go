package entitystore

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Handle pairs an entity id with the Manager that owns it, so call sites do not have to repeat the id.
// It holds no state of its own: every method forwards to the Manager. Handles are cheap but not free; hot loops
// should use the Manager directly.
type Handle struct {
	id      EntityID
	manager *Manager
}

// NewHandle creates a new entity in m and attaches the given components to it.
func NewHandle(m *Manager, components ...Component) (*Handle, error) {
	id, err := m.CreateEntity()
	if err != nil {
		return nil, err
	}
	return newHandleWith(m, id, components)
}

// NewNamedHandle is NewHandle with a human-readable name recorded for the entity.
func NewNamedHandle(m *Manager, name string, components ...Component) (*Handle, error) {
	id, err := m.CreateNamedEntity(name)
	if err != nil {
		return nil, err
	}
	return newHandleWith(m, id, components)
}

func newHandleWith(m *Manager, id EntityID, components []Component) (*Handle, error) {
	if id.IsNil() {
		return nil, eris.Wrap(ErrFrozen, "entity was not created")
	}
	h := LoadHandle(m, id)
	for _, c := range components {
		if err := h.Add(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// LoadHandle wraps an existing entity id.
func LoadHandle(m *Manager, id EntityID) *Handle {
	return &Handle{id: id, manager: m}
}

func (h *Handle) ID() EntityID {
	return h.id
}

func (h *Handle) Manager() *Manager {
	return h.manager
}

// Name returns the entity's name, or the empty string if it has none.
func (h *Handle) Name() string {
	name, _ := h.manager.NameFor(h.id)
	return name
}

func (h *Handle) Add(c Component) error {
	return h.manager.AddComponent(h.id, c)
}

func (h *Handle) Get(typ ComponentType) (Component, error) {
	return h.manager.GetComponent(h.id, typ)
}

func (h *Handle) Has(typ ComponentType) bool {
	return h.manager.HasComponent(h.id, typ)
}

func (h *Handle) All() []Component {
	return h.manager.ComponentsOnEntity(h.id)
}

func (h *Handle) Remove(c Component) error {
	return h.manager.RemoveComponent(h.id, c)
}

// RemoveAll detaches every component from the entity one at a time. The entity itself stays alive.
func (h *Handle) RemoveAll() error {
	for _, c := range h.All() {
		if err := h.Remove(c); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handle) Kill() error {
	return h.manager.KillEntity(h.id)
}

// String renders the entity as Entity[<id>:<name>](<component>, <component>).
func (h *Handle) String() string {
	parts := make([]string, 0)
	for _, c := range h.All() {
		parts = append(parts, fmt.Sprint(c))
	}
	name, ok := h.manager.NameFor(h.id)
	if !ok {
		name = unnamedEntity
	}
	return fmt.Sprintf("Entity[%s:%s](%s)", h.id, name, strings.Join(parts, ", "))
}

// HandleGet returns the handle's component of type T.
func HandleGet[T Component](h *Handle) (T, error) {
	return Get[T](h.manager, h.id)
}
