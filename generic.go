package entitystore

import (
	"github.com/rotisserie/eris"
)

// Get returns the entity's component of type T. Besides the errors of Manager.GetComponent it fails with
// ErrComponentTypeMismatch when the stored value shares T's name but is a different Go type, for example a
// Position stored by value and requested as *Position. T must be a concrete type, see TypeFor.
func Get[T Component](m *Manager, id EntityID) (T, error) {
	var zero T
	typ := TypeFor[T]()
	c, err := m.GetComponent(id, typ)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, eris.Wrapf(ErrComponentTypeMismatch, "component %q on entity %s is %T, not %T", typ, id, c, zero)
	}
	return t, nil
}

// Has reports whether the entity has a component of type T.
func Has[T Component](m *Manager, id EntityID) bool {
	return m.HasComponent(id, TypeFor[T]())
}

// AllOfType returns every component stored under T's type whose value is a T. Values of other Go types
// sharing the name are skipped.
func AllOfType[T Component](m *Manager) []T {
	components := m.ComponentsOfType(TypeFor[T]())
	acc := make([]T, 0, len(components))
	for _, c := range components {
		if t, ok := c.(T); ok {
			acc = append(acc, t)
		}
	}
	return acc
}

// EntitiesWith returns the ids of every entity with a component of type T.
func EntitiesWith[T Component](m *Manager) []EntityID {
	return m.EntitiesPossessing(TypeFor[T]())
}
