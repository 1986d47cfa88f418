package entitystore

import (
	"github.com/rotisserie/eris"
)

var (
	// ErrNoSuchComponentType is returned when a query or removal references a component type that has never
	// been attached to any entity managed by this Manager.
	ErrNoSuchComponentType = eris.New("no entities with component type")
	// ErrMissingComponent is returned when the store for a component type exists but the entity has no entry in it.
	ErrMissingComponent = eris.New("entity does not possess component")
	// ErrFrozen is only returned by managers created with WithStrictFreeze.
	ErrFrozen = eris.New("entity manager is frozen")

	ErrComponentTypeMismatch = eris.New("component value does not match requested type")
	ErrEmptyComponentName    = eris.New("component name cannot be empty")
	ErrNilComponent          = eris.New("component cannot be nil")
)
