package entitystore

import (
	"fmt"
	"reflect"
)

// Component is the interface that the user needs to implement to create a new component type.
// Components are plain data; the value returned by Name is the component's type identity, so two Go types
// returning the same name share a store.
type Component interface {
	// Name returns the name of the component. It must be stable and must not depend on the receiver's fields,
	// since it is also called on zero values.
	Name() string
}

// ComponentType identifies a component store.
type ComponentType string

func (t ComponentType) String() string {
	return string(t)
}

// TypeOf returns the type of the given component instance.
func TypeOf(c Component) ComponentType {
	return ComponentType(c.Name())
}

// TypeFor returns the component type of T without requiring an instance. When T is a pointer type, Name is
// called on a pointer to a fresh zero value rather than on a nil pointer.
//
// T must be a concrete type. TypeFor panics when T is an interface such as Component, because there is no value
// to ask for a name.
func TypeFor[T Component]() ComponentType {
	var t T
	switch rt := reflect.TypeOf((*T)(nil)).Elem(); rt.Kind() {
	case reflect.Interface:
		panic(fmt.Sprintf("entitystore: TypeFor called with interface type %s, use a concrete component type", rt))
	case reflect.Pointer:
		t, _ = reflect.New(rt.Elem()).Interface().(T)
	}
	return ComponentType(t.Name())
}
