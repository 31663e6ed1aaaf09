package traits

import (
	"fmt"
	"reflect"
)

// TypeKey identifies the host type a descriptor is registered for.
type TypeKey string

// Typed lets a host object choose its own TypeKey, for example one key per
// record kind instead of one per Go type.
type Typed interface {
	TraitType() TypeKey
}

// TypeOf returns the TypeKey of the Go type T.
func TypeOf[T any]() TypeKey {
	return TypeKey(typeName(reflect.TypeFor[T]()))
}

// KeyOf returns the TypeKey of instance.
func KeyOf(instance any) TypeKey {
	if t, ok := instance.(Typed); ok {
		return t.TraitType()
	}
	if instance == nil {
		return ""
	}
	return TypeKey(typeName(reflect.TypeOf(instance)))
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + typeName(t.Elem())
	}
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// Handle is the per-call result of attaching a trait to an instance.
type Handle interface {
	// ID is the short property identifier, e.g. "quantity".
	ID() string
	// Content is the property value in its textual form.
	Content() string
}

// Descriptor is a registered trait: a predicate and a factory.
type Descriptor struct {
	// Name identifies the descriptor in diagnostics.
	Name string
	// Applies reports whether the trait describes instance. Must be side-effect free.
	Applies func(instance any) bool
	// Attach binds the trait to instance. A nil Handle with a nil error means the
	// trait has nothing to say about instance and is skipped silently.
	Attach func(instance any) (Handle, error)
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}
	if d.Applies == nil || d.Attach == nil {
		return fmt.Errorf("%w: %s needs both Applies and Attach", ErrInvalidDescriptor, d.Name)
	}
	return nil
}

// For builds a Descriptor over a concrete host type. Instances of any other type
// are never applicable.
func For[T any](name string, applies func(T) bool, attach func(T) (Handle, error)) Descriptor {
	return Descriptor{
		Name: name,
		Applies: func(instance any) bool {
			v, ok := instance.(T)
			return ok && applies(v)
		},
		Attach: func(instance any) (Handle, error) {
			v, ok := instance.(T)
			if !ok {
				return nil, fmt.Errorf("%s: unexpected instance type %T", name, instance)
			}
			return attach(v)
		},
	}
}

type staticHandle struct {
	id      string
	content string
}

func (h staticHandle) ID() string      { return h.id }
func (h staticHandle) Content() string { return h.content }

// Static returns a Handle with fixed id and content.
func Static(id, content string) Handle {
	return staticHandle{id: id, content: content}
}

// Property is one fragment of a description.
type Property struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
