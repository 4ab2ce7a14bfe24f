package scrub

import (
	"errors"
	"fmt"
	"reflect"
)

// Entry is a named transformer constructor.
// Entries make up the catalog an Engine resolves tag names against and the
// set a Registry is built from.
type Entry struct {
	name      string
	valueType reflect.Type
	build     func() (*binding, error)
}

// Name returns the tag name of the entry.
func (e Entry) Name() string {
	return e.name
}

// ValueType returns the value type the constructed transformer operates on.
func (e Entry) ValueType() reflect.Type {
	return e.valueType
}

// Define returns an entry whose transformer is built by factory.
// The factory runs during plan discovery and registry construction; an error,
// a nil result or a panic is reported as ErrInstantiate.
func Define[T any](name string, factory func() (Transformer[T], error)) Entry {
	return Entry{
		name:      name,
		valueType: reflect.TypeFor[T](),
		build: func() (b *binding, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("factory panicked: %v", r)
				}
			}()
			if factory == nil {
				return nil, errors.New("nil factory")
			}
			t, err := factory()
			if err != nil {
				return nil, err
			}
			if isNil(t) {
				return nil, errors.New("factory returned nil")
			}
			return bind(name, t), nil
		},
	}
}

// Instance returns an entry that always yields the given shared transformer.
func Instance[T any](name string, t Transformer[T]) Entry {
	return Define(name, func() (Transformer[T], error) {
		return t, nil
	})
}

// instantiate builds the entry's transformer.
func (e Entry) instantiate() (*binding, error) {
	if e.build == nil {
		return nil, errors.New("empty entry")
	}
	return e.build()
}

// isNil reports whether v is nil or a typed nil pointer/func/map.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
