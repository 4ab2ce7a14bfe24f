package scrub

import (
	"reflect"
)

// Transformer rewrites a single value of type T.
//
// A nil pointer is the absent value. Implementations must be pure: the same
// input always yields the same output, no I/O is performed, and nil input
// returns nil. The pointed-to value must never be modified in place; return a
// new pointer instead. Returning nil for a present input clears the value.
//
// Transformers are stateless and may be shared across goroutines and records.
type Transformer[T any] interface {
	Sanitize(value *T) *T
}

// TransformerFunc adapts a plain function to the Transformer interface.
// All TransformerFunc[T] values share one implementation type, so give
// transformers that need their own registry identity a named type instead.
type TransformerFunc[T any] func(value *T) *T

// Sanitize calls f(value).
func (f TransformerFunc[T]) Sanitize(value *T) *T {
	return f(value)
}

// sanitizeString applies fn to a present string and passes nil through.
func sanitizeString(value *string, fn func(string) string) *string {
	if value == nil {
		return nil
	}
	out := fn(*value)
	return &out
}

// binding is a type-erased transformer instance ready to be attached to a field.
type binding struct {
	name      string
	impl      reflect.Type // implementation identity
	valueType reflect.Type // T of Transformer[T]
	instance  any

	// call receives and returns a *T as a reflect.Value. The input may be a nil pointer.
	call func(in reflect.Value) reflect.Value
}

// bind erases the type parameter of a transformer.
func bind[T any](name string, t Transformer[T]) *binding {
	valueType := reflect.TypeFor[T]()
	ptrType := reflect.PointerTo(valueType)
	return &binding{
		name:      name,
		impl:      reflect.TypeOf(t),
		valueType: valueType,
		instance:  t,
		call: func(in reflect.Value) reflect.Value {
			var p *T
			if in.IsValid() && !in.IsNil() {
				p = in.Interface().(*T)
			}
			out := t.Sanitize(p)
			if out == nil {
				return reflect.Zero(ptrType)
			}
			return reflect.ValueOf(out)
		},
	}
}

// accepts reports whether a field element of type elem can be fed to the binding.
// Named types with the transformer's kind are accepted for non-composite kinds,
// so `type Email string` works with string transformers.
func (b *binding) accepts(elem reflect.Type) bool {
	if elem == b.valueType {
		return true
	}
	if elem.Kind() != b.valueType.Kind() {
		return false
	}
	switch elem.Kind() {
	case reflect.Struct, reflect.Slice, reflect.Map, reflect.Array,
		reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return false
	}
	return elem.ConvertibleTo(b.valueType) && b.valueType.ConvertibleTo(elem)
}
