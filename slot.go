package scrub

import (
	"reflect"
)

// slot reads a field position, hands it to a transformer and writes the result back.
type slot interface {
	visit(root reflect.Value, fn func(reflect.Value) reflect.Value) error
}

// step is one hop of a field path. deref marks a pointer-to-struct field
// that must be followed before the next hop.
type step struct {
	index int
	deref bool
}

type shape uint8

const (
	shapeValue shape = iota // E or *E
	shapeSlice              // []E or []*E
	shapeMap                // map[K]E or map[K]*E
)

// reflectSlot addresses a struct field by index path.
type reflectSlot struct {
	path      []step
	shape     shape
	ptr       bool         // positions hold *E rather than E
	valueType reflect.Type // T of the bound transformer
}

// reflectSlotFor picks the field shape a binding can operate on.
// It reports false when no shape fits.
func reflectSlotFor(ft reflect.Type, b *binding, path []step) (slot, bool) {
	s := &reflectSlot{path: path, valueType: b.valueType}

	if ptr, ok := fits(ft, b); ok {
		s.shape, s.ptr = shapeValue, ptr
		return s, true
	}

	switch ft.Kind() {
	case reflect.Slice:
		s.shape = shapeSlice
	case reflect.Map:
		s.shape = shapeMap
	default:
		return nil, false
	}

	ptr, ok := fits(ft.Elem(), b)
	if !ok {
		return nil, false
	}
	s.ptr = ptr
	return s, true
}

// fits reports whether a position of type pos holds a value the binding
// accepts, either directly or behind one pointer.
func fits(pos reflect.Type, b *binding) (ptr bool, ok bool) {
	if b.accepts(pos) {
		return false, true
	}
	if pos.Kind() == reflect.Pointer && b.accepts(pos.Elem()) {
		return true, true
	}
	return false, false
}

func (s *reflectSlot) visit(root reflect.Value, fn func(reflect.Value) reflect.Value) error {
	v, ok := s.locate(root)
	if !ok {
		return nil
	}
	if !v.CanSet() {
		return ErrNotSettable
	}

	switch s.shape {
	case shapeSlice:
		for i := 0; i < v.Len(); i++ {
			el := v.Index(i)
			el.Set(store(fn(load(el, s.ptr, s.valueType)), s.ptr, el.Type()))
		}
	case shapeMap:
		if v.IsNil() {
			return nil
		}
		pos := v.Type().Elem()
		for _, k := range v.MapKeys() {
			cur := v.MapIndex(k)
			v.SetMapIndex(k, store(fn(load(cur, s.ptr, s.valueType)), s.ptr, pos))
		}
	default:
		v.Set(store(fn(load(v, s.ptr, s.valueType)), s.ptr, v.Type()))
	}
	return nil
}

// locate follows the path from root. It reports false when a pointer on
// the way is nil, in which case there is nothing to sanitize.
func (s *reflectSlot) locate(root reflect.Value) (reflect.Value, bool) {
	v := root
	for _, st := range s.path {
		v = v.Field(st.index)
		if st.deref {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
	}
	return v, true
}

// load copies the value at a position into a fresh *T. A nil pointer
// position yields a nil *T.
func load(cur reflect.Value, ptr bool, t reflect.Type) reflect.Value {
	if ptr {
		if cur.IsNil() {
			return reflect.Zero(reflect.PointerTo(t))
		}
		cur = cur.Elem()
	}
	p := reflect.New(t)
	p.Elem().Set(cur.Convert(t))
	return p
}

// store converts a transformer result back to a position of type pos.
// A nil result becomes the zero value of pos. Pointer positions always
// receive a newly allocated pointer.
func store(out reflect.Value, ptr bool, pos reflect.Type) reflect.Value {
	if !out.IsValid() || out.IsNil() {
		return reflect.Zero(pos)
	}
	if ptr {
		p := reflect.New(pos.Elem())
		p.Elem().Set(out.Elem().Convert(pos.Elem()))
		return p
	}
	return out.Elem().Convert(pos)
}
