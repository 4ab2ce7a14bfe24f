package scrub

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Accessor binds a field of R to explicit get and set functions.
// Build one with Access and register a set of them with Declare.
type Accessor[R any] struct {
	field     string
	names     []string
	valueType reflect.Type
	slotFor   func(t reflect.Type) slot
}

// Access describes a field of R without relying on struct tags.
// get returns the current value, nil meaning absent. set receives the
// sanitized value; it may be nil when a transformer cleared the field.
func Access[R, V any](field string, get func(*R) *V, set func(*R, *V), names ...string) Accessor[R] {
	a := Accessor[R]{
		field:     field,
		names:     names,
		valueType: reflect.TypeFor[V](),
	}
	if get != nil && set != nil {
		a.slotFor = func(t reflect.Type) slot {
			return funcSlot[R, V]{get: get, set: set, valueType: t}
		}
	}
	return a
}

// Field returns the declared field name.
func (a Accessor[R]) Field() string {
	return a.field
}

// Transformers returns the declared transformer names in application order.
func (a Accessor[R]) Transformers() []string {
	return append([]string(nil), a.names...)
}

// funcSlot reads and writes a field through accessor functions.
type funcSlot[R, V any] struct {
	get       func(*R) *V
	set       func(*R, *V)
	valueType reflect.Type // T of the bound transformer
}

func (s funcSlot[R, V]) visit(root reflect.Value, fn func(reflect.Value) reflect.Value) error {
	if !root.CanAddr() {
		return ErrNotSettable
	}
	r, ok := root.Addr().Interface().(*R)
	if !ok {
		return ErrNotSettable
	}

	in := load(reflect.ValueOf(s.get(r)), true, s.valueType)
	out := store(fn(in), true, reflect.TypeFor[*V]())
	if out.IsNil() {
		s.set(r, nil)
		return nil
	}
	s.set(r, out.Interface().(*V))
	return nil
}

// Declare registers an explicit plan for record type R on engine e, or on
// the default engine when e is nil.
//
// A declared plan takes precedence over struct tags and survives Reset.
// Every transformer name is resolved immediately, so configuration problems
// surface here rather than on first Apply.
func Declare[R any](e *Engine, accessors ...Accessor[R]) error {
	if e == nil {
		e = Default()
	}

	rt := reflect.TypeFor[R]()
	name := typeName(rt)
	if rt.Kind() != reflect.Struct {
		return newConfigError(ErrInvalidRecord, name, "", "", fmt.Errorf("record type must be a struct, got %s", rt.Kind()))
	}

	start := time.Now()
	plan := &Plan{typ: rt, typeName: name}
	resolved := make(map[string]*binding)

	for _, a := range accessors {
		if a.slotFor == nil {
			return newConfigError(ErrInstantiate, name, a.field, "", errors.New("accessor requires get and set functions"))
		}
		fp := fieldPlan{
			field: Field{Name: a.field, Type: a.valueType},
			rules: make([]rule, 0, len(a.names)),
		}
		for _, tn := range parseTag(strings.Join(a.names, ",")) {
			b, ok := resolved[tn]
			if !ok {
				var err error
				b, err = e.instantiate(tn, name, a.field)
				if err != nil {
					emitPlanFailed(context.Background(), name, err)
					return err
				}
				resolved[tn] = b
			}
			if !b.accepts(a.valueType) {
				err := newConfigError(ErrTypeMismatch, name, a.field, tn,
					fmt.Errorf("%s operates on %s, field is %s", tn, b.valueType, a.valueType))
				emitPlanFailed(context.Background(), name, err)
				return err
			}
			fp.rules = append(fp.rules, rule{binding: b, slot: a.slotFor(b.valueType)})
		}
		if len(fp.rules) > 0 {
			plan.fields = append(plan.fields, fp)
		}
	}

	e.declare(rt, plan)
	emitPlanBuilt(context.Background(), plan, time.Since(start))
	return nil
}
