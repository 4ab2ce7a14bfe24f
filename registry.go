package scrub

import (
	"fmt"
	"reflect"
	"sort"
)

// Registry holds one constructed instance per transformer, looked up by
// implementation type or by name. A registry is read-only after
// construction and safe for concurrent use.
type Registry struct {
	byType map[reflect.Type]*binding
	byName map[string]*binding
	names  []string
}

// NewRegistry constructs every entry exactly once.
//
// Two entries with the same name, or whose transformers share an
// implementation type, fail with ErrDuplicate. An entry that cannot be
// constructed fails with ErrInstantiate.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		byType: make(map[reflect.Type]*binding, len(entries)),
		byName: make(map[string]*binding, len(entries)),
		names:  make([]string, 0, len(entries)),
	}

	for _, entry := range entries {
		if _, exists := r.byName[entry.name]; exists {
			return nil, newConfigError(ErrDuplicate, "", "", entry.name, nil)
		}

		b, err := entry.instantiate()
		if err != nil {
			return nil, newConfigError(ErrInstantiate, "", "", entry.name, err)
		}
		if prev, exists := r.byType[b.impl]; exists {
			return nil, newConfigError(ErrDuplicate, "", "", entry.name,
				fmt.Errorf("implementation %s already registered as %q", b.impl, prev.name))
		}

		r.byType[b.impl] = b
		r.byName[entry.name] = b
		r.names = append(r.names, entry.name)
	}

	sort.Strings(r.names)
	return r, nil
}

// Get returns the instance whose implementation type is impl.
func (r *Registry) Get(impl reflect.Type) (any, error) {
	b, ok := r.byType[impl]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotRegistered, impl)
	}
	return b.instance, nil
}

// Lookup returns the instance registered under name.
func (r *Registry) Lookup(name string) (any, error) {
	b, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return b.instance, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of registered transformers.
func (r *Registry) Len() int {
	return len(r.names)
}

// Get returns the instance whose implementation type is X.
//
//	mask, err := scrub.Get[scrub.CreditCardMask](reg)
func Get[X any](r *Registry) (X, error) {
	var zero X
	v, err := r.Get(reflect.TypeFor[X]())
	if err != nil {
		return zero, err
	}
	x, ok := v.(X)
	if !ok {
		return zero, fmt.Errorf("%w: %v", ErrNotRegistered, reflect.TypeFor[X]())
	}
	return x, nil
}
