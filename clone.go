package scrub

import "context"

// Cloner allows types to provide deep copy logic.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices, or maps,
// ensure these are also copied to achieve true isolation.
//
// For simple value types with no pointers, slices, or maps, Clone can simply return
// the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}

// Sanitized returns a sanitized copy of v and leaves v untouched, e.g. to
// mask a record for a response while keeping the stored value intact.
// A nil engine means the default engine.
func Sanitized[T Cloner[T]](ctx context.Context, e *Engine, v T) (T, error) {
	if e == nil {
		e = Default()
	}
	describe[T]()
	out := v.Clone()
	if err := e.Apply(ctx, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
