package scrub

import "context"

// Saver persists a record. It is the shape of a repository insert or update.
type Saver[T any] interface {
	Save(ctx context.Context, record *T) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc[T any] func(ctx context.Context, record *T) error

// Save calls f(ctx, record).
func (f SaverFunc[T]) Save(ctx context.Context, record *T) error {
	return f(ctx, record)
}

// BeforeSave returns a Saver that sanitizes each record before handing it to
// next. A configuration error aborts the save; skipped fields do not.
// A nil engine means the default engine.
func BeforeSave[T any](e *Engine, next Saver[T]) Saver[T] {
	if e == nil {
		e = Default()
	}
	describe[T]()
	return SaverFunc[T](func(ctx context.Context, record *T) error {
		if err := e.Apply(ctx, record); err != nil {
			return err
		}
		return next.Save(ctx, record)
	})
}
