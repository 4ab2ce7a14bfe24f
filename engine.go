package scrub

import (
	"context"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/sentinel"
	"golang.org/x/sync/singleflight"
)

// Engine discovers sanitization plans for record types and applies them.
//
// Engines are safe for concurrent use. Plans are discovered on first use of a
// type and cached for the life of the engine; concurrent first uses share a
// single discovery.
type Engine struct {
	tagKey  string
	nested  bool
	entries map[string]Entry

	mu       sync.Mutex // guards writes to plans and declared
	plans    sync.Map   // reflect.Type -> *Plan
	declared sync.Map   // reflect.Type -> *Plan, survives Reset
	flight   singleflight.Group
	builds   atomic.Int64
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	tagKey   string
	nested   bool
	builtins bool
	entries  []Entry
}

// WithTagKey sets the struct tag key read during discovery.
func WithTagKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.tagKey = key
		}
	}
}

// WithEntries adds transformers to the catalog.
// An entry replaces any earlier entry with the same name, builtins included.
func WithEntries(entries ...Entry) Option {
	return func(o *options) {
		o.entries = append(o.entries, entries...)
	}
}

// WithoutBuiltins starts the catalog empty instead of with Builtins().
func WithoutBuiltins() Option {
	return func(o *options) {
		o.builtins = false
	}
}

// WithNested controls whether untagged struct fields are walked for nested rules.
func WithNested(nested bool) Option {
	return func(o *options) {
		o.nested = nested
	}
}

// New creates an engine. By default it reads the "scrub" tag key, walks
// nested structs and resolves names against the built-in transformers.
func New(opts ...Option) *Engine {
	o := options{tagKey: DefaultTagKey, nested: true, builtins: true}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		tagKey:  o.tagKey,
		nested:  o.nested,
		entries: make(map[string]Entry),
	}
	if o.builtins {
		for _, entry := range Builtins() {
			e.entries[entry.name] = entry
		}
	}
	for _, entry := range o.entries {
		e.entries[entry.name] = entry
	}

	if e.tagKey != DefaultTagKey {
		sentinel.Tag(e.tagKey)
	}
	return e
}

// NewFromConfig creates an engine from a Config. Options are applied after
// the configuration and take precedence.
func NewFromConfig(cfg Config, opts ...Option) *Engine {
	base := []Option{WithTagKey(cfg.TagKey), WithNested(!cfg.Flat)}
	return New(append(base, opts...)...)
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the package-level engine used by Apply. It is created on
// first use with the built-in catalog.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Apply sanitizes record with the default engine.
func Apply(ctx context.Context, record any) error {
	return Default().Apply(ctx, record)
}

// TagKey returns the struct tag key the engine reads.
func (e *Engine) TagKey() string {
	return e.tagKey
}

// Plan returns the plan for rt, discovering it on first use.
// Pointer types resolve to the plan of their element type.
func (e *Engine) Plan(rt reflect.Type) (*Plan, error) {
	if rt == nil {
		return nil, newConfigError(ErrInvalidRecord, "", "", "", nil)
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return e.planFor(rt)
}

// PlanFor returns the plan for record type T on engine e, or on the default
// engine when e is nil.
func PlanFor[T any](e *Engine) (*Plan, error) {
	if e == nil {
		e = Default()
	}
	describe[T]()
	return e.Plan(reflect.TypeFor[T]())
}

// Reset drops every discovered plan. Declared plans are kept.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.plans.Range(func(key, _ any) bool {
		e.plans.Delete(key)
		return true
	})
	e.declared.Range(func(key, value any) bool {
		e.plans.Store(key, value)
		return true
	})
}

// planFor returns the cached plan for a non-pointer type or builds it.
func (e *Engine) planFor(rt reflect.Type) (*Plan, error) {
	if cached, ok := e.plans.Load(rt); ok {
		return cached.(*Plan), nil
	}

	// Keyed by type identity; distinct types can share a name.
	key := strconv.FormatUint(uint64(reflect.ValueOf(rt).Pointer()), 10)
	v, err, _ := e.flight.Do(key, func() (any, error) {
		if cached, ok := e.plans.Load(rt); ok {
			return cached, nil
		}

		if declared, ok := e.declared.Load(rt); ok {
			return declared, nil
		}

		start := time.Now()
		e.builds.Add(1)
		plan, err := e.buildPlan(rt)
		if err != nil {
			emitPlanFailed(context.Background(), typeName(rt), err)
			return nil, err
		}

		// A plan declared while discovery ran wins over the tag plan.
		if declared, ok := e.store(rt, plan); ok {
			return declared, nil
		}
		emitPlanBuilt(context.Background(), plan, time.Since(start))
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// store caches a discovered plan unless rt has a declared plan, which is
// returned instead.
func (e *Engine) store(rt reflect.Type, plan *Plan) (*Plan, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if declared, ok := e.declared.Load(rt); ok {
		e.plans.Store(rt, declared)
		return declared.(*Plan), true
	}
	e.plans.Store(rt, plan)
	return nil, false
}

// declare installs a declared plan for rt.
func (e *Engine) declare(rt reflect.Type, plan *Plan) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.declared.Store(rt, plan)
	e.plans.Store(rt, plan)
}

// Apply sanitizes record in place.
//
// record is normally a pointer to a struct. A nil record or nil pointer is a
// no-op. Configuration problems with the record type are returned as
// *ConfigError. Fields that cannot be processed are skipped, reported on
// SignalFieldSkipped, and do not cause an error.
func (e *Engine) Apply(ctx context.Context, record any) error {
	if record == nil {
		return nil
	}

	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	plan, err := e.planFor(rv.Type())
	if err != nil {
		return err
	}
	if plan.Empty() {
		return nil
	}

	start := time.Now()
	skipped := 0
	for i := range plan.fields {
		if ferr := plan.fields[i].apply(rv); ferr != nil {
			skipped++
			emitFieldSkipped(ctx, plan.typeName, ferr)
		}
	}
	emitApplyComplete(ctx, plan, skipped, time.Since(start))
	return nil
}

// Sanitize is Apply with a background context.
func (e *Engine) Sanitize(record any) error {
	return e.Apply(context.Background(), record)
}
