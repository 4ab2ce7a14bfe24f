package scrub

import (
	"errors"
	"reflect"
	"testing"
)

func TestTransformerFunc(t *testing.T) {
	exclaim := TransformerFunc[string](func(v *string) *string {
		if v == nil {
			return nil
		}
		out := *v + "!"
		return &out
	})

	in := "hi"
	if got := exclaim.Sanitize(&in); got == nil || *got != "hi!" {
		t.Errorf("Sanitize(%q) = %v, want %q", in, got, "hi!")
	}
	if got := exclaim.Sanitize(nil); got != nil {
		t.Errorf("Sanitize(nil) = %q, want nil", *got)
	}
}

func TestBind(t *testing.T) {
	b := bind[string]("trim", Trim{})

	if b.name != "trim" {
		t.Errorf("name = %q", b.name)
	}
	if b.impl != reflect.TypeFor[Trim]() {
		t.Errorf("impl = %v, want Trim", b.impl)
	}
	if b.valueType != reflect.TypeFor[string]() {
		t.Errorf("valueType = %v, want string", b.valueType)
	}

	in := "  x  "
	out := b.call(reflect.ValueOf(&in))
	if out.IsNil() || out.Elem().String() != "x" {
		t.Errorf("call(%q) = %v, want %q", in, out, "x")
	}
	if in != "  x  " {
		t.Errorf("input mutated to %q", in)
	}

	if out := b.call(reflect.Value{}); !out.IsNil() {
		t.Error("call(invalid) should yield nil")
	}
	if out := b.call(reflect.Zero(reflect.TypeFor[*string]())); !out.IsNil() {
		t.Error("call(nil) should yield nil")
	}
}

type code string

type wrapped struct{ S string }

func TestBinding_Accepts(t *testing.T) {
	b := bind[string]("trim", Trim{})

	tests := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeFor[string](), true},
		{reflect.TypeFor[code](), true},
		{reflect.TypeFor[int](), false},
		{reflect.TypeFor[*string](), false},
		{reflect.TypeFor[[]string](), false},
		{reflect.TypeFor[wrapped](), false},
		{reflect.TypeFor[[]byte](), false},
	}

	for _, tt := range tests {
		if got := b.accepts(tt.typ); got != tt.want {
			t.Errorf("accepts(%v) = %v, want %v", tt.typ, got, tt.want)
		}
	}

	// Composite kinds require the exact type.
	sb := bind[[]string]("dedupe", TransformerFunc[[]string](func(v *[]string) *[]string { return v }))
	type list []string
	if sb.accepts(reflect.TypeFor[list]()) {
		t.Error("named slice types should not be accepted")
	}
	if !sb.accepts(reflect.TypeFor[[]string]()) {
		t.Error("exact slice type should be accepted")
	}
}

func TestDefine(t *testing.T) {
	entry := Define("trim", func() (Transformer[string], error) { return Trim{}, nil })
	if entry.Name() != "trim" {
		t.Errorf("Name() = %q", entry.Name())
	}
	if entry.ValueType() != reflect.TypeFor[string]() {
		t.Errorf("ValueType() = %v", entry.ValueType())
	}

	b, err := entry.instantiate()
	if err != nil {
		t.Fatalf("instantiate() error: %v", err)
	}
	if b.name != "trim" || b.impl != reflect.TypeFor[Trim]() {
		t.Errorf("binding = %s/%v", b.name, b.impl)
	}
}

func TestDefine_Failures(t *testing.T) {
	var nilPtr *StripHTML

	tests := []struct {
		name  string
		entry Entry
	}{
		{"factory error", Define("e", func() (Transformer[string], error) { return nil, errors.New("no key") })},
		{"nil result", Define("n", func() (Transformer[string], error) { return nil, nil })},
		{"typed nil result", Define("t", func() (Transformer[string], error) { return nilPtr, nil })},
		{"panic", Define("p", func() (Transformer[string], error) { panic("bad factory") })},
		{"nil factory", Define[string]("f", nil)},
		{"zero entry", Entry{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if b, err := tt.entry.instantiate(); err == nil || b != nil {
				t.Errorf("instantiate() = %v, %v; want error", b, err)
			}
		})
	}
}

func TestInstance_Shared(t *testing.T) {
	tr := NewStripHTML()
	entry := Instance[string]("strip", tr)

	a, err := entry.instantiate()
	if err != nil {
		t.Fatalf("instantiate() error: %v", err)
	}
	b, err := entry.instantiate()
	if err != nil {
		t.Fatalf("instantiate() error: %v", err)
	}
	if a.instance != b.instance || a.instance != any(tr) {
		t.Error("Instance should always yield the given transformer")
	}
}
