package scrub

import (
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

// Field describes one planned field of a record type.
type Field struct {
	Name  string       // Dotted path from the record root, e.g. "Address.City"
	Index []int        // Field index path; nil for accessor-declared fields
	Type  reflect.Type // Declared type of the field
}

// Rule is one transformer attached to one field.
type Rule struct {
	Field       string       // Dotted field path
	Transformer string       // Transformer name from the tag or declaration
	Impl        reflect.Type // Implementation type of the transformer instance
	Order       int          // Position within the field's chain, starting at 0
}

// Plan is the ordered set of rules for one record type.
// Plans are immutable once built and safe to share.
type Plan struct {
	typ      reflect.Type
	typeName string
	fields   []fieldPlan
}

// fieldPlan holds the rule chain for one field.
type fieldPlan struct {
	field Field
	rules []rule
}

// rule pairs a transformer with the slot it reads and writes.
type rule struct {
	binding *binding
	slot    slot
}

// Type returns the record type the plan was built for.
func (p *Plan) Type() reflect.Type {
	return p.typ
}

// TypeName returns the record type name.
func (p *Plan) TypeName() string {
	return p.typeName
}

// Fields returns the planned fields in application order.
func (p *Plan) Fields() []Field {
	out := make([]Field, len(p.fields))
	for i, f := range p.fields {
		out[i] = f.field
		out[i].Index = append([]int(nil), f.field.Index...)
	}
	return out
}

// Rules returns every rule in application order.
func (p *Plan) Rules() []Rule {
	var out []Rule
	for _, f := range p.fields {
		for i, r := range f.rules {
			out = append(out, Rule{
				Field:       f.field.Name,
				Transformer: r.binding.name,
				Impl:        r.binding.impl,
				Order:       i,
			})
		}
	}
	return out
}

// Len returns the total number of rules.
func (p *Plan) Len() int {
	n := 0
	for _, f := range p.fields {
		n += len(f.rules)
	}
	return n
}

// Empty reports whether the plan has no rules.
func (p *Plan) Empty() bool {
	return len(p.fields) == 0
}

// apply runs the field's chain against root. Each rule reads the value the
// previous rule wrote. The first failure stops the chain for this field only.
func (f *fieldPlan) apply(root reflect.Value) (ferr *FieldError) {
	var current string
	defer func() {
		if r := recover(); r != nil {
			ferr = newFieldError(ErrTransformPanic, f.field.Name, current, fmt.Errorf("%v", r))
		}
	}()

	for _, r := range f.rules {
		current = r.binding.name
		if err := r.slot.visit(root, r.binding.call); err != nil {
			return newFieldError(err, f.field.Name, current, nil)
		}
	}
	return nil
}

// planner walks a record type and assembles its plan.
type planner struct {
	engine   *Engine
	plan     *Plan
	bindings map[string]*binding
	visiting map[reflect.Type]bool
}

// buildPlan discovers the rules for a struct type.
// Non-struct types yield an empty plan.
func (e *Engine) buildPlan(rt reflect.Type) (*Plan, error) {
	plan := &Plan{typ: rt, typeName: typeName(rt)}
	if rt.Kind() != reflect.Struct {
		return plan, nil
	}

	p := &planner{
		engine:   e,
		plan:     plan,
		bindings: make(map[string]*binding),
		visiting: map[reflect.Type]bool{rt: true},
	}
	if err := p.walk(scanType(rt, e.tagKey), rt, nil, ""); err != nil {
		return nil, err
	}
	return plan, nil
}

// walk processes the fields of one struct level, recursing into nested structs.
func (p *planner) walk(spec sentinel.Metadata, rt reflect.Type, parent []step, prefix string) error {
	for _, field := range spec.Fields {
		sf := rt.Field(field.Index[0])
		name := field.Name
		if prefix != "" {
			name = prefix + "." + field.Name
		}
		path := append(append([]step(nil), parent...), step{index: field.Index[0]})

		tag, tagged := field.Tags[p.engine.tagKey]
		if tagged && tag == skipTag {
			continue
		}

		names := parseTag(tag)
		if len(names) > 0 {
			if err := p.addField(sf, field.ReflectType, path, name, names); err != nil {
				return err
			}
			continue
		}

		if !p.engine.nested || (!sf.IsExported() && !sf.Anonymous) {
			continue
		}

		// Nested structs and pointers to structs are walked with the same tag rules.
		switch {
		case field.Kind == sentinel.KindStruct:
			if err := p.descend(field.ReflectType, path, name); err != nil {
				return err
			}
		case field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct:
			path[len(path)-1].deref = true
			if err := p.descend(field.ReflectType.Elem(), path, name); err != nil {
				return err
			}
		}
	}
	return nil
}

// descend walks a nested struct type unless it is already on the current path.
func (p *planner) descend(rt reflect.Type, path []step, name string) error {
	if p.visiting[rt] {
		return nil
	}
	p.visiting[rt] = true
	defer delete(p.visiting, rt)
	return p.walk(scanType(rt, p.engine.tagKey), rt, path, name)
}

// addField resolves every transformer named on a field and appends the field to the plan.
func (p *planner) addField(sf reflect.StructField, ft reflect.Type, path []step, name string, names []string) error {
	fp := fieldPlan{
		field: Field{Name: name, Index: stepIndex(path), Type: ft},
		rules: make([]rule, 0, len(names)),
	}

	for _, tn := range names {
		b, err := p.resolve(tn, name)
		if err != nil {
			return err
		}
		s, ok := reflectSlotFor(ft, b, path)
		if !ok {
			return newConfigError(ErrTypeMismatch, p.plan.typeName, name, tn,
				fmt.Errorf("%s operates on %s, field %s is %s", tn, b.valueType, sf.Name, ft))
		}
		fp.rules = append(fp.rules, rule{binding: b, slot: s})
	}

	p.plan.fields = append(p.plan.fields, fp)
	return nil
}

// resolve instantiates a named transformer once per plan.
func (p *planner) resolve(name, field string) (*binding, error) {
	if b, ok := p.bindings[name]; ok {
		return b, nil
	}
	b, err := p.engine.instantiate(name, p.plan.typeName, field)
	if err != nil {
		return nil, err
	}
	p.bindings[name] = b
	return b, nil
}

// instantiate resolves a catalog name to a fresh binding.
func (e *Engine) instantiate(name, typeName, field string) (*binding, error) {
	entry, ok := e.entries[name]
	if !ok {
		return nil, newConfigError(ErrUnknownTransformer, typeName, field, name, nil)
	}
	b, err := entry.instantiate()
	if err != nil {
		return nil, newConfigError(ErrInstantiate, typeName, field, name, err)
	}
	return b, nil
}

// stepIndex flattens a path into a reflect index path.
func stepIndex(path []step) []int {
	idx := make([]int, len(path))
	for i, s := range path {
		idx[i] = s.index
	}
	return idx
}
