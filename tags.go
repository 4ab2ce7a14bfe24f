package scrub

import (
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// DefaultTagKey is the struct tag key read by engines that do not override it.
const DefaultTagKey = "scrub"

// skipTag disables sanitization and nested traversal for a field.
const skipTag = "-"

func init() {
	sentinel.Tag(DefaultTagKey)
}

// parseTag splits a tag value into transformer names in declaration order.
// Empty segments are ignored.
func parseTag(value string) []string {
	if value == "" || value == skipTag {
		return nil
	}
	parts := strings.Split(value, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// describe has sentinel scan T so later discovery of T reuses its metadata.
func describe[T any]() {
	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		sentinel.Scan[T]()
	}
}

// scanType describes a struct type's fields as sentinel metadata.
// Metadata sentinel already holds for the type is reused. Fields it does not
// describe, such as unexported ones, and tag keys registered after the type was
// scanned are read from the struct itself.
func scanType(rt reflect.Type, tagKey string) sentinel.Metadata {
	known := knownFields(rt)
	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fm, ok := known[i]
		if !ok {
			fm = describeField(sf)
		}
		fm.Tags = fieldTags(fm.Tags, sf, tagKey)
		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// knownFields returns sentinel's cached metadata for rt keyed by field index.
// Cached metadata that does not match rt field for field is ignored, since
// distinct types can share a name.
func knownFields(rt reflect.Type) map[int]sentinel.FieldMetadata {
	cached, ok := sentinel.Lookup(rt.String())
	if !ok {
		return nil
	}

	out := make(map[int]sentinel.FieldMetadata, len(cached.Fields))
	for _, fm := range cached.Fields {
		if len(fm.Index) != 1 || fm.Index[0] >= rt.NumField() {
			return nil
		}
		sf := rt.Field(fm.Index[0])
		if sf.Name != fm.Name || sf.Type != fm.ReflectType {
			return nil
		}
		out[fm.Index[0]] = fm
	}
	return out
}

// describeField builds metadata for a field sentinel did not describe.
func describeField(sf reflect.StructField) sentinel.FieldMetadata {
	fm := sentinel.FieldMetadata{
		Name:        sf.Name,
		Type:        sf.Type.String(),
		ReflectType: sf.Type,
		Index:       sf.Index,
	}

	switch sf.Type.Kind() {
	case reflect.Struct:
		fm.Kind = sentinel.KindStruct
	case reflect.Ptr:
		fm.Kind = sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		fm.Kind = sentinel.KindSlice
	case reflect.Map:
		fm.Kind = sentinel.KindMap
	case reflect.Interface:
		fm.Kind = sentinel.KindInterface
	default:
		fm.Kind = sentinel.KindScalar
	}
	return fm
}

// fieldTags returns tags with tagKey filled in from the struct tag when
// missing. The input map is never modified.
func fieldTags(tags map[string]string, sf reflect.StructField, tagKey string) map[string]string {
	if _, ok := tags[tagKey]; ok {
		return tags
	}
	out := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		out[k] = v
	}
	if val, ok := sf.Tag.Lookup(tagKey); ok {
		out[tagKey] = val
	}
	return out
}

// typeName renders a type for events and errors.
func typeName(rt reflect.Type) string {
	return rt.String()
}
