package provider

import (
	"context"
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/broady/opencli/opencligen/ir"
)

// ReflectionProvider extracts descriptors from live Go types using
// runtime reflection. It sees struct shape and tags but not doc comments
// or const groups; SourceProvider recovers those.
type ReflectionProvider struct{}

// ReflectionRoot is one requested root type.
type ReflectionRoot struct {
	// Value supplies the root type as a value; its dynamic type is used.
	Value any

	// Type supplies the root type directly and wins over Value.
	Type reflect.Type

	// Container applies container-level annotations to the root type.
	Container ir.ContainerAnnotations
}

// ReflectionOptions configures reflection-based extraction.
type ReflectionOptions struct {
	// Roots are the struct types to extract. Pointer roots are
	// dereferenced.
	Roots []ReflectionRoot
}

// Descriptors extracts the root types and every named type reachable from
// their fields.
func (p *ReflectionProvider) Descriptors(ctx context.Context, opts ReflectionOptions) (*Set, error) {
	if len(opts.Roots) == 0 {
		return nil, fmt.Errorf("no root types provided")
	}

	b := &reflectionBuilder{
		set:        &Set{},
		registered: make(map[reflect.Type]string),
		names:      make(map[string]reflect.Type),
	}

	for _, root := range opts.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := root.Type
		if t == nil {
			t = reflect.TypeOf(root.Value)
		}
		if t == nil {
			return nil, fmt.Errorf("root has neither a value nor a type")
		}
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return nil, fmt.Errorf("root type %s is not a struct", t)
		}
		if err := b.ensure(t, root.Container); err != nil {
			return nil, err
		}
	}
	return b.set, nil
}

// reflectionBuilder accumulates descriptors during extraction.
type reflectionBuilder struct {
	set        *Set
	registered map[reflect.Type]string // type -> component name, set before fields are walked
	names      map[string]reflect.Type // component name -> first claimant
}

var (
	timeType          = reflect.TypeOf(time.Time{})
	durationType      = reflect.TypeOf(time.Duration(0))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// ensure emits the record descriptor for a named struct type once.
// Dependencies discovered while walking fields are appended before the
// type itself.
func (b *reflectionBuilder) ensure(t reflect.Type, container ir.ContainerAnnotations) error {
	if _, ok := b.registered[t]; ok {
		return nil
	}

	name := schemaNameFor(t)
	if container.Name != "" {
		name = container.Name
	}
	b.registered[t] = name

	if prev, taken := b.names[name]; taken {
		b.set.warn(WarnNameCollision,
			fmt.Sprintf("%s and %s both map to component %q; keeping the first", prev, t, name), name)
		return nil
	}
	b.names[name] = t

	fields, err := b.collectFields(t, name, map[reflect.Type]bool{t: true})
	if err != nil {
		return err
	}
	b.set.Types = append(b.set.Types, &ir.RecordDescriptor{
		Name:        schemaNameFor(t),
		Fields:      fields,
		Annotations: container,
	})
	return nil
}

// collectFields walks a struct's fields, promoting untagged embedded
// structs the way encoding/json flattens them.
func (b *reflectionBuilder) collectFields(t reflect.Type, path string, promoting map[reflect.Type]bool) ([]ir.FieldDescriptor, error) {
	var fields []ir.FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		if sf.Anonymous {
			name, _, skip := parseJSONTag(sf.Tag)
			if skip {
				continue
			}
			et := sf.Type
			for et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && et != timeType && name == "" {
				if promoting[et] {
					b.set.warn(WarnEmbeddingCycle,
						fmt.Sprintf("embedded %s forms a cycle; fields not promoted", et), path)
					continue
				}
				promoting[et] = true
				promoted, err := b.collectFields(et, path, promoting)
				delete(promoting, et)
				if err != nil {
					return nil, err
				}
				fields = append(fields, promoted...)
				continue
			}
			// A tagged or non-struct embedding serializes as a regular
			// member and falls through.
		}

		if _, _, skip := parseJSONTag(sf.Tag); skip {
			continue
		}
		fd, err := b.field(sf, path)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

// field builds one field descriptor from a struct field and its tags.
func (b *reflectionBuilder) field(sf reflect.StructField, path string) (ir.FieldDescriptor, error) {
	var ann ir.FieldAnnotations

	name, omitEmpty, _ := parseJSONTag(sf.Tag)
	ann.Rename = name
	ann.ConditionalOmit = omitEmpty
	for _, problem := range parseEngineTag(sf.Tag, &ann) {
		b.set.warn(WarnTagOption, fmt.Sprintf("%s.%s: %s", path, sf.Name, problem), path)
	}

	td, err := b.typeDescriptor(sf.Type, path+"_"+sf.Name)
	if err != nil {
		return ir.FieldDescriptor{}, fmt.Errorf("field %s.%s: %w", path, sf.Name, err)
	}

	if sf.Type.Kind() == reflect.Pointer && sf.Type.Elem().Kind() == reflect.Pointer {
		ann.DoubleOptional = true
	}
	if ann.Schema.Format == "" {
		ann.Schema.Format = impliedFormat(sf.Type)
	}

	return ir.FieldDescriptor{Name: sf.Name, Type: td, Annotations: ann}, nil
}

// typeDescriptor maps a reflect.Type onto the descriptor tree. Named
// struct types become references and are queued for extraction; named
// primitives resolve transparently to their underlying leaf.
func (b *reflectionBuilder) typeDescriptor(t reflect.Type, synthetic string) (ir.TypeDescriptor, error) {
	switch t {
	case timeType:
		return ir.String(), nil
	case durationType:
		return ir.Int(64), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return ir.Bool(), nil

	case reflect.Int:
		return ir.Int(0), nil
	case reflect.Int8:
		return ir.Int(8), nil
	case reflect.Int16:
		return ir.Int(16), nil
	case reflect.Int32:
		return ir.Int(32), nil
	case reflect.Int64:
		return ir.Int(64), nil

	case reflect.Uint, reflect.Uintptr:
		return ir.Uint(0), nil
	case reflect.Uint8:
		return ir.Uint(8), nil
	case reflect.Uint16:
		return ir.Uint(16), nil
	case reflect.Uint32:
		return ir.Uint(32), nil
	case reflect.Uint64:
		return ir.Uint(64), nil

	case reflect.Float32:
		return ir.Float(32), nil
	case reflect.Float64:
		return ir.Float(64), nil

	case reflect.String:
		return ir.String(), nil

	case reflect.Slice, reflect.Array:
		// Byte blobs encode as base64 strings.
		if t.Elem().Kind() == reflect.Uint8 {
			return ir.String(), nil
		}
		elem, err := b.typeDescriptor(t.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.Sequence(elem), nil

	case reflect.Map:
		if !jsonObjectKey(t.Key()) {
			b.set.warn(WarnMapKey,
				fmt.Sprintf("map key type %s does not produce JSON object keys", t.Key()), t.String())
		}
		key, err := b.typeDescriptor(t.Key(), synthetic)
		if err != nil {
			return nil, err
		}
		value, err := b.typeDescriptor(t.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.MapOf(key, value), nil

	case reflect.Pointer:
		// A nil pointer still serializes its key, as null. Pointers are
		// indirection, not absence; only omitempty makes a field
		// optional.
		elem, err := b.typeDescriptor(t.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.Indirection(elem), nil

	case reflect.Struct:
		if t.Name() == "" {
			return b.anonymousStruct(t, synthetic)
		}
		if err := b.ensure(t, ir.ContainerAnnotations{}); err != nil {
			return nil, err
		}
		return ir.Ref(b.registered[t]), nil

	case reflect.Interface:
		if t.NumMethod() > 0 {
			b.set.warn(WarnInterfaceType,
				fmt.Sprintf("interface %s mapped to an open object", t), t.String())
		}
		return ir.MapOf(nil, nil), nil

	default:
		return nil, fmt.Errorf("unsupported type %s (kind %s)", t, t.Kind())
	}
}

// anonymousStruct emits an anonymous struct under a synthetic name
// derived from its position, parent_Field, and references it.
func (b *reflectionBuilder) anonymousStruct(t reflect.Type, synthetic string) (ir.TypeDescriptor, error) {
	if name, ok := b.registered[t]; ok {
		return ir.Ref(name), nil
	}
	b.registered[t] = synthetic

	if prev, taken := b.names[synthetic]; taken {
		b.set.warn(WarnNameCollision,
			fmt.Sprintf("%s and %s both map to component %q; keeping the first", prev, t, synthetic), synthetic)
		return ir.Ref(synthetic), nil
	}
	b.names[synthetic] = t

	fields, err := b.collectFields(t, synthetic, map[reflect.Type]bool{t: true})
	if err != nil {
		return nil, err
	}
	b.set.Types = append(b.set.Types, &ir.RecordDescriptor{
		Name:   synthetic,
		Fields: fields,
	})
	return ir.Ref(synthetic), nil
}

// impliedFormat returns the schema format a field type implies when the
// tag does not name one explicitly.
func impliedFormat(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return "date-time"
	}
	if (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) && t.Elem().Kind() == reflect.Uint8 {
		return "byte"
	}
	return ""
}

// jsonObjectKey reports whether a map key type produces JSON object keys.
func jsonObjectKey(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return t.Implements(textMarshalerType)
}

// schemaNameFor returns the component name for a named type. Generic
// instantiations carry bracketed argument lists that are flattened to
// underscore-joined names.
func schemaNameFor(t reflect.Type) string {
	return sanitizeTypeName(t.Name())
}

// sanitizeTypeName flattens a type name that carries package qualifiers
// or generic argument brackets into a component name.
func sanitizeTypeName(name string) string {
	if !strings.ContainsAny(name, "[].,/* ") {
		return name
	}
	result := strings.ReplaceAll(name, ".", "_")
	result = strings.ReplaceAll(result, "/", "_")
	result = strings.ReplaceAll(result, "[", "_")
	result = strings.ReplaceAll(result, "]", "")
	result = strings.ReplaceAll(result, ",", "_")
	result = strings.ReplaceAll(result, " ", "")
	result = strings.ReplaceAll(result, "*", "Ptr")
	return result
}
