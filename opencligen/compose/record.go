package compose

import (
	"reflect"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

// composeRecord builds the object schema for a record. Positional records
// follow the tuple rules in composePositional; named records compose
// field by field and then take the container-level annotations.
func (c *composer) composeRecord(d *ir.RecordDescriptor, path string, guard bool) opencli.RefOr {
	guard = guard || d.Annotations.NoRecursion
	if d.Positional {
		return c.composePositional(d.Unnamed, path, guard)
	}
	obj := c.composeFields(d.Fields, d.Annotations, ir.RenameUnchanged, path, guard)
	applyContainer(obj, d.Annotations)
	return opencli.Inline(obj)
}

// composeFields builds an object schema from named fields. variantRule
// carries a variant-attached case rule and is RenameUnchanged outside sum
// variants.
func (c *composer) composeFields(fields []ir.FieldDescriptor, container ir.ContainerAnnotations, variantRule ir.RenameRule, path string, guard bool) *opencli.Object {
	obj := opencli.NewObject().WithType(opencli.TypeObject)
	props := opencli.NewMap[opencli.RefOr]()
	var required []string
	for _, f := range fields {
		if f.Annotations.Skip {
			continue
		}
		name := resolveName(f.Name, f.Annotations.Rename, variantRule, container.RenameAll)
		fieldGuard := guard || f.Annotations.NoRecursion
		schema := c.composeField(f.Type, joinPath(path, f.Name), f.Annotations.Inline, fieldGuard)
		props.Set(name, patchField(schema, f.Annotations))
		if isRequired(f, container) {
			required = append(required, name)
		}
	}
	obj.Properties = props
	obj.Required = required
	return obj
}

// composePositional builds the schema for a tuple-like field list.
// A single type, or several structurally identical types, compose to that
// shared schema transparently. Heterogeneous positions lose their typing
// and degrade to a bare array-typed node; an empty tuple has no
// expressible schema at all and degrades to a string leaf.
func (c *composer) composePositional(types []ir.TypeDescriptor, path string, guard bool) opencli.RefOr {
	switch len(types) {
	case 0:
		c.warn(WarnUnsupportedShape, path, "positional shape without fields; substituting string")
		return opencli.Inline(opencli.StringSchema())
	case 1:
		return c.composeField(types[0], path, false, guard)
	}

	schemas := make([]opencli.RefOr, len(types))
	for i, t := range types {
		schemas[i] = c.composeField(t, path, false, guard)
	}
	for _, s := range schemas[1:] {
		if !reflect.DeepEqual(schemas[0], s) {
			return opencli.Inline(opencli.NewObject().WithType(opencli.TypeArray))
		}
	}
	return schemas[0]
}

// patchField applies a field's constraint and display annotations to its
// composed schema. Only inline object nodes can carry the patch;
// references and array nodes drop it. The patched object is a copy, so
// binding-supplied schemas are never mutated.
func patchField(schema opencli.RefOr, a ir.FieldAnnotations) opencli.RefOr {
	if a.Schema.IsZero() && !(a.Default && a.DefaultValue != nil) {
		return schema
	}
	obj, ok := schema.Schema.(*opencli.Object)
	if schema.Ref != nil || !ok {
		return schema
	}

	patched := *obj
	if a.Default && a.DefaultValue != nil {
		patched.Default = a.DefaultValue
	}
	s := a.Schema
	if s.Format != "" {
		patched.Format = opencli.SchemaFormat(s.Format)
	}
	if s.Title != "" {
		patched.Title = s.Title
	}
	if s.Description != "" {
		patched.Description = s.Description
	}
	if s.Example != nil {
		patched.Example = s.Example
	}
	if s.Deprecated {
		patched.Deprecated = boolPtr(true)
	}
	if s.ReadOnly {
		patched.ReadOnly = boolPtr(true)
	}
	if s.WriteOnly {
		patched.WriteOnly = boolPtr(true)
	}
	if s.Nullable {
		patched.Nullable = boolPtr(true)
	}
	if s.Minimum != nil {
		patched.Minimum = s.Minimum
	}
	if s.Maximum != nil {
		patched.Maximum = s.Maximum
	}
	if s.ExclusiveMinimum {
		patched.ExclusiveMinimum = boolPtr(true)
	}
	if s.ExclusiveMaximum {
		patched.ExclusiveMaximum = boolPtr(true)
	}
	if s.MultipleOf != nil {
		patched.MultipleOf = s.MultipleOf
	}
	if s.MinLength != nil {
		patched.MinLength = s.MinLength
	}
	if s.MaxLength != nil {
		patched.MaxLength = s.MaxLength
	}
	if s.Pattern != "" {
		patched.Pattern = s.Pattern
	}
	if s.MinProperties != nil {
		patched.MinProperties = s.MinProperties
	}
	if s.MaxProperties != nil {
		patched.MaxProperties = s.MaxProperties
	}
	return opencli.Inline(&patched)
}

// applyContainer adds the container-level display annotations to a
// composed object.
func applyContainer(obj *opencli.Object, ann ir.ContainerAnnotations) {
	if ann.Description != "" {
		obj.Description = ann.Description
	}
	if ann.Title != "" {
		obj.Title = ann.Title
	}
	if ann.Example != nil {
		obj.Example = ann.Example
	}
	if ann.Deprecated {
		obj.Deprecated = boolPtr(true)
	}
	if ann.NoAdditionalProperties {
		obj.WithAdditionalProperties(false)
	}
}

func boolPtr(b bool) *bool { return &b }
