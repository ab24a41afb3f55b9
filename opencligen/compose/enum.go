package compose

import (
	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

// representation is the validated wire encoding of a sum type.
type representation int

const (
	reprExternal representation = iota
	reprInternal
	reprAdjacent
	reprUntagged
)

// representationOf validates a sum's representation annotations.
// Contradictory or incomplete declarations are configuration errors owned
// by the type author and are rejected before any schema is built.
func representationOf(d *ir.SumDescriptor) (representation, error) {
	r := d.Annotations.Representation
	switch {
	case r.Untagged && (r.Tag != "" || r.Content != ""):
		return 0, opencli.NewError(opencli.CodeConflictingRepresentation,
			"untagged sum cannot carry a tag or content name").
			WithDetail("type", d.TypeName())
	case r.Untagged:
		return reprUntagged, nil
	case r.Content != "" && r.Tag == "":
		return 0, opencli.NewError(opencli.CodeMissingAttribute,
			"adjacently tagged sum needs a tag name alongside content").
			WithDetail("type", d.TypeName())
	case r.Tag != "" && r.Tag == r.Content:
		return 0, opencli.NewError(opencli.CodeConflictingRepresentation,
			"tag and content names collide").
			WithDetail("type", d.TypeName())
	case r.Tag != "" && r.Content != "":
		return reprAdjacent, nil
	case r.Tag != "":
		return reprInternal, nil
	default:
		return reprExternal, nil
	}
}

// composeSum builds the schema for a sum type.
//
// The target format has no native oneOf construct, so a sum with payload
// variants composes as one object enumerating every legal shape under its
// variant name, rather than as a true disjoint union. Plain sums keep the
// compact encodings: a string enum under external tagging, a null-typed
// leaf when untagged.
func (c *composer) composeSum(d *ir.SumDescriptor, path string, guard bool) opencli.RefOr {
	repr, err := representationOf(d)
	if err != nil {
		// checkRoot rejects invalid representations before the walk starts.
		return opencli.Inline(opencli.StringSchema())
	}
	guard = guard || d.Annotations.NoRecursion

	variants := make([]ir.VariantDescriptor, 0, len(d.Variants))
	names := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		if v.Annotations.Skip {
			continue
		}
		variants = append(variants, v)
		names = append(names, resolveName(v.Name, v.Annotations.Rename, ir.RenameUnchanged, d.Annotations.RenameAll))
	}

	var obj *opencli.Object
	if d.Plain() {
		obj = composePlain(names, repr, d.Annotations.Representation)
	} else {
		obj = c.composeMixed(variants, names, d, repr, path, guard)
	}
	applyContainer(obj, d.Annotations)
	return opencli.Inline(obj)
}

// composePlain encodes a sum whose variants all lack payloads.
func composePlain(names []string, repr representation, r ir.Representation) *opencli.Object {
	switch repr {
	case reprInternal:
		// One property per variant, each an object pinning the tag to
		// that variant's name.
		props := opencli.NewMap[opencli.RefOr]()
		for _, name := range names {
			tagged := opencli.NewObject().
				WithType(opencli.TypeObject).
				WithProperty(r.Tag, opencli.Inline(singleValueEnum(name))).
				WithRequired(r.Tag)
			props.Set(name, opencli.Inline(tagged))
		}
		return &opencli.Object{Type: opencli.TypeObject, Properties: props}
	case reprAdjacent:
		// Unit variants have no content, so only the tag property remains.
		return opencli.NewObject().
			WithType(opencli.TypeObject).
			WithProperty(r.Tag, opencli.Inline(nameEnum(names))).
			WithRequired(r.Tag)
	case reprUntagged:
		// Without a discriminator no value distinguishes the variants.
		return opencli.NewObject().WithType(opencli.TypeNull)
	default:
		return nameEnum(names)
	}
}

// composeMixed encodes a sum with at least one payload-carrying variant:
// each variant's payload is wrapped per the representation, then every
// wrapped shape is collected into one container object keyed by variant
// name.
func (c *composer) composeMixed(variants []ir.VariantDescriptor, names []string, d *ir.SumDescriptor, repr representation, path string, guard bool) *opencli.Object {
	r := d.Annotations.Representation
	props := opencli.NewMap[opencli.RefOr]()
	for i, v := range variants {
		payload := c.composeVariantPayload(v, names[i], d.Annotations, path, guard)
		props.Set(names[i], wrapVariant(payload, names[i], repr, r))
	}
	return &opencli.Object{Type: opencli.TypeObject, Properties: props}
}

// composeVariantPayload builds a variant's own schema: a single-value
// string enum for unit variants, record semantics for named fields, and
// tuple semantics for positional payloads.
func (c *composer) composeVariantPayload(v ir.VariantDescriptor, name string, container ir.ContainerAnnotations, path string, guard bool) opencli.RefOr {
	switch {
	case v.Unit():
		return opencli.Inline(singleValueEnum(name))
	case len(v.Fields) > 0:
		// The container-level case rule renames variant keys, not the
		// fields inside a variant; only a variant-attached rule does.
		fieldContainer := container
		fieldContainer.RenameAll = ir.RenameUnchanged
		obj := c.composeFields(v.Fields, fieldContainer, v.Annotations.RenameAll, joinPath(path, v.Name), guard)
		return opencli.Inline(obj)
	default:
		return c.composePositional(v.Unnamed, joinPath(path, v.Name), guard)
	}
}

// wrapVariant applies the representation's framing to a variant payload.
func wrapVariant(payload opencli.RefOr, name string, repr representation, r ir.Representation) opencli.RefOr {
	switch repr {
	case reprInternal:
		return mergeTag(payload, r.Tag, name)
	case reprAdjacent:
		wrapped := opencli.NewObject().
			WithType(opencli.TypeObject).
			WithProperty(r.Tag, opencli.Inline(singleValueEnum(name))).
			WithProperty(r.Content, payload).
			WithRequired(r.Tag, r.Content)
		return opencli.Inline(wrapped)
	case reprUntagged:
		return payload
	default:
		wrapped := opencli.NewObject().
			WithType(opencli.TypeObject).
			WithProperty(name, payload).
			WithRequired(name)
		return opencli.Inline(wrapped)
	}
}

// mergeTag adds the discriminator property directly into a variant's own
// object schema. Non-object payloads (references, arrays) have no
// property set to merge into and pass through unchanged. The merge copies
// the object so shared payload schemas are never mutated.
func mergeTag(payload opencli.RefOr, tag, name string) opencli.RefOr {
	obj, ok := payload.Schema.(*opencli.Object)
	if payload.Ref != nil || !ok {
		return payload
	}

	merged := *obj
	props := opencli.NewMap[opencli.RefOr]()
	if obj.Properties != nil {
		obj.Properties.Each(func(key string, value opencli.RefOr) {
			props.Set(key, value)
		})
	}
	props.Set(tag, opencli.Inline(singleValueEnum(name)))
	merged.Properties = props
	merged.Required = append(append([]string(nil), obj.Required...), tag)
	return opencli.Inline(&merged)
}

// singleValueEnum is a string schema admitting exactly one value.
func singleValueEnum(name string) *opencli.Object {
	return opencli.StringSchema().WithEnum(name)
}

// nameEnum is a string schema enumerating every variant name.
func nameEnum(names []string) *opencli.Object {
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = name
	}
	return opencli.StringSchema().WithEnum(values...)
}
