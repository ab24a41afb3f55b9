// Package compose lowers type descriptor trees to OpenCLI schemas.
//
// Composition is a pure, synchronous tree transformation: a descriptor
// graph goes in, an owned, acyclic schema tree comes out. Cycles in the
// input graph surface as "#/components/schemas/<Name>" references, never
// as cyclic schema structures; callers must mark at least one edge of
// every inline-expanded cycle with a recursion break, or composition does
// not terminate.
package compose

import (
	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

// Options control a single composition.
type Options struct {
	// Bindings supplies concrete schemas for generic placeholders by
	// position. A missing or zero entry falls back to the placeholder's
	// declared default.
	Bindings []opencli.RefOr

	// Inline expands a generic root in place using Bindings instead of
	// returning its schema reference.
	Inline bool

	// NoRecursion forces every composite field to compose as a
	// reference, regardless of per-field inline requests.
	NoRecursion bool
}

// WarningCode classifies a non-fatal degradation.
type WarningCode string

const (
	// WarnUnsupportedShape marks a node the composer could not classify.
	// The node degrades to a string leaf.
	WarnUnsupportedShape WarningCode = "unsupported_type_shape"
)

// Warning records a non-fatal degradation encountered during composition.
type Warning struct {
	// Code classifies the degradation.
	Code WarningCode

	// Path locates the offending node, e.g. "Person.friends".
	Path string

	// Message describes what was degraded and how.
	Message string
}

// Result is the outcome of a composition.
type Result struct {
	// Schema is the composed schema or reference.
	Schema opencli.RefOr

	// Warnings lists non-fatal degradations in encounter order.
	Warnings []Warning
}

// Compose builds the schema for td.
//
// A named composite root expands to its full object schema; a generic
// root returns its reference unless Options.Inline is set. Expression
// roots (leaves, wrappers, maps) compose to their inline schema.
//
// Identical inputs produce structurally identical results: there is no
// caching and no shared mutable state. Representation conflicts on any
// reachable sum type are rejected before any schema is built.
func Compose(td ir.TypeDescriptor, opts Options) (Result, error) {
	if err := checkRoot(td, opts); err != nil {
		return Result{}, err
	}
	c := &composer{bindings: opts.Bindings}
	schema := c.composeRoot(td, opts)
	return Result{Schema: schema, Warnings: c.warnings}, nil
}

// composer threads bindings and collected warnings through one
// composition. A fresh composer is created per Compose call.
type composer struct {
	bindings []opencli.RefOr
	warnings []Warning
}

// composeRoot dispatches the root type. Transparent wrappers around the
// root are unwrapped first so that Optional(T) and Indirection(T) compose
// exactly as T, and Sequence(T) as an array of T's full schema.
func (c *composer) composeRoot(td ir.TypeDescriptor, opts Options) opencli.RefOr {
	chain, core := classify(td)

	var schema opencli.RefOr
	switch d := core.(type) {
	case *ir.RecordDescriptor:
		if len(d.TypeParams) > 0 && !opts.Inline {
			schema = opencli.NewSchemaRef(SchemaName(d))
		} else {
			schema = c.composeRecord(d, d.TypeName(), opts.NoRecursion)
		}
	case *ir.SumDescriptor:
		if len(d.TypeParams) > 0 && !opts.Inline {
			schema = opencli.NewSchemaRef(SchemaName(d))
		} else {
			schema = c.composeSum(d, d.TypeName(), opts.NoRecursion)
		}
	default:
		schema = c.composeCore(core, "", opts.Inline, opts.NoRecursion)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i] == WrapSequence {
			schema = opencli.Inline(opencli.NewArray(schema))
		}
	}
	return schema
}

// warn records a degradation at path.
func (c *composer) warn(code WarningCode, path, message string) {
	c.warnings = append(c.warnings, Warning{Code: code, Path: path, Message: message})
}

// joinPath extends a warning path with a field or variant segment.
func joinPath(path, segment string) string {
	if path == "" {
		return segment
	}
	return path + "." + segment
}

// checkRoot validates every sum representation reachable from td before
// any schema is built. Traversal mirrors composition: reference edges and
// guard-protected fields are not descended, so the check terminates
// exactly when composition would.
func checkRoot(td ir.TypeDescriptor, opts Options) error {
	_, core := classify(td)
	switch d := core.(type) {
	case *ir.RecordDescriptor:
		if len(d.TypeParams) > 0 && !opts.Inline {
			return nil
		}
		return checkRecord(d, opts.NoRecursion)
	case *ir.SumDescriptor:
		if len(d.TypeParams) > 0 && !opts.Inline {
			_, err := representationOf(d)
			return err
		}
		return checkSum(d, opts.NoRecursion)
	default:
		return checkField(core, opts.Inline, opts.NoRecursion)
	}
}

func checkRecord(d *ir.RecordDescriptor, guard bool) error {
	guard = guard || d.Annotations.NoRecursion
	for _, f := range d.Fields {
		if f.Annotations.Skip {
			continue
		}
		if err := checkField(f.Type, f.Annotations.Inline, guard || f.Annotations.NoRecursion); err != nil {
			return err
		}
	}
	for _, t := range d.Unnamed {
		if err := checkField(t, false, guard); err != nil {
			return err
		}
	}
	return nil
}

func checkSum(d *ir.SumDescriptor, guard bool) error {
	if _, err := representationOf(d); err != nil {
		return err
	}
	guard = guard || d.Annotations.NoRecursion
	for _, v := range d.Variants {
		if v.Annotations.Skip {
			continue
		}
		for _, f := range v.Fields {
			if f.Annotations.Skip {
				continue
			}
			if err := checkField(f.Type, f.Annotations.Inline, guard || f.Annotations.NoRecursion); err != nil {
				return err
			}
		}
		for _, t := range v.Unnamed {
			if err := checkField(t, false, guard); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkField descends through wrapper layers and, for composites, only
// through edges that composition would inline-expand.
func checkField(td ir.TypeDescriptor, inline, guard bool) error {
	switch d := td.(type) {
	case *ir.OptionalDescriptor:
		return checkField(d.Element, inline, guard)
	case *ir.IndirectionDescriptor:
		return checkField(d.Element, inline, guard)
	case *ir.SequenceDescriptor:
		return checkField(d.Element, inline, guard)
	case *ir.PlaceholderDescriptor:
		if d.Default != nil {
			return checkField(d.Default, false, guard)
		}
		return nil
	case *ir.RecordDescriptor:
		if !inline || guard {
			return nil
		}
		return checkRecord(d, guard)
	case *ir.SumDescriptor:
		if !inline || guard {
			return nil
		}
		return checkSum(d, guard)
	default:
		// Leaves, maps and named references carry no representation.
		return nil
	}
}
