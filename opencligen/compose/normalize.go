package compose

import (
	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

// Wrapper identifies one unwrapped layer around a core type.
type Wrapper int

const (
	WrapOptional    Wrapper = iota // Absence allowed; requiredness only
	WrapSequence                   // Array layer
	WrapIndirection                // Ownership layer, schema-transparent
)

// classify unwraps Optional, Sequence and Indirection layering around td
// in any nesting order, returning the wrapper chain outermost-first and
// the core type. Map terminates the chain: its key and value types are
// never typed in the output, so the map node itself is the core.
func classify(td ir.TypeDescriptor) ([]Wrapper, ir.TypeDescriptor) {
	var chain []Wrapper
	for {
		switch d := td.(type) {
		case *ir.OptionalDescriptor:
			chain = append(chain, WrapOptional)
			td = d.Element
		case *ir.SequenceDescriptor:
			chain = append(chain, WrapSequence)
			td = d.Element
		case *ir.IndirectionDescriptor:
			chain = append(chain, WrapIndirection)
			td = d.Element
		default:
			return chain, td
		}
	}
}

// composeField builds the schema for a field value type. Optional and
// Indirection layers are transparent; each Sequence layer wraps the inner
// schema in an array node, so Sequence<Optional<Indirection<T>>> composes
// to an array of T.
func (c *composer) composeField(td ir.TypeDescriptor, path string, inline, guard bool) opencli.RefOr {
	chain, core := classify(td)
	schema := c.composeCore(core, path, inline, guard)
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i] == WrapSequence {
			schema = opencli.Inline(opencli.NewArray(schema))
		}
	}
	return schema
}

// composeCore builds the schema for a fully-unwrapped core type. Named
// composites default to a schema reference; they expand in place only on
// an explicit inline request, and a recursion guard forces the reference
// unconditionally.
func (c *composer) composeCore(core ir.TypeDescriptor, path string, inline, guard bool) opencli.RefOr {
	switch d := core.(type) {
	case *ir.LeafDescriptor:
		return opencli.Inline(leafSchema(d))
	case *ir.MapDescriptor:
		return opencli.Inline(opencli.NewObject().
			WithType(opencli.TypeObject).
			WithAdditionalProperties(true))
	case *ir.PlaceholderDescriptor:
		return c.bindingFor(d, path)
	case *ir.RefDescriptor:
		return opencli.NewSchemaRef(d.Target)
	case *ir.RecordDescriptor:
		if !inline || guard {
			return opencli.NewSchemaRef(SchemaName(d))
		}
		return c.composeRecord(d, path, guard)
	case *ir.SumDescriptor:
		if !inline || guard {
			return opencli.NewSchemaRef(SchemaName(d))
		}
		return c.composeSum(d, path, guard)
	default:
		return c.degrade(path, core)
	}
}

// degrade records an unclassifiable node and substitutes a string leaf.
func (c *composer) degrade(path string, td ir.TypeDescriptor) opencli.RefOr {
	if td == nil {
		c.warn(WarnUnsupportedShape, path, "missing type descriptor; substituting string")
	} else {
		c.warn(WarnUnsupportedShape, path, "unrecognized descriptor kind "+td.Kind().String()+"; substituting string")
	}
	return opencli.Inline(opencli.StringSchema())
}

// leafSchema maps a primitive leaf to its schema. 32- and 64-bit numerics
// carry a format; other widths compose to a bare integer or number.
func leafSchema(d *ir.LeafDescriptor) *opencli.Object {
	switch d.LeafKind {
	case ir.LeafBool:
		return opencli.BooleanSchema()
	case ir.LeafString:
		return opencli.StringSchema()
	case ir.LeafInt, ir.LeafUint:
		switch d.BitSize {
		case 32:
			return opencli.Int32Schema()
		case 64:
			return opencli.Int64Schema()
		default:
			return opencli.IntegerSchema()
		}
	case ir.LeafFloat:
		switch d.BitSize {
		case 32:
			return opencli.FloatSchema()
		case 64:
			return opencli.DoubleSchema()
		default:
			return opencli.NumberSchema()
		}
	default:
		return opencli.StringSchema()
	}
}
