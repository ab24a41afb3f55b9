package compose

import (
	"strings"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

// SchemaName returns the component name a descriptor registers under.
// Generic declarations render their parameter identifiers, not the bound
// types: "Response<T>", "Pair<K, V>".
func SchemaName(td ir.TypeDescriptor) string {
	name := td.TypeName()
	if params := typeParams(td); len(params) > 0 {
		name += "<" + strings.Join(params, ", ") + ">"
	}
	return name
}

func typeParams(td ir.TypeDescriptor) []string {
	switch d := td.(type) {
	case *ir.RecordDescriptor:
		return d.TypeParams
	case *ir.SumDescriptor:
		return d.TypeParams
	}
	return nil
}

// bindingFor resolves a generic placeholder: the caller-supplied binding
// for its position when one is present, otherwise the placeholder's
// declared default, otherwise an unconstrained object.
func (c *composer) bindingFor(d *ir.PlaceholderDescriptor, path string) opencli.RefOr {
	if d.Index >= 0 && d.Index < len(c.bindings) && !c.bindings[d.Index].IsZero() {
		return c.bindings[d.Index]
	}
	if d.Default != nil {
		return c.composeField(d.Default, path, false, false)
	}
	return opencli.Inline(opencli.NewObject().WithType(opencli.TypeObject))
}
