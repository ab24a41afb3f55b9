package compose

import "github.com/broady/opencli/opencligen/ir"

// isRequired reports whether a field belongs in the enclosing object's
// required list. Any single exclusion signal removes the field, and no
// combination of signals restores it:
//
//   - an Optional layer wrapping the field value itself
//   - a container-wide default-all flag
//   - a field default signal, whether or not a literal value is known
//   - a conditional-omit predicate
//   - double-optional (absent-versus-null) encoding
//
// None of these change the field's schema type.
func isRequired(f ir.FieldDescriptor, container ir.ContainerAnnotations) bool {
	if container.DefaultAll {
		return false
	}
	a := f.Annotations
	if a.Default || a.ConditionalOmit || a.DoubleOptional {
		return false
	}
	return !optionalValue(f.Type)
}

// optionalValue reports whether the field value itself may be absent.
// Indirection layers are transparent; an Optional inside a Sequence
// applies to collection elements, not to the field, so the scan stops at
// the first array layer.
func optionalValue(td ir.TypeDescriptor) bool {
	chain, _ := classify(td)
	for _, w := range chain {
		switch w {
		case WrapOptional:
			return true
		case WrapSequence:
			return false
		}
	}
	return false
}
