// Package ir defines the intermediate representation for declared types.
// Descriptors are language-agnostic, read-only inputs to schema composition:
// a front-end (reflection or source analysis) builds one tree per declared
// type, and the compose package lowers it to an OpenCLI schema.
package ir

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	// Named type descriptors (registrable as schema components)
	KindRecord DescriptorKind = iota // Object type with named or positional fields
	KindSum                          // Closed set of variants (tagged union)

	// Expression type descriptors (appear nested in fields and variants)
	KindLeaf        // Built-in primitive type
	KindOptional    // Value may be absent; affects requiredness only
	KindSequence    // Ordered collection
	KindMap         // Key-value mapping
	KindIndirection // Ownership indirection (pointer or box), schema-transparent
	KindPlaceholder // Generic type parameter by position
	KindReference   // Reference to another named type
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindRecord:
		return "Record"
	case KindSum:
		return "Sum"
	case KindLeaf:
		return "Leaf"
	case KindOptional:
		return "Optional"
	case KindSequence:
		return "Sequence"
	case KindMap:
		return "Map"
	case KindIndirection:
		return "Indirection"
	case KindPlaceholder:
		return "Placeholder"
	case KindReference:
		return "Reference"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// TypeName returns the declared name of this type.
	// Returns "" for expression types (leaves, wrappers, placeholders).
	TypeName() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase provides a zero-value TypeName for expression type descriptors
// that don't have declared names.
type exprBase struct{}

func (exprBase) TypeName() string { return "" }
func (exprBase) sealed()          {}
