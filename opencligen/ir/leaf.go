package ir

// LeafKind identifies the category of a primitive leaf type.
type LeafKind int

const (
	LeafBool  LeafKind = iota
	LeafInt            // Signed integer (see BitSize)
	LeafUint           // Unsigned integer (see BitSize)
	LeafFloat          // Floating point (see BitSize)
	LeafString
)

// String returns the string representation of the leaf kind.
func (k LeafKind) String() string {
	switch k {
	case LeafBool:
		return "Bool"
	case LeafInt:
		return "Int"
	case LeafUint:
		return "Uint"
	case LeafFloat:
		return "Float"
	case LeafString:
		return "String"
	default:
		return "Unknown"
	}
}

// LeafDescriptor represents a built-in primitive type.
type LeafDescriptor struct {
	exprBase
	LeafKind LeafKind

	// BitSize specifies the size for numeric kinds (LeafInt, LeafUint, LeafFloat).
	// Valid values:
	// - 0: unsized (composes to a plain integer/number schema with no format)
	// - 8, 16, 32, 64: explicit bit width
	//
	// Ignored for LeafBool and LeafString.
	BitSize int
}

// Kind returns KindLeaf.
func (d *LeafDescriptor) Kind() DescriptorKind { return KindLeaf }

// Convenience constructors for common leaves.

// Bool returns a LeafDescriptor for a boolean.
func Bool() *LeafDescriptor {
	return &LeafDescriptor{LeafKind: LeafBool}
}

// String returns a LeafDescriptor for a string.
func String() *LeafDescriptor {
	return &LeafDescriptor{LeafKind: LeafString}
}

// Int returns a LeafDescriptor for a signed integer with the given bit size.
// Use 0 for an unsized integer.
func Int(bitSize int) *LeafDescriptor {
	return &LeafDescriptor{LeafKind: LeafInt, BitSize: bitSize}
}

// Uint returns a LeafDescriptor for an unsigned integer with the given bit size.
// Use 0 for an unsized integer.
func Uint(bitSize int) *LeafDescriptor {
	return &LeafDescriptor{LeafKind: LeafUint, BitSize: bitSize}
}

// Float returns a LeafDescriptor for a floating-point number with the given
// bit size.
func Float(bitSize int) *LeafDescriptor {
	return &LeafDescriptor{LeafKind: LeafFloat, BitSize: bitSize}
}
