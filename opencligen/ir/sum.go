package ir

// SumDescriptor represents a closed set of variants (a tagged union).
type SumDescriptor struct {
	// Name is the declared type name.
	Name string

	// TypeParams contains the declared generic parameter identifiers.
	// See RecordDescriptor.TypeParams.
	TypeParams []string

	// Variants contains all variants in declaration order.
	Variants []VariantDescriptor

	// Annotations carries the type-level directives, including the wire
	// representation.
	Annotations ContainerAnnotations
}

// Kind returns KindSum.
func (d *SumDescriptor) Kind() DescriptorKind { return KindSum }

// TypeName returns the sum's name, honoring an annotation override.
func (d *SumDescriptor) TypeName() string {
	if d.Annotations.Name != "" {
		return d.Annotations.Name
	}
	return d.Name
}

func (*SumDescriptor) sealed() {}

// Plain reports whether every non-skipped variant is a unit variant.
// Plain sums compose as value enumerations; sums with at least one
// payload-carrying variant compose shape-by-shape.
func (d *SumDescriptor) Plain() bool {
	for _, v := range d.Variants {
		if v.Annotations.Skip {
			continue
		}
		if !v.Unit() {
			return false
		}
	}
	return true
}

// VariantDescriptor represents a single variant within a sum type.
type VariantDescriptor struct {
	// Name is the declared variant name.
	Name string

	// Fields contains named payload fields. Empty for unit and
	// positional variants.
	Fields []FieldDescriptor

	// Unnamed contains positional payload types. Mutually exclusive
	// with Fields.
	Unnamed []TypeDescriptor

	// Annotations carries the variant-level directives.
	Annotations VariantAnnotations
}

// Unit reports whether the variant carries no payload.
func (v VariantDescriptor) Unit() bool {
	return len(v.Fields) == 0 && len(v.Unnamed) == 0
}

// VariantAnnotations carries variant-level schema directives.
type VariantAnnotations struct {
	// Rename replaces the serialized variant name outright.
	Rename string

	// Skip omits the variant from the composed schema entirely.
	Skip bool

	// RenameAll is the case convention for the variant's own nested
	// field names. It overrides the container rule inside this variant
	// and does not affect the variant name itself.
	RenameAll RenameRule
}
