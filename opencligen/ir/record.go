package ir

// RecordDescriptor represents a structured object type with named fields,
// or a tuple-like type with positional fields.
type RecordDescriptor struct {
	// Name is the declared type name.
	Name string

	// TypeParams contains the declared generic parameter identifiers
	// (e.g. ["T", "U"]), in order. Empty for non-generic types.
	// PlaceholderDescriptor.Index values refer into this list.
	//
	// The registered component name renders the identifiers, not the
	// bound types ("Response<T>"), so distinct instantiations of the
	// same base type share a name unless Annotations.Name overrides it.
	TypeParams []string

	// Fields contains the named fields. Empty for positional records.
	Fields []FieldDescriptor

	// Unnamed contains the positional field types. Only meaningful when
	// Positional is set.
	Unnamed []TypeDescriptor

	// Positional marks a tuple-like record. A positional record with no
	// Unnamed types has no expressible schema and degrades to a string
	// leaf.
	Positional bool

	// Annotations carries the type-level directives.
	Annotations ContainerAnnotations
}

// Kind returns KindRecord.
func (d *RecordDescriptor) Kind() DescriptorKind { return KindRecord }

// TypeName returns the record's name, honoring an annotation override.
func (d *RecordDescriptor) TypeName() string {
	if d.Annotations.Name != "" {
		return d.Annotations.Name
	}
	return d.Name
}

func (*RecordDescriptor) sealed() {}

// FieldDescriptor represents a single named field within a record or a
// sum variant.
type FieldDescriptor struct {
	// Name is the declared field name.
	Name string

	// Type is the field's type descriptor.
	Type TypeDescriptor

	// Annotations carries the field-level directives.
	Annotations FieldAnnotations
}
