package ir

// OptionalDescriptor wraps a type whose value may be absent.
//
// Optional is schema-transparent: the composed schema is the element's
// schema unchanged. Its only effect is removing the enclosing field from
// the object's required list, and only when it wraps the field value
// itself rather than a collection element.
type OptionalDescriptor struct {
	exprBase

	// Element is the wrapped type.
	Element TypeDescriptor
}

// Kind returns KindOptional.
func (d *OptionalDescriptor) Kind() DescriptorKind { return KindOptional }

// Optional returns an OptionalDescriptor wrapping element.
func Optional(element TypeDescriptor) *OptionalDescriptor {
	return &OptionalDescriptor{Element: element}
}

// SequenceDescriptor represents an ordered collection.
type SequenceDescriptor struct {
	exprBase

	// Element is the collection element type.
	Element TypeDescriptor
}

// Kind returns KindSequence.
func (d *SequenceDescriptor) Kind() DescriptorKind { return KindSequence }

// Sequence returns a SequenceDescriptor over element.
func Sequence(element TypeDescriptor) *SequenceDescriptor {
	return &SequenceDescriptor{Element: element}
}

// MapDescriptor represents a key-value mapping.
//
// The composed schema is an object accepting arbitrary additional
// properties. Key and value types are not encoded: the target format has
// no parametrized-map construct.
type MapDescriptor struct {
	exprBase

	// Key is the map key type.
	Key TypeDescriptor

	// Value is the map value type.
	Value TypeDescriptor
}

// Kind returns KindMap.
func (d *MapDescriptor) Kind() DescriptorKind { return KindMap }

// MapOf returns a MapDescriptor for a map type.
func MapOf(key, value TypeDescriptor) *MapDescriptor {
	return &MapDescriptor{Key: key, Value: value}
}

// IndirectionDescriptor marks an ownership indirection (a pointer or box).
//
// Indirection is schema-transparent. Front-ends keep it in the tree because
// it is the conventional edge on which to place a recursion break: a
// self-referential type must mark at least one indirected edge of every
// cycle with FieldAnnotations.NoRecursion.
type IndirectionDescriptor struct {
	exprBase

	// Element is the pointed-to type.
	Element TypeDescriptor
}

// Kind returns KindIndirection.
func (d *IndirectionDescriptor) Kind() DescriptorKind { return KindIndirection }

// Indirection returns an IndirectionDescriptor wrapping element.
func Indirection(element TypeDescriptor) *IndirectionDescriptor {
	return &IndirectionDescriptor{Element: element}
}

// PlaceholderDescriptor represents a generic type parameter by position.
type PlaceholderDescriptor struct {
	exprBase

	// Index is the zero-based position in the declaring type's
	// TypeParams list.
	Index int

	// Default is composed when no binding is supplied for Index.
	// nil falls back to an unconstrained object schema.
	Default TypeDescriptor
}

// Kind returns KindPlaceholder.
func (d *PlaceholderDescriptor) Kind() DescriptorKind { return KindPlaceholder }

// Placeholder returns a PlaceholderDescriptor for parameter position index.
func Placeholder(index int) *PlaceholderDescriptor {
	return &PlaceholderDescriptor{Index: index}
}

// RefDescriptor represents a reference to another named type.
//
// The referenced type is opaque at this level: composition always emits a
// "#/components/schemas/<Target>" reference for it, and the document
// assembler is responsible for registering the target under that name.
type RefDescriptor struct {
	exprBase

	// Target is the referenced type's declared name.
	Target string
}

// Kind returns KindReference.
func (d *RefDescriptor) Kind() DescriptorKind { return KindReference }

// TypeName returns the referenced type's name.
func (d *RefDescriptor) TypeName() string { return d.Target }

// Ref returns a RefDescriptor for a named type.
func Ref(name string) *RefDescriptor {
	return &RefDescriptor{Target: name}
}
