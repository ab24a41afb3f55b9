package ir

// RenameRule is a case convention applied to field and variant names that
// carry no explicit rename. Word boundaries are underscores and
// lowercase-to-uppercase transitions.
type RenameRule int

const (
	RenameUnchanged          RenameRule = iota // Identifier used as-is
	RenameLowercase                            // lowercase
	RenameUppercase                            // UPPERCASE
	RenamePascalCase                           // PascalCase
	RenameCamelCase                            // camelCase
	RenameSnakeCase                            // snake_case
	RenameScreamingSnakeCase                   // SCREAMING_SNAKE_CASE
	RenameKebabCase                            // kebab-case
	RenameScreamingKebabCase                   // SCREAMING-KEBAB-CASE
)

// String returns the rule's canonical spelling, or "" for RenameUnchanged.
func (r RenameRule) String() string {
	switch r {
	case RenameLowercase:
		return "lowercase"
	case RenameUppercase:
		return "UPPERCASE"
	case RenamePascalCase:
		return "PascalCase"
	case RenameCamelCase:
		return "camelCase"
	case RenameSnakeCase:
		return "snake_case"
	case RenameScreamingSnakeCase:
		return "SCREAMING_SNAKE_CASE"
	case RenameKebabCase:
		return "kebab-case"
	case RenameScreamingKebabCase:
		return "SCREAMING-KEBAB-CASE"
	default:
		return ""
	}
}

// ParseRenameRule maps a canonical spelling to its RenameRule.
// The second return is false for unknown spellings.
func ParseRenameRule(s string) (RenameRule, bool) {
	switch s {
	case "lowercase":
		return RenameLowercase, true
	case "UPPERCASE":
		return RenameUppercase, true
	case "PascalCase":
		return RenamePascalCase, true
	case "camelCase":
		return RenameCamelCase, true
	case "snake_case":
		return RenameSnakeCase, true
	case "SCREAMING_SNAKE_CASE":
		return RenameScreamingSnakeCase, true
	case "kebab-case":
		return RenameKebabCase, true
	case "SCREAMING-KEBAB-CASE":
		return RenameScreamingKebabCase, true
	default:
		return RenameUnchanged, false
	}
}

// Representation selects the wire encoding for a sum type.
//
// The zero value is external tagging, the common default. A non-empty Tag
// alone selects internal tagging; Tag plus Content selects adjacent
// tagging. Untagged is mutually exclusive with both names, and Content
// without Tag is incomplete; composition rejects both combinations before
// building any schema.
type Representation struct {
	// Tag is the discriminator property name.
	Tag string

	// Content is the payload property name for adjacent tagging.
	Content string

	// Untagged drops the discriminator entirely.
	Untagged bool
}

// ContainerAnnotations carries type-level schema directives for records
// and sums.
type ContainerAnnotations struct {
	// Name overrides the declared type name in schema references and
	// component registration.
	Name string

	// RenameAll is the case convention applied to field and variant names
	// that carry no explicit rename.
	RenameAll RenameRule

	// Representation selects the wire encoding for sum types.
	// Ignored on records.
	Representation Representation

	// Description annotates the composed object schema.
	Description string

	// Title annotates the composed object schema.
	Title string

	// Example annotates the composed object schema.
	Example any

	// Deprecated marks the composed schema deprecated.
	Deprecated bool

	// NoAdditionalProperties emits additionalProperties: false on the
	// composed object.
	NoAdditionalProperties bool

	// NoRecursion forces every composite field of this container to
	// compose as a reference, breaking any cycle through the container.
	NoRecursion bool

	// DefaultAll marks every field as defaulted, removing all of them
	// from the required list.
	DefaultAll bool
}

// FieldAnnotations carries field-level schema directives.
//
// The requiredness signals (Default, ConditionalOmit, DoubleOptional)
// never change the field's schema type; they only remove the field from
// the enclosing object's required list. Skip removes the property
// entirely.
type FieldAnnotations struct {
	// Rename replaces the serialized property name outright, bypassing
	// any case convention.
	Rename string

	// Skip omits the field from the composed schema entirely.
	Skip bool

	// Inline expands a composite field in place instead of emitting a
	// schema reference.
	Inline bool

	// NoRecursion forces this field to compose as a reference, breaking
	// a cycle through it.
	NoRecursion bool

	// Default marks the field as having a default value. DefaultValue
	// carries the literal when one is known; Default with a nil
	// DefaultValue records a computed default.
	Default      bool
	DefaultValue any

	// ConditionalOmit marks a field omitted from output under a
	// caller-defined predicate.
	ConditionalOmit bool

	// DoubleOptional marks the absent-versus-explicit-null encoding.
	DoubleOptional bool

	// Schema carries validation constraints and display metadata patched
	// onto the composed field schema. Patches land only on inline object
	// nodes; references cannot carry them and the patch is dropped.
	Schema SchemaAnnotations
}

// SchemaAnnotations is the constraint and display patch set applied to a
// composed field schema.
type SchemaAnnotations struct {
	Format      string
	Title       string
	Description string
	Example     any
	Deprecated  bool
	ReadOnly    bool
	WriteOnly   bool
	Nullable    bool

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	MinLength *uint64
	MaxLength *uint64
	Pattern   string

	MinProperties *uint64
	MaxProperties *uint64
}

// IsZero reports whether no patch is set.
func (a SchemaAnnotations) IsZero() bool {
	return a == SchemaAnnotations{}
}
