package opencli

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemasPath is the components pointer prefix for schema references.
const SchemasPath = "#/components/schemas/"

// SchemaType is the primitive JSON type of a schema.
type SchemaType string

const (
	TypeString  SchemaType = "string"
	TypeInteger SchemaType = "integer"
	TypeNumber  SchemaType = "number"
	TypeBoolean SchemaType = "boolean"
	TypeArray   SchemaType = "array"
	TypeObject  SchemaType = "object"

	// TypeNull marks schemas with no information-preserving encoding,
	// such as an untagged enumeration of unit variants.
	TypeNull SchemaType = "null"
)

// SchemaFormat refines a SchemaType with a serialization format.
type SchemaFormat string

const (
	// String formats.
	FormatPath     SchemaFormat = "path"
	FormatEmail    SchemaFormat = "email"
	FormatURI      SchemaFormat = "uri"
	FormatURL      SchemaFormat = "url"
	FormatDate     SchemaFormat = "date"
	FormatDateTime SchemaFormat = "date-time"
	FormatTime     SchemaFormat = "time"
	FormatUUID     SchemaFormat = "uuid"
	FormatIPv4     SchemaFormat = "ipv4"
	FormatIPv6     SchemaFormat = "ipv6"
	FormatHostname SchemaFormat = "hostname"

	// Integer formats.
	FormatInt32 SchemaFormat = "int32"
	FormatInt64 SchemaFormat = "int64"

	// Number formats.
	FormatFloat  SchemaFormat = "float"
	FormatDouble SchemaFormat = "double"
)

// Ref is a pointer to a reusable component.
type Ref struct {
	RefPath string `json:"$ref" yaml:"$ref"`
}

// NewRef creates a Ref with the given pointer path.
func NewRef(refPath string) Ref {
	return Ref{RefPath: refPath}
}

// RefFromSchemaName creates a Ref into #/components/schemas.
func RefFromSchemaName(name string) Ref {
	return Ref{RefPath: SchemasPath + name}
}

// SchemaName returns the component name of a schema reference, or "" if the
// path does not point into #/components/schemas.
func (r Ref) SchemaName() string {
	if strings.HasPrefix(r.RefPath, SchemasPath) {
		return strings.TrimPrefix(r.RefPath, SchemasPath)
	}
	return ""
}

// Schema is an inline schema node: either an *Object or an *Array.
// The set of implementations is closed.
type Schema interface {
	schemaNode()
}

func (*Object) schemaNode() {}
func (*Array) schemaNode()  {}

// RefOr holds either a reference to a component or an inline schema.
// Exactly one of Ref and Schema is set; the zero value serializes as null.
type RefOr struct {
	Ref    *Ref
	Schema Schema
}

// NewSchemaRef returns a RefOr referencing #/components/schemas/<name>.
func NewSchemaRef(name string) RefOr {
	r := RefFromSchemaName(name)
	return RefOr{Ref: &r}
}

// Inline returns a RefOr holding an inline schema.
func Inline(s Schema) RefOr {
	return RefOr{Schema: s}
}

// IsRef reports whether the value is a reference.
func (r RefOr) IsRef() bool { return r.Ref != nil }

// IsZero reports whether neither side is set.
func (r RefOr) IsZero() bool { return r.Ref == nil && r.Schema == nil }

// Object returns the inline *Object, or nil if the value is a reference,
// an array, or empty.
func (r RefOr) Object() *Object {
	o, _ := r.Schema.(*Object)
	return o
}

// MarshalJSON encodes the reference or the inline schema, untagged.
func (r RefOr) MarshalJSON() ([]byte, error) {
	switch {
	case r.Ref != nil:
		return json.Marshal(r.Ref)
	case r.Schema != nil:
		return json.Marshal(r.Schema)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes either form, keyed on the presence of "$ref" and the
// declared type.
func (r *RefOr) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ref  *string    `json:"$ref"`
		Type SchemaType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch {
	case probe.Ref != nil:
		r.Ref = &Ref{RefPath: *probe.Ref}
		r.Schema = nil
	case probe.Type == TypeArray:
		var arr Array
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		r.Schema = &arr
		r.Ref = nil
	default:
		var obj Object
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.Schema = &obj
		r.Ref = nil
	}
	return nil
}

// MarshalYAML encodes the reference or the inline schema, untagged.
func (r RefOr) MarshalYAML() (any, error) {
	switch {
	case r.Ref != nil:
		return r.Ref, nil
	case r.Schema != nil:
		return r.Schema, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML decodes either form from a YAML mapping.
func (r *RefOr) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected YAML mapping for schema, got %v", value.Kind)
	}
	isArray := false
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch value.Content[i].Value {
		case "$ref":
			r.Ref = &Ref{RefPath: value.Content[i+1].Value}
			r.Schema = nil
			return nil
		case "type":
			isArray = value.Content[i+1].Value == string(TypeArray)
		}
	}
	if isArray {
		var arr Array
		if err := value.Decode(&arr); err != nil {
			return err
		}
		r.Schema = &arr
	} else {
		var obj Object
		if err := value.Decode(&obj); err != nil {
			return err
		}
		r.Schema = &obj
	}
	r.Ref = nil
	return nil
}

// Object is the general inline schema node. It covers primitive leaves
// (type plus format), enumerations, and object shapes with properties.
type Object struct {
	Type        SchemaType   `json:"type,omitempty" yaml:"type,omitempty"`
	Format      SchemaFormat `json:"format,omitempty" yaml:"format,omitempty"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`

	Enum    []any `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default any   `json:"default,omitempty" yaml:"default,omitempty"`
	Example any   `json:"example,omitempty" yaml:"example,omitempty"`

	Properties *Map[RefOr] `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string    `json:"required,omitempty" yaml:"required,omitempty"`

	// AdditionalProperties set to false forbids unknown keys; set to true it
	// marks an open map shape with untyped values.
	AdditionalProperties *bool `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	Deprecated *bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ReadOnly   *bool `json:"readOnly,omitempty" yaml:"readOnly,omitempty"`
	WriteOnly  *bool `json:"writeOnly,omitempty" yaml:"writeOnly,omitempty"`
	Nullable   *bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *bool    `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *bool    `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	MinLength *uint64 `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *uint64 `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	MinProperties *uint64 `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties *uint64 `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
}

// NewObject creates an empty object schema.
func NewObject() *Object {
	return &Object{}
}

// WithType sets the schema type.
func (o *Object) WithType(t SchemaType) *Object {
	o.Type = t
	return o
}

// WithFormat sets the schema format.
func (o *Object) WithFormat(f SchemaFormat) *Object {
	o.Format = f
	return o
}

// WithTitle sets the title.
func (o *Object) WithTitle(title string) *Object {
	o.Title = title
	return o
}

// WithDescription sets the description.
func (o *Object) WithDescription(desc string) *Object {
	o.Description = desc
	return o
}

// WithEnum sets the allowed literal values.
func (o *Object) WithEnum(values ...any) *Object {
	o.Enum = values
	return o
}

// WithDefault sets the default value.
func (o *Object) WithDefault(v any) *Object {
	o.Default = v
	return o
}

// WithExample sets the example value.
func (o *Object) WithExample(v any) *Object {
	o.Example = v
	return o
}

// WithProperty appends a named property, creating the property map on first
// use. Property order is emission order.
func (o *Object) WithProperty(name string, schema RefOr) *Object {
	if o.Properties == nil {
		o.Properties = NewMap[RefOr]()
	}
	o.Properties.Set(name, schema)
	return o
}

// WithRequired appends names to the required list.
func (o *Object) WithRequired(names ...string) *Object {
	o.Required = append(o.Required, names...)
	return o
}

// WithAdditionalProperties sets the additionalProperties flag.
func (o *Object) WithAdditionalProperties(allowed bool) *Object {
	o.AdditionalProperties = &allowed
	return o
}

// WithDeprecated marks the schema deprecated.
func (o *Object) WithDeprecated() *Object {
	t := true
	o.Deprecated = &t
	return o
}

// WithMinimum sets the numeric minimum.
func (o *Object) WithMinimum(v float64) *Object {
	o.Minimum = &v
	return o
}

// WithMaximum sets the numeric maximum.
func (o *Object) WithMaximum(v float64) *Object {
	o.Maximum = &v
	return o
}

// WithPattern sets the string pattern.
func (o *Object) WithPattern(pattern string) *Object {
	o.Pattern = pattern
	return o
}

// WithMinLength sets the minimum string length.
func (o *Object) WithMinLength(n uint64) *Object {
	o.MinLength = &n
	return o
}

// WithMaxLength sets the maximum string length.
func (o *Object) WithMaxLength(n uint64) *Object {
	o.MaxLength = &n
	return o
}

// Array is an inline schema node for sequences.
type Array struct {
	Type  SchemaType `json:"type" yaml:"type"`
	Items *RefOr     `json:"items,omitempty" yaml:"items,omitempty"`
}

// NewArray creates an array schema with the given item schema.
func NewArray(items RefOr) *Array {
	return &Array{Type: TypeArray, Items: &items}
}
