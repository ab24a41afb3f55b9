package opencli

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParametersPath is the components pointer prefix for parameter references.
const ParametersPath = "#/components/parameters/"

// ParameterIn locates where a parameter appears on the command line.
type ParameterIn string

const (
	// InArgument is a positional argument.
	InArgument ParameterIn = "argument"
	// InFlag is a boolean switch with no value.
	InFlag ParameterIn = "flag"
	// InOption is a named parameter that takes a value.
	InOption ParameterIn = "option"
)

// ParameterScope controls whether subcommands inherit a parameter.
type ParameterScope string

const (
	ScopeLocal     ParameterScope = "local"
	ScopeInherited ParameterScope = "inherited"
)

// Parameter describes one argument, flag, or option of a command.
type Parameter struct {
	Name        string         `json:"name" yaml:"name" validate:"required"`
	In          ParameterIn    `json:"in,omitempty" yaml:"in,omitempty" validate:"omitempty,oneof=argument flag option"`
	Position    *uint32        `json:"position,omitempty" yaml:"position,omitempty"`
	Alias       []string       `json:"alias,omitempty" yaml:"alias,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Required    *bool          `json:"required,omitempty" yaml:"required,omitempty"`
	Scope       ParameterScope `json:"scope,omitempty" yaml:"scope,omitempty" validate:"omitempty,oneof=local inherited"`
	Arity       *Arity         `json:"arity,omitempty" yaml:"arity,omitempty"`
	Schema      *RefOr         `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// NewParameter creates a parameter with only the name set.
func NewParameter(name string) Parameter {
	return Parameter{Name: name}
}

// NewArgument creates a positional argument. Arguments are required by
// default.
func NewArgument(name string, position uint32) Parameter {
	required := true
	return Parameter{
		Name:     name,
		In:       InArgument,
		Position: &position,
		Required: &required,
	}
}

// NewFlag creates a boolean flag.
func NewFlag(name string) Parameter {
	return Parameter{Name: name, In: InFlag}
}

// NewOption creates a named option that takes a value.
func NewOption(name string) Parameter {
	return Parameter{Name: name, In: InOption}
}

// WithAlias sets alternative spellings, such as a short form.
func (p Parameter) WithAlias(alias ...string) Parameter {
	p.Alias = alias
	return p
}

// WithDescription sets the parameter description.
func (p Parameter) WithDescription(desc string) Parameter {
	p.Description = desc
	return p
}

// WithRequired marks the parameter required or optional.
func (p Parameter) WithRequired(required bool) Parameter {
	p.Required = &required
	return p
}

// WithScope sets the inheritance scope.
func (p Parameter) WithScope(scope ParameterScope) Parameter {
	p.Scope = scope
	return p
}

// WithArity sets how many values the parameter accepts.
func (p Parameter) WithArity(a Arity) Parameter {
	p.Arity = &a
	return p
}

// WithSchema sets the value schema.
func (p Parameter) WithSchema(schema RefOr) Parameter {
	p.Schema = &schema
	return p
}

// Arity bounds how many values a parameter accepts.
type Arity struct {
	Min *uint32 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *uint32 `json:"max,omitempty" yaml:"max,omitempty"`
}

// ArityExact returns an arity accepting exactly count values.
func ArityExact(count uint32) Arity {
	return Arity{Min: &count, Max: &count}
}

// ArityRange returns an arity accepting between min and max values.
func ArityRange(min, max uint32) Arity {
	return Arity{Min: &min, Max: &max}
}

// ParameterRef holds either a reference into #/components/parameters or an
// inline parameter definition.
type ParameterRef struct {
	Ref   *Ref
	Value *Parameter
}

// NewParameterRef returns a reference to a named parameter component.
func NewParameterRef(name string) ParameterRef {
	r := NewRef(ParametersPath + name)
	return ParameterRef{Ref: &r}
}

// InlineParameter returns a ParameterRef holding an inline definition.
func InlineParameter(p Parameter) ParameterRef {
	return ParameterRef{Value: &p}
}

// MarshalJSON encodes the reference or the inline parameter, untagged.
func (r ParameterRef) MarshalJSON() ([]byte, error) {
	if r.Ref != nil {
		return json.Marshal(r.Ref)
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes either form, keyed on the presence of "$ref".
func (r *ParameterRef) UnmarshalJSON(data []byte) error {
	var probe struct {
		Ref *string `json:"$ref"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Ref != nil {
		r.Ref = &Ref{RefPath: *probe.Ref}
		r.Value = nil
		return nil
	}
	var p Parameter
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	r.Value = &p
	r.Ref = nil
	return nil
}

// MarshalYAML encodes the reference or the inline parameter, untagged.
func (r ParameterRef) MarshalYAML() (any, error) {
	if r.Ref != nil {
		return r.Ref, nil
	}
	return r.Value, nil
}

// UnmarshalYAML decodes either form from a YAML mapping.
func (r *ParameterRef) UnmarshalYAML(value *yaml.Node) error {
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "$ref" {
			r.Ref = &Ref{RefPath: value.Content[i+1].Value}
			r.Value = nil
			return nil
		}
	}
	var p Parameter
	if err := value.Decode(&p); err != nil {
		return err
	}
	r.Value = &p
	r.Ref = nil
	return nil
}
