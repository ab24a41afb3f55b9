package opencli

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ResponsesPath is the components pointer prefix for response references.
const ResponsesPath = "#/components/responses/"

// Response describes the output of a command for one exit code, keyed by
// media type.
type Response struct {
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Content     *Map[MediaType] `json:"content,omitempty" yaml:"content,omitempty"`
}

// NewResponse creates an empty response.
func NewResponse() Response {
	return Response{}
}

// WithDescription sets the response description.
func (r Response) WithDescription(desc string) Response {
	r.Description = desc
	return r
}

// WithContent registers output under a media type such as "application/json"
// or "text/plain".
func (r Response) WithContent(mediaType string, mt MediaType) Response {
	if r.Content == nil {
		r.Content = NewMap[MediaType]()
	}
	r.Content.Set(mediaType, mt)
	return r
}

// MediaType describes the payload for one media type of a response.
type MediaType struct {
	Schema  *RefOr `json:"schema,omitempty" yaml:"schema,omitempty"`
	Example any    `json:"example,omitempty" yaml:"example,omitempty"`
}

// NewMediaType creates an empty media type entry.
func NewMediaType() MediaType {
	return MediaType{}
}

// WithSchema sets the payload schema.
func (m MediaType) WithSchema(schema RefOr) MediaType {
	m.Schema = &schema
	return m
}

// WithExample sets an example payload.
func (m MediaType) WithExample(example any) MediaType {
	m.Example = example
	return m
}

// ResponseRef holds either a reference into #/components/responses or an
// inline response definition.
type ResponseRef struct {
	Ref   *Ref
	Value *Response
}

// NewResponseRef returns a reference to a named response component.
func NewResponseRef(name string) ResponseRef {
	r := NewRef(ResponsesPath + name)
	return ResponseRef{Ref: &r}
}

// InlineResponse returns a ResponseRef holding an inline definition.
func InlineResponse(resp Response) ResponseRef {
	return ResponseRef{Value: &resp}
}

// MarshalJSON encodes the reference or the inline response, untagged.
func (r ResponseRef) MarshalJSON() ([]byte, error) {
	if r.Ref != nil {
		return json.Marshal(r.Ref)
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes either form, keyed on the presence of "$ref".
func (r *ResponseRef) UnmarshalJSON(data []byte) error {
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
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return err
	}
	r.Value = &resp
	r.Ref = nil
	return nil
}

// MarshalYAML encodes the reference or the inline response, untagged.
func (r ResponseRef) MarshalYAML() (any, error) {
	if r.Ref != nil {
		return r.Ref, nil
	}
	return r.Value, nil
}

// UnmarshalYAML decodes either form from a YAML mapping.
func (r *ResponseRef) UnmarshalYAML(value *yaml.Node) error {
	for i := 0; i+1 < len(value.Content); i += 2 {
		if value.Content[i].Value == "$ref" {
			r.Ref = &Ref{RefPath: value.Content[i+1].Value}
			r.Value = nil
			return nil
		}
	}
	var resp Response
	if err := value.Decode(&resp); err != nil {
		return err
	}
	r.Value = &resp
	r.Ref = nil
	return nil
}
