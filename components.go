package opencli

// Components holds reusable definitions referenced from elsewhere in the
// document via $ref pointers.
type Components struct {
	Schemas    *Map[RefOr]        `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Parameters *Map[ParameterRef] `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses  *Map[ResponseRef]  `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// NewComponents creates an empty component set.
func NewComponents() *Components {
	return &Components{}
}

// WithSchema registers a schema component under the given name.
func (c *Components) WithSchema(name string, schema RefOr) *Components {
	if c.Schemas == nil {
		c.Schemas = NewMap[RefOr]()
	}
	c.Schemas.Set(name, schema)
	return c
}

// WithParameter registers a parameter component under the given name.
func (c *Components) WithParameter(name string, p ParameterRef) *Components {
	if c.Parameters == nil {
		c.Parameters = NewMap[ParameterRef]()
	}
	c.Parameters.Set(name, p)
	return c
}

// WithResponse registers a response component under the given name.
func (c *Components) WithResponse(name string, r ResponseRef) *Components {
	if c.Responses == nil {
		c.Responses = NewMap[ResponseRef]()
	}
	c.Responses.Set(name, r)
	return c
}

// Schema looks up a schema component by name.
func (c *Components) Schema(name string) (RefOr, bool) {
	if c == nil || c.Schemas == nil {
		return RefOr{}, false
	}
	return c.Schemas.Get(name)
}
