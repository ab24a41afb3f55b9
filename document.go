// Package opencli provides types for building, validating, and serializing
// OpenCLI v1.0.0 specification documents, which describe a command-line
// application in a machine-readable format.
package opencli

// Version is the OpenCLI specification version emitted in documents.
const Version = "1.0.0"

// OpenCli is the root object of an OpenCLI specification document.
type OpenCli struct {
	OpenCli      string                `json:"opencli" yaml:"opencli" validate:"required,eq=1.0.0"`
	Info         Info                  `json:"info" yaml:"info"`
	Commands     *Map[Command]         `json:"commands" yaml:"commands" validate:"required"`
	Components   *Components           `json:"components,omitempty" yaml:"components,omitempty"`
	Tags         []Tag                 `json:"tags,omitempty" yaml:"tags,omitempty" validate:"omitempty,dive"`
	Platforms    []Platform            `json:"platforms,omitempty" yaml:"platforms,omitempty" validate:"omitempty,dive"`
	Environment  []EnvironmentVariable `json:"environment,omitempty" yaml:"environment,omitempty" validate:"omitempty,dive"`
	ExternalDocs *ExternalDocs         `json:"externalDocs,omitempty" yaml:"externalDocs,omitempty"`
}

// NewOpenCli creates a document with the given info and no commands.
func NewOpenCli(info Info) *OpenCli {
	return &OpenCli{
		OpenCli:  Version,
		Info:     info,
		Commands: NewMap[Command](),
	}
}

// WithCommand adds a command under the given name, keeping insertion order.
func (o *OpenCli) WithCommand(name string, c Command) *OpenCli {
	if o.Commands == nil {
		o.Commands = NewMap[Command]()
	}
	o.Commands.Set(name, c)
	return o
}

// WithComponents sets the reusable component definitions.
func (o *OpenCli) WithComponents(c *Components) *OpenCli {
	o.Components = c
	return o
}

// WithTags sets the tags used to group commands.
func (o *OpenCli) WithTags(tags ...Tag) *OpenCli {
	o.Tags = tags
	return o
}

// WithPlatforms sets the supported platforms.
func (o *OpenCli) WithPlatforms(platforms ...Platform) *OpenCli {
	o.Platforms = platforms
	return o
}

// WithEnvironment sets the environment variables the application reads.
func (o *OpenCli) WithEnvironment(vars ...EnvironmentVariable) *OpenCli {
	o.Environment = vars
	return o
}

// WithExternalDocs sets the external documentation reference.
func (o *OpenCli) WithExternalDocs(docs ExternalDocs) *OpenCli {
	o.ExternalDocs = &docs
	return o
}

// Tag groups related commands under a name.
type Tag struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewTag creates a tag with the given name.
func NewTag(name string) Tag {
	return Tag{Name: name}
}

// WithDescription sets the tag description.
func (t Tag) WithDescription(desc string) Tag {
	t.Description = desc
	return t
}

// ExternalDocs points at documentation hosted outside the document.
type ExternalDocs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string `json:"url" yaml:"url" validate:"required,url"`
}

// NewExternalDocs creates an external documentation reference.
func NewExternalDocs(url string) ExternalDocs {
	return ExternalDocs{URL: url}
}

// WithDescription sets the reference description.
func (d ExternalDocs) WithDescription(desc string) ExternalDocs {
	d.Description = desc
	return d
}

// EnvironmentVariable documents an environment variable the application reads.
type EnvironmentVariable struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NewEnvironmentVariable creates an environment variable entry.
func NewEnvironmentVariable(name string) EnvironmentVariable {
	return EnvironmentVariable{Name: name}
}

// WithDescription sets the variable description.
func (v EnvironmentVariable) WithDescription(desc string) EnvironmentVariable {
	v.Description = desc
	return v
}
