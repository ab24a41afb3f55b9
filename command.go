package opencli

// Command describes a single command exposed by the application. Responses
// are keyed by exit code, conventionally "0" for success.
type Command struct {
	Summary     string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Aliases     []string       `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Parameters  []Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty" validate:"omitempty,dive"`
	Responses   *Map[Response] `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// NewCommand creates an empty command.
func NewCommand() Command {
	return Command{}
}

// WithSummary sets the one-line summary.
func (c Command) WithSummary(summary string) Command {
	c.Summary = summary
	return c
}

// WithDescription sets the long-form description.
func (c Command) WithDescription(desc string) Command {
	c.Description = desc
	return c
}

// WithOperationID sets the unique operation identifier.
func (c Command) WithOperationID(id string) Command {
	c.OperationID = id
	return c
}

// WithAliases sets alternative names for the command.
func (c Command) WithAliases(aliases ...string) Command {
	c.Aliases = aliases
	return c
}

// WithTags associates the command with document tags.
func (c Command) WithTags(tags ...string) Command {
	c.Tags = tags
	return c
}

// WithParameter appends a parameter.
func (c Command) WithParameter(p Parameter) Command {
	c.Parameters = append(c.Parameters, p)
	return c
}

// WithResponse registers a response under the given exit code.
func (c Command) WithResponse(exitCode string, r Response) Command {
	if c.Responses == nil {
		c.Responses = NewMap[Response]()
	}
	c.Responses.Set(exitCode, r)
	return c
}
