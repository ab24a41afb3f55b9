package opencli

// ToSchema is implemented by types that export a reusable schema component.
// SchemaName is the component name used when the schema is registered under
// #/components/schemas.
type ToSchema interface {
	SchemaName() string
	Schema() RefOr
}

// ComposeSchema is implemented by generic types whose schema depends on type
// parameters resolved at composition time. The generics slice holds schemas
// for the type parameters in declaration order; missing entries fall back to
// the parameter's declared default.
type ComposeSchema interface {
	ComposeSchema(generics []RefOr) RefOr
}

// SchemaOrCompose returns generics[index] when present, otherwise the schema
// composed by fallback. It mirrors how a generic field resolves its type
// parameter.
func SchemaOrCompose(generics []RefOr, index int, fallback ComposeSchema) RefOr {
	if index < len(generics) && !generics[index].IsZero() {
		return generics[index]
	}
	return fallback.ComposeSchema(generics)
}

// ToResponse is implemented by types that export a reusable response
// component. The returned name is the key under #/components/responses.
type ToResponse interface {
	Response() (string, ResponseRef)
}

// IntoResponses is implemented by types that map command exit codes to
// responses. Keys follow shell conventions, "0" for success.
type IntoResponses interface {
	Responses() *Map[ResponseRef]
}

// CommandPath is implemented by types that describe one command. Path is the
// key in the document's commands map, the bare name for a root command or a
// "/sub" path for a subcommand.
type CommandPath interface {
	Path() string
	Command() Command
}

// Documenter is implemented by types that assemble a complete document.
type Documenter interface {
	OpenCli() *OpenCli
}

// Primitive schema constructors. Integer widths outside 32 and 64 bits carry
// no format.

// StringSchema returns a plain string schema.
func StringSchema() *Object { return NewObject().WithType(TypeString) }

// BooleanSchema returns a boolean schema.
func BooleanSchema() *Object { return NewObject().WithType(TypeBoolean) }

// IntegerSchema returns an integer schema with no format.
func IntegerSchema() *Object { return NewObject().WithType(TypeInteger) }

// Int32Schema returns an integer schema with int32 format.
func Int32Schema() *Object {
	return NewObject().WithType(TypeInteger).WithFormat(FormatInt32)
}

// Int64Schema returns an integer schema with int64 format.
func Int64Schema() *Object {
	return NewObject().WithType(TypeInteger).WithFormat(FormatInt64)
}

// NumberSchema returns a number schema with no format.
func NumberSchema() *Object { return NewObject().WithType(TypeNumber) }

// FloatSchema returns a number schema with float format.
func FloatSchema() *Object {
	return NewObject().WithType(TypeNumber).WithFormat(FormatFloat)
}

// DoubleSchema returns a number schema with double format.
func DoubleSchema() *Object {
	return NewObject().WithType(TypeNumber).WithFormat(FormatDouble)
}
