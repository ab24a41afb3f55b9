package opencli

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

// personSchema exports a minimal record schema for registry tests.
type personSchema struct{}

func (personSchema) SchemaName() string { return "Person" }

func (personSchema) Schema() RefOr {
	return Inline(NewObject().
		WithType(TypeObject).
		WithProperty("id", Inline(Int64Schema())).
		WithProperty("name", Inline(StringSchema())).
		WithRequired("id", "name"))
}

type okResponse struct{}

func (okResponse) Response() (string, ResponseRef) {
	return "Success", InlineResponse(NewResponse().
		WithDescription("Command succeeded").
		WithContent("application/json", NewMediaType().WithSchema(NewSchemaRef("Person"))))
}

type greetCommand struct{}

func (greetCommand) Path() string { return "greet" }

func (greetCommand) Command() Command {
	return NewCommand().
		WithSummary("Greet someone").
		WithOperationID("greet").
		WithParameter(NewArgument("name", 1).WithSchema(Inline(StringSchema()))).
		WithResponse("0", NewResponse().WithDescription("Greeted"))
}

func TestRegistryRegisterSchema(t *testing.T) {
	r := NewRegistry().RegisterSchema(personSchema{})

	schema, ok := r.Schema("Person")
	if !ok {
		t.Fatal("Schema(Person) not found after registration")
	}
	obj := schema.Object()
	if obj == nil || obj.Type != TypeObject {
		t.Errorf("registered schema = %#v, want object", schema.Schema)
	}
}

func TestRegistryDuplicateSchemaWarnsAndReplaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := NewRegistry().WithLogger(logger)
	r.RegisterSchemaNamed("Person", Inline(StringSchema()))
	r.RegisterSchemaNamed("Person", Inline(BooleanSchema()))

	if !strings.Contains(buf.String(), "duplicate schema registration") {
		t.Errorf("expected duplicate warning in log, got %q", buf.String())
	}
	schema, _ := r.Schema("Person")
	if schema.Object() == nil || schema.Object().Type != TypeBoolean {
		t.Error("expected second registration to replace the first")
	}
}

func TestRegistryDocumentAssembly(t *testing.T) {
	r := NewRegistry().
		RegisterSchema(personSchema{}).
		RegisterResponse(okResponse{}).
		RegisterCommand(greetCommand{}).
		RegisterParameter("Verbose", NewFlag("verbose").WithDescription("Verbose output"))

	doc := r.Document(NewInfo("greeter", "1.2.3"))

	if doc.OpenCli != Version {
		t.Errorf("opencli = %q, want %q", doc.OpenCli, Version)
	}
	if doc.Info.Title != "greeter" || doc.Info.Version != "1.2.3" {
		t.Errorf("info = %+v, want greeter/1.2.3", doc.Info)
	}
	if !doc.Commands.Has("greet") {
		t.Error("commands missing greet")
	}
	if doc.Components == nil {
		t.Fatal("components not assembled")
	}
	if !doc.Components.Schemas.Has("Person") {
		t.Error("components.schemas missing Person")
	}
	if !doc.Components.Responses.Has("Success") {
		t.Error("components.responses missing Success")
	}
	if !doc.Components.Parameters.Has("Verbose") {
		t.Error("components.parameters missing Verbose")
	}
}

func TestRegistryDocumentWithoutComponents(t *testing.T) {
	r := NewRegistry().RegisterCommand(greetCommand{})
	doc := r.Document(NewInfo("greeter", "0.1.0"))
	if doc.Components != nil {
		t.Errorf("components = %+v, want nil when nothing registered", doc.Components)
	}
}

func TestRegistryDocumentPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry().
		RegisterSchemaNamed("Zebra", Inline(StringSchema())).
		RegisterSchemaNamed("Apple", Inline(StringSchema()))

	doc := r.Document(NewInfo("t", "1"))
	want := []string{"Zebra", "Apple"}
	if got := doc.Components.Schemas.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("schema keys = %v, want %v", got, want)
	}
}

func TestResolveRefsAllPresent(t *testing.T) {
	r := NewRegistry().
		RegisterSchema(personSchema{}).
		RegisterResponse(okResponse{}).
		RegisterCommand(greetCommand{})

	doc := r.Document(NewInfo("greeter", "1.0.0"))
	if err := ResolveRefs(doc); err != nil {
		t.Errorf("ResolveRefs() = %v, want nil", err)
	}
}

func TestResolveRefsMissingTarget(t *testing.T) {
	doc := NewOpenCli(NewInfo("t", "1")).
		WithCommand("run", NewCommand().
			WithParameter(NewOption("config").WithSchema(NewSchemaRef("Config"))))

	err := ResolveRefs(doc)
	if err == nil {
		t.Fatal("ResolveRefs() = nil, want unresolved_ref error")
	}
	envErr := AsError(err)
	if envErr.Code != CodeUnresolvedRef {
		t.Errorf("code = %s, want %s", envErr.Code, CodeUnresolvedRef)
	}
	if envErr.Details["ref[0]"] != "#/components/schemas/Config" {
		t.Errorf("details = %v, want missing Config ref", envErr.Details)
	}
}

func TestResolveRefsNestedInComponents(t *testing.T) {
	// A registered schema referencing another that is absent.
	node := Inline(NewObject().
		WithType(TypeObject).
		WithProperty("children", Inline(NewArray(NewSchemaRef("Node")))))

	r := NewRegistry().RegisterSchemaNamed("Tree", node)
	doc := r.Document(NewInfo("t", "1"))

	err := ResolveRefs(doc)
	if err == nil {
		t.Fatal("ResolveRefs() = nil, want error for missing Node")
	}

	// Registering the target fixes it.
	r.RegisterSchemaNamed("Node", Inline(NewObject().WithType(TypeObject)))
	doc = r.Document(NewInfo("t", "1"))
	if err := ResolveRefs(doc); err != nil {
		t.Errorf("ResolveRefs() after registering Node = %v, want nil", err)
	}
}
