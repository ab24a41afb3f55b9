package opencli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// exampleDocument builds a document exercising every top-level section.
func exampleDocument() *OpenCli {
	person := NewObject().
		WithType(TypeObject).
		WithDescription("A person to greet").
		WithProperty("id", Inline(Int64Schema())).
		WithProperty("name", Inline(StringSchema())).
		WithProperty("nickname", Inline(StringSchema())).
		WithRequired("id", "name")

	components := NewComponents().
		WithSchema("Person", Inline(person)).
		WithResponse("Greeted", InlineResponse(NewResponse().
			WithDescription("Greeting delivered").
			WithContent("application/json", NewMediaType().WithSchema(NewSchemaRef("Person")))))

	greet := NewCommand().
		WithSummary("Greet a person").
		WithOperationID("greet").
		WithTags("core").
		WithParameter(NewArgument("name", 1).
			WithDescription("Who to greet").
			WithSchema(Inline(StringSchema()))).
		WithParameter(NewFlag("shout").
			WithAlias("s").
			WithDescription("Print in upper case").
			WithSchema(Inline(BooleanSchema()))).
		WithResponse("0", NewResponse().WithDescription("Greeting delivered")).
		WithResponse("1", NewResponse().WithDescription("Unknown person"))

	return NewOpenCli(
		NewInfo("greeter", "1.0.0").
			WithDescription("Greets people from the command line").
			WithLicense(License{Name: "MIT"})).
		WithCommand("greet", greet).
		WithComponents(components).
		WithTags(NewTag("core").WithDescription("Core commands")).
		WithPlatforms(NewPlatform(PlatformLinux).WithArchitectures(ArchAmd64, ArchArm64)).
		WithEnvironment(NewEnvironmentVariable("GREETER_CONFIG").WithDescription("Path to the config file")).
		WithExternalDocs(NewExternalDocs("https://example.com/greeter").WithDescription("Project documentation"))
}

func TestDocumentGoldenJSON(t *testing.T) {
	doc := exampleDocument()

	data, err := doc.ToJSONIndent()
	if err != nil {
		t.Fatalf("ToJSONIndent: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "document", data)
}

func TestDocumentValidatesAndResolves(t *testing.T) {
	doc := exampleDocument()
	if err := Validate(doc); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := ResolveRefs(doc); err != nil {
		t.Errorf("ResolveRefs() = %v, want nil", err)
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := exampleDocument()

	data, err := doc.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	parsed, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if parsed.Info.Title != "greeter" {
		t.Errorf("title = %q, want greeter", parsed.Info.Title)
	}
	cmd, ok := parsed.Commands.Get("greet")
	if !ok {
		t.Fatal("parsed document missing greet command")
	}
	if len(cmd.Parameters) != 2 {
		t.Errorf("parameters = %d, want 2", len(cmd.Parameters))
	}
	if cmd.Parameters[0].Required == nil || !*cmd.Parameters[0].Required {
		t.Error("argument lost required flag in round trip")
	}

	schema, ok := parsed.Components.Schema("Person")
	if !ok {
		t.Fatal("parsed document missing Person schema")
	}
	obj := schema.Object()
	if obj == nil || obj.Properties.Len() != 3 {
		t.Errorf("Person schema = %#v, want 3 properties", schema.Schema)
	}

	reencoded, err := parsed.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON after round trip: %v", err)
	}
	if string(reencoded) != string(data) {
		t.Error("serialization is not stable across a parse/encode round trip")
	}
}

func TestDocumentYAMLRoundTrip(t *testing.T) {
	doc := exampleDocument()

	data, err := doc.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML: %v", err)
	}

	parsed, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument(yaml): %v", err)
	}

	if parsed.OpenCli != Version {
		t.Errorf("opencli = %q, want %q", parsed.OpenCli, Version)
	}
	if !parsed.Commands.Has("greet") {
		t.Error("yaml round trip lost greet command")
	}
	schema, ok := parsed.Components.Schema("Person")
	if !ok {
		t.Fatal("yaml round trip lost Person schema")
	}
	want := []string{"id", "name", "nickname"}
	got := schema.Object().Properties.Keys()
	if len(got) != len(want) {
		t.Fatalf("property keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("property order changed in yaml round trip: %v, want %v", got, want)
			break
		}
	}
}
