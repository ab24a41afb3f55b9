package compose

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

func compactJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func indentJSON(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func mustCompose(t *testing.T, td ir.TypeDescriptor, opts Options) Result {
	t.Helper()
	res, err := Compose(td, opts)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	return res
}

func personDescriptor() *ir.RecordDescriptor {
	return &ir.RecordDescriptor{
		Name: "Person",
		Fields: []ir.FieldDescriptor{
			{Name: "id", Type: ir.Int(64)},
			{Name: "name", Type: ir.String()},
			{Name: "nickname", Type: ir.Optional(ir.String())},
		},
	}
}

func TestComposePerson(t *testing.T) {
	res := mustCompose(t, personDescriptor(), Options{})

	want := `{"type":"object","properties":{"id":{"type":"integer","format":"int64"},"name":{"type":"string"},"nickname":{"type":"string"}},"required":["id","name"]}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("Person schema = %s, want %s", got, want)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", res.Warnings)
	}
}

func TestComposeRecursiveNode(t *testing.T) {
	node := &ir.RecordDescriptor{Name: "Node"}
	node.Fields = []ir.FieldDescriptor{
		{Name: "value", Type: ir.Int(32)},
		{
			Name:        "children",
			Type:        ir.Sequence(node),
			Annotations: ir.FieldAnnotations{NoRecursion: true},
		},
	}

	res := mustCompose(t, node, Options{})

	want := `{"type":"object","properties":{"value":{"type":"integer","format":"int32"},"children":{"type":"array","items":{"$ref":"#/components/schemas/Node"}}},"required":["value","children"]}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("Node schema = %s, want %s", got, want)
	}
}

func TestComposeIdempotent(t *testing.T) {
	person := personDescriptor()

	first := mustCompose(t, person, Options{})
	second := mustCompose(t, person, Options{})

	if !reflect.DeepEqual(first.Schema, second.Schema) {
		t.Errorf("repeated composition differs:\nfirst: %ssecond: %s",
			spew.Sdump(first.Schema), spew.Sdump(second.Schema))
	}
}

func TestComposeTransparentWrappers(t *testing.T) {
	tests := []struct {
		name    string
		wrapped ir.TypeDescriptor
		bare    ir.TypeDescriptor
	}{
		{"optional leaf", ir.Optional(ir.String()), ir.String()},
		{"indirection leaf", ir.Indirection(ir.String()), ir.String()},
		{"optional of indirection", ir.Optional(ir.Indirection(ir.Int(64))), ir.Int(64)},
		{"optional record", ir.Optional(personDescriptor()), personDescriptor()},
		{"indirection record", ir.Indirection(personDescriptor()), personDescriptor()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := mustCompose(t, tt.wrapped, Options{})
			bare := mustCompose(t, tt.bare, Options{})
			if !reflect.DeepEqual(wrapped.Schema, bare.Schema) {
				t.Errorf("wrapper not transparent:\nwrapped: %sbare: %s",
					spew.Sdump(wrapped.Schema), spew.Sdump(bare.Schema))
			}
		})
	}
}

func TestComposeSequenceWrapsItems(t *testing.T) {
	res := mustCompose(t, ir.Sequence(ir.String()), Options{})

	want := `{"type":"array","items":{"type":"string"}}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("Sequence schema = %s, want %s", got, want)
	}
}

func TestComposeSequenceOfTransparentElement(t *testing.T) {
	// Sequence<Optional<Indirection<T>>> is an array of T.
	res := mustCompose(t, ir.Sequence(ir.Optional(ir.Indirection(ir.Int(32)))), Options{})

	want := `{"type":"array","items":{"type":"integer","format":"int32"}}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestComposePrimitives(t *testing.T) {
	tests := []struct {
		name string
		leaf ir.TypeDescriptor
		want string
	}{
		{"bool", ir.Bool(), `{"type":"boolean"}`},
		{"string", ir.String(), `{"type":"string"}`},
		{"int32", ir.Int(32), `{"type":"integer","format":"int32"}`},
		{"int64", ir.Int(64), `{"type":"integer","format":"int64"}`},
		{"int unsized", ir.Int(0), `{"type":"integer"}`},
		{"int16", ir.Int(16), `{"type":"integer"}`},
		{"uint32", ir.Uint(32), `{"type":"integer","format":"int32"}`},
		{"uint64", ir.Uint(64), `{"type":"integer","format":"int64"}`},
		{"float32", ir.Float(32), `{"type":"number","format":"float"}`},
		{"float64", ir.Float(64), `{"type":"number","format":"double"}`},
		{"float unsized", ir.Float(0), `{"type":"number"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustCompose(t, tt.leaf, Options{})
			if got := compactJSON(t, res.Schema); got != tt.want {
				t.Errorf("schema = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComposeMap(t *testing.T) {
	res := mustCompose(t, ir.MapOf(ir.String(), ir.Int(64)), Options{})

	// Key and value types are not encoded; only the open-map marker is.
	want := `{"type":"object","additionalProperties":true}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("Map schema = %s, want %s", got, want)
	}
}

func TestComposeRefRoot(t *testing.T) {
	res := mustCompose(t, ir.Ref("User"), Options{})

	if !res.Schema.IsRef() {
		t.Fatal("reference root should compose to a reference")
	}
	if got := res.Schema.Ref.RefPath; got != opencli.SchemasPath+"User" {
		t.Errorf("RefPath = %q, want %q", got, opencli.SchemasPath+"User")
	}
}

func TestComposeUnknownDescriptorDegrades(t *testing.T) {
	broken := &ir.RecordDescriptor{
		Name: "Broken",
		Fields: []ir.FieldDescriptor{
			{Name: "data", Type: nil},
		},
	}

	res := mustCompose(t, broken, Options{})

	want := `{"type":"object","properties":{"data":{"type":"string"}},"required":["data"]}`
	if got := compactJSON(t, res.Schema); got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("len(Warnings) = %d, want 1", len(res.Warnings))
	}
	w := res.Warnings[0]
	if w.Code != WarnUnsupportedShape {
		t.Errorf("warning code = %q, want %q", w.Code, WarnUnsupportedShape)
	}
	if w.Path != "Broken.data" {
		t.Errorf("warning path = %q, want Broken.data", w.Path)
	}
}
