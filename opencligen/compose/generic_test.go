package compose

import (
	"errors"
	"testing"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
)

func responseDescriptor() *ir.RecordDescriptor {
	return &ir.RecordDescriptor{
		Name:       "Response",
		TypeParams: []string{"T"},
		Fields: []ir.FieldDescriptor{
			{Name: "ok", Type: ir.Bool()},
			{Name: "data", Type: ir.Placeholder(0)},
		},
	}
}

func TestSchemaName(t *testing.T) {
	tests := []struct {
		name string
		td   ir.TypeDescriptor
		want string
	}{
		{"plain record", &ir.RecordDescriptor{Name: "Job"}, "Job"},
		{"single parameter", responseDescriptor(), "Response<T>"},
		{
			"multiple parameters",
			&ir.RecordDescriptor{Name: "Pair", TypeParams: []string{"K", "V"}},
			"Pair<K, V>",
		},
		{
			"generic sum",
			&ir.SumDescriptor{Name: "Either", TypeParams: []string{"L", "R"}},
			"Either<L, R>",
		},
		{
			"name override keeps parameters",
			&ir.RecordDescriptor{
				Name:        "resp",
				TypeParams:  []string{"T"},
				Annotations: ir.ContainerAnnotations{Name: "Response"},
			},
			"Response<T>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SchemaName(tt.td); got != tt.want {
				t.Errorf("SchemaName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeGenericRootIsReference(t *testing.T) {
	res := mustCompose(t, responseDescriptor(), Options{})

	if !res.Schema.IsRef() {
		t.Fatal("generic root should compose to a reference")
	}
	if got := res.Schema.Ref.SchemaName(); got != "Response<T>" {
		t.Errorf("referenced name = %q, want Response<T>", got)
	}
}

func TestComposeGenericInline(t *testing.T) {
	t.Run("inline binding", func(t *testing.T) {
		res := mustCompose(t, responseDescriptor(), Options{
			Inline:   true,
			Bindings: []opencli.RefOr{opencli.Inline(opencli.StringSchema())},
		})
		want := `{"type":"object","properties":{"ok":{"type":"boolean"},"data":{"type":"string"}},"required":["ok","data"]}`
		if got := compactJSON(t, res.Schema); got != want {
			t.Errorf("schema = %s, want %s", got, want)
		}
	})
	t.Run("reference binding", func(t *testing.T) {
		res := mustCompose(t, responseDescriptor(), Options{
			Inline:   true,
			Bindings: []opencli.RefOr{opencli.NewSchemaRef("User")},
		})
		want := `{"type":"object","properties":{"ok":{"type":"boolean"},"data":{"$ref":"#/components/schemas/User"}},"required":["ok","data"]}`
		if got := compactJSON(t, res.Schema); got != want {
			t.Errorf("schema = %s, want %s", got, want)
		}
	})
}

func TestComposePlaceholderFallbacks(t *testing.T) {
	withDefault := &ir.RecordDescriptor{
		Name:       "Page",
		TypeParams: []string{"T"},
		Fields: []ir.FieldDescriptor{
			{Name: "item", Type: &ir.PlaceholderDescriptor{Index: 0, Default: ir.Int(64)}},
		},
	}

	t.Run("declared default", func(t *testing.T) {
		res := mustCompose(t, withDefault, Options{Inline: true})
		want := `{"type":"object","properties":{"item":{"type":"integer","format":"int64"}},"required":["item"]}`
		if got := compactJSON(t, res.Schema); got != want {
			t.Errorf("schema = %s, want %s", got, want)
		}
	})
	t.Run("zero binding falls back to default", func(t *testing.T) {
		res := mustCompose(t, withDefault, Options{
			Inline:   true,
			Bindings: []opencli.RefOr{{}},
		})
		want := `{"type":"object","properties":{"item":{"type":"integer","format":"int64"}},"required":["item"]}`
		if got := compactJSON(t, res.Schema); got != want {
			t.Errorf("schema = %s, want %s", got, want)
		}
	})
	t.Run("unbound without default", func(t *testing.T) {
		res := mustCompose(t, responseDescriptor(), Options{Inline: true})
		want := `{"type":"object","properties":{"ok":{"type":"boolean"},"data":{"type":"object"}},"required":["ok","data"]}`
		if got := compactJSON(t, res.Schema); got != want {
			t.Errorf("schema = %s, want %s", got, want)
		}
	})
}

func TestComposeGenericSumStillValidated(t *testing.T) {
	bad := &ir.SumDescriptor{
		Name:       "Either",
		TypeParams: []string{"L", "R"},
		Annotations: ir.ContainerAnnotations{
			Representation: ir.Representation{Content: "data"},
		},
	}

	_, err := Compose(bad, Options{})
	var oerr *opencli.Error
	if !errors.As(err, &oerr) {
		t.Fatalf("Compose() error = %v, want *opencli.Error", err)
	}
	if oerr.Code != opencli.CodeMissingAttribute {
		t.Errorf("error code = %q, want %q", oerr.Code, opencli.CodeMissingAttribute)
	}
}
