package compose

import (
	"testing"

	"github.com/broady/opencli/opencligen/ir"
)

func TestApplyRule(t *testing.T) {
	tests := []struct {
		name string
		rule ir.RenameRule
		in   string
		want string
	}{
		{"unchanged", ir.RenameUnchanged, "FooBar", "FooBar"},
		{"lowercase", ir.RenameLowercase, "GetRequest", "getrequest"},
		{"lowercase acronym", ir.RenameLowercase, "HTTPServer", "httpserver"},
		{"uppercase", ir.RenameUppercase, "foo_bar", "FOO_BAR"},
		{"pascal from snake", ir.RenamePascalCase, "foo_bar", "FooBar"},
		{"pascal idempotent", ir.RenamePascalCase, "FooBar", "FooBar"},
		{"camel from snake", ir.RenameCamelCase, "foo_bar", "fooBar"},
		{"camel from pascal", ir.RenameCamelCase, "GetRequest", "getRequest"},
		{"snake from pascal", ir.RenameSnakeCase, "GetRequest", "get_request"},
		{"snake keeps acronym run", ir.RenameSnakeCase, "parse_HTTPResponse", "parse_httpresponse"},
		{"snake idempotent", ir.RenameSnakeCase, "foo_bar", "foo_bar"},
		{"screaming snake", ir.RenameScreamingSnakeCase, "fooBar", "FOO_BAR"},
		{"kebab", ir.RenameKebabCase, "GetRequest", "get-request"},
		{"screaming kebab", ir.RenameScreamingKebabCase, "foo_bar", "FOO-BAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyRule(tt.rule, tt.in); got != tt.want {
				t.Errorf("applyRule(%v, %q) = %q, want %q", tt.rule, tt.in, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"FooBar", []string{"Foo", "Bar"}},
		{"foo_bar", []string{"foo", "bar"}},
		{"fooBar", []string{"foo", "Bar"}},
		{"APIKey", []string{"APIKey"}},
		{"HTTPServer", []string{"HTTPServer"}},
		{"a", []string{"a"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := words(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("words(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("words(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		explicit  string
		variant   ir.RenameRule
		container ir.RenameRule
		want      string
	}{
		{"no annotations", "DisplayName", "", ir.RenameUnchanged, ir.RenameUnchanged, "DisplayName"},
		{"container rule", "DisplayName", "", ir.RenameUnchanged, ir.RenameSnakeCase, "display_name"},
		{"variant overrides container", "DisplayName", "", ir.RenameCamelCase, ir.RenameSnakeCase, "displayName"},
		{"explicit wins over rules", "DisplayName", "label", ir.RenameCamelCase, ir.RenameSnakeCase, "label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveName(tt.field, tt.explicit, tt.variant, tt.container)
			if got != tt.want {
				t.Errorf("resolveName() = %q, want %q", got, tt.want)
			}
		})
	}
}
