package opencligen

import (
	"context"
	"log/slog"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/ir"
	"github.com/broady/opencli/opencligen/provider"
	"github.com/broady/opencli/opencligen/sink"
)

// Generator provides a fluent API for document generation.
// Create with FromPackages or FromTypes and configure with method
// chaining.
//
// Example:
//
//	opencligen.FromPackages("./api").
//	    WithInfo(opencli.NewInfo("widget", "1.2.0")).
//	    ToDir("./dist")
type Generator struct {
	cfg Config
}

// FromPackages creates a Generator that extracts types from Go source
// using the source provider. Patterns follow go/packages: import paths,
// "./...", ".".
//
// Extraction roots default to types marked //opencli:schema, falling back
// to every exported declaration. Use Roots to name them explicitly.
func FromPackages(patterns ...string) *Generator {
	return &Generator{cfg: Config{Provider: "source", Packages: patterns}}
}

// FromTypes creates a Generator over live values using the reflection
// provider. Pass zero values of the root types:
//
//	opencligen.FromTypes(User{}, Order{}).ToDir("./dist")
//
// Reflection carries no doc comments or const-group enums; use
// FromPackages for those.
func FromTypes(types ...any) *Generator {
	return &Generator{cfg: Config{Provider: "reflection", Types: types}}
}

// WithInfo sets the document's info section.
func (g *Generator) WithInfo(info opencli.Info) *Generator {
	g.cfg.Info = info
	return g
}

// Provider overrides the extraction strategy.
// Valid values: "source", "reflection".
func (g *Generator) Provider(p string) *Generator {
	g.cfg.Provider = p
	return g
}

// Roots restricts source extraction to the named declarations.
func (g *Generator) Roots(names ...string) *Generator {
	for _, n := range names {
		g.cfg.Roots = append(g.cfg.Roots, provider.SourceRoot{Name: n})
	}
	return g
}

// Dir sets the working directory for package loading.
func (g *Generator) Dir(dir string) *Generator {
	g.cfg.Dir = dir
	return g
}

// RenameAll applies a case convention to the fields of every record that
// does not set its own.
func (g *Generator) RenameAll(rule ir.RenameRule) *Generator {
	g.cfg.RenameAll = rule
	return g
}

// Format selects the document encoding.
// Valid values: "json" (default), "yaml".
func (g *Generator) Format(format string) *Generator {
	g.cfg.Format = format
	return g
}

// WithLogger routes progress and warning logs to logger.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.cfg.Logger = logger
	return g
}

// ToDir generates the document and writes it under dir.
// This is a terminal operation.
func (g *Generator) ToDir(dir string) (*Result, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	cfg.Sink = nil
	return Generate(context.Background(), cfg)
}

// ToSink generates the document and writes it to s.
// This is a terminal operation.
func (g *Generator) ToSink(s sink.OutputSink) (*Result, error) {
	cfg := g.cfg
	cfg.Sink = s
	return Generate(context.Background(), cfg)
}

// Document generates and returns the assembled document without writing
// it anywhere.
func (g *Generator) Document() (*opencli.OpenCli, error) {
	cfg := g.cfg
	cfg.OutDir = ""
	cfg.Sink = nil
	res, err := Generate(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return res.Document, nil
}
