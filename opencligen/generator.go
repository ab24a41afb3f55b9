// Package opencligen generates OpenCLI interface documents from Go types.
//
// Two providers feed the pipeline: the source provider analyzes package
// source via go/packages and carries doc comments and const-group enums
// into the document; the reflection provider walks live values. Both emit
// type descriptors that compose into schema components and assemble into
// a document.
package opencligen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/opencli"
	"github.com/broady/opencli/internal/directive"
	"github.com/broady/opencli/opencligen/compose"
	"github.com/broady/opencli/opencligen/ir"
	"github.com/broady/opencli/opencligen/provider"
	"github.com/broady/opencli/opencligen/sink"
)

// Config holds the configuration for document generation.
type Config struct {
	// Info populates the document's info section.
	Info opencli.Info

	// Provider selects the descriptor extraction strategy.
	// "source" (default) analyzes package source.
	// "reflection" walks the live values registered in Types.
	Provider string

	// Packages are go/packages load patterns for the source provider:
	// import paths, "./...", ".".
	Packages []string

	// Dir is the working directory for package loading. Empty means the
	// current directory.
	Dir string

	// Roots names the declarations the source provider extracts. Empty
	// means discovery: types marked //opencli:schema, or every exported
	// declaration when no package carries a mark.
	Roots []provider.SourceRoot

	// Types are the root values for the reflection provider.
	Types []any

	// RenameAll applies a case convention to the fields of every record
	// that does not set its own.
	RenameAll ir.RenameRule

	// Format selects the document encoding: "json" (default) or "yaml".
	Format string

	// OutDir is the directory the document is written to. Empty with a
	// nil Sink means the document is assembled but not written.
	OutDir string

	// Sink overrides the output destination. When set, OutDir is ignored.
	Sink sink.OutputSink

	// Logger receives progress and warning logs. Nil means slog.Default().
	Logger *slog.Logger
}

// Warning is a non-fatal degradation reported by a provider or during
// composition.
type Warning struct {
	// Code classifies the degradation.
	Code string

	// Path locates the offending type or field, when known.
	Path string

	// Message describes what was degraded and how.
	Message string
}

// Result is the outcome of a generation run.
type Result struct {
	// Document is the assembled document.
	Document *opencli.OpenCli

	// Data is the encoded document.
	Data []byte

	// Filename is the canonical file name for the encoded document,
	// derived from the format: "opencli.json" or "opencli.yaml".
	Filename string

	// Warnings lists provider and composition degradations in encounter
	// order.
	Warnings []Warning
}

// Generate extracts descriptors, composes them into schema components,
// assembles a document, and writes it to the configured destination.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	c := applyConfigDefaults(&cfg)
	logger := c.Logger.With(slog.String("component", "opencligen"))

	set, err := buildDescriptors(ctx, c)
	if err != nil {
		return nil, err
	}
	if c.RenameAll != ir.RenameUnchanged {
		applyRenameAll(set, c.RenameAll)
	}

	result := &Result{}
	for _, w := range set.Warnings {
		result.Warnings = append(result.Warnings, Warning{Code: w.Code, Path: w.TypeName, Message: w.Message})
	}

	reg := opencli.NewRegistry().WithLogger(logger)
	for _, td := range set.Types {
		name := compose.SchemaName(td)
		res, err := compose.Compose(td, compose.Options{Inline: true})
		if err != nil {
			return nil, fmt.Errorf("compose %s: %w", name, err)
		}
		for _, w := range res.Warnings {
			result.Warnings = append(result.Warnings, Warning{Code: string(w.Code), Path: w.Path, Message: w.Message})
		}
		reg.RegisterSchemaNamed(name, res.Schema)
		logger.Debug("composed schema component", slog.String("schema", name))
	}

	for _, w := range result.Warnings {
		logger.Warn(w.Message, slog.String("code", w.Code), slog.String("path", w.Path))
	}

	doc := reg.Document(c.Info)
	if err := opencli.ResolveRefs(doc); err != nil {
		return nil, err
	}
	result.Document = doc

	data, filename, err := encodeDocument(doc, c.Format)
	if err != nil {
		return nil, err
	}
	result.Data = data
	result.Filename = filename

	out := c.Sink
	if out == nil {
		if c.OutDir == "" {
			return result, nil
		}
		out = sink.NewFilesystemSink(c.OutDir)
	}
	if err := out.WriteFile(ctx, filename, data); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}
	logger.Info("wrote document",
		slog.String("file", filename),
		slog.Int("components", len(set.Types)))
	return result, nil
}

// buildDescriptors runs the configured provider.
func buildDescriptors(ctx context.Context, cfg *Config) (*provider.Set, error) {
	switch cfg.Provider {
	case "source":
		if len(cfg.Packages) == 0 {
			return nil, fmt.Errorf("packages are required with the source provider")
		}
		roots := cfg.Roots
		if len(roots) == 0 {
			var err error
			roots, err = discoverRoots(cfg)
			if err != nil {
				return nil, err
			}
		}
		p := &provider.SourceProvider{}
		return p.Descriptors(ctx, provider.SourceOptions{
			Packages: cfg.Packages,
			Dir:      cfg.Dir,
			Roots:    roots,
		})
	case "reflection":
		if len(cfg.Types) == 0 {
			return nil, fmt.Errorf("types are required with the reflection provider")
		}
		roots := make([]provider.ReflectionRoot, 0, len(cfg.Types))
		for _, v := range cfg.Types {
			roots = append(roots, provider.ReflectionRoot{Value: v})
		}
		p := &provider.ReflectionProvider{}
		return p.Descriptors(ctx, provider.ReflectionOptions{Roots: roots})
	default:
		return nil, fmt.Errorf("unknown provider %q (expected \"source\" or \"reflection\")", cfg.Provider)
	}
}

// discoverRoots scans the configured packages for types marked with an
// opencli:schema directive. No marks anywhere means every exported
// declaration is extracted, which the provider handles through an empty
// root list.
func discoverRoots(cfg *Config) ([]provider.SourceRoot, error) {
	var roots []provider.SourceRoot
	for _, pattern := range cfg.Packages {
		found, err := directive.ParseDir(pattern, cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("scan directives: %w", err)
		}
		for _, d := range found {
			roots = append(roots, provider.SourceRoot{Name: d.TypeName, Rename: d.Name})
		}
	}
	return roots, nil
}

// applyRenameAll sets rule on every record that leaves its convention
// unset. Sum containers keep their spelling: variant names are wire
// values, not identifiers.
func applyRenameAll(set *provider.Set, rule ir.RenameRule) {
	for _, td := range set.Types {
		if rec, ok := td.(*ir.RecordDescriptor); ok && rec.Annotations.RenameAll == ir.RenameUnchanged {
			rec.Annotations.RenameAll = rule
		}
	}
}

// encodeDocument serializes doc and names the output file.
func encodeDocument(doc *opencli.OpenCli, format string) ([]byte, string, error) {
	switch format {
	case "json":
		data, err := doc.ToJSONIndent()
		if err != nil {
			return nil, "", err
		}
		return data, "opencli.json", nil
	case "yaml":
		data, err := doc.ToYAML()
		if err != nil {
			return nil, "", err
		}
		return data, "opencli.yaml", nil
	default:
		return nil, "", fmt.Errorf("unknown format %q (expected \"json\" or \"yaml\")", format)
	}
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	out := *cfg
	if out.Provider == "" {
		out.Provider = "source"
	}
	if out.Format == "" {
		out.Format = "json"
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
