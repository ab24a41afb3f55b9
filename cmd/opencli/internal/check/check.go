// Package check implements the `opencli check` subcommand.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/broady/opencli"
	"github.com/broady/opencli/internal/cuespec"
)

type Cmd struct {
	Path string `arg:"" help:"Document to check (.json, .yaml, or .yml)."`
}

// Run checks the document in three passes: shape (unknown fields, wrong
// kinds, closed vocabularies), semantic rules (duplicate operation ids,
// colliding positions, exit-code keys), and reference integrity.
func (c *Cmd) Run() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	issues, err := cuespec.Validate(data, encodingFor(c.Path, data))
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		for _, is := range issues {
			fmt.Fprintf(os.Stderr, "✗ %s\n", is)
		}
		return opencli.Errorf(opencli.CodeInvalidDocument, "%d schema violation(s)", len(issues))
	}

	doc, err := opencli.ParseDocument(data)
	if err != nil {
		return err
	}
	if err := opencli.Validate(doc); err != nil {
		return opencli.AsError(err)
	}
	if err := opencli.ResolveRefs(doc); err != nil {
		return opencli.AsError(err)
	}

	commands := 0
	if doc.Commands != nil {
		commands = doc.Commands.Len()
	}
	schemas := 0
	if doc.Components != nil && doc.Components.Schemas != nil {
		schemas = doc.Components.Schemas.Len()
	}
	fmt.Printf("✓ %s: %d commands, %d schemas\n", filepath.Base(c.Path), commands, schemas)
	return nil
}

// encodingFor picks the encoding from the file extension, falling back to a
// content sniff for extensionless input.
func encodingFor(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		return "json"
	}
	return "yaml"
}
