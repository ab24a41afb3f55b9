// Package convert implements the `opencli convert` subcommand.
package convert

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/schema"

	"github.com/broady/opencli"
	"github.com/broady/opencli/opencligen/sink"
)

type Cmd struct {
	In   string   `arg:"" help:"Document to convert (JSON or YAML)."`
	To   string   `help:"Target encoding." short:"t" enum:"json,yaml" required:""`
	Out  string   `help:"Output file (default: stdout)." short:"o"`
	Meta []string `help:"Override info fields as key=value, e.g. --meta title=widget or --meta contact.email=cli@example.com." short:"m"`
}

func (c *Cmd) Run() error {
	data, err := os.ReadFile(c.In)
	if err != nil {
		return err
	}

	doc, err := opencli.ParseDocument(data)
	if err != nil {
		return err
	}

	if len(c.Meta) > 0 {
		if err := applyMeta(&doc.Info, c.Meta); err != nil {
			return err
		}
	}

	if err := opencli.Validate(doc); err != nil {
		return opencli.AsError(err)
	}

	var out []byte
	switch c.To {
	case "json":
		out, err = doc.ToJSONIndent()
	case "yaml":
		out, err = doc.ToYAML()
	default:
		return fmt.Errorf("unknown encoding %q", c.To)
	}
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	fs := sink.NewFilesystemSink(filepath.Dir(c.Out))
	return fs.WriteFile(context.Background(), filepath.Base(c.Out), out)
}

// applyMeta decodes key=value overrides into the info block. Keys use the
// wire names, so nested fields take dotted paths like contact.email.
func applyMeta(info *opencli.Info, pairs []string) error {
	values := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return fmt.Errorf("malformed meta override %q (expected key=value)", pair)
		}
		values.Set(key, value)
	}

	dec := schema.NewDecoder()
	dec.SetAliasTag("json")
	if err := dec.Decode(info, values); err != nil {
		return fmt.Errorf("apply meta overrides: %w", err)
	}
	return nil
}
