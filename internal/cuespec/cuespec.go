// Package cuespec checks interface documents against an embedded CUE
// definition of the OpenCLI v1.0.0 document shape.
//
// The Go document model accepts anything that unmarshals into it; the CUE
// definition catches what unmarshaling cannot: unknown fields, wrongly
// typed values, and strings outside the closed vocabularies (parameter
// locations, platform names, schema types).
package cuespec

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed opencli.cue
var source string

// Issue is a single violation of the document shape.
type Issue struct {
	// Path locates the violation in the document, for example
	// "commands.build.parameters.0.in". Empty when the violation has no
	// single location.
	Path string

	// Pos is the position of the offending value in the input, for
	// example "document.yaml:12:5". Empty when the input carries no
	// position for this violation.
	Pos string

	// Message describes the violation.
	Message string
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Path != "" {
		b.WriteString(i.Path)
		b.WriteString(": ")
	}
	b.WriteString(i.Message)
	if i.Pos != "" {
		b.WriteString(" (")
		b.WriteString(i.Pos)
		b.WriteString(")")
	}
	return b.String()
}

// Validate unifies an encoded document with the embedded definition and
// reports every shape violation it finds. The encoding is "json" or
// "yaml".
//
// A nil, nil return means the document conforms. A non-nil error means
// the input could not be checked at all: unparseable data or an unknown
// encoding.
func Validate(data []byte, encoding string) ([]Issue, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(source, cue.Filename("opencli.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile document definition: %w", err)
	}
	root := schema.LookupPath(cue.ParsePath("#Document"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("resolve document definition: %w", err)
	}

	doc, err := build(ctx, data, encoding)
	if err != nil {
		return nil, err
	}

	if err := root.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return flatten(err), nil
	}
	return nil, nil
}

// build turns encoded bytes into a CUE value in ctx. Documents must be
// built in the same context as the definition they unify with.
func build(ctx *cue.Context, data []byte, encoding string) (cue.Value, error) {
	switch encoding {
	case "json":
		expr, err := cuejson.Extract("document.json", data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("parse json document: %w", err)
		}
		v := ctx.BuildExpr(expr)
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("build json document: %w", err)
		}
		return v, nil
	case "yaml":
		file, err := cueyaml.Extract("document.yaml", data)
		if err != nil {
			return cue.Value{}, fmt.Errorf("parse yaml document: %w", err)
		}
		v := ctx.BuildFile(file)
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("build yaml document: %w", err)
		}
		return v, nil
	default:
		return cue.Value{}, fmt.Errorf("unknown encoding %q (expected \"json\" or \"yaml\")", encoding)
	}
}

// flatten unpacks a CUE error list into issues. CUE errors arrive sorted
// by position, so the order is stable for a given input.
func flatten(err error) []Issue {
	var out []Issue
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		is := Issue{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		// Prefer a position in the document over one in the embedded
		// definition.
		positions := cueerrors.Positions(e)
		pos := ""
		for _, p := range positions {
			if !p.IsValid() {
				continue
			}
			s := p.String()
			if pos == "" {
				pos = s
			}
			if !strings.HasPrefix(s, "opencli.cue") {
				pos = s
				break
			}
		}
		is.Pos = pos
		out = append(out, is)
	}
	return out
}
