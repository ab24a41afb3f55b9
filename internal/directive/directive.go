// Package directive parses opencli directives from Go source files.
//
// Directives are line comments in the form:
//
//	//opencli:schema [name]
//
// attached to a type declaration. The schema directive marks the type
// for schema extraction; the optional name overrides the registered
// component name.
package directive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"
)

const prefix = "//opencli:"

// Directive represents a parsed schema directive.
type Directive struct {
	// TypeName is the marked type declaration's name.
	TypeName string

	// Name overrides the registered component name. Empty keeps the
	// declared name.
	Name string

	// Package is the import path of the declaring package.
	Package string

	// Pos is the directive's source location.
	Pos token.Position
}

// Parse scans Go packages for schema directives.
//
// The pattern follows go command semantics: "." for the current
// directory, "./..." for a tree, an import path, or a directory path.
func Parse(pattern string) ([]Directive, error) {
	return ParseDir(pattern, "")
}

// ParseDir is like Parse but allows specifying a working directory.
// If dir is empty, the current directory is used.
func ParseDir(pattern, dir string) ([]Directive, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}

	var directives []Directive
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
		}
		for _, filename := range pkg.GoFiles {
			f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", filename, err)
			}
			found, err := parseFile(fset, f)
			if err != nil {
				return nil, err
			}
			for i := range found {
				found[i].Package = pkg.PkgPath
			}
			directives = append(directives, found...)
		}
	}
	return directives, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	// Build a map of comment end positions to directives so we can
	// match them to the type declarations they document.
	type pending struct {
		name string
		pos  token.Position
	}
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			name, ok, err := fromComment(c.Text)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fset.Position(c.Pos()), err)
			}
			if !ok {
				continue
			}
			commentToDirective[cg.End()] = pending{name: name, pos: fset.Position(c.Pos())}
		}
	}

	var directives []Directive
	claim := func(doc *ast.CommentGroup, typeName string) {
		if doc == nil {
			return
		}
		if p, ok := commentToDirective[doc.End()]; ok {
			directives = append(directives, Directive{
				TypeName: typeName,
				Name:     p.name,
				Pos:      p.pos,
			})
			delete(commentToDirective, doc.End())
		}
	}

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			if ts, ok := spec.(*ast.TypeSpec); ok {
				claim(ts.Doc, ts.Name.Name)
			}
		}
		// A doc comment on the declaration itself counts only when it
		// documents exactly one type.
		if len(gd.Specs) == 1 {
			if ts, ok := gd.Specs[0].(*ast.TypeSpec); ok {
				claim(gd.Doc, ts.Name.Name)
			}
		}
	}

	for _, p := range commentToDirective {
		return nil, fmt.Errorf("%s: %sschema directive must be attached to a type declaration", p.pos, prefix)
	}
	return directives, nil
}

// fromComment parses one comment line. ok reports whether the line is a
// schema directive; err is set for malformed opencli directives.
func fromComment(text string) (name string, ok bool, err error) {
	if !strings.HasPrefix(text, prefix) {
		return "", false, nil
	}
	parts := strings.Fields(strings.TrimPrefix(text, prefix))
	if len(parts) == 0 {
		return "", false, fmt.Errorf("missing directive kind after %s", prefix)
	}
	if parts[0] != "schema" {
		return "", false, fmt.Errorf("unknown directive %s%s", prefix, parts[0])
	}
	if len(parts) > 2 {
		return "", false, fmt.Errorf("%sschema takes at most one name", prefix)
	}
	if len(parts) == 2 {
		name = parts[1]
	}
	return name, true, nil
}
