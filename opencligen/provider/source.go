package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/constant"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/broady/opencli/opencligen/ir"
)

// SourceProvider extracts descriptors by type-checking Go source with
// go/packages. Unlike ReflectionProvider it recovers doc comments,
// const-backed string enums, and uninstantiated generic declarations.
type SourceProvider struct{}

// SourceRoot names one requested root declaration.
type SourceRoot struct {
	// Name is the declared type name, looked up across the loaded
	// packages.
	Name string

	// Rename overrides the registered component name.
	Rename string
}

// SourceOptions configures source-based extraction.
type SourceOptions struct {
	// Packages are go/packages load patterns: import paths, "./...",
	// directory paths.
	Packages []string

	// Dir is the working directory for package loading. Empty means the
	// process working directory.
	Dir string

	// Roots names the declarations to extract. Empty extracts every
	// exported type in the loaded packages.
	Roots []SourceRoot
}

// Descriptors loads and type-checks the packages and extracts the root
// declarations and every named type reachable from them.
func (p *SourceProvider) Descriptors(ctx context.Context, opts SourceOptions) (*Set, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	b := &sourceBuilder{
		pkgs:  pkgs,
		set:   &Set{},
		done:  make(map[string]string),
		names: make(map[string]string),
	}

	if len(opts.Roots) > 0 {
		for _, root := range opts.Roots {
			tn, err := b.lookup(root.Name)
			if err != nil {
				return nil, err
			}
			ok, err := b.extractDecl(tn, root.Rename)
			if err != nil {
				return nil, fmt.Errorf("extract %s: %w", root.Name, err)
			}
			if !ok {
				return nil, fmt.Errorf("root type %s does not produce a schema component", root.Name)
			}
		}
		return b.set, nil
	}

	if err := b.extractExported(); err != nil {
		return nil, err
	}
	return b.set, nil
}

// sourceBuilder accumulates descriptors during extraction.
type sourceBuilder struct {
	pkgs  []*packages.Package
	set   *Set
	done  map[string]string // type key -> component name, set before fields are walked
	names map[string]string // component name -> first claimant's type key
}

// lookup finds a named declaration across the loaded packages.
func (b *sourceBuilder) lookup(name string) (*types.TypeName, error) {
	for _, pkg := range b.pkgs {
		obj := pkg.Types.Scope().Lookup(name)
		if obj == nil {
			continue
		}
		if tn, ok := obj.(*types.TypeName); ok {
			return tn, nil
		}
	}
	return nil, fmt.Errorf("type %s not found in any loaded package", name)
}

// extractExported extracts every exported type declaration.
func (b *sourceBuilder) extractExported() error {
	for _, pkg := range b.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}
			tn, ok := obj.(*types.TypeName)
			if !ok {
				continue
			}
			if _, err := b.extractDecl(tn, ""); err != nil {
				return fmt.Errorf("extract %s: %w", name, err)
			}
		}
	}
	return nil
}

// extractDecl registers a declaration's component if it has one. Named
// primitives and container aliases resolve transparently at use sites
// and register nothing.
func (b *sourceBuilder) extractDecl(tn *types.TypeName, override string) (bool, error) {
	named, ok := tn.Type().(*types.Named)
	if !ok {
		return false, nil
	}
	if _, ok := named.Underlying().(*types.Struct); ok {
		return true, b.ensure(named, override)
	}
	if b.stringEnumVariants(named) != nil {
		return true, b.ensure(named, override)
	}
	return false, nil
}

// ensure emits the descriptor for a struct or enum declaration once.
// Dependencies discovered while walking fields are appended before the
// type itself.
func (b *sourceBuilder) ensure(named *types.Named, override string) error {
	key := typeKey(named)
	if _, ok := b.done[key]; ok {
		return nil
	}

	tn := named.Obj()
	name := tn.Name()
	if override != "" {
		name = override
	}
	b.done[key] = name

	if prev, taken := b.names[name]; taken {
		b.set.warn(WarnNameCollision,
			fmt.Sprintf("%s and %s both map to component %q; keeping the first", prev, key, name), name)
		return nil
	}
	b.names[name] = key

	container := ir.ContainerAnnotations{Name: override}
	container.Description, container.Deprecated = splitDeprecated(b.typeDoc(tn))

	if variants := b.stringEnumVariants(named); variants != nil {
		b.set.Types = append(b.set.Types, &ir.SumDescriptor{
			Name:        tn.Name(),
			Variants:    variants,
			Annotations: container,
		})
		return nil
	}

	rec, err := b.record(named, container)
	if err != nil {
		return err
	}
	b.set.Types = append(b.set.Types, rec)
	return nil
}

// record builds the descriptor for a named struct declaration,
// including generic parameter identifiers.
func (b *sourceBuilder) record(named *types.Named, container ir.ContainerAnnotations) (*ir.RecordDescriptor, error) {
	tn := named.Obj()
	structType := named.Underlying().(*types.Struct)

	var params []string
	if tparams := named.TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			params = append(params, tparams.At(i).Obj().Name())
		}
	}

	fields, err := b.structFields(structType, tn.Name(), map[string]bool{typeKey(named): true})
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", tn.Name(), err)
	}
	return &ir.RecordDescriptor{
		Name:        tn.Name(),
		TypeParams:  params,
		Fields:      fields,
		Annotations: container,
	}, nil
}

// structFields walks a struct's fields, promoting untagged embedded
// structs the way encoding/json flattens them.
func (b *sourceBuilder) structFields(structType *types.Struct, path string, promoting map[string]bool) ([]ir.FieldDescriptor, error) {
	var fields []ir.FieldDescriptor
	for i := 0; i < structType.NumFields(); i++ {
		f := structType.Field(i)
		if !f.Exported() {
			continue
		}
		tag := reflect.StructTag(structType.Tag(i))
		jsonName, omitEmpty, skip := parseJSONTag(tag)
		if skip {
			continue
		}

		if f.Embedded() && jsonName == "" {
			ft := f.Type()
			if ptr, ok := ft.(*types.Pointer); ok {
				ft = ptr.Elem()
			}
			if inner, ok := ft.(*types.Named); ok && !isTimeNamed(inner) {
				if st, ok := inner.Underlying().(*types.Struct); ok {
					key := typeKey(inner)
					if promoting[key] {
						b.set.warn(WarnEmbeddingCycle,
							fmt.Sprintf("embedded %s forms a cycle; fields not promoted", inner.Obj().Name()), path)
						continue
					}
					promoting[key] = true
					promoted, err := b.structFields(st, path, promoting)
					delete(promoting, key)
					if err != nil {
						return nil, err
					}
					fields = append(fields, promoted...)
					continue
				}
			}
			// A non-struct embedding serializes as a regular member and
			// falls through.
		}

		fd, err := b.field(f, tag, jsonName, omitEmpty, path)
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	return fields, nil
}

// field builds one field descriptor from a struct field, its tags, and
// its doc comment.
func (b *sourceBuilder) field(f *types.Var, tag reflect.StructTag, jsonName string, omitEmpty bool, path string) (ir.FieldDescriptor, error) {
	var ann ir.FieldAnnotations
	ann.Rename = jsonName
	ann.ConditionalOmit = omitEmpty
	for _, problem := range parseEngineTag(tag, &ann) {
		b.set.warn(WarnTagOption, fmt.Sprintf("%s.%s: %s", path, f.Name(), problem), path)
	}

	td, err := b.convert(f.Type(), path+"_"+f.Name())
	if err != nil {
		return ir.FieldDescriptor{}, fmt.Errorf("field %s.%s: %w", path, f.Name(), err)
	}

	if ptr, ok := f.Type().(*types.Pointer); ok {
		if _, ok := ptr.Elem().(*types.Pointer); ok {
			ann.DoubleOptional = true
		}
	}
	if ann.Schema.Format == "" {
		ann.Schema.Format = impliedSourceFormat(f.Type())
	}
	if doc := b.fieldDoc(f); doc != "" {
		desc, deprecated := splitDeprecated(doc)
		if ann.Schema.Description == "" {
			ann.Schema.Description = desc
		}
		if deprecated {
			ann.Schema.Deprecated = true
		}
	}

	return ir.FieldDescriptor{Name: f.Name(), Type: td, Annotations: ann}, nil
}

// convert maps a go/types type onto the descriptor tree.
func (b *sourceBuilder) convert(t types.Type, synthetic string) (ir.TypeDescriptor, error) {
	switch typ := t.(type) {
	case *types.Basic:
		return basicDescriptor(typ)

	case *types.Named:
		return b.named(typ, synthetic)

	case *types.Alias:
		return b.convert(typ.Rhs(), synthetic)

	case *types.Pointer:
		// A nil pointer still serializes its key, as null. Pointers are
		// indirection, not absence; only omitempty makes a field
		// optional.
		elem, err := b.convert(typ.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.Indirection(elem), nil

	case *types.Slice:
		if isByteElem(typ.Elem()) {
			return ir.String(), nil
		}
		elem, err := b.convert(typ.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.Sequence(elem), nil

	case *types.Array:
		if isByteElem(typ.Elem()) {
			return ir.String(), nil
		}
		elem, err := b.convert(typ.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.Sequence(elem), nil

	case *types.Map:
		if !validMapKey(typ.Key()) {
			b.set.warn(WarnMapKey,
				fmt.Sprintf("map key type %s does not produce JSON object keys", typ.Key()), typ.String())
		}
		key, err := b.convert(typ.Key(), synthetic)
		if err != nil {
			return nil, err
		}
		value, err := b.convert(typ.Elem(), synthetic)
		if err != nil {
			return nil, err
		}
		return ir.MapOf(key, value), nil

	case *types.Struct:
		return b.anonymousRecord(typ, synthetic)

	case *types.Interface:
		if !typ.Empty() {
			b.set.warn(WarnInterfaceType,
				fmt.Sprintf("interface %s mapped to an open object", typ), typ.String())
		}
		return ir.MapOf(nil, nil), nil

	case *types.TypeParam:
		return ir.Placeholder(typ.Index()), nil

	case *types.Chan, *types.Signature:
		return nil, fmt.Errorf("unsupported type %s", t)

	default:
		return nil, fmt.Errorf("unsupported type %T", t)
	}
}

// named maps a reference to a named type. Struct and enum declarations
// become references and are queued for extraction; everything else
// resolves transparently to its underlying type.
func (b *sourceBuilder) named(named *types.Named, synthetic string) (ir.TypeDescriptor, error) {
	obj := named.Obj()
	if obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == "time" {
		switch obj.Name() {
		case "Time":
			return ir.String(), nil
		case "Duration":
			return ir.Int(64), nil
		}
	}

	if args := named.TypeArgs(); args != nil && args.Len() > 0 {
		return b.instantiated(named, synthetic)
	}

	// A custom marshaler controls the wire shape; the declared fields
	// say nothing about it.
	if hasCustomMarshaler(named) {
		b.set.warn(WarnUnsupportedShape,
			fmt.Sprintf("type %s implements a custom marshaler; mapped to an open object", obj.Name()), obj.Name())
		return ir.MapOf(nil, nil), nil
	}

	if _, ok := named.Underlying().(*types.Struct); ok {
		if err := b.ensure(named, ""); err != nil {
			return nil, err
		}
		return ir.Ref(b.done[typeKey(named)]), nil
	}
	if b.stringEnumVariants(named) != nil {
		if err := b.ensure(named, ""); err != nil {
			return nil, err
		}
		return ir.Ref(b.done[typeKey(named)]), nil
	}

	return b.convert(named.Underlying(), synthetic)
}

// instantiated emits an instantiated generic type under a flattened
// name: Response[User] becomes Response_User. go/types substitutes the
// arguments into the underlying struct, so the fields are concrete.
func (b *sourceBuilder) instantiated(named *types.Named, synthetic string) (ir.TypeDescriptor, error) {
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return b.convert(named.Underlying(), synthetic)
	}

	key := typeKey(named)
	if name, ok := b.done[key]; ok {
		return ir.Ref(name), nil
	}
	name := instantiatedName(named)
	b.done[key] = name

	if prev, taken := b.names[name]; taken {
		b.set.warn(WarnNameCollision,
			fmt.Sprintf("%s and %s both map to component %q; keeping the first", prev, key, name), name)
		return ir.Ref(name), nil
	}
	b.names[name] = key

	fields, err := b.structFields(st, name, map[string]bool{key: true})
	if err != nil {
		return nil, err
	}
	b.set.Types = append(b.set.Types, &ir.RecordDescriptor{
		Name:   name,
		Fields: fields,
	})
	return ir.Ref(name), nil
}

// anonymousRecord emits an anonymous struct under a synthetic name
// derived from its position, parent_Field, and references it. Identical
// anonymous shapes share one component.
func (b *sourceBuilder) anonymousRecord(st *types.Struct, synthetic string) (ir.TypeDescriptor, error) {
	key := st.String()
	if name, ok := b.done[key]; ok {
		return ir.Ref(name), nil
	}
	b.done[key] = synthetic

	if prev, taken := b.names[synthetic]; taken {
		b.set.warn(WarnNameCollision,
			fmt.Sprintf("%s and %s both map to component %q; keeping the first", prev, key, synthetic), synthetic)
		return ir.Ref(synthetic), nil
	}
	b.names[synthetic] = key

	fields, err := b.structFields(st, synthetic, map[string]bool{key: true})
	if err != nil {
		return nil, err
	}
	b.set.Types = append(b.set.Types, &ir.RecordDescriptor{
		Name:   synthetic,
		Fields: fields,
	})
	return ir.Ref(synthetic), nil
}

// stringEnumVariants returns the variants for a string-typed declaration
// backed by package-level constants, or nil when there are none. Variant
// names are the constant values, the strings that appear on the wire;
// scope order keeps the result deterministic.
func (b *sourceBuilder) stringEnumVariants(named *types.Named) []ir.VariantDescriptor {
	basic, ok := named.Underlying().(*types.Basic)
	if !ok || basic.Info()&types.IsString == 0 {
		return nil
	}
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}

	var variants []ir.VariantDescriptor
	seen := make(map[string]bool)
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		cnst, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(cnst.Type(), named) {
			continue
		}
		value := constant.StringVal(cnst.Val())
		if seen[value] {
			continue
		}
		seen[value] = true
		variants = append(variants, ir.VariantDescriptor{Name: value})
	}
	return variants
}

// typeDoc returns the doc comment attached to a type declaration.
func (b *sourceBuilder) typeDoc(tn *types.TypeName) string {
	pos := tn.Pos()
	if !pos.IsValid() {
		return ""
	}
	for _, pkg := range b.pkgs {
		if pkg.Types != tn.Pkg() {
			continue
		}
		for _, file := range pkg.Syntax {
			if file.Pos() > pos || file.End() < pos {
				continue
			}
			var group *ast.CommentGroup
			ast.Inspect(file, func(n ast.Node) bool {
				decl, ok := n.(*ast.GenDecl)
				if !ok {
					return true
				}
				for _, spec := range decl.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Pos() == pos {
						group = decl.Doc
						if ts.Doc != nil {
							group = ts.Doc
						}
						return false
					}
				}
				return true
			})
			if group != nil {
				return strings.TrimSpace(group.Text())
			}
		}
	}
	return ""
}

// fieldDoc returns the doc comment attached to a struct field, falling
// back to its trailing line comment. Fields promoted from packages
// loaded without syntax resolve to an empty string.
func (b *sourceBuilder) fieldDoc(f *types.Var) string {
	pos := f.Pos()
	if !pos.IsValid() {
		return ""
	}
	for _, pkg := range b.pkgs {
		if pkg.Types != f.Pkg() {
			continue
		}
		for _, file := range pkg.Syntax {
			if file.Pos() > pos || file.End() < pos {
				continue
			}
			var doc string
			ast.Inspect(file, func(n ast.Node) bool {
				field, ok := n.(*ast.Field)
				if !ok {
					return true
				}
				for _, id := range field.Names {
					if id.Pos() == pos {
						if field.Doc != nil {
							doc = field.Doc.Text()
						} else if field.Comment != nil {
							doc = field.Comment.Text()
						}
						return false
					}
				}
				return true
			})
			if doc != "" {
				return strings.TrimSpace(doc)
			}
		}
	}
	return ""
}

// basicDescriptor maps a basic kind onto a leaf descriptor.
func basicDescriptor(basic *types.Basic) (ir.TypeDescriptor, error) {
	switch basic.Kind() {
	case types.Bool:
		return ir.Bool(), nil
	case types.String:
		return ir.String(), nil
	case types.Int:
		return ir.Int(0), nil
	case types.Int8:
		return ir.Int(8), nil
	case types.Int16:
		return ir.Int(16), nil
	case types.Int32:
		return ir.Int(32), nil
	case types.Int64:
		return ir.Int(64), nil
	case types.Uint, types.Uintptr:
		return ir.Uint(0), nil
	case types.Uint8:
		return ir.Uint(8), nil
	case types.Uint16:
		return ir.Uint(16), nil
	case types.Uint32:
		return ir.Uint(32), nil
	case types.Uint64:
		return ir.Uint(64), nil
	case types.Float32:
		return ir.Float(32), nil
	case types.Float64:
		return ir.Float(64), nil
	default:
		return nil, fmt.Errorf("unsupported basic type %s", basic)
	}
}

// typeKey produces a stable identity for a named type. Instantiations
// of the same generic base get distinct keys.
func typeKey(named *types.Named) string {
	if args := named.TypeArgs(); args != nil && args.Len() > 0 {
		return named.String()
	}
	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return named.String()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// instantiatedName flattens an instantiation to a component name.
func instantiatedName(named *types.Named) string {
	args := named.TypeArgs()
	parts := make([]string, args.Len())
	for i := 0; i < args.Len(); i++ {
		parts[i] = types.TypeString(args.At(i), func(*types.Package) string { return "" })
	}
	return sanitizeTypeName(named.Obj().Name() + "[" + strings.Join(parts, ",") + "]")
}

// validMapKey reports whether a map key type produces JSON object keys.
func validMapKey(t types.Type) bool {
	switch typ := t.(type) {
	case *types.Basic:
		kind := typ.Kind()
		return kind == types.String || (kind >= types.Int && kind <= types.Uintptr)
	case *types.Named:
		if hasTextMarshaler(typ) {
			return true
		}
		return validMapKey(typ.Underlying())
	case *types.Alias:
		return validMapKey(typ.Rhs())
	}
	return false
}

// hasCustomMarshaler reports whether a named type declares MarshalJSON
// or MarshalText with a marshaler-shaped signature.
func hasCustomMarshaler(named *types.Named) bool {
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if m.Name() != "MarshalJSON" && m.Name() != "MarshalText" {
			continue
		}
		sig := m.Type().(*types.Signature)
		if sig.Params().Len() == 0 && sig.Results().Len() == 2 {
			return true
		}
	}
	return false
}

// hasTextMarshaler reports whether a named type declares MarshalText.
func hasTextMarshaler(named *types.Named) bool {
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if m.Name() != "MarshalText" {
			continue
		}
		sig := m.Type().(*types.Signature)
		if sig.Params().Len() == 0 && sig.Results().Len() == 2 {
			return true
		}
	}
	return false
}

// isTimeNamed reports whether a named type is time.Time.
func isTimeNamed(named *types.Named) bool {
	obj := named.Obj()
	return obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == "time" && obj.Name() == "Time"
}

// isByteElem reports whether a slice or array element type is byte.
func isByteElem(t types.Type) bool {
	basic, ok := t.(*types.Basic)
	return ok && basic.Kind() == types.Uint8
}

// impliedSourceFormat returns the schema format a field type implies
// when the tag does not name one explicitly.
func impliedSourceFormat(t types.Type) string {
	for {
		ptr, ok := t.(*types.Pointer)
		if !ok {
			break
		}
		t = ptr.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		if isTimeNamed(named) {
			return "date-time"
		}
	}
	if slice, ok := t.(*types.Slice); ok && isByteElem(slice.Elem()) {
		return "byte"
	}
	return ""
}

// splitDeprecated strips a "Deprecated:" marker line from a doc
// comment, reporting whether one was present.
func splitDeprecated(doc string) (string, bool) {
	if doc == "" {
		return "", false
	}
	lines := strings.Split(doc, "\n")
	deprecated := false
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Deprecated:") {
			deprecated = true
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), deprecated
}
