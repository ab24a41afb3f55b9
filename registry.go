package opencli

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Registry collects schema, parameter, and response components together with
// commands, and assembles them into documents. The zero value is not usable;
// use NewRegistry.
type Registry struct {
	mu         sync.RWMutex
	schemas    *Map[RefOr]
	parameters *Map[ParameterRef]
	responses  *Map[ResponseRef]
	commands   *Map[Command]
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:    NewMap[RefOr](),
		parameters: NewMap[ParameterRef](),
		responses:  NewMap[ResponseRef](),
		commands:   NewMap[Command](),
	}
}

// WithLogger sets a custom logger for the registry.
// If not set, slog.Default() will be used.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

func (r *Registry) log() *slog.Logger {
	if r.logger == nil {
		return slog.Default()
	}
	return r.logger
}

// RegisterSchema registers the schema exported by s under its component
// name. If the name is already registered, it is replaced and a warning is
// logged.
func (r *Registry) RegisterSchema(s ToSchema) *Registry {
	return r.RegisterSchemaNamed(s.SchemaName(), s.Schema())
}

// RegisterSchemaNamed registers a schema component under an explicit name.
func (r *Registry) RegisterSchemaNamed(name string, schema RefOr) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schemas.Has(name) {
		r.log().Warn("duplicate schema registration",
			slog.String("component", name))
	}
	r.schemas.Set(name, schema)
	return r
}

// RegisterParameter registers a parameter component under the given name.
func (r *Registry) RegisterParameter(name string, p Parameter) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.parameters.Has(name) {
		r.log().Warn("duplicate parameter registration",
			slog.String("component", name))
	}
	r.parameters.Set(name, InlineParameter(p))
	return r
}

// RegisterResponse registers the response exported by resp under its
// component name.
func (r *Registry) RegisterResponse(resp ToResponse) *Registry {
	name, ref := resp.Response()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.responses.Has(name) {
		r.log().Warn("duplicate response registration",
			slog.String("component", name))
	}
	r.responses.Set(name, ref)
	return r
}

// RegisterCommand registers the command described by c under its path.
func (r *Registry) RegisterCommand(c CommandPath) *Registry {
	return r.RegisterCommandNamed(c.Path(), c.Command())
}

// RegisterCommandNamed registers a command under an explicit path: the bare
// name for a root command, or a "/sub" path for a subcommand.
func (r *Registry) RegisterCommandNamed(path string, c Command) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.commands.Has(path) {
		r.log().Warn("duplicate command registration",
			slog.String("path", path))
	}
	r.commands.Set(path, c)
	return r
}

// Schema looks up a registered schema component by name.
func (r *Registry) Schema(name string) (RefOr, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schemas.Get(name)
}

// Document assembles a document from the registered commands and components.
// Component sections are only present when non-empty.
func (r *Registry) Document(info Info) *OpenCli {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc := NewOpenCli(info)
	r.commands.Each(func(path string, c Command) {
		doc.Commands.Set(path, c)
	})

	if r.schemas.Len() > 0 || r.parameters.Len() > 0 || r.responses.Len() > 0 {
		components := NewComponents()
		r.schemas.Each(func(name string, s RefOr) {
			components.WithSchema(name, s)
		})
		r.parameters.Each(func(name string, p ParameterRef) {
			components.WithParameter(name, p)
		})
		r.responses.Each(func(name string, resp ResponseRef) {
			components.WithResponse(name, resp)
		})
		doc.Components = components
	}
	return doc
}

// ResolveRefs verifies that every $ref in the document points at a component
// that exists. It returns an unresolved_ref error listing the missing
// targets, or nil when all references resolve.
func ResolveRefs(doc *OpenCli) error {
	missing := collectMissingRefs(doc)
	if len(missing) == 0 {
		return nil
	}
	err := Errorf(CodeUnresolvedRef, "%d unresolved reference(s)", len(missing))
	for i, path := range missing {
		err = err.WithDetail(fmt.Sprintf("ref[%d]", i), path)
	}
	return err
}

func collectMissingRefs(doc *OpenCli) []string {
	var missing []string
	seen := map[string]bool{}

	check := func(ref *Ref) {
		if ref == nil || seen[ref.RefPath] {
			return
		}
		if !refTargetExists(doc, ref.RefPath) {
			seen[ref.RefPath] = true
			missing = append(missing, ref.RefPath)
		}
	}

	var walkRefOr func(s RefOr)
	walkSchema := func(node Schema) {
		switch n := node.(type) {
		case *Object:
			n.Properties.Each(func(_ string, prop RefOr) {
				walkRefOr(prop)
			})
		case *Array:
			if n.Items != nil {
				walkRefOr(*n.Items)
			}
		}
	}
	walkRefOr = func(s RefOr) {
		if s.Ref != nil {
			check(s.Ref)
			return
		}
		if s.Schema != nil {
			walkSchema(s.Schema)
		}
	}

	walkParameter := func(p Parameter) {
		if p.Schema != nil {
			walkRefOr(*p.Schema)
		}
	}
	walkResponse := func(resp Response) {
		resp.Content.Each(func(_ string, mt MediaType) {
			if mt.Schema != nil {
				walkRefOr(*mt.Schema)
			}
		})
	}

	doc.Commands.Each(func(_ string, c Command) {
		for _, p := range c.Parameters {
			walkParameter(p)
		}
		c.Responses.Each(func(_ string, resp Response) {
			walkResponse(resp)
		})
	})

	if doc.Components != nil {
		doc.Components.Schemas.Each(func(_ string, s RefOr) {
			walkRefOr(s)
		})
		doc.Components.Parameters.Each(func(_ string, p ParameterRef) {
			if p.Ref != nil {
				check(p.Ref)
			} else if p.Value != nil {
				walkParameter(*p.Value)
			}
		})
		doc.Components.Responses.Each(func(_ string, resp ResponseRef) {
			if resp.Ref != nil {
				check(resp.Ref)
			} else if resp.Value != nil {
				walkResponse(*resp.Value)
			}
		})
	}
	return missing
}

func refTargetExists(doc *OpenCli, refPath string) bool {
	if doc.Components == nil {
		return false
	}
	switch {
	case strings.HasPrefix(refPath, SchemasPath):
		return doc.Components.Schemas.Has(strings.TrimPrefix(refPath, SchemasPath))
	case strings.HasPrefix(refPath, ParametersPath):
		return doc.Components.Parameters.Has(strings.TrimPrefix(refPath, ParametersPath))
	case strings.HasPrefix(refPath, ResponsesPath):
		return doc.Components.Responses.Has(strings.TrimPrefix(refPath, ResponsesPath))
	default:
		return false
	}
}
