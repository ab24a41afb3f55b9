package opencli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var docValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a document for structural problems: missing required
// fields, malformed enums, duplicate operation ids, colliding argument
// positions, and response keys that are not exit codes. All problems are
// reported at once via a joined error; use AsError to fold them into a
// single envelope.
//
// Reference integrity is a separate concern, see ResolveRefs.
func Validate(doc *OpenCli) error {
	if doc == nil {
		return NewError(CodeInvalidDocument, "document is nil")
	}

	var errs []error
	if err := docValidator.Struct(doc); err != nil {
		errs = append(errs, err)
	}

	operationIDs := make(map[string]string)
	doc.Commands.Each(func(path string, c Command) {
		if err := docValidator.Struct(c); err != nil {
			errs = append(errs, fmt.Errorf("command %q: %w", path, err))
		}

		if c.OperationID != "" {
			if prev, ok := operationIDs[c.OperationID]; ok {
				errs = append(errs, Errorf(CodeInvalidDocument,
					"command %q: operationId %q already used by command %q", path, c.OperationID, prev))
			} else {
				operationIDs[c.OperationID] = path
			}
		}

		errs = append(errs, validateParameters(path, c.Parameters)...)

		c.Responses.Each(func(code string, _ Response) {
			if !validExitCode(code) {
				errs = append(errs, Errorf(CodeInvalidDocument,
					"command %q: response key %q is not an exit code", path, code))
			}
		})
	})

	if doc.Components != nil {
		doc.Components.Parameters.Each(func(name string, p ParameterRef) {
			if p.Value == nil {
				return
			}
			if err := docValidator.Struct(p.Value); err != nil {
				errs = append(errs, fmt.Errorf("components.parameters.%s: %w", name, err))
			}
		})
	}

	return errors.Join(errs...)
}

// validateParameters checks per-command parameter rules: positional
// arguments must not collide on position.
func validateParameters(path string, params []Parameter) []error {
	var errs []error
	positions := make(map[uint32]string)
	for _, p := range params {
		if p.In != InArgument || p.Position == nil {
			continue
		}
		if prev, ok := positions[*p.Position]; ok {
			errs = append(errs, Errorf(CodeInvalidDocument,
				"command %q: arguments %q and %q share position %d", path, prev, p.Name, *p.Position))
			continue
		}
		positions[*p.Position] = p.Name
	}
	return errs
}

// validExitCode reports whether key is a decimal exit code in 0..255.
func validExitCode(key string) bool {
	n, err := strconv.ParseUint(key, 10, 8)
	if err != nil {
		return false
	}
	// Reject forms like "007" that would round-trip differently.
	return strconv.FormatUint(n, 10) == key
}
