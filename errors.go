package opencli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	CodeInvalidDocument           ErrorCode = "invalid_document"
	CodeInvalidSchema             ErrorCode = "invalid_schema"
	CodeInvalidDescriptor         ErrorCode = "invalid_descriptor"
	CodeConflictingRepresentation ErrorCode = "conflicting_representation"
	CodeMissingAttribute          ErrorCode = "missing_attribute"
	CodeUnresolvedRef             ErrorCode = "unresolved_ref"
	CodeDuplicateComponent        ErrorCode = "duplicate_component"
	CodeParse                     ErrorCode = "parse"
	CodeNotFound                  ErrorCode = "not_found"
	CodeCanceled                  ErrorCode = "canceled"
	CodeInternal                  ErrorCode = "internal"
)

// Error is the standard error envelope. Details carry structured context
// such as the offending field path or component name.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new error with the given code.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new error with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// WithDetails returns a new Error with the provided map merged into details.
// For multiple details, this is more efficient than chaining WithDetail calls.
func (e *Error) WithDetails(details map[string]any) *Error {
	if len(details) == 0 {
		return e
	}
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: merged,
	}
}

// AsError maps an arbitrary error to an *Error envelope.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var envErr *Error
	if errors.As(err, &envErr) {
		return envErr
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(CodeCanceled, "deadline exceeded")
	}

	if errors.Is(err, context.Canceled) {
		return NewError(CodeCanceled, "context canceled")
	}

	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		details := make(map[string]any)
		messages := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msg := formatValidationError(ve)
			details[ve.Field()] = msg
			messages = append(messages, ve.Field()+": "+msg)
		}
		return &Error{
			Code:    CodeInvalidDocument,
			Message: strings.Join(messages, "; "),
			Details: details,
		}
	}

	// Handle multi-errors (errors.Join)
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		errs := u.Unwrap()
		if len(errs) > 0 {
			firstMapped := AsError(errs[0])
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return &Error{
				Code:    firstMapped.Code,
				Message: strings.Join(msgs, "; "),
				Details: firstMapped.Details,
			}
		}
	}

	return NewError(CodeInternal, err.Error())
}

// ExitCode maps an ErrorCode to a process exit code. Validation and input
// problems exit 2 so scripts can distinguish them from operational failures,
// which exit 1.
func (c ErrorCode) ExitCode() int {
	switch c {
	case CodeInvalidDocument, CodeInvalidSchema, CodeInvalidDescriptor,
		CodeConflictingRepresentation, CodeMissingAttribute, CodeParse:
		return 2
	case CodeUnresolvedRef, CodeDuplicateComponent, CodeNotFound:
		return 3
	case CodeCanceled:
		return 130
	case CodeInternal:
		return 1
	default:
		return 1
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", ve.Param())
	case "eq":
		return fmt.Sprintf("must equal %s", ve.Param())
	case "ne":
		return fmt.Sprintf("must not equal %s", ve.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
