// Package provider extracts type descriptors from Go code. The reflection
// provider walks live reflect.Type values; the source provider analyzes
// package source with go/packages and additionally recovers doc comments
// and const-group enumerations, which reflection cannot see.
package provider

import "github.com/broady/opencli/opencligen/ir"

// Warning codes reported by providers.
const (
	// WarnInterfaceType marks an interface field mapped to an open object.
	WarnInterfaceType = "interface_type"

	// WarnMapKey marks a map whose key type does not produce JSON object
	// keys.
	WarnMapKey = "map_key"

	// WarnNameCollision marks two distinct types claiming the same
	// component name. The first registration wins.
	WarnNameCollision = "name_collision"

	// WarnEmbeddingCycle marks an embedded pointer chain that returns to
	// a type already being promoted.
	WarnEmbeddingCycle = "embedding_cycle"

	// WarnTagOption marks an unknown or malformed option in an opencli
	// struct tag.
	WarnTagOption = "tag_option"

	// WarnUnsupportedShape marks a type without a schema representation.
	WarnUnsupportedShape = "unsupported_type_shape"
)

// Warning records a non-fatal extraction problem.
type Warning struct {
	// Code classifies the warning.
	Code string

	// Message describes the problem.
	Message string

	// TypeName names the type involved, when known.
	TypeName string
}

// Set is the output of a provider: every named descriptor reachable from
// the requested roots, in a deterministic order with dependencies before
// their dependents.
type Set struct {
	// Types holds the named record and sum descriptors.
	Types []ir.TypeDescriptor

	// Warnings lists non-fatal extraction problems.
	Warnings []Warning
}

func (s *Set) warn(code, message, typeName string) {
	s.Warnings = append(s.Warnings, Warning{Code: code, Message: message, TypeName: typeName})
}
