package provider

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/broady/opencli/opencligen/ir"
)

// parseJSONTag reads the json struct tag: the wire name, the omitempty
// flag, and whether the field is skipped outright.
func parseJSONTag(tag reflect.StructTag) (name string, omitEmpty, skip bool) {
	raw, ok := tag.Lookup("json")
	if !ok {
		return "", false, false
	}
	parts := strings.Split(raw, ",")
	if parts[0] == "-" && len(parts) == 1 {
		return "", false, true
	}
	name = parts[0]
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// parseEngineTag reads the opencli struct tag into field annotations.
// Unknown options and malformed values are reported as problems, not
// errors; the option is ignored.
func parseEngineTag(tag reflect.StructTag, ann *ir.FieldAnnotations) []string {
	raw, ok := tag.Lookup("opencli")
	if !ok || raw == "" {
		return nil
	}

	var problems []string
	for _, opt := range strings.Split(raw, ",") {
		key, value, hasValue := strings.Cut(opt, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		switch key {
		case "skip":
			ann.Skip = true
		case "inline":
			ann.Inline = true
		case "norecurse":
			ann.NoRecursion = true
		case "default":
			ann.Default = true
			if hasValue {
				ann.DefaultValue = parseScalar(value)
			}
		case "example":
			ann.Schema.Example = parseScalar(value)
		case "format":
			ann.Schema.Format = value
		case "title":
			ann.Schema.Title = value
		case "description":
			ann.Schema.Description = value
		case "pattern":
			ann.Schema.Pattern = value
		case "deprecated":
			ann.Schema.Deprecated = true
		case "readonly":
			ann.Schema.ReadOnly = true
		case "writeonly":
			ann.Schema.WriteOnly = true
		case "nullable":
			ann.Schema.Nullable = true
		case "exclmin":
			ann.Schema.ExclusiveMinimum = true
		case "exclmax":
			ann.Schema.ExclusiveMaximum = true
		case "min":
			ann.Schema.Minimum = parseFloatOption(key, value, &problems)
		case "max":
			ann.Schema.Maximum = parseFloatOption(key, value, &problems)
		case "multipleof":
			ann.Schema.MultipleOf = parseFloatOption(key, value, &problems)
		case "minlen":
			ann.Schema.MinLength = parseUintOption(key, value, &problems)
		case "maxlen":
			ann.Schema.MaxLength = parseUintOption(key, value, &problems)
		case "minprops":
			ann.Schema.MinProperties = parseUintOption(key, value, &problems)
		case "maxprops":
			ann.Schema.MaxProperties = parseUintOption(key, value, &problems)
		default:
			problems = append(problems, fmt.Sprintf("unknown option %q", key))
		}
	}
	return problems
}

func parseFloatOption(key, value string, problems *[]string) *float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %q is not a number", key, value))
		return nil
	}
	return &f
}

func parseUintOption(key, value string, problems *[]string) *uint64 {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		*problems = append(*problems, fmt.Sprintf("%s: %q is not an unsigned integer", key, value))
		return nil
	}
	return &n
}

// parseScalar interprets a tag value as the most specific JSON scalar:
// bool, then integer, then number, falling back to the literal string.
func parseScalar(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
