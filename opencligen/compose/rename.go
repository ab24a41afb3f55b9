package compose

import (
	"strings"
	"unicode"

	"github.com/broady/opencli/opencligen/ir"
)

// resolveName returns the serialized name for a field or variant
// identifier. An explicit rename wins outright. Otherwise the
// variant-attached rule applies, then the container rule; with neither,
// the identifier is unchanged.
func resolveName(name, explicit string, variantRule, containerRule ir.RenameRule) string {
	if explicit != "" {
		return explicit
	}
	rule := containerRule
	if variantRule != ir.RenameUnchanged {
		rule = variantRule
	}
	return applyRule(rule, name)
}

// applyRule transforms name under a case convention.
func applyRule(rule ir.RenameRule, name string) string {
	switch rule {
	case ir.RenameLowercase:
		return strings.ToLower(name)
	case ir.RenameUppercase:
		return strings.ToUpper(name)
	case ir.RenamePascalCase:
		return pascal(words(name))
	case ir.RenameCamelCase:
		return lowerFirst(pascal(words(name)))
	case ir.RenameSnakeCase:
		return joinLower(words(name), "_")
	case ir.RenameScreamingSnakeCase:
		return strings.ToUpper(joinLower(words(name), "_"))
	case ir.RenameKebabCase:
		return joinLower(words(name), "-")
	case ir.RenameScreamingKebabCase:
		return strings.ToUpper(joinLower(words(name), "-"))
	default:
		return name
	}
}

// words splits an identifier at underscores and lowercase-to-uppercase
// transitions. "FooBar" and "foo_bar" both split to ["Foo"/"foo", "Bar"/"bar"].
func words(name string) []string {
	var out []string
	var cur []rune
	var prev rune
	for _, r := range name {
		switch {
		case r == '_':
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			out = append(out, string(cur))
			cur = append(cur[:0], r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func pascal(ws []string) string {
	var b strings.Builder
	for _, w := range ws {
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func joinLower(ws []string, sep string) string {
	lowered := make([]string, len(ws))
	for i, w := range ws {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, sep)
}
