package domain

import (
	"strings"
	"unicode"
)

// Placeholder names understood by the canonical URL template.
const (
	VarResourceType = "resource_type"
	VarIDSlug       = "id_slug"
)

// NameFromTitle turns a title into a computer-friendly name: whitespace becomes
// an underscore, and "_-_" (a standalone dash in the title) collapses to "-".
func NameFromTitle(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, title)
	return strings.ReplaceAll(name, "_-_", "-")
}

// IDFromTitle turns a title into a resource id. The result only contains
// [a-z0-9._-], and IDFromTitle(IDFromTitle(x)) == IDFromTitle(x).
func IDFromTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastDash := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r) || r == '-':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
			continue
		case r == '(' || r == ')':
			// dropped; dashes on both sides still collapse
			continue
		case isIDRune(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
		lastDash = false
	}
	return b.String()
}

func isIDRune(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '.'
}

// CanonicalURL renders the configured URL template for a resource.
func CanonicalURL(template string, kind ResourceKind, id string) (string, error) {
	return RenderPlaceholders(template, Vars{
		VarResourceType: string(kind),
		VarIDSlug:       id,
	})
}

// NormalizeTimestamp turns "2023-01-05 12:00:00" into "2023-01-05T12:00:00Z".
// No timezone conversion is done; the source is UTC-naive.
func NormalizeTimestamp(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.Replace(s, " ", "T", 1) + "Z"
}
