package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Vars is a key/value store used for placeholder rendering.
type Vars map[string]string

const (
	placeholderOpen  = "<$"
	placeholderClose = "$>"
)

// RenderPlaceholders replaces <$name$> placeholders in s with values from vars.
// A placeholder without a value is a configuration error naming the placeholder.
func RenderPlaceholders(s string, vars Vars) (string, error) {
	var b strings.Builder
	b.Grow(len(s) + 16)

	rest := s
	for {
		start := strings.Index(rest, placeholderOpen)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:start])
		rest = rest[start+len(placeholderOpen):]

		end := strings.Index(rest, placeholderClose)
		if end < 0 {
			return "", &OpError{
				Op:   "placeholders.render",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("unclosed placeholder in %q", s),
			}
		}

		name := strings.TrimSpace(rest[:end])
		if name == "" {
			return "", &OpError{
				Op:   "placeholders.render",
				Kind: KindInvalidConfig,
				Err:  errors.New("empty placeholder"),
			}
		}

		val, ok := vars[name]
		if !ok {
			return "", &OpError{
				Op:   "placeholders.render",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("unresolved placeholder %s%s%s in %q: %w", placeholderOpen, name, placeholderClose, s, ErrMissingVar),
			}
		}

		b.WriteString(val)
		rest = rest[end+len(placeholderClose):]
	}
}
