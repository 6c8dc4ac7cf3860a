// Package verify checks a configuration against the catalogs of the
// terminology service before anything is generated.
package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// Resolved is the outcome of a successful verification.
type Resolved struct {
	// Languages is the designation language set; "all" is expanded to every
	// remote language code, sorted.
	Languages []string
}

// Check verifies that every configured class exists remotely and that every
// configured designation language is supported.
//
// The class check stops at the first unknown code; the language check
// reports all missing codes in one error.
func Check(cfg domain.Config, classes []domain.ConceptClass, languages []domain.Language) (Resolved, error) {
	if err := checkClasses(cfg, classes); err != nil {
		return Resolved{}, err
	}

	langs, err := resolveLanguages(cfg, languages)
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{Languages: langs}, nil
}

func checkClasses(cfg domain.Config, classes []domain.ConceptClass) error {
	known := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		known[c.Code] = struct{}{}
	}

	for _, def := range cfg.ValueSets.Definitions {
		if _, ok := known[def.Class]; !ok {
			return &domain.OpError{
				Op:   "verify.classes",
				Kind: domain.KindVerification,
				Path: cfg.Source,
				Err:  fmt.Errorf("value set %q references class %q: %w", def.Name, def.Class, domain.ErrUnknownClass),
			}
		}
	}
	return nil
}

func resolveLanguages(cfg domain.Config, languages []domain.Language) ([]string, error) {
	remote := make([]string, 0, len(languages))
	known := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		if _, dup := known[l.Code]; dup {
			continue
		}
		known[l.Code] = struct{}{}
		remote = append(remote, l.Code)
	}

	if cfg.WantsAllLanguages() {
		sort.Strings(remote)
		return remote, nil
	}

	var missing []string
	out := make([]string, 0, len(cfg.Generation.Designations))
	for _, code := range cfg.Generation.Designations {
		code = strings.TrimSpace(code)
		if _, ok := known[code]; !ok {
			missing = append(missing, code)
			continue
		}
		out = append(out, code)
	}

	if len(missing) > 0 {
		return nil, &domain.OpError{
			Op:   "verify.languages",
			Kind: domain.KindVerification,
			Path: cfg.Source,
			Err:  fmt.Errorf("languages %s: %w", strings.Join(missing, ", "), domain.ErrUnsupportedLanguage),
		}
	}
	return out, nil
}
