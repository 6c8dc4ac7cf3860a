package cli

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func renderError(err error) string {
	return defaultTheme().failed.Render("Error:") + " " + userMessage(err)
}

// userMessage maps an error to one line for the terminal. Details go to the
// log file.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "configfinder") {
				return "No edqm2fhir.yaml found (tip: run `edqm2fhir init` or pass --config)"
			}
			if strings.Contains(oe.Op, "conceptdump") {
				return "Concepts file not found: " + oe.Path
			}
			if oe.Path != "" {
				return "Not found: " + oe.Path
			}
			return "Not found"

		case domain.KindMissingVar:
			return "Missing placeholder: " + unwrapMessage(oe)

		case domain.KindInvalidConfig:
			if errors.Is(err, domain.ErrMissingVar) {
				return "Missing placeholder: " + unwrapMessage(oe)
			}

			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			if looksLikeYAMLProblem(err.Error()) {
				if line := extractLine(err.Error()); line != "" {
					return "Invalid YAML at " + base + " line " + line
				}
				return "Invalid YAML at " + base
			}
			return "Invalid config " + base + ": " + unwrapMessage(oe)

		case domain.KindVerification:
			return "Verification failed: " + unwrapMessage(oe)

		case domain.KindRemote:
			return "Terminology service error: " + unwrapMessage(oe)

		case domain.KindInvalidData:
			return "Invalid terminology data: " + unwrapMessage(oe)

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		if line := extractLine(err.Error()); line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}
	return err.Error()
}

func unwrapMessage(oe *domain.OpError) string {
	if oe.Err == nil {
		return string(oe.Kind)
	}
	return oe.Err.Error()
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
