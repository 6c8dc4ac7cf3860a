package ports

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"

// ConfigLoader loads and validates the configuration from a source (e.g., filesystem).
type ConfigLoader interface {
	Load(path string) (domain.Config, error)
}
