package ports

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/fhir"

// ResourceStore persists generated resources, one file per resource.
type ResourceStore interface {
	SaveResource(runID string, res fhir.Resource) (path string, err error)
}
