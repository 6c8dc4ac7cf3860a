package ports

import (
	"context"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// TerminologyService reads the catalogs of the remote terminology service.
type TerminologyService interface {
	ConceptClasses(ctx context.Context) ([]domain.ConceptClass, error)
	Languages(ctx context.Context) ([]domain.Language, error)
}
