package ports

import (
	"context"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// ConceptSource provides the complete concept export, either fetched live or
// read from a saved dump.
type ConceptSource interface {
	Concepts(ctx context.Context) ([]domain.RawConcept, error)
}
