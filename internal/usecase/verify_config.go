package usecase

import (
	"context"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/usecase/verify"
)

type VerifyConfig struct {
	service ports.TerminologyService
}

func NewVerifyConfig(svc ports.TerminologyService) *VerifyConfig {
	return &VerifyConfig{service: svc}
}

type VerifyResult struct {
	Classes   []domain.ConceptClass
	Languages []string
}

// Execute checks cfg against the remote catalogs without building or
// writing anything.
func (uc *VerifyConfig) Execute(ctx context.Context, cfg domain.Config) (VerifyResult, error) {
	classes, languages, err := fetchCatalogs(ctx, uc.service, func(_ string, fn func() error) error {
		return fn()
	})
	if err != nil {
		return VerifyResult{}, err
	}

	resolved, err := verify.Check(cfg, classes, languages)
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{Classes: classes, Languages: resolved.Languages}, nil
}
