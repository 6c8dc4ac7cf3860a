// Package catalog builds the classification resource and the class lookup
// consumed by the concept stage.
package catalog

import (
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/app/template"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// Build emits one class entry per remote class record, keeping the remote
// display name, and returns the lookup built from the same records.
func Build(cfg domain.Config, classes []domain.ConceptClass, gen domain.Generation) (domain.ClassificationResource, domain.ClassLookup, error) {
	settings := cfg.CodeSystems.ConceptClasses

	meta, err := template.Meta(cfg, template.Resource{
		Kind:        domain.KindCodeSystem,
		Title:       settings.Title,
		Description: settings.Description,
		OID:         settings.OID,
	}, gen)
	if err != nil {
		return domain.ClassificationResource{}, domain.ClassLookup{}, err
	}

	vsURL, err := template.ValueSetURL(cfg, meta.ID)
	if err != nil {
		return domain.ClassificationResource{}, domain.ClassLookup{}, err
	}

	res := domain.ClassificationResource{
		Meta:        meta,
		ValueSetURL: vsURL,
		Classes:     append([]domain.ConceptClass(nil), classes...),
	}
	return res, domain.NewClassLookup(meta.URL, res.Classes), nil
}
