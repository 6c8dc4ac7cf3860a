// Package partition splits the full concept resource into one value set per
// configured class.
package partition

import (
	"fmt"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/app/template"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// Build returns one partition per value-set definition, in configuration
// order. Every concept must carry a class; membership is decided by class
// code alone, and no two definitions may select the same class.
func Build(cfg domain.Config, full domain.FullConceptResource, gen domain.Generation) ([]domain.PartitionedResource, error) {
	byClass := make(map[string][]domain.PartitionMember, len(cfg.ValueSets.Definitions))
	for _, c := range full.Concepts {
		if !c.HasClass() {
			return nil, &domain.OpError{
				Op:   "partition.build",
				Kind: domain.KindInvalidData,
				Err:  fmt.Errorf("concept %q: %w", c.Code, domain.ErrMissingClass),
			}
		}
		byClass[c.Class.Code] = append(byClass[c.Class.Code], member(c, cfg.Generation.ValueSetDesignations))
	}

	owner := make(map[string]string, len(cfg.ValueSets.Definitions))
	for _, def := range cfg.ValueSets.Definitions {
		if prev, dup := owner[def.Class]; dup {
			return nil, &domain.OpError{
				Op:   "partition.build",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("value sets %q and %q both select class %q: %w", prev, def.Name, def.Class, domain.ErrInvalidConfig),
			}
		}
		owner[def.Class] = def.Name
	}

	out := make([]domain.PartitionedResource, 0, len(cfg.ValueSets.Definitions))
	for _, def := range cfg.ValueSets.Definitions {
		p, err := build(cfg, def, full, byClass[def.Class], gen)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func build(cfg domain.Config, def domain.ValueSetDefinition, full domain.FullConceptResource, members []domain.PartitionMember, gen domain.Generation) (domain.PartitionedResource, error) {
	title, err := domain.RenderPlaceholders(cfg.ValueSets.TitleTemplate, domain.Vars{template.VarVSName: def.Name})
	if err != nil {
		return domain.PartitionedResource{}, err
	}

	meta, err := template.Meta(cfg, template.Resource{
		Kind:        domain.KindValueSet,
		Title:       title,
		Description: cfg.ValueSets.Description,
		Vars: domain.Vars{
			template.VarTitle:     def.Name,
			template.VarClassCode: def.Class,
			template.VarVSName:    def.Name,
		},
		OID: def.OID,
	}, gen)
	if err != nil {
		return domain.PartitionedResource{}, err
	}
	// pinned to the concept resource generated in the same run
	meta.Version = full.Meta.Version

	return domain.PartitionedResource{
		Meta:           meta,
		DefinitionName: def.Name,
		ClassCode:      def.Class,
		Source: domain.SourceRef{
			URL:     full.Meta.URL,
			Version: full.Meta.Version,
		},
		Members: append([]domain.PartitionMember(nil), members...),
	}, nil
}

func member(c domain.TransformedConcept, withDesignations bool) domain.PartitionMember {
	m := domain.PartitionMember{Code: c.Code, Display: c.Display}
	if withDesignations && len(c.Designations) > 0 {
		m.Designations = make([]domain.Designation, 0, len(c.Designations))
		for _, d := range c.Designations {
			if d.Use != nil {
				use := *d.Use
				d.Use = &use
			}
			m.Designations = append(m.Designations, d)
		}
	}
	return m
}
