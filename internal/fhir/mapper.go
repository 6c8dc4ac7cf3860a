package fhir

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"

// FromClassification maps the class catalog to a CodeSystem with one concept
// per class.
func FromClassification(r domain.ClassificationResource) *CodeSystem {
	cs := newCodeSystem(r.Meta, r.ValueSetURL)
	cs.Concept = make([]CodeSystemConcept, 0, len(r.Classes))
	for _, c := range r.Classes {
		cs.Concept = append(cs.Concept, CodeSystemConcept{
			Code:    c.Code,
			Display: c.DisplayName,
		})
	}
	cs.Count = len(cs.Concept)
	return cs
}

// FromConceptResource maps the full concept resource to a CodeSystem.
func FromConceptResource(r domain.FullConceptResource) *CodeSystem {
	cs := newCodeSystem(r.Meta, r.ValueSetURL)

	for _, p := range r.Properties {
		cs.Property = append(cs.Property, CodeSystemProperty{
			Code:        p.Code,
			URI:         p.URI,
			Description: p.Description,
			Type:        p.Type,
		})
	}

	cs.Concept = make([]CodeSystemConcept, 0, len(r.Concepts))
	for _, c := range r.Concepts {
		cs.Concept = append(cs.Concept, CodeSystemConcept{
			Code:        c.Code,
			Display:     c.Display,
			Definition:  c.Definition,
			Designation: designations(c.Designations),
			Property:    properties(c.Properties),
		})
	}
	cs.Count = len(cs.Concept)
	return cs
}

// FromPartition maps a partition to a ValueSet that enumerates its members
// from the pinned source CodeSystem.
func FromPartition(r domain.PartitionedResource) *ValueSet {
	vs := &ValueSet{
		ResourceType: "ValueSet",
		ID:           r.Meta.ID,
		Meta:         meta(r.Meta.Profiles),
		Text:         narrative(r.Meta.Narrative),
		URL:          r.Meta.URL,
		Identifier:   identifiers(r.Meta.Identifier),
		Version:      r.Meta.Version,
		Name:         r.Meta.Name,
		Title:        r.Meta.Title,
		Status:       StatusActive,
		Date:         r.Meta.Date,
		Publisher:    r.Meta.Publisher,
		Description:  r.Meta.Description,
		Copyright:    r.Meta.Copyright,
	}

	include := ComposeInclude{
		System:  r.Source.URL,
		Version: r.Source.Version,
	}
	for _, m := range r.Members {
		include.Concept = append(include.Concept, IncludeConcept{
			Code:        m.Code,
			Display:     m.Display,
			Designation: designations(m.Designations),
		})
	}
	vs.Compose = Compose{
		Inactive: false,
		Include:  []ComposeInclude{include},
	}
	return vs
}

func newCodeSystem(m domain.ResourceMeta, valueSetURL string) *CodeSystem {
	return &CodeSystem{
		ResourceType:  "CodeSystem",
		ID:            m.ID,
		Meta:          meta(m.Profiles),
		Text:          narrative(m.Narrative),
		URL:           m.URL,
		Identifier:    identifiers(m.Identifier),
		Version:       m.Version,
		Name:          m.Name,
		Title:         m.Title,
		Status:        StatusActive,
		Date:          m.Date,
		Publisher:     m.Publisher,
		Description:   m.Description,
		Copyright:     m.Copyright,
		CaseSensitive: false,
		ValueSet:      valueSetURL,
		Content:       ContentComplete,
	}
}

func meta(profiles []string) *Meta {
	if len(profiles) == 0 {
		return nil
	}
	return &Meta{Profile: append([]string(nil), profiles...)}
}

func narrative(div string) *Narrative {
	if div == "" {
		return nil
	}
	return &Narrative{Status: NarrativeGenerated, Div: div}
}

func identifiers(id *domain.Identifier) []Identifier {
	if id == nil {
		return nil
	}
	return []Identifier{{System: id.System, Value: id.Value}}
}

func designations(in []domain.Designation) []ConceptDesignation {
	if len(in) == 0 {
		return nil
	}
	out := make([]ConceptDesignation, 0, len(in))
	for _, d := range in {
		cd := ConceptDesignation{Language: d.Language, Value: d.Value}
		if d.Use != nil {
			cd.Use = &Coding{System: d.Use.System, Code: d.Use.Code, Display: d.Use.Display}
		}
		out = append(out, cd)
	}
	return out
}

func properties(in []domain.ConceptProperty) []ConceptProperty {
	if len(in) == 0 {
		return nil
	}
	out := make([]ConceptProperty, 0, len(in))
	for _, p := range in {
		out = append(out, property(p))
	}
	return out
}

func property(p domain.ConceptProperty) ConceptProperty {
	cp := ConceptProperty{Code: string(p.Code)}
	switch p.Type {
	case domain.TypeCoding:
		if p.Coding != nil {
			cp.ValueCoding = &Coding{System: p.Coding.System, Code: p.Coding.Code, Display: p.Coding.Display}
		}
	case domain.TypeString:
		v := p.Value
		cp.ValueString = &v
	case domain.TypeDateTime:
		v := p.Value
		cp.ValueDateTime = &v
	case domain.TypeCode:
		v := p.Value
		cp.ValueCode = &v
	case domain.TypeBoolean:
		v := p.Bool
		cp.ValueBoolean = &v
	}
	return cp
}
