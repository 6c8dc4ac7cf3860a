// Package concepts turns raw concept records into the full concept resource.
package concepts

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/app/template"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// Transformer maps raw concepts using the class lookup of the catalog stage
// and a resolved designation language set. It holds no mutable state.
type Transformer struct {
	lookup    domain.ClassLookup
	languages map[string]struct{}
	log       *slog.Logger
}

func New(lookup domain.ClassLookup, languages []string, log *slog.Logger) *Transformer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	set := make(map[string]struct{}, len(languages))
	for _, l := range languages {
		set[l] = struct{}{}
	}
	return &Transformer{lookup: lookup, languages: set, log: log}
}

// Build transforms raws in input order and assembles the full concept
// resource. Dropped sub-elements are returned as warnings; an unresolvable
// class aborts the build.
func (t *Transformer) Build(cfg domain.Config, raws []domain.RawConcept, gen domain.Generation) (domain.FullConceptResource, []domain.Warning, error) {
	settings := cfg.CodeSystems.AllCodes

	meta, err := template.Meta(cfg, template.Resource{
		Kind:        domain.KindCodeSystem,
		Title:       settings.Title,
		Description: settings.Description,
		OID:         settings.OID,
	}, gen)
	if err != nil {
		return domain.FullConceptResource{}, nil, err
	}
	vsURL, err := template.ValueSetURL(cfg, meta.ID)
	if err != nil {
		return domain.FullConceptResource{}, nil, err
	}

	res := domain.FullConceptResource{
		Meta:        meta,
		ValueSetURL: vsURL,
		Properties:  append([]domain.PropertyDecl(nil), cfg.CodeSystems.Properties...),
		Concepts:    make([]domain.TransformedConcept, 0, len(raws)),
	}

	var warnings []domain.Warning
	for _, raw := range raws {
		c, w, err := t.Concept(raw)
		if err != nil {
			return domain.FullConceptResource{}, nil, err
		}
		warnings = append(warnings, w...)
		res.Concepts = append(res.Concepts, c)
	}
	return res, warnings, nil
}

// Concept transforms a single raw concept.
func (t *Transformer) Concept(raw domain.RawConcept) (domain.TransformedConcept, []domain.Warning, error) {
	class, ok := t.lookup.Resolve(raw.ClassCode)
	if !ok {
		return domain.TransformedConcept{}, nil, &domain.OpError{
			Op:   "concepts.transform",
			Kind: domain.KindInvalidData,
			Err:  fmt.Errorf("concept %q has class %q: %w", raw.Code, raw.ClassCode, domain.ErrUnknownClass),
		}
	}

	c := domain.TransformedConcept{
		Code:       raw.Code,
		Display:    raw.English,
		Definition: strings.TrimSpace(raw.Definition),
		Class:      class,
	}

	var warnings []domain.Warning
	for _, r := range t.designations(raw) {
		if !r.OK() {
			warnings = append(warnings, t.warn(raw.Code, "designation."+r.Designation.Language, r.Err))
			continue
		}
		c.Designations = append(c.Designations, r.Designation)
	}
	for _, r := range t.properties(raw, class) {
		if r.Err != nil {
			warnings = append(warnings, t.warn(raw.Code, "property."+string(r.Property.Code), r.Err))
			continue
		}
		c.Properties = append(c.Properties, r.Property)
	}
	return c, warnings, nil
}

func (t *Transformer) warn(concept, element string, err error) domain.Warning {
	t.log.Warn("dropped concept element",
		"concept", concept,
		"element", element,
		"error", err.Error(),
	)
	return domain.Warning{Concept: concept, Element: element, Message: err.Error()}
}

// designations keeps translations in a selected language with a non-empty
// term. Empty terms are not reported. A language listed twice keeps the
// position of its first entry and the term of its last.
func (t *Transformer) designations(raw domain.RawConcept) []domain.DesignationResult {
	var order []string
	terms := make(map[string]string, len(raw.Translations))
	for _, tr := range raw.Translations {
		if _, ok := t.languages[tr.Language]; !ok {
			continue
		}
		if _, seen := terms[tr.Language]; !seen {
			order = append(order, tr.Language)
		}
		terms[tr.Language] = tr.Term
	}

	var out []domain.DesignationResult
	for _, lang := range order {
		term := strings.TrimSpace(terms[lang])
		if term == "" {
			continue
		}

		d := domain.Designation{Language: lang, Value: term}
		if _, err := language.Parse(lang); err != nil {
			out = append(out, domain.DesignationResult{
				Designation: d,
				Err:         fmt.Errorf("invalid language tag %q: %w", lang, err),
			})
			continue
		}
		out = append(out, domain.DesignationResult{Designation: d})
	}
	return out
}

// properties builds the property list in its fixed order: concept_class,
// domain, creation_date, modification_date, status, inactive, child...
func (t *Transformer) properties(raw domain.RawConcept, class domain.ConceptClass) []domain.PropertyResult {
	out := []domain.PropertyResult{
		{Property: domain.CodingProperty(domain.PropConceptClass, domain.Coding{
			System:  t.lookup.System(),
			Code:    class.Code,
			Display: class.DisplayName,
		})},
		required(domain.StringProperty(domain.PropDomain, strings.TrimSpace(raw.Domain))),
		dateTime(domain.PropCreationDate, raw.CreationDate),
		dateTime(domain.PropModificationDate, raw.ModificationDate),
		required(domain.CodeProperty(domain.PropStatus, strings.TrimSpace(raw.Status))),
	}

	if !raw.IsCurrent() {
		out = append(out, domain.PropertyResult{Property: domain.BoolProperty(domain.PropInactive, true)})
	}

	for _, g := range raw.Links {
		for _, code := range g.Codes {
			out = append(out, required(domain.CodeProperty(domain.PropChild, strings.TrimSpace(code))))
		}
	}
	return out
}

func required(p domain.ConceptProperty) domain.PropertyResult {
	if p.Value == "" {
		return domain.PropertyResult{Property: p, Err: fmt.Errorf("%s is empty", p.Code)}
	}
	return domain.PropertyResult{Property: p}
}

func dateTime(code domain.PropertyCode, raw string) domain.PropertyResult {
	p := domain.DateTimeProperty(code, domain.NormalizeTimestamp(raw))
	if p.Value == "" {
		return domain.PropertyResult{Property: p, Err: fmt.Errorf("%s is empty", code)}
	}
	if _, err := time.Parse(time.RFC3339, p.Value); err != nil {
		return domain.PropertyResult{Property: p, Err: fmt.Errorf("%s %q is not a timestamp", code, raw)}
	}
	return domain.PropertyResult{Property: p}
}
