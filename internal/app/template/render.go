package template

import (
	"html"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// Placeholder names available to descriptions and the narrative template.
const (
	VarDate      = "date"
	VarTitle     = "title"
	VarCanonical = "canonical"
	VarDesc      = "description"
	VarClassCode = "class_code"
	VarVSName    = "vs_name"
)

// Resource describes one resource whose metadata is derived from configuration.
type Resource struct {
	Kind  domain.ResourceKind
	Title string

	// Description may reference <$date$> and any key in Vars.
	Description string
	Vars        domain.Vars

	OID string
}

// Meta derives the shared metadata of a generated resource: name, id and url
// from the title, version and date from the generation, description and
// narrative from the configured templates.
func Meta(cfg domain.Config, res Resource, gen domain.Generation) (domain.ResourceMeta, error) {
	id := domain.IDFromTitle(res.Title)

	url, err := domain.CanonicalURL(cfg.Metadata.URLTemplate, res.Kind, id)
	if err != nil {
		return domain.ResourceMeta{}, err
	}

	vars := domain.Vars{VarDate: gen.DateString()}
	for k, v := range res.Vars {
		vars[k] = v
	}
	desc, err := domain.RenderPlaceholders(res.Description, vars)
	if err != nil {
		return domain.ResourceMeta{}, err
	}

	div, err := Narrative(cfg.Metadata.DivTemplate, res.Title, url, desc)
	if err != nil {
		return domain.ResourceMeta{}, err
	}

	m := domain.ResourceMeta{
		ID:          id,
		Name:        domain.NameFromTitle(res.Title),
		Title:       res.Title,
		URL:         url,
		Version:     gen.Version(),
		Date:        gen.DateString(),
		Publisher:   cfg.Metadata.Publisher,
		Copyright:   cfg.Metadata.Copyright,
		Description: desc,
		Narrative:   div,
		Identifier:  cfg.OIDIdentifier(res.OID),
	}
	if res.Kind == domain.KindCodeSystem {
		m.Profiles = append([]string(nil), cfg.CodeSystems.Profiles...)
	}
	return m, nil
}

// Narrative renders the XHTML div. Substituted values are HTML-escaped.
// An empty template yields no narrative.
func Narrative(divTemplate, title, canonical, description string) (string, error) {
	if divTemplate == "" {
		return "", nil
	}
	return domain.RenderPlaceholders(divTemplate, domain.Vars{
		VarTitle:     html.EscapeString(title),
		VarCanonical: html.EscapeString(canonical),
		VarDesc:      html.EscapeString(description),
	})
}

// ValueSetURL is the canonical of the implicit ValueSet of a CodeSystem with id.
func ValueSetURL(cfg domain.Config, id string) (string, error) {
	return domain.CanonicalURL(cfg.Metadata.URLTemplate, domain.KindValueSet, id)
}
