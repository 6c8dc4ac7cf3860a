package stapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

type classDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type languageDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type translationDTO struct {
	Language string `json:"language"`
	Term     string `json:"term"`
}

type linkDTO struct {
	Code string `json:"code"`
}

type linkGroupDTO struct {
	category string
	links    []linkDTO
}

// linksDTO keeps the link categories in document order. The service sends an
// empty array instead of an empty object for concepts without links.
type linksDTO []linkGroupDTO

func (l *linksDTO) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil || tok == json.Delim('[') {
		*l = nil
		return nil
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("links: unexpected %v", tok)
	}

	var out linksDTO
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		cat, _ := key.(string)
		var links []linkDTO
		if err := dec.Decode(&links); err != nil {
			return fmt.Errorf("links %q: %w", cat, err)
		}
		out = append(out, linkGroupDTO{category: cat, links: links})
	}
	*l = out
	return nil
}

type conceptDTO struct {
	Code             string           `json:"code"`
	Class            string           `json:"class"`
	Domain           string           `json:"domain"`
	CreationDate     string           `json:"creation_date"`
	ModificationDate string           `json:"modification_date"`
	English          string           `json:"english"`
	Definition       *string          `json:"definition"`
	Status           string           `json:"status"`
	Translations     []translationDTO `json:"translations"`
	Links            linksDTO         `json:"links"`
}

func (c conceptDTO) toDomain() domain.RawConcept {
	rc := domain.RawConcept{
		Code:             c.Code,
		ClassCode:        c.Class,
		Domain:           c.Domain,
		CreationDate:     c.CreationDate,
		ModificationDate: c.ModificationDate,
		English:          c.English,
		Status:           c.Status,
	}
	if c.Definition != nil {
		rc.Definition = *c.Definition
	}
	for _, t := range c.Translations {
		rc.Translations = append(rc.Translations, domain.Translation{Language: t.Language, Term: t.Term})
	}
	for _, g := range c.Links {
		codes := make([]string, 0, len(g.links))
		for _, l := range g.links {
			codes = append(codes, l.Code)
		}
		rc.Links = append(rc.Links, domain.LinkGroup{Category: g.category, Codes: codes})
	}
	return rc
}

// DecodeConcepts decodes a full concept export (service response or saved
// dump) into raw concepts, in document order.
func DecodeConcepts(body []byte, contentPath string) ([]domain.RawConcept, error) {
	if contentPath == "" {
		contentPath = DefaultContentPath
	}
	var dtos []conceptDTO
	if err := decodeContent(body, contentPath, &dtos); err != nil {
		return nil, &domain.OpError{
			Op:   "stapi.decode_concepts",
			Kind: domain.KindInvalidData,
			Err:  err,
		}
	}
	out := make([]domain.RawConcept, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}
