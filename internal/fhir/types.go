package fhir

import "github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"

const (
	StatusActive       = "active"
	ContentComplete    = "complete"
	NarrativeGenerated = "generated"
)

// Resource is a serializable FHIR resource.
type Resource interface {
	Kind() domain.ResourceKind
	ResourceID() string
	CanonicalURL() string
	ResourceVersion() string
}

type Meta struct {
	Profile []string `json:"profile,omitempty"`
}

type Narrative struct {
	Status string `json:"status"`
	Div    string `json:"div"`
}

type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeSystem struct {
	ResourceType  string               `json:"resourceType"`
	ID            string               `json:"id"`
	Meta          *Meta                `json:"meta,omitempty"`
	Text          *Narrative           `json:"text,omitempty"`
	URL           string               `json:"url"`
	Identifier    []Identifier         `json:"identifier,omitempty"`
	Version       string               `json:"version"`
	Name          string               `json:"name"`
	Title         string               `json:"title"`
	Status        string               `json:"status"`
	Experimental  bool                 `json:"experimental"`
	Date          string               `json:"date,omitempty"`
	Publisher     string               `json:"publisher,omitempty"`
	Description   string               `json:"description,omitempty"`
	Copyright     string               `json:"copyright,omitempty"`
	CaseSensitive bool                 `json:"caseSensitive"`
	ValueSet      string               `json:"valueSet,omitempty"`
	Content       string               `json:"content"`
	Count         int                  `json:"count"`
	Property      []CodeSystemProperty `json:"property,omitempty"`
	Concept       []CodeSystemConcept  `json:"concept,omitempty"`
}

func (cs *CodeSystem) Kind() domain.ResourceKind { return domain.KindCodeSystem }
func (cs *CodeSystem) ResourceID() string { return cs.ID }
func (cs *CodeSystem) CanonicalURL() string { return cs.URL }
func (cs *CodeSystem) ResourceVersion() string { return cs.Version }

type CodeSystemProperty struct {
	Code        string `json:"code"`
	URI         string `json:"uri,omitempty"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

type CodeSystemConcept struct {
	Code        string               `json:"code"`
	Display     string               `json:"display,omitempty"`
	Definition  string               `json:"definition,omitempty"`
	Designation []ConceptDesignation `json:"designation,omitempty"`
	Property    []ConceptProperty    `json:"property,omitempty"`
}

type ConceptDesignation struct {
	Language string  `json:"language,omitempty"`
	Use      *Coding `json:"use,omitempty"`
	Value    string  `json:"value"`
}

// ConceptProperty carries exactly one value[x] element.
type ConceptProperty struct {
	Code          string  `json:"code"`
	ValueCode     *string `json:"valueCode,omitempty"`
	ValueCoding   *Coding `json:"valueCoding,omitempty"`
	ValueString   *string `json:"valueString,omitempty"`
	ValueBoolean  *bool   `json:"valueBoolean,omitempty"`
	ValueDateTime *string `json:"valueDateTime,omitempty"`
}

type ValueSet struct {
	ResourceType string       `json:"resourceType"`
	ID           string       `json:"id"`
	Meta         *Meta        `json:"meta,omitempty"`
	Text         *Narrative   `json:"text,omitempty"`
	URL          string       `json:"url"`
	Identifier   []Identifier `json:"identifier,omitempty"`
	Version      string       `json:"version"`
	Name         string       `json:"name"`
	Title        string       `json:"title"`
	Status       string       `json:"status"`
	Experimental bool         `json:"experimental"`
	Date         string       `json:"date,omitempty"`
	Publisher    string       `json:"publisher,omitempty"`
	Description  string       `json:"description,omitempty"`
	Copyright    string       `json:"copyright,omitempty"`
	Compose      Compose      `json:"compose"`
}

func (vs *ValueSet) Kind() domain.ResourceKind { return domain.KindValueSet }
func (vs *ValueSet) ResourceID() string { return vs.ID }
func (vs *ValueSet) CanonicalURL() string { return vs.URL }
func (vs *ValueSet) ResourceVersion() string { return vs.Version }

type Compose struct {
	Inactive bool             `json:"inactive"`
	Include  []ComposeInclude `json:"include"`
}

type ComposeInclude struct {
	System  string           `json:"system"`
	Version string           `json:"version,omitempty"`
	Concept []IncludeConcept `json:"concept,omitempty"`
}

type IncludeConcept struct {
	Code        string               `json:"code"`
	Display     string               `json:"display,omitempty"`
	Designation []ConceptDesignation `json:"designation,omitempty"`
}
