package domain

import "time"

// ResourceKind names the kind of a generated resource; it is also the file
// name prefix of the written resource.
type ResourceKind string

const (
	KindCodeSystem ResourceKind = "CodeSystem"
	KindValueSet   ResourceKind = "ValueSet"
)

// Generation carries the per-run values shared by every resource of a run.
type Generation struct {
	RunID string
	Date  time.Time
}

// DateString is the generation date as YYYY-MM-DD.
func (g Generation) DateString() string {
	return g.Date.Format("2006-01-02")
}

// Version is the generation date with separators removed (YYYYMMDD).
func (g Generation) Version() string {
	return g.Date.Format("20060102")
}

type Identifier struct {
	System string
	Value  string
}

// ResourceMeta is the metadata every generated resource carries.
type ResourceMeta struct {
	ID          string
	Name        string
	Title       string
	URL         string
	Version     string
	Date        string
	Publisher   string
	Copyright   string
	Description string

	// Narrative is the rendered XHTML div.
	Narrative string

	Profiles   []string
	Identifier *Identifier
}

// ClassificationResource enumerates all concept classes.
type ClassificationResource struct {
	Meta        ResourceMeta
	ValueSetURL string
	Classes     []ConceptClass
}

func (r ClassificationResource) Count() int { return len(r.Classes) }

// PropertyDecl declares a concept property on the full concept resource.
type PropertyDecl struct {
	Code        string
	Type        string
	URI         string
	Description string
}

// FullConceptResource enumerates all transformed concepts.
type FullConceptResource struct {
	Meta        ResourceMeta
	ValueSetURL string
	Properties  []PropertyDecl
	Concepts    []TransformedConcept
}

func (r FullConceptResource) Count() int { return len(r.Concepts) }

// SourceRef pins a partition to the exact concept resource it was built from.
type SourceRef struct {
	URL     string
	Version string
}

type PartitionMember struct {
	Code         string
	Display      string
	Designations []Designation
}

// PartitionedResource restricts membership to the concepts of one class.
type PartitionedResource struct {
	Meta           ResourceMeta
	DefinitionName string
	ClassCode      string
	Source         SourceRef
	Members        []PartitionMember
}
