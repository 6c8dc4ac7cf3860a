package domain

import "strings"

// StatusCurrent is the canonical status of an active concept.
const StatusCurrent = "current"

// ConceptClass is a category grouping concepts (e.g. "PDF" for pharmaceutical
// dose forms).
type ConceptClass struct {
	Code        string
	DisplayName string
}

// Language is a designation language supported by the terminology service.
type Language struct {
	Code string
	Name string
}

// Translation is one language/term pair of a raw concept, in source order.
type Translation struct {
	Language string
	Term     string
}

// RawConcept is a concept record as delivered by the terminology export.
type RawConcept struct {
	Code             string
	ClassCode        string
	Domain           string
	CreationDate     string
	ModificationDate string
	English          string
	Definition       string
	Status           string

	Translations []Translation

	// Links holds the linked concept codes per category, in export order.
	Links []LinkGroup
}

// LinkGroup is one link category of a concept.
type LinkGroup struct {
	Category string
	Codes    []string
}

// IsCurrent reports whether the status equals "current", case-insensitively.
func (c RawConcept) IsCurrent() bool {
	return strings.EqualFold(strings.TrimSpace(c.Status), StatusCurrent)
}

// Coding is a reference to a code in a system.
type Coding struct {
	System  string
	Code    string
	Display string
}

// Designation is a language-tagged label of a concept.
type Designation struct {
	Language string
	Use      *Coding
	Value    string
}

// DesignationResult is the outcome of building a single designation: either a
// usable Designation or the reason it was dropped.
type DesignationResult struct {
	Designation Designation
	Err         error
}

// OK reports whether the designation can be used.
func (r DesignationResult) OK() bool { return r.Err == nil }

// PropertyCode identifies a concept property.
type PropertyCode string

const (
	PropConceptClass     PropertyCode = "concept_class"
	PropDomain           PropertyCode = "domain"
	PropCreationDate     PropertyCode = "creation_date"
	PropModificationDate PropertyCode = "modification_date"
	PropStatus           PropertyCode = "status"
	PropInactive         PropertyCode = "inactive"
	PropChild            PropertyCode = "child"
)

// PropertyType is the value type carried by a ConceptProperty.
type PropertyType string

const (
	TypeCoding   PropertyType = "Coding"
	TypeString   PropertyType = "string"
	TypeDateTime PropertyType = "dateTime"
	TypeCode     PropertyType = "code"
	TypeBoolean  PropertyType = "boolean"
)

// ConceptProperty is a typed key/value pair of a concept.
// Exactly one of Coding, Value or Bool is meaningful, depending on Type.
type ConceptProperty struct {
	Code   PropertyCode
	Type   PropertyType
	Coding *Coding
	Value  string
	Bool   bool
}

// PropertyResult is the outcome of building a single property.
type PropertyResult struct {
	Property ConceptProperty
	Err      error
}

func CodingProperty(code PropertyCode, c Coding) ConceptProperty {
	return ConceptProperty{Code: code, Type: TypeCoding, Coding: &c}
}

func StringProperty(code PropertyCode, v string) ConceptProperty {
	return ConceptProperty{Code: code, Type: TypeString, Value: v}
}

func DateTimeProperty(code PropertyCode, v string) ConceptProperty {
	return ConceptProperty{Code: code, Type: TypeDateTime, Value: v}
}

func CodeProperty(code PropertyCode, v string) ConceptProperty {
	return ConceptProperty{Code: code, Type: TypeCode, Value: v}
}

func BoolProperty(code PropertyCode, v bool) ConceptProperty {
	return ConceptProperty{Code: code, Type: TypeBoolean, Bool: v}
}

// TransformedConcept is a concept ready to be emitted in the full concept
// resource. Class is resolved at construction time; Properties carries the
// concept_class property as well, for output.
type TransformedConcept struct {
	Code       string
	Display    string
	Definition string

	Class ConceptClass

	Designations []Designation
	Properties   []ConceptProperty
}

// HasClass reports whether the concept carries a resolved class.
func (c TransformedConcept) HasClass() bool {
	return strings.TrimSpace(c.Class.Code) != ""
}

// Warning records a sub-element that was dropped while assembling a concept.
type Warning struct {
	Concept string
	Element string
	Message string
}

// ClassLookup is the read-only class code -> display name table built by the
// class catalog stage. System is the canonical URL of the classification
// resource, used as the coding system of concept_class properties.
type ClassLookup struct {
	system   string
	displays map[string]string
}

// NewClassLookup builds a lookup from classes. The input slice is copied.
func NewClassLookup(system string, classes []ConceptClass) ClassLookup {
	m := make(map[string]string, len(classes))
	for _, c := range classes {
		m[c.Code] = c.DisplayName
	}
	return ClassLookup{system: system, displays: m}
}

// System returns the coding system of the classes.
func (l ClassLookup) System() string { return l.system }

// Display returns the display name for code.
func (l ClassLookup) Display(code string) (string, bool) {
	d, ok := l.displays[code]
	return d, ok
}

// Resolve returns the ConceptClass for code.
func (l ClassLookup) Resolve(code string) (ConceptClass, bool) {
	d, ok := l.displays[code]
	if !ok {
		return ConceptClass{}, false
	}
	return ConceptClass{Code: code, DisplayName: d}, true
}

func (l ClassLookup) Len() int { return len(l.displays) }
