package template

import (
	"testing"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Metadata = domain.MetadataConfig{
		Copyright:   "EDQM",
		Publisher:   "Example Publisher",
		URLTemplate: "https://fhir.example.org/<$resource_type$>/<$id_slug$>",
		DivTemplate: `<div xmlns="http://www.w3.org/1999/xhtml"><p><$title$></p><p><$description$></p></div>`,
		IdentifierSystems: map[string]domain.IdentifierSystem{
			domain.OIDSystemKey: {System: "urn:ietf:rfc:3986", Prefix: "urn:oid:"},
		},
	}
	cfg.CodeSystems.Profiles = []string{"http://example.org/StructureDefinition/cs"}
	return cfg
}

var testGen = domain.Generation{RunID: "run-1", Date: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}

func TestMetaCodeSystem(t *testing.T) {
	m, err := Meta(testConfig(), Resource{
		Kind:        domain.KindCodeSystem,
		Title:       "EDQM Standard Terms",
		Description: "Generated on <$date$>",
		OID:         "1.2.3",
	}, testGen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.ID != "edqm-standard-terms" || m.Name != "EDQM_Standard_Terms" {
		t.Fatalf("unexpected id/name %q/%q", m.ID, m.Name)
	}
	if m.URL != "https://fhir.example.org/CodeSystem/edqm-standard-terms" {
		t.Fatalf("unexpected url %q", m.URL)
	}
	if m.Version != "20240501" || m.Date != "2024-05-01" {
		t.Fatalf("unexpected version/date %q/%q", m.Version, m.Date)
	}
	if m.Description != "Generated on 2024-05-01" {
		t.Fatalf("unexpected description %q", m.Description)
	}
	if m.Identifier == nil || m.Identifier.Value != "urn:oid:1.2.3" {
		t.Fatalf("unexpected identifier %+v", m.Identifier)
	}
	if len(m.Profiles) != 1 {
		t.Fatalf("expected profiles on code systems")
	}
	want := `<div xmlns="http://www.w3.org/1999/xhtml"><p>EDQM Standard Terms</p><p>Generated on 2024-05-01</p></div>`
	if m.Narrative != want {
		t.Fatalf("unexpected narrative %q", m.Narrative)
	}
}

func TestMetaValueSetUsesExtraVars(t *testing.T) {
	m, err := Meta(testConfig(), Resource{
		Kind:        domain.KindValueSet,
		Title:       "EDQM Dose Forms",
		Description: "<$title$> (<$class_code$>)",
		Vars:        domain.Vars{VarTitle: "EDQM Dose Forms", VarClassCode: "PDF"},
	}, testGen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Description != "EDQM Dose Forms (PDF)" {
		t.Fatalf("unexpected description %q", m.Description)
	}
	if m.Profiles != nil {
		t.Fatalf("expected no profiles on value sets")
	}
	if m.Identifier != nil {
		t.Fatalf("expected no identifier without oid")
	}
}

func TestMetaUnresolvedPlaceholder(t *testing.T) {
	_, err := Meta(testConfig(), Resource{
		Kind:        domain.KindCodeSystem,
		Title:       "X",
		Description: "<$unknown$>",
	}, testGen)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestNarrativeEscapesValues(t *testing.T) {
	out, err := Narrative("<div><$title$></div>", "A & B <x>", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "<div>A &amp; B &lt;x&gt;</div>" {
		t.Fatalf("unexpected narrative %q", out)
	}
}

func TestNarrativeEmptyTemplate(t *testing.T) {
	out, err := Narrative("", "t", "c", "d")
	if err != nil || out != "" {
		t.Fatalf("expected empty narrative, got %q, %v", out, err)
	}
}
