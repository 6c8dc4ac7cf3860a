package domain

import (
	"testing"
	"time"
)

func TestRawConceptIsCurrent(t *testing.T) {
	cases := map[string]bool{
		"current":    true,
		"Current":    true,
		" CURRENT ":  true,
		"deprecated": false,
		"":           false,
	}
	for status, want := range cases {
		if got := (RawConcept{Status: status}).IsCurrent(); got != want {
			t.Errorf("IsCurrent(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestClassLookup(t *testing.T) {
	classes := []ConceptClass{
		{Code: "PDF", DisplayName: "Pharmaceutical dose form"},
		{Code: "ROA", DisplayName: "Route of administration"},
	}
	l := NewClassLookup("https://fhir.example.org/CodeSystem/classes", classes)

	classes[0].DisplayName = "mutated"

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
	d, ok := l.Display("PDF")
	if !ok || d != "Pharmaceutical dose form" {
		t.Fatalf("expected lookup to be isolated from input, got %q", d)
	}
	if _, ok := l.Resolve("XYZ"); ok {
		t.Fatalf("expected unknown class to be absent")
	}
	if l.System() != "https://fhir.example.org/CodeSystem/classes" {
		t.Fatalf("unexpected system %q", l.System())
	}
}

func TestGenerationVersion(t *testing.T) {
	g := Generation{Date: time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)}
	if g.DateString() != "2024-05-01" {
		t.Fatalf("unexpected date %q", g.DateString())
	}
	if g.Version() != "20240501" {
		t.Fatalf("unexpected version %q", g.Version())
	}
}
