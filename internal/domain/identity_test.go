package domain

import (
	"regexp"
	"testing"
)

func TestNameFromTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"EDQM Standard Terms", "EDQM_Standard_Terms"},
		{"EDQM Standard Terms - Dose Forms", "EDQM_Standard_Terms-Dose_Forms"},
		{"Tab\tSeparated", "Tab_Separated"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NameFromTitle(c.in); got != c.want {
			t.Errorf("NameFromTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestIDFromTitle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"EDQM Standard Terms", "edqm-standard-terms"},
		{"EDQM Standard Terms - Dose Forms", "edqm-standard-terms-dose-forms"},
		{"Routes (of administration)", "routes-of-administration"},
		{"Units: v1.2", "units_-v1.2"},
		{"a-(-b", "a-b"},
		{"Ärzte Übersicht", "_rzte-_bersicht"},
		{"  padded  ", "-padded-"},
		{"", ""},
	}
	for _, c := range cases {
		if got := IDFromTitle(c.in); got != c.want {
			t.Errorf("IDFromTitle(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

var idAlphabet = regexp.MustCompile(`^[a-z0-9._-]*$`)

func TestIDFromTitle_IdempotentAndRestricted(t *testing.T) {
	titles := []string{
		"EDQM Standard Terms",
		"Combined -- dashes",
		"(((parens)))",
		"x - (y) - z",
		"a-(-b",
		"Mixed CASE with ümlauts and 中文",
		"dots.and_underscores",
		"trailing - ",
		"--",
		" non-breaking space",
	}
	for _, title := range titles {
		once := IDFromTitle(title)
		twice := IDFromTitle(once)
		if once != twice {
			t.Errorf("IDFromTitle not idempotent for %q: %q -> %q", title, once, twice)
		}
		if !idAlphabet.MatchString(once) {
			t.Errorf("IDFromTitle(%q) = %q has characters outside [a-z0-9._-]", title, once)
		}
	}
}

func TestIDFromTitle_Deterministic(t *testing.T) {
	title := "EDQM Standard Terms - Pharmaceutical Dose Forms"
	if IDFromTitle(title) != IDFromTitle(title) {
		t.Fatalf("expected identical ids for identical titles")
	}
	if NameFromTitle(title) != NameFromTitle(title) {
		t.Fatalf("expected identical names for identical titles")
	}
}

func TestCanonicalURL(t *testing.T) {
	got, err := CanonicalURL("https://fhir.example.org/<$resource_type$>/<$id_slug$>", KindValueSet, "edqm-units")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://fhir.example.org/ValueSet/edqm-units" {
		t.Fatalf("unexpected url %q", got)
	}

	if _, err := CanonicalURL("https://fhir.example.org/<$type$>/<$id_slug$>", KindValueSet, "x"); err == nil {
		t.Fatalf("expected error for unresolved placeholder")
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2023-01-05 12:00:00", "2023-01-05T12:00:00Z"},
		{"2019-11-27 08:30:15", "2019-11-27T08:30:15Z"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeTimestamp(c.in); got != c.want {
			t.Errorf("NormalizeTimestamp(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
