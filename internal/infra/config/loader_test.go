package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "edqm2fhir.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Source != path {
		t.Fatalf("expected source %q, got %q", path, cfg.Source)
	}
	if cfg.Metadata.Publisher != "Example Hospital Terminology Team" {
		t.Fatalf("unexpected publisher %q", cfg.Metadata.Publisher)
	}
	if sys := cfg.Metadata.IdentifierSystems[domain.OIDSystemKey]; sys.Prefix != "urn:oid:" {
		t.Fatalf("unexpected oid system %+v", sys)
	}

	defs := cfg.ValueSets.Definitions
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	wantOrder := []string{"Routes of Administration", "Pharmaceutical Dose Forms", "Basic Dose Forms"}
	for i, name := range wantOrder {
		if defs[i].Name != name {
			t.Fatalf("definition %d: expected %q, got %q", i, name, defs[i].Name)
		}
	}
	if defs[1].Class != "PDF" || defs[1].OID != "1.2.276.0.76.11.2" {
		t.Fatalf("unexpected definition %+v", defs[1])
	}

	props := cfg.CodeSystems.Properties
	if len(props) != 7 || props[0].Code != "concept_class" || props[6].Code != "child" {
		t.Fatalf("expected properties in file order, got %+v", props)
	}

	if got := cfg.Generation.Designations; len(got) != 2 || got[0] != "en" || got[1] != "de" {
		t.Fatalf("unexpected designations %v", got)
	}
	if !cfg.Generation.ValueSetDesignations {
		t.Fatalf("expected value set designations")
	}
	if cfg.Output.Directory != "fhir-out" || cfg.Output.Extension != "fhir.json" || cfg.Output.PreserveUnicode {
		t.Fatalf("unexpected output %+v", cfg.Output)
	}
	if cfg.Service.Timeout != 2*time.Minute || cfg.Service.Host != "standardterms.edqm.eu" {
		t.Fatalf("unexpected service %+v", cfg.Service)
	}
}

func TestLoadInvalidAggregatesProblems(t *testing.T) {
	path := filepath.Join("testdata", "invalid.yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig in chain")
	}

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	for _, field := range []string{
		"fhir_metadata.url_template",
		"fhir_metadata.publisher",
		"fhir_metadata.identifier_systems.oid",
		"code_systems.concept_classes.title",
		"code_systems.all_codes.properties.status.type",
		"value_sets.title_template",
		"value_sets.definitions.Routes.class",
		"generation.designations",
		"service.timeout",
	} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in error, got %v", field, err)
		}
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected path in error, got %v", err)
	}
}

func TestLoadDuplicateDefinition(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "duplicate.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "Routes") {
		t.Fatalf("expected duplicate key in error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
