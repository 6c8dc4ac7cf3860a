package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "config.load",
		Kind: KindInvalidConfig,
		Path: "edqm2fhir.yaml",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindInvalidConfig {
		t.Fatalf("expected kind %s", KindInvalidConfig)
	}
	if !strings.Contains(err.Error(), "path=edqm2fhir.yaml") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{Op: "verify.classes", Kind: KindVerification, Err: ErrUnknownClass}

	if !IsKind(err, KindVerification) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(err, KindRemote) {
		t.Fatalf("expected IsKind not to match other kinds")
	}
	if IsKind(errors.New("plain"), KindVerification) {
		t.Fatalf("expected plain errors not to match")
	}
}

func TestValidationErrorAggregates(t *testing.T) {
	var v ValidationError
	if v.Err() != nil {
		t.Fatalf("expected nil error when empty")
	}

	v.Add("fhir_metadata.url_template", "is required")
	v.Add("value_sets.definitions", "at least one definition is required")

	err := v.Err()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig in chain")
	}
	msg := err.Error()
	if !strings.Contains(msg, "2 problem(s)") {
		t.Fatalf("expected count in message, got %q", msg)
	}
	if !strings.Contains(msg, "fhir_metadata.url_template") || !strings.Contains(msg, "value_sets.definitions") {
		t.Fatalf("expected every field in message, got %q", msg)
	}
}
