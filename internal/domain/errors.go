package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrMissingVar          = errors.New("missing variable")
	ErrExecution           = errors.New("execution error")
	ErrUnknownClass        = errors.New("unknown concept class")
	ErrUnsupportedLanguage = errors.New("unsupported designation language")
	ErrEmptyResult         = errors.New("empty result")
	ErrMissingClass        = errors.New("concept has no concept class")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindMissingVar    ErrorKind = "missing_variable"
	KindExecution     ErrorKind = "execution"
	KindRemote        ErrorKind = "remote"
	KindVerification  ErrorKind = "verification"
	KindInvalidData   ErrorKind = "invalid_data"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// FieldError is a single problem found while validating configuration.
type FieldError struct {
	Field string
	Msg   string
}

func (f FieldError) String() string {
	return fmt.Sprintf("field %s: %s", f.Field, f.Msg)
}

// ValidationError aggregates every FieldError found in one pass so the user can
// fix a config file in one go.
type ValidationError struct {
	Fields []FieldError
}

// Add records a problem for field.
func (v *ValidationError) Add(field, msg string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Msg: msg})
}

// Empty reports whether no problems were recorded.
func (v *ValidationError) Empty() bool {
	return v == nil || len(v.Fields) == 0
}

// Err returns nil when nothing was recorded, otherwise the ValidationError itself.
func (v *ValidationError) Err() error {
	if v.Empty() {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	if v.Empty() {
		return "no validation errors"
	}
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%d problem(s): %s", len(v.Fields), strings.Join(parts, "; "))
}

func (v *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
