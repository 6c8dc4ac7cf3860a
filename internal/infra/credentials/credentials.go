// Package credentials resolves the terminology service account from flags,
// environment variables and an optional YAML secrets file.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

const (
	EnvUsername = "EDQM2FHIR_USERNAME"
	EnvAPIKey   = "EDQM2FHIR_API_KEY"

	DefaultSecretsFile = "secrets.local.yaml"
)

type Credentials struct {
	Username string
	APIKey   string
}

// Input holds the explicitly provided values. Empty fields fall through to
// the next source.
type Input struct {
	Username string
	APIKey   string

	// SecretsFile is read if present. When SecretsRequired is set, a missing
	// file is an error.
	SecretsFile     string
	SecretsRequired bool
}

type Resolver struct {
	getenv func(string) string
}

type Option func(*Resolver)

// WithGetenv replaces os.Getenv, for tests.
func WithGetenv(fn func(string) string) Option {
	return func(r *Resolver) {
		if fn != nil {
			r.getenv = fn
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{getenv: os.Getenv}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies flag > environment > secrets file precedence per field.
func (r *Resolver) Resolve(in Input) (Credentials, error) {
	file, err := readSecrets(in.SecretsFile, in.SecretsRequired)
	if err != nil {
		return Credentials{}, err
	}

	c := Credentials{
		Username: first(in.Username, r.getenv(EnvUsername), file.Username),
		APIKey:   first(in.APIKey, r.getenv(EnvAPIKey), file.APIKey),
	}

	var missing []string
	if c.Username == "" {
		missing = append(missing, fmt.Sprintf("username (--username or %s)", EnvUsername))
	}
	if c.APIKey == "" {
		missing = append(missing, fmt.Sprintf("api key (--api-key or %s)", EnvAPIKey))
	}
	if len(missing) > 0 {
		return Credentials{}, &domain.OpError{
			Op:   "credentials.resolve",
			Kind: domain.KindInvalidConfig,
			Path: in.SecretsFile,
			Err:  fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), domain.ErrInvalidConfig),
		}
	}
	return c, nil
}

type secretsFile struct {
	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
}

func readSecrets(path string, required bool) (secretsFile, error) {
	if path == "" {
		return secretsFile{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return secretsFile{}, nil
		}
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return secretsFile{}, &domain.OpError{
			Op:   "credentials.secrets",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var s secretsFile
	if err := yaml.Unmarshal(b, &s); err != nil {
		return secretsFile{}, &domain.OpError{
			Op:   "credentials.secrets",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return s, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
