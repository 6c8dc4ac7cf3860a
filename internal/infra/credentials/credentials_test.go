package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultSecretsFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write secrets: %v", err)
	}
	return path
}

func TestResolvePrecedence(t *testing.T) {
	secrets := writeSecrets(t, "username: file-user\napi_key: file-key\n")

	cases := []struct {
		name     string
		in       Input
		env      map[string]string
		wantUser string
		wantKey  string
	}{
		{
			name:     "file only",
			in:       Input{SecretsFile: secrets},
			wantUser: "file-user",
			wantKey:  "file-key",
		},
		{
			name:     "env overrides file",
			in:       Input{SecretsFile: secrets},
			env:      map[string]string{EnvAPIKey: "env-key"},
			wantUser: "file-user",
			wantKey:  "env-key",
		},
		{
			name:     "flag overrides env",
			in:       Input{Username: "flag-user", SecretsFile: secrets},
			env:      map[string]string{EnvUsername: "env-user", EnvAPIKey: "env-key"},
			wantUser: "flag-user",
			wantKey:  "env-key",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := NewResolver(WithGetenv(env(c.env))).Resolve(c.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Username != c.wantUser || got.APIKey != c.wantKey {
				t.Fatalf("got %+v, want %s/%s", got, c.wantUser, c.wantKey)
			}
		})
	}
}

func TestResolveMissingValues(t *testing.T) {
	_, err := NewResolver(WithGetenv(env(nil))).Resolve(Input{Username: "u"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), EnvAPIKey) || strings.Contains(err.Error(), EnvUsername) {
		t.Fatalf("expected only the api key to be reported, got %v", err)
	}
}

func TestResolveOptionalSecretsFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	got, err := NewResolver(WithGetenv(env(nil))).Resolve(Input{Username: "u", APIKey: "k", SecretsFile: missing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Username != "u" {
		t.Fatalf("unexpected credentials %+v", got)
	}

	_, err = NewResolver(WithGetenv(env(nil))).Resolve(Input{Username: "u", APIKey: "k", SecretsFile: missing, SecretsRequired: true})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found for required secrets, got %v", err)
	}
}

func TestResolveInvalidSecretsFile(t *testing.T) {
	secrets := writeSecrets(t, "username: [unterminated\n")
	_, err := NewResolver(WithGetenv(env(nil))).Resolve(Input{SecretsFile: secrets})
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}
