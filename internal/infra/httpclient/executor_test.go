package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func testService() domain.ServiceConfig {
	return domain.ServiceConfig{
		Scheme:   "https",
		Host:     "standardterms.edqm.eu",
		BasePath: "/standardterms/api/v1/",
	}
}

func TestExecutorSignsRequestPath(t *testing.T) {
	fixed := time.Date(2022, 2, 7, 14, 20, 0, 0, time.UTC)
	signer, err := NewSigner("u", "mysecret", "standardterms.edqm.eu", WithNow(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("signer: %v", err)
	}

	var gotPath, gotKey, gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get(HeaderAPIKey)
		gotDate = r.Header.Get(HeaderDate)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer server.Close()

	exec := NewExecutor(testService(), signer, WithBaseURL(server.URL))
	resp, err := exec.Get(context.Background(), "languages")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/standardterms/api/v1/languages" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "u|Z3DZ5tAtcmHGjeA4MUQw==" {
		t.Fatalf("unexpected key header %q", gotKey)
	}
	if gotDate != "Mon, 07 Feb 2022 14:20:00 GMT" {
		t.Fatalf("unexpected date header %q", gotDate)
	}
	if resp.Status != http.StatusOK || string(resp.BodyBytes) != `{"content":[]}` {
		t.Fatalf("unexpected response %d %q", resp.Status, resp.BodyBytes)
	}
}

func TestExecutorReturnsNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	exec := NewExecutor(testService(), nil, WithBaseURL(server.URL))
	resp, err := exec.Get(context.Background(), "/classes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Status)
	}
}

func TestExecutorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	exec := NewExecutor(testService(), nil, WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
	resp, err := exec.Get(context.Background(), "classes")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !domain.IsKind(err, domain.KindRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if resp.Duration <= 0 {
		t.Fatalf("expected duration to be set")
	}
}

func TestRequestPath(t *testing.T) {
	exec := NewExecutor(domain.ServiceConfig{Scheme: "https", Host: "h", BasePath: "api/v1"}, nil)
	if got := exec.RequestPath("/full_data_by_class/1/1/1"); got != "/api/v1/full_data_by_class/1/1/1" {
		t.Fatalf("unexpected path %q", got)
	}
}
