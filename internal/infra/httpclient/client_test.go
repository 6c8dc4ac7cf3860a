package httpclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

func TestForService(t *testing.T) {
	cases := []struct {
		name           string
		timeout        time.Duration
		wantTimeout    time.Duration
		wantRespHeader time.Duration
	}{
		{"default", 0, 10 * time.Minute, 8 * time.Minute},
		{"longer", 30 * time.Minute, 30 * time.Minute, 8 * time.Minute},
		{"shorter than header timeout", 2 * time.Minute, 2 * time.Minute, 2 * time.Minute},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := ForService(domain.ServiceConfig{Timeout: c.timeout})
			if cfg.Timeout != c.wantTimeout {
				t.Fatalf("Timeout = %s, want %s", cfg.Timeout, c.wantTimeout)
			}
			if cfg.ResponseHeader != c.wantRespHeader {
				t.Fatalf("ResponseHeader = %s, want %s", cfg.ResponseHeader, c.wantRespHeader)
			}
		})
	}
}

func TestNew_AppliesTransportSettings(t *testing.T) {
	cfg := ForService(domain.ServiceConfig{Timeout: time.Minute})
	c := New(cfg)

	if c.Timeout != time.Minute {
		t.Fatalf("client timeout = %s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("unexpected transport %T", c.Transport)
	}
	if tr.ResponseHeaderTimeout != time.Minute {
		t.Fatalf("ResponseHeaderTimeout = %s", tr.ResponseHeaderTimeout)
	}
	if tr.MaxIdleConnsPerHost != 2 {
		t.Fatalf("MaxIdleConnsPerHost = %d", tr.MaxIdleConnsPerHost)
	}
}
