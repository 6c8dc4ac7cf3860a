package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

type Config struct {
	// Timeout bounds a whole request including reading the body. A context
	// deadline can still shorten it.
	Timeout time.Duration

	// Transport / dial timeouts.
	DialTimeout     time.Duration
	KeepAlive       time.Duration
	TLSHandshake    time.Duration
	ResponseHeader  time.Duration
	ExpectContinue  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// DefaultConfig is tuned for the full concept export, which the service
// assembles for several minutes before sending headers.
func DefaultConfig() Config {
	return Config{
		Timeout:             10 * time.Minute,
		DialTimeout:         10 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        10 * time.Second,
		ResponseHeader:      8 * time.Minute,
		ExpectContinue:      1 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        4,
		MaxIdleConnsPerHost: 2,
	}
}

// ForService applies the configured service timeout. The response header
// timeout never exceeds the overall timeout.
func ForService(svc domain.ServiceConfig) Config {
	cfg := DefaultConfig()
	if svc.Timeout > 0 {
		cfg.Timeout = svc.Timeout
	}
	if cfg.ResponseHeader > cfg.Timeout {
		cfg.ResponseHeader = cfg.Timeout
	}
	return cfg
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: cfg.KeepAlive,
	}

	tr := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: dialer.DialContext,

		ForceAttemptHTTP2: true,

		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,

		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
		ExpectContinueTimeout: cfg.ExpectContinue,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   cfg.Timeout,
	}
}
