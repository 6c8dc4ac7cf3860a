package httpclient

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

// ResponseData captures the response details and duration.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor performs signed GET requests against the terminology service.
type Executor struct {
	client   *resty.Client
	signer   *Signer
	basePath string
}

// ExecutorOption allows configuring an Executor.
type ExecutorOption func(*Executor)

// WithBaseURL points the executor at another origin (e.g. a test server).
// The signed host is not affected.
func WithBaseURL(baseURL string) ExecutorOption {
	return func(e *Executor) { e.client.SetBaseURL(strings.TrimRight(baseURL, "/")) }
}

// WithTimeout sets the timeout applied to each request.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.client.SetTimeout(timeout) }
}

// NewExecutor builds an Executor for svc on top of the tuned transport.
func NewExecutor(svc domain.ServiceConfig, signer *Signer, opts ...ExecutorOption) *Executor {
	cfg := ForService(svc)

	client := resty.NewWithClient(New(cfg)).
		SetBaseURL(svc.Scheme + "://" + svc.Host).
		SetTimeout(cfg.Timeout)

	e := &Executor{
		client:   client,
		signer:   signer,
		basePath: svc.BasePath,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RequestPath is the absolute path of an endpoint below the base path; it is
// also the path that gets signed.
func (e *Executor) RequestPath(endpoint string) string {
	return path.Join("/", e.basePath, endpoint)
}

// Get executes a signed GET for endpoint. Non-2xx responses are returned
// with their status; only transport failures are errors.
func (e *Executor) Get(ctx context.Context, endpoint string) (ResponseData, error) {
	p := e.RequestPath(endpoint)

	req := e.client.R().SetContext(ctx)
	if e.signer != nil {
		req.SetHeaders(e.signer.Headers(http.MethodGet, p))
	}

	start := time.Now()
	resp, err := req.Get(p)
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Duration: duration}, &domain.OpError{
			Op:   "httpclient.get",
			Kind: domain.KindRemote,
			Path: p,
			Err:  err,
		}
	}

	return ResponseData{
		Status:    resp.StatusCode(),
		Headers:   resp.Header().Clone(),
		BodyBytes: resp.Body(),
		Duration:  duration,
	}, nil
}
