// Package stapi is the client of the EDQM Standard Terms API.
package stapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/infra/httpclient"
	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/ports"
)

const (
	EndpointClasses   = "/classes"
	EndpointLanguages = "/languages"
	// EndpointFullData returns every concept of every class.
	EndpointFullData = "/full_data_by_class/1/1/1"
)

// Getter performs a GET against an endpoint of the service.
type Getter interface {
	Get(ctx context.Context, endpoint string) (httpclient.ResponseData, error)
}

type Client struct {
	exec        Getter
	contentPath string
	log         *slog.Logger
}

type Option func(*Client)

// WithContentPath overrides the JSONPath selecting the record array.
func WithContentPath(p string) Option {
	return func(c *Client) {
		if p != "" {
			c.contentPath = p
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func New(exec Getter, opts ...Option) *Client {
	c := &Client{
		exec:        exec,
		contentPath: DefaultContentPath,
		log:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ ports.TerminologyService = (*Client)(nil)
	_ ports.ConceptSource      = (*Client)(nil)
)

func (c *Client) ConceptClasses(ctx context.Context) ([]domain.ConceptClass, error) {
	body, err := c.get(ctx, EndpointClasses)
	if err != nil {
		return nil, err
	}
	var dtos []classDTO
	if err := decodeContent(body, c.contentPath, &dtos); err != nil {
		return nil, decodeError(EndpointClasses, err)
	}
	out := make([]domain.ConceptClass, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.ConceptClass{Code: d.Code, DisplayName: d.Name})
	}
	return out, nil
}

func (c *Client) Languages(ctx context.Context) ([]domain.Language, error) {
	body, err := c.get(ctx, EndpointLanguages)
	if err != nil {
		return nil, err
	}
	var dtos []languageDTO
	if err := decodeContent(body, c.contentPath, &dtos); err != nil {
		return nil, decodeError(EndpointLanguages, err)
	}
	out := make([]domain.Language, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, domain.Language{Code: d.Code, Name: d.Name})
	}
	return out, nil
}

// Export returns the raw body of the full concept export.
func (c *Client) Export(ctx context.Context) ([]byte, error) {
	c.log.Info("requesting full concept export, this generally takes a while")
	return c.get(ctx, EndpointFullData)
}

func (c *Client) Concepts(ctx context.Context) ([]domain.RawConcept, error) {
	body, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeConcepts(body, c.contentPath)
}

// ContentPath is the JSONPath used to select records.
func (c *Client) ContentPath() string { return c.contentPath }

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.exec.Get(ctx, endpoint)
	if err != nil {
		c.log.Error("terminology service request failed", "endpoint", endpoint, "error", err.Error())
		return nil, err
	}

	c.log.Debug("terminology service response",
		"endpoint", endpoint,
		"status", resp.Status,
		"bytes", len(resp.BodyBytes),
		"duration_ms", resp.Duration.Milliseconds(),
	)

	if resp.Status != http.StatusOK {
		msg := errorMessage(resp.BodyBytes)
		c.log.Warn("terminology service returned non-success status",
			"endpoint", endpoint,
			"status", resp.Status,
			"message", msg,
		)
		err := fmt.Errorf("status %d", resp.Status)
		if msg != "" {
			err = fmt.Errorf("status %d: %s", resp.Status, msg)
		}
		return nil, &domain.OpError{
			Op:   "stapi.get",
			Kind: domain.KindRemote,
			Path: endpoint,
			Err:  err,
		}
	}
	return resp.BodyBytes, nil
}

func decodeError(endpoint string, err error) error {
	return &domain.OpError{
		Op:   "stapi.decode",
		Kind: domain.KindRemote,
		Path: endpoint,
		Err:  err,
	}
}
