package httpclient

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/skfit-uni-luebeck/EDQM2FHIR/internal/domain"
)

const (
	HeaderAPIKey = "X-STAPI-KEY"
	HeaderDate   = "Date"

	// signatureLen is the number of trailing base64 characters sent as the signature.
	signatureLen = 22
)

// Signer produces the authentication headers of the terminology service:
// the canonical string "METHOD&path&host&date" is signed with HMAC-SHA512
// keyed by the API key.
type Signer struct {
	Username string
	APIKey   string
	Host     string

	now func() time.Time
}

type SignerOption func(*Signer)

// WithNow overrides the clock used for the Date header.
func WithNow(now func() time.Time) SignerOption {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSigner(username, apiKey, host string, opts ...SignerOption) (*Signer, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(apiKey) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.signer",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("username and api key are required"),
		}
	}
	s := &Signer{
		Username: username,
		APIKey:   apiKey,
		Host:     host,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Signature signs message and returns the truncated base64 digest.
func Signature(apiKey, message string) string {
	mac := hmac.New(sha512.New, []byte(apiKey))
	mac.Write([]byte(message))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if len(sig) > signatureLen {
		sig = sig[len(sig)-signatureLen:]
	}
	return sig
}

// Headers returns the headers for a request of method to the absolute
// request path (e.g. "/standardterms/api/v1/classes").
func (s *Signer) Headers(method, path string) map[string]string {
	date := s.now().UTC().Format(http.TimeFormat)
	msg := strings.Join([]string{strings.ToUpper(method), path, s.Host, date}, "&")

	return map[string]string{
		HeaderDate:   date,
		HeaderAPIKey: s.Username + "|" + Signature(s.APIKey, msg),
		"Accept":     "application/json",
	}
}
