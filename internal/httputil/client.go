// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/litfetch/pkg/types"
)

// Transport sets a default User-Agent header and paces outbound requests
// through an optional rate limiter. It wraps Base (http.DefaultTransport
// when nil).
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
	Limiter   *rate.Limiter
}

// RoundTrip waits for the limiter, clones the request, and applies the
// User-Agent header unless the caller already set one.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil {
		if err := t.Limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	req = req.Clone(req.Context())
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// NewClient builds the HTTP client shared by all remote calls: request
// timeout, identification header, and request pacing. The client is
// constructed once by the CLI and passed to the stages that need it, so
// no process-wide session state exists.
func NewClient(cfg types.HTTPConfig) *http.Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return &http.Client{
		Timeout: cfg.Timeout,
		Transport: &Transport{
			UserAgent: cfg.UserAgent,
			Limiter:   limiter,
		},
	}
}
