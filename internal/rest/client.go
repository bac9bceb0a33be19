// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package rest implements the authenticated HTTP substrate for the GitHub
// REST API: request execution with auth and retry transports, response
// capture including ETag validators and Link-header pagination metadata,
// and status-to-error mapping.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/pullbindhq/pullbind/internal/apierror"
	"github.com/pullbindhq/pullbind/internal/config"
	binderrors "github.com/pullbindhq/pullbind/internal/errors"
	"github.com/pullbindhq/pullbind/internal/ratelimit"
)

// MediaTypeJSON is the default Accept media type for API requests.
const MediaTypeJSON = "application/vnd.github+json"

// Client executes authenticated requests against the GitHub REST API.
// It is safe to share across resources; each request is independent.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	authenticated bool
	inspector     apierror.Inspector
}

// Response is the decoded-or-raw result of a single API call. Status
// interpretation is left to the caller; only transport-level failures and
// rate limiting surface as errors from the verb methods.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// ETag is the entity validator of this response, usable as a
	// continuation token for a later conditional request.
	ETag string

	// NextPage is the URL of the next page from the Link header, or ""
	// when the server reports no further pages.
	NextPage string

	// NotModified is true when a conditional request short-circuited
	// with 304.
	NotModified bool
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient creates a REST client. An empty token yields an unauthenticated
// client usable for reads against public resources; mutating operations
// check Authenticated before issuing requests. The configuration supplies
// the API endpoint and rate limit behavior.
func NewClient(token string, cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	base := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	var rt http.RoundTripper = base
	if token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   rt,
		}
	}
	rt = &headerTransport{base: rt}
	rt = newRateLimitTransport(rt, &cfg.RateLimit)
	rt = newRetryTransport(rt)

	return &Client{
		httpClient:    &http.Client{Transport: rt},
		baseURL:       strings.TrimSuffix(cfg.GitHub.APIEndpoint, "/"),
		authenticated: token != "",
		inspector:     apierror.NewInspector(),
	}
}

// Authenticated reports whether the client carries credentials.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// BaseURL returns the configured API endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL joins path segments onto the configured API endpoint.
func (c *Client) URL(segments ...string) string {
	return c.baseURL + "/" + strings.Join(segments, "/")
}

// Get issues a GET request. The optional header is merged into the request;
// use it for Accept media-type overrides and If-None-Match validators.
func (c *Client) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, header, nil)
}

// Patch issues a PATCH request with a JSON-encoded payload.
func (c *Client) Patch(ctx context.Context, url string, payload interface{}) (*Response, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPatch, url, nil, body)
}

// Put issues a PUT request with a JSON-encoded payload. A nil payload sends
// an empty body.
func (c *Client) Put(ctx context.Context, url string, payload interface{}) (*Response, error) {
	body, err := encodePayload(payload)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, url, nil, body)
}

func encodePayload(payload interface{}) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (c *Client) do(ctx context.Context, method, url string, header http.Header, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s %s: %w", method, url, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.inspector.IsNetworkError(err) {
			return nil, fmt.Errorf("%s %s: %v: %w", method, url, err, binderrors.ErrNetworkFailure)
		}
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Body:        data,
		ETag:        resp.Header.Get("ETag"),
		NextPage:    parseNextLink(resp.Header.Get("Link")),
		NotModified: resp.StatusCode == http.StatusNotModified,
	}, nil
}

// StatusError reports an unexpected HTTP status for a required operation.
// It unwraps to the matching sentinel so callers can classify with errors.Is.
type StatusError struct {
	StatusCode int
	URL        string
	Snippet    string
}

// NewStatusError builds a StatusError from a response, keeping a short body
// snippet for diagnostics.
func NewStatusError(resp *Response, url string) *StatusError {
	snippet := strings.TrimSpace(string(resp.Body))
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	return &StatusError{StatusCode: resp.StatusCode, URL: url, Snippet: snippet}
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("received status %d for %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("received status %d for %s: %s", e.StatusCode, e.URL, e.Snippet)
}

// Unwrap maps well-known statuses to sentinel errors.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return binderrors.ErrInvalidToken
	case http.StatusNotFound, http.StatusGone:
		return binderrors.ErrNotFound
	case http.StatusTooManyRequests:
		return binderrors.ErrRateLimit
	}
	return nil
}

// rateLimitError carries the reset time alongside the sentinel.
type rateLimitError struct {
	info ratelimit.Info
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, resets at %s", e.info.Reset.Format("15:04:05"))
}

func (e *rateLimitError) Unwrap() error {
	return binderrors.ErrRateLimit
}
