// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package rest

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pullbindhq/pullbind/internal/config"
	"github.com/pullbindhq/pullbind/internal/ratelimit"
	"github.com/pullbindhq/pullbind/pkg/version"
)

// headerTransport sets standard headers and applies a response size limit.
type headerTransport struct {
	base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	req.Header.Set("User-Agent", fmt.Sprintf("pullbind/%s", version.Version))
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", MediaTypeJSON)
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024,
		}
	}

	return resp, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// rateLimitTransport adds rate limit detection and handling to HTTP requests.
// It checks responses for the primary rate limit headers and either waits for
// the reset window or fails with a rate limit error, per configuration.
type rateLimitTransport struct {
	base     http.RoundTripper
	detector *ratelimit.Detector
	waiter   *ratelimit.Waiter
	config   *config.RateLimitConfig
}

// newRateLimitTransport creates a new transport with rate limit handling.
func newRateLimitTransport(base http.RoundTripper, cfg *config.RateLimitConfig) http.RoundTripper {
	return &rateLimitTransport{
		base:     base,
		detector: ratelimit.NewDetector(),
		waiter:   ratelimit.NewWaiter(cfg.ShowProgress, nil),
		config:   cfg,
	}
}

// RoundTrip implements http.RoundTripper with rate limit handling.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if t.detector.IsRateLimited(resp) {
		info := t.detector.Detect(resp)
		resp.Body.Close()

		if !t.config.AutoWait {
			return nil, &rateLimitError{info: info}
		}

		if err := t.waiter.Wait(req.Context(), info); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}

		// Retry the request after waiting
		return t.RoundTrip(req.Clone(req.Context()))
	}

	return resp, nil
}

// retryTransport adds exponential backoff retry logic for transient failures.
// Only GET requests are retried: replaying a mutation after an ambiguous
// failure could apply it twice.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
}

// newRetryTransport creates a new transport with retry logic.
func newRetryTransport(base http.RoundTripper) http.RoundTripper {
	return &retryTransport{
		base:       base,
		maxRetries: 5,
	}
}

// RoundTrip implements http.RoundTripper with retry logic.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	var lastErr error
	backoff := time.Second

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		// Clone request for each attempt
		clonedReq := req.Clone(req.Context())

		resp, err := t.base.RoundTrip(clonedReq)

		if err == nil && !isRetryableStatusCode(resp.StatusCode) {
			return resp, nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("received status %d", resp.StatusCode)
			resp.Body.Close()
		}

		// Don't retry on the last attempt
		if attempt < t.maxRetries-1 {
			select {
			case <-time.After(backoff):
				backoff *= 2
				if backoff > 30*time.Second {
					backoff = 30 * time.Second
				}
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", t.maxRetries, lastErr)
}

// isRetryableStatusCode checks if an HTTP status code should trigger a retry.
func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
