// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package ratelimit detects GitHub API rate limiting from REST response
// headers and provides a context-aware waiter for the reset window.
package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Info describes an active rate limit window as reported by the API.
type Info struct {
	// Limit is the total request quota for the current window.
	Limit int
	// Remaining is the number of requests left in the window.
	Remaining int
	// Reset is the time at which the window resets.
	Reset time.Time
}

// Detector inspects HTTP responses for GitHub rate limit signals.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// IsRateLimited reports whether the response indicates the primary rate
// limit has been exhausted. GitHub signals this with a 403 or 429 status
// and X-RateLimit-Remaining: 0.
func (d *Detector) IsRateLimited(resp *http.Response) bool {
	if resp == nil {
		return false
	}
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return false
	}
	return resp.Header.Get("X-Ratelimit-Remaining") == "0"
}

// Detect extracts rate limit information from the response headers.
// Headers that are absent or unparseable leave the corresponding field zero.
func (d *Detector) Detect(resp *http.Response) Info {
	var info Info
	if resp == nil {
		return info
	}
	if v, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Limit")); err == nil {
		info.Limit = v
	}
	if v, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Remaining")); err == nil {
		info.Remaining = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get("X-Ratelimit-Reset"), 10, 64); err == nil {
		info.Reset = time.Unix(v, 0)
	}
	return info
}
