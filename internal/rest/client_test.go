// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pullbindhq/pullbind/internal/config"
	binderrors "github.com/pullbindhq/pullbind/internal/errors"
)

func testConfig(base string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.GitHub.APIEndpoint = base
	return cfg
}

func TestClientURL(t *testing.T) {
	c := NewClient("token", testConfig("https://api.github.com/"))
	got := c.URL("repos", "octocat", "hello", "pulls", "7")
	want := "https://api.github.com/repos/octocat/hello/pulls/7"
	if got != want {
		t.Errorf("URL = %q, want %q", got, want)
	}
}

func TestGetCapturesResponseMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"abc123"`)
		w.Header().Set("Link", `<https://api.github.com/x?page=2>; rel="next"`)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	resp, err := c.Get(context.Background(), srv.URL+"/x", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !resp.Success() {
		t.Errorf("Success = false for status %d", resp.StatusCode)
	}
	if resp.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want the header value", resp.ETag)
	}
	if resp.NextPage != "https://api.github.com/x?page=2" {
		t.Errorf("NextPage = %q, want the rel=next target", resp.NextPage)
	}
}

func TestGetNotModified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"abc123"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	header := http.Header{}
	header.Set("If-None-Match", `"abc123"`)
	resp, err := c.Get(context.Background(), srv.URL+"/x", header)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !resp.NotModified {
		t.Errorf("NotModified = false for status %d", resp.StatusCode)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("test-token", testConfig(srv.URL))
	if _, err := c.Get(context.Background(), srv.URL+"/x", nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotAccept != MediaTypeJSON {
		t.Errorf("Accept = %q, want %q", gotAccept, MediaTypeJSON)
	}
	if !strings.HasPrefix(gotUA, "pullbind/") {
		t.Errorf("User-Agent = %q, want pullbind/<version>", gotUA)
	}
}

func TestUnauthenticatedOmitsAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("", testConfig(srv.URL))
	if _, err := c.Get(context.Background(), srv.URL+"/x", nil); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none without a token", gotAuth)
	}
}

func TestAcceptOverrideSurvives(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("diff"))
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	header := http.Header{}
	header.Set("Accept", "application/vnd.github.diff")
	if _, err := c.Get(context.Background(), srv.URL+"/x", header); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotAccept != "application/vnd.github.diff" {
		t.Errorf("Accept = %q, want the caller's override", gotAccept)
	}
}

func TestPatchSendsJSON(t *testing.T) {
	var gotMethod, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	_, err := c.Patch(context.Background(), srv.URL+"/x", map[string]string{"state": "closed"})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody != `{"state":"closed"}` {
		t.Errorf("body = %q, want the encoded payload", gotBody)
	}
}

func TestPutNilPayloadSendsEmptyBody(t *testing.T) {
	var gotLength int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	if _, err := c.Put(context.Background(), srv.URL+"/x", nil); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if gotLength != 0 {
		t.Errorf("ContentLength = %d, want 0 for a nil payload", gotLength)
	}
}

func TestErrorStatusesAreNotErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	resp, err := c.Get(context.Background(), srv.URL+"/x", nil)
	if err != nil {
		t.Fatalf("Get returned error %v for a 404, want status interpretation left to the caller", err)
	}
	if resp.Success() {
		t.Error("Success = true for a 404")
	}
}

func TestStatusErrorUnwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, binderrors.ErrInvalidToken},
		{http.StatusNotFound, binderrors.ErrNotFound},
		{http.StatusGone, binderrors.ErrNotFound},
		{http.StatusTooManyRequests, binderrors.ErrRateLimit},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := NewStatusError(&Response{StatusCode: tt.status}, "https://api.github.com/x")
			if !errors.Is(err, tt.want) {
				t.Errorf("status %d does not unwrap to %v", tt.status, tt.want)
			}
		})
	}
}

func TestStatusErrorSnippet(t *testing.T) {
	resp := &Response{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"message": "Validation Failed"}`),
	}
	err := NewStatusError(resp, "https://api.github.com/x")
	if !strings.Contains(err.Error(), "Validation Failed") {
		t.Errorf("error %q should carry a body snippet", err.Error())
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("error %q should carry the status code", err.Error())
	}
}

func TestRateLimitFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Ratelimit-Limit", "5000")
		w.Header().Set("X-Ratelimit-Remaining", "0")
		w.Header().Set("X-Ratelimit-Reset", fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()))
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RateLimit.AutoWait = false

	c := NewClient("token", cfg)
	_, err := c.Get(context.Background(), srv.URL+"/x", nil)
	if !errors.Is(err, binderrors.ErrRateLimit) {
		t.Errorf("error = %v, want ErrRateLimit", err)
	}
}

func TestPlainForbiddenIsNotRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	resp, err := c.Get(context.Background(), srv.URL+"/x", nil)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403 passed through", resp.StatusCode)
	}
}

func TestIsRetryableStatusCode(t *testing.T) {
	retryable := []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
	for _, code := range retryable {
		if !isRetryableStatusCode(code) {
			t.Errorf("isRetryableStatusCode(%d) = false, want true", code)
		}
	}
	terminal := []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError, http.StatusUnprocessableEntity}
	for _, code := range terminal {
		if isRetryableStatusCode(code) {
			t.Errorf("isRetryableStatusCode(%d) = true, want false", code)
		}
	}
}

func TestMutationsAreNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient("token", testConfig(srv.URL))
	resp, err := c.Patch(context.Background(), srv.URL+"/x", map[string]string{"state": "closed"})
	if err != nil {
		t.Fatalf("Patch failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503 surfaced directly", resp.StatusCode)
	}
	if attempts != 1 {
		t.Errorf("server saw %d attempts for a PATCH, want exactly 1", attempts)
	}
}

func TestNetworkFailureMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient("token", testConfig(url))
	_, err := c.Patch(context.Background(), url+"/x", map[string]string{"a": "b"})
	if !errors.Is(err, binderrors.ErrNetworkFailure) {
		t.Errorf("error = %v, want ErrNetworkFailure", err)
	}
}
