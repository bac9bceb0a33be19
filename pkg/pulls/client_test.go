// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pullbindhq/pullbind/internal/config"
	binderrors "github.com/pullbindhq/pullbind/internal/errors"
)

func TestClientGet(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(prJSON("http://" + r.Host))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "token")
	pr, err := c.Get(context.Background(), "octocat", "hello", 7)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if gotPath != "/repos/octocat/hello/pulls/7" {
		t.Errorf("path = %q, want the pull request resource", gotPath)
	}
	if pr.Number != 7 || pr.Title != "Add feature" {
		t.Errorf("pull request = #%d %q, want #7 \"Add feature\"", pr.Number, pr.Title)
	}
}

func TestClientGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "token")
	_, err := c.Get(context.Background(), "octocat", "gone", 1)
	if !errors.Is(err, binderrors.ErrNotFound) {
		t.Errorf("Get error = %v, want ErrNotFound", err)
	}
}

func TestClientList(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprintf(w, `[%s, %s]`,
			prJSON("http://"+r.Host),
			prJSON("http://"+r.Host))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "token")
	it := c.List("octocat", "hello", ListOptions{State: "closed", Limit: -1})

	var numbers []int
	for it.Next(context.Background()) {
		numbers = append(numbers, it.Value().Number)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("List iteration failed: %v", err)
	}

	if len(numbers) != 2 {
		t.Fatalf("yielded %d pull requests, want 2", len(numbers))
	}
	if got := gotQuery["state"]; len(got) != 1 || got[0] != "closed" {
		t.Errorf("state query = %v, want [closed]", got)
	}
	if got := gotQuery["per_page"]; len(got) != 1 || got[0] != "30" {
		t.Errorf("per_page query = %v, want the default page size", got)
	}
}

func TestClientListPerRepoPageSize(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.GitHub.APIEndpoint = srv.URL
	cfg.Repositories = map[string]config.RepoConfig{
		"octocat/hello": {PageSize: 100},
	}

	c := NewClient("token", cfg)
	it := c.List("octocat", "hello", ListOptions{Limit: -1})
	for it.Next(context.Background()) {
	}
	if err := it.Err(); err != nil {
		t.Fatalf("List iteration failed: %v", err)
	}
	if gotPerPage != "100" {
		t.Errorf("per_page = %q, want the per-repository override 100", gotPerPage)
	}
}

func TestClientListElementsAreOperational(t *testing.T) {
	mergeCalled := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			mergeCalled = true
			w.Write([]byte(`{"sha": "abc", "merged": true}`))
			return
		}
		fmt.Fprintf(w, `[%s]`, prJSON("http://"+r.Host))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, "token")
	it := c.List("octocat", "hello", ListOptions{Limit: -1})
	if !it.Next(context.Background()) {
		t.Fatalf("Next failed: %v", it.Err())
	}

	merged, err := it.Value().Merge(context.Background(), "")
	if err != nil {
		t.Fatalf("Merge on a listed pull request failed: %v", err)
	}
	if !merged || !mergeCalled {
		t.Error("listed pull request should be fully operational for mutations")
	}
}

func TestNewPullRequestFromSnapshot(t *testing.T) {
	c := newTestClient(t, "https://api.github.com", "token")
	pr, err := c.NewPullRequest(prJSON("https://api.github.com"))
	if err != nil {
		t.Fatalf("NewPullRequest failed: %v", err)
	}
	if pr.ID != 34778301 {
		t.Errorf("ID = %d, want 34778301", pr.ID)
	}
	if pr.Links.Self != "https://api.github.com/repos/octocat/hello/pulls/7" {
		t.Errorf("Links.Self = %q, want the canonical URL", pr.Links.Self)
	}
}

func TestNewPullRequestMalformed(t *testing.T) {
	c := newTestClient(t, "https://api.github.com", "token")
	if _, err := c.NewPullRequest([]byte(`{not json`)); err == nil {
		t.Error("NewPullRequest accepted malformed JSON")
	}
}

func TestClientAuthenticated(t *testing.T) {
	if !newTestClient(t, "https://api.github.com", "token").Authenticated() {
		t.Error("client with a token should report authenticated")
	}
	if newTestClient(t, "https://api.github.com", "").Authenticated() {
		t.Error("client without a token should not report authenticated")
	}
}
