// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pullbindhq/pullbind/internal/config"
	"github.com/pullbindhq/pullbind/internal/rest"
)

// Client is the entry point for the pull request bindings. The zero value is
// not usable; construct with NewClient.
type Client struct {
	rest *rest.Client
	cfg  *config.Config
}

// NewClient creates a binding client. An empty token yields an
// unauthenticated client: reads work against public repositories, mutations
// fail before any request is sent.
func NewClient(token string, cfg *config.Config) *Client {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Client{
		rest: rest.NewClient(token, cfg),
		cfg:  cfg,
	}
}

// Authenticated reports whether the client carries credentials.
func (c *Client) Authenticated() bool {
	return c.rest.Authenticated()
}

// Get fetches a single pull request by repository and number.
func (c *Client) Get(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	u := c.rest.URL("repos", owner, repo, "pulls", strconv.Itoa(number))
	resp, err := c.rest.Get(ctx, u, nil)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, rest.NewStatusError(resp, u)
	}
	return newPullRequest(c.rest, resp.Body)
}

// NewPullRequest constructs a pull request binding from a JSON payload
// obtained elsewhere, for example an ndjson export or a webhook delivery.
// The binding is fully operational: its links are derived from the payload's
// canonical URL, so mutations and sub-resource iteration work as if it had
// been fetched directly.
func (c *Client) NewPullRequest(data []byte) (*PullRequest, error) {
	return newPullRequest(c.rest, data)
}

// ListOptions controls List.
type ListOptions struct {
	// State filters by pull request state: "open", "closed", or "all".
	// Empty means the server default.
	State string

	// Limit caps the number of pull requests yielded. Negative means
	// unbounded; zero yields nothing.
	Limit int

	// ETag resumes a prior iteration: when the collection is unchanged the
	// iterator yields an empty sequence without an error.
	ETag string
}

// List returns a lazy iterator over the repository's pull requests. No
// request is sent until the first Next call.
func (c *Client) List(owner, repo string, opts ListOptions) *Iterator[*PullRequest] {
	u := c.rest.URL("repos", owner, repo, "pulls")

	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.cfg.GetPageSize(owner+"/"+repo)))
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	u = u + "?" + q.Encode()

	decode := func(raw json.RawMessage) (*PullRequest, error) {
		pr := &PullRequest{client: c.rest}
		if err := pr.ApplySnapshot(raw); err != nil {
			return nil, fmt.Errorf("failed to decode pull request in listing: %w", err)
		}
		return pr, nil
	}
	return newIterator(c.rest, u, opts.ETag, opts.Limit, decode)
}
