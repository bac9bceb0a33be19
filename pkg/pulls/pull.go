// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yosida95/uritemplate/v3"

	binderrors "github.com/pullbindhq/pullbind/internal/errors"
	"github.com/pullbindhq/pullbind/internal/rest"
)

// Accept media types for the raw diff and patch renditions of a pull
// request.
const (
	mediaTypeDiff  = "application/vnd.github.diff"
	mediaTypePatch = "application/vnd.github.patch"
)

// PullRequest is a typed, attribute-stable snapshot of a pull request
// resource. It is constructed once from a JSON payload; ApplySnapshot is the
// only supported mutation path and runs after every successful write
// operation.
type PullRequest struct {
	client *rest.Client

	ID     int64  `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
	State  string `json:"state"`

	Body     string `json:"body"`
	BodyHTML string `json:"body_html,omitempty"`
	BodyText string `json:"body_text,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`

	Additions      int `json:"additions"`
	Deletions      int `json:"deletions"`
	CommitCount    int `json:"commits"`
	CommentCount   int `json:"comments"`
	ReviewComments int `json:"review_comments"`

	Base *Endpoint `json:"base,omitempty"`
	Head *Endpoint `json:"head,omitempty"`

	User     *User `json:"user,omitempty"`
	Assignee *User `json:"assignee,omitempty"`
	MergedBy *User `json:"merged_by,omitempty"`

	// Mergeable is the tri-state mergeability computed asynchronously by
	// the remote system: nil while the computation is pending.
	Mergeable      *bool  `json:"mergeable,omitempty"`
	MergeableState string `json:"mergeable_state,omitempty"`
	MergeCommitSHA string `json:"merge_commit_sha,omitempty"`

	Labels []Label `json:"labels,omitempty"`

	Links Links `json:"_links"`

	HTMLURL     string `json:"html_url"`
	DiffURL     string `json:"diff_url,omitempty"`
	PatchURL    string `json:"patch_url,omitempty"`
	IssueURL    string `json:"issue_url"`
	StatusesURL string `json:"statuses_url,omitempty"`

	// LabelsURLTemplate expands with "name"; ReviewCommentURLTemplate
	// expands with "number". Nil when the payload carried no template.
	LabelsURLTemplate        *uritemplate.Template `json:"-"`
	ReviewCommentURLTemplate *uritemplate.Template `json:"-"`

	repoOwner string
	repoName  string
	repoOK    bool
}

type prPayload struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Number   int    `json:"number"`
	Title    string `json:"title"`
	State    string `json:"state"`
	Body     string `json:"body"`
	BodyHTML string `json:"body_html"`
	BodyText string `json:"body_text"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	ClosedAt  string `json:"closed_at"`
	MergedAt  string `json:"merged_at"`

	Additions      int `json:"additions"`
	Deletions      int `json:"deletions"`
	Commits        int `json:"commits"`
	Comments       int `json:"comments"`
	ReviewComments int `json:"review_comments"`

	Base *endpointPayload `json:"base"`
	Head *endpointPayload `json:"head"`

	User     *userPayload `json:"user"`
	Assignee *userPayload `json:"assignee"`
	MergedBy *userPayload `json:"merged_by"`

	Mergeable      *bool  `json:"mergeable"`
	MergeableState string `json:"mergeable_state"`
	MergeCommitSHA string `json:"merge_commit_sha"`

	Labels    []labelPayload `json:"labels"`
	LabelsURL string         `json:"labels_url"`

	HTMLURL           string `json:"html_url"`
	DiffURL           string `json:"diff_url"`
	PatchURL          string `json:"patch_url"`
	IssueURL          string `json:"issue_url"`
	StatusesURL       string `json:"statuses_url"`
	ReviewCommentURL  string `json:"review_comment_url"`
	ReviewCommentsURL string `json:"review_comments_url"`
	CommentsURL       string `json:"comments_url"`
	CommitsURL        string `json:"commits_url"`
}

func newPullRequest(client *rest.Client, data []byte) (*PullRequest, error) {
	p := &PullRequest{client: client}
	if err := p.ApplySnapshot(data); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplySnapshot fully replaces the resource state from a fresh JSON payload.
// Construction and refresh share this one code path; it is idempotent and
// has no side effects beyond attribute replacement.
func (p *PullRequest) ApplySnapshot(data []byte) error {
	var raw prPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode pull request payload: %w", err)
	}

	client := p.client
	*p = PullRequest{
		client: client,

		ID:       raw.ID,
		Number:   raw.Number,
		Title:    raw.Title,
		State:    raw.State,
		Body:     raw.Body,
		BodyHTML: raw.BodyHTML,
		BodyText: raw.BodyText,

		CreatedAt: parseTime(raw.CreatedAt),
		UpdatedAt: parseTime(raw.UpdatedAt),
		ClosedAt:  parseTime(raw.ClosedAt),
		MergedAt:  parseTime(raw.MergedAt),

		Additions:      raw.Additions,
		Deletions:      raw.Deletions,
		CommitCount:    raw.Commits,
		CommentCount:   raw.Comments,
		ReviewComments: raw.ReviewComments,

		Base: convertEndpoint(raw.Base, DirectionBase),
		Head: convertEndpoint(raw.Head, DirectionHead),

		User:     convertUser(raw.User),
		Assignee: convertUser(raw.Assignee),
		MergedBy: convertUser(raw.MergedBy),

		Mergeable:      raw.Mergeable,
		MergeableState: raw.MergeableState,
		MergeCommitSHA: raw.MergeCommitSHA,

		HTMLURL:     raw.HTMLURL,
		DiffURL:     raw.DiffURL,
		PatchURL:    raw.PatchURL,
		IssueURL:    raw.IssueURL,
		StatusesURL: raw.StatusesURL,

		LabelsURLTemplate:        parseTemplate(raw.LabelsURL),
		ReviewCommentURLTemplate: parseTemplate(raw.ReviewCommentURL),
	}

	if len(raw.Labels) > 0 {
		p.Labels = make([]Label, 0, len(raw.Labels))
		for _, l := range raw.Labels {
			p.Labels = append(p.Labels, Label(l))
		}
	}

	// The payload's _links block is not consumed: every link is derivable
	// from the canonical API URL, so the map is reconstructed instead.
	p.Links = Links{
		Self:           raw.URL,
		Comments:       joinURL(issuePath(raw.URL), "comments"),
		Issue:          issuePath(raw.URL),
		HTML:           raw.HTMLURL,
		ReviewComments: joinURL(raw.URL, "comments"),
	}

	p.repoOwner, p.repoName, p.repoOK = parseRepository(raw.IssueURL)

	return nil
}

// Equal reports identity equality by pull request id.
func (p *PullRequest) Equal(other *PullRequest) bool {
	return other != nil && p.ID == other.ID
}

// Repository returns the (owner, repo) pair extracted from the issue URL.
// ok is false when the issue URL did not match the expected URL shape; the
// pair is never silently defaulted.
func (p *PullRequest) Repository() (owner, repo string, ok bool) {
	return p.repoOwner, p.repoName, p.repoOK
}

// LabelURL expands the labels URL template with the given label name.
// Returns "" when the payload carried no template.
func (p *PullRequest) LabelURL(name string) string {
	return expandTemplate(p.LabelsURLTemplate, "name", name)
}

// ReviewCommentsURLFor expands the review comment URL template with a pull
// request number. Returns "" when the payload carried no template.
func (p *PullRequest) ReviewCommentsURLFor(number int) string {
	return expandTemplate(p.ReviewCommentURLTemplate, "number", fmt.Sprintf("%d", number))
}

func (p *PullRequest) requireAuth() error {
	if p.client == nil || !p.client.Authenticated() {
		return fmt.Errorf("operation requires an authenticated client: %w", binderrors.ErrAuthRequired)
	}
	return nil
}

// UpdateOptions is the partial field set submitted by Update. Nil fields are
// excluded from the payload entirely: omission means "leave unchanged", not
// "clear the field".
type UpdateOptions struct {
	Title *string
	Body  *string
	State *string
}

// Update submits a partial update of the pull request. It returns true when
// the server returned a fresh representation and the resource state was
// replaced from it, and false for the no-op case (no fields supplied, or an
// empty response body). Requires authentication.
func (p *PullRequest) Update(ctx context.Context, opts UpdateOptions) (bool, error) {
	if err := p.requireAuth(); err != nil {
		return false, err
	}

	payload := make(map[string]string)
	if opts.Title != nil {
		payload["title"] = *opts.Title
	}
	if opts.Body != nil {
		payload["body"] = *opts.Body
	}
	if opts.State != nil {
		payload["state"] = *opts.State
	}
	if len(payload) == 0 {
		return false, nil
	}

	resp, err := p.client.Patch(ctx, p.Links.Self, payload)
	if err != nil {
		return false, err
	}
	if !resp.Success() {
		return false, rest.NewStatusError(resp, p.Links.Self)
	}
	if len(resp.Body) == 0 {
		return false, nil
	}

	if err := p.ApplySnapshot(resp.Body); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the pull request without merging. Requires authentication.
func (p *PullRequest) Close(ctx context.Context) (bool, error) {
	title, body, state := p.Title, p.Body, StateClosed
	return p.Update(ctx, UpdateOptions{Title: &title, Body: &body, State: &state})
}

// Reopen reopens a closed pull request. Must not be called on a merged pull
// request; the remote system rejects it. Requires authentication.
func (p *PullRequest) Reopen(ctx context.Context) (bool, error) {
	title, body, state := p.Title, p.Body, StateOpen
	return p.Update(ctx, UpdateOptions{Title: &title, Body: &body, State: &state})
}

// Merge merges the pull request, optionally with a merge commit message.
// The response body's merged flag is authoritative: servers report
// not-merged on conflicts even on a 2xx call path, so the returned bool must
// be checked rather than relying on a nil error. On success the stored merge
// commit SHA is updated from the response. Requires authentication.
func (p *PullRequest) Merge(ctx context.Context, commitMessage string) (bool, error) {
	if err := p.requireAuth(); err != nil {
		return false, err
	}

	var payload interface{}
	if commitMessage != "" {
		payload = map[string]string{"commit_message": commitMessage}
	}

	url := joinURL(p.Links.Self, "merge")
	resp, err := p.client.Put(ctx, url, payload)
	if err != nil {
		return false, err
	}
	if !resp.Success() {
		return false, rest.NewStatusError(resp, url)
	}

	var result struct {
		SHA    *string `json:"sha"`
		Merged bool    `json:"merged"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return false, fmt.Errorf("failed to decode merge response: %w", binderrors.ErrMalformedResponse)
	}
	if result.SHA == nil {
		return false, fmt.Errorf("merge response missing sha: %w", binderrors.ErrMalformedResponse)
	}

	p.MergeCommitSHA = *result.SHA
	return result.Merged, nil
}

// IsMerged probes the merge-status sub-resource without side effects:
// 204 means merged, 404 means not merged, anything else is an error.
func (p *PullRequest) IsMerged(ctx context.Context) (bool, error) {
	url := joinURL(p.Links.Self, "merge")
	resp, err := p.client.Get(ctx, url, nil)
	if err != nil {
		return false, err
	}
	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, rest.NewStatusError(resp, url)
	}
}

// Diff returns the unified diff rendition of the pull request, or nil when
// the server reports it absent.
func (p *PullRequest) Diff(ctx context.Context) ([]byte, error) {
	return p.fetchRendition(ctx, mediaTypeDiff)
}

// Patch returns the patch-series rendition of the pull request, or nil when
// the server reports it absent.
func (p *PullRequest) Patch(ctx context.Context) ([]byte, error) {
	return p.fetchRendition(ctx, mediaTypePatch)
}

func (p *PullRequest) fetchRendition(ctx context.Context, mediaType string) ([]byte, error) {
	header := http.Header{}
	header.Set("Accept", mediaType)

	resp, err := p.client.Get(ctx, p.Links.Self, header)
	if err != nil {
		return nil, err
	}
	switch {
	case resp.Success():
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	default:
		return nil, rest.NewStatusError(resp, p.Links.Self)
	}
}

// IterComments iterates over the inline review comments on the pull
// request. limit < 0 yields all available comments; limit >= 0 caps the
// sequence. etag is an optional continuation token from a prior iteration.
func (p *PullRequest) IterComments(limit int, etag string) *Iterator[*ReviewComment] {
	return newIterator(p.client, p.Links.ReviewComments, etag, limit, decodeReviewComment)
}

// IterCommits iterates over the commits on the pull request.
func (p *PullRequest) IterCommits(limit int, etag string) *Iterator[*Commit] {
	return newIterator(p.client, joinURL(p.Links.Self, "commits"), etag, limit, decodeCommit)
}

// IterFiles iterates over the files touched by the pull request.
func (p *PullRequest) IterFiles(limit int, etag string) *Iterator[*PullFile] {
	return newIterator(p.client, joinURL(p.Links.Self, "files"), etag, limit, decodePullFile)
}

// IterIssueComments iterates over the general comments on the pull
// request's issue thread.
func (p *PullRequest) IterIssueComments(limit int, etag string) *Iterator[*IssueComment] {
	return newIterator(p.client, p.Links.Comments, etag, limit, decodeIssueComment)
}
