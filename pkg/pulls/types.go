// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import "time"

// Pull request states as reported by the API. A merged pull request still
// reports "closed"; merge status is carried separately.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Endpoint directions.
const (
	DirectionBase = "Base"
	DirectionHead = "Head"
)

// User is a snapshot of a GitHub account reference as embedded in pull
// request payloads.
type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Label is a repository label attached to a pull request.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

// Repo identifies a repository by owner and name.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Endpoint represents one side of the merge: the base the pull request
// targets or the head it brings in. Immutable after construction.
type Endpoint struct {
	// Direction is DirectionBase or DirectionHead with respect to the merge.
	Direction string `json:"direction"`
	Ref       string `json:"ref"`
	Label     string `json:"label"`
	User      *User  `json:"user,omitempty"`
	SHA       string `json:"sha"`
	Repo      Repo   `json:"repo"`
}

// Links is the reconstructed related-resource URL map. Every entry is
// derived from the canonical API URL by pure string transformation; none is
// fetched independently.
type Links struct {
	// Self is the canonical API URL of the pull request.
	Self string `json:"self"`
	// Comments is the issue-comments URL (the pulls path segment swapped
	// for issues, suffixed with /comments).
	Comments string `json:"comments"`
	// Issue is the API URL of the associated issue.
	Issue string `json:"issue"`
	// HTML is the browser URL.
	HTML string `json:"html"`
	// ReviewComments is the inline review comments URL (API URL suffixed
	// with /comments).
	ReviewComments string `json:"review_comments"`
}

// PullFile is one file touched by a pull request. Immutable snapshot.
type PullFile struct {
	SHA       string `json:"sha"`
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	BlobURL   string `json:"blob_url"`
	RawURL    string `json:"raw_url"`
	Patch     string `json:"patch,omitempty"`
}

// ReviewComment is an inline code comment on a pull request diff.
// Immutable snapshot; identity is the comment id.
type ReviewComment struct {
	ID   int64  `json:"id"`
	User *User  `json:"user,omitempty"`
	Body string `json:"body"`

	Path string `json:"path"`
	// Position is the comment's position within the current diff, 0 when
	// the comment is outdated and no longer anchored.
	Position         int    `json:"position"`
	OriginalPosition int    `json:"original_position"`
	CommitID         string `json:"commit_id"`
	OriginalCommitID string `json:"original_commit_id"`
	DiffHunk         string `json:"diff_hunk,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	HTMLURL   string     `json:"html_url,omitempty"`
}

// Equal reports identity equality by comment id.
func (c *ReviewComment) Equal(other *ReviewComment) bool {
	return other != nil && c.ID == other.ID
}

// IssueComment is a general comment on the pull request's issue thread.
type IssueComment struct {
	ID        int64      `json:"id"`
	User      *User      `json:"user,omitempty"`
	Body      string     `json:"body"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	HTMLURL   string     `json:"html_url,omitempty"`
}

// Commit is one commit carried by a pull request.
type Commit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`

	// Author and Committer are the GitHub accounts when the commit maps to
	// one, nil otherwise; the name/email pairs are always present from the
	// git metadata.
	Author         *User  `json:"author,omitempty"`
	Committer      *User  `json:"committer,omitempty"`
	AuthorName     string `json:"author_name,omitempty"`
	AuthorEmail    string `json:"author_email,omitempty"`
	CommitterName  string `json:"committer_name,omitempty"`
	CommitterEmail string `json:"committer_email,omitempty"`

	AuthoredAt  *time.Time `json:"authored_at,omitempty"`
	CommittedAt *time.Time `json:"committed_at,omitempty"`

	Parents []string `json:"parents,omitempty"`
	HTMLURL string   `json:"html_url,omitempty"`
}
