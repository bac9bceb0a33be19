// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire payloads mirror the REST representations field for field; decoding
// converts them into the domain snapshots. Field names and nesting are fixed
// by the remote API's contract.

type userPayload struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
}

func convertUser(u *userPayload) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Login:     u.Login,
		AvatarURL: u.AvatarURL,
		HTMLURL:   u.HTMLURL,
		Type:      u.Type,
	}
}

type endpointPayload struct {
	Ref   string       `json:"ref"`
	Label string       `json:"label"`
	SHA   string       `json:"sha"`
	User  *userPayload `json:"user"`
	Repo  *struct {
		Name  string       `json:"name"`
		Owner *userPayload `json:"owner"`
	} `json:"repo"`
}

func convertEndpoint(e *endpointPayload, direction string) *Endpoint {
	if e == nil {
		return nil
	}
	ep := &Endpoint{
		Direction: direction,
		Ref:       e.Ref,
		Label:     e.Label,
		SHA:       e.SHA,
		User:      convertUser(e.User),
	}
	if e.Repo != nil {
		ep.Repo.Name = e.Repo.Name
		if e.Repo.Owner != nil {
			ep.Repo.Owner = e.Repo.Owner.Login
		}
	}
	return ep
}

// parseTime parses the API's ISO-8601 timestamp format. Absent or
// unparseable values yield nil rather than a zero time.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

type pullFilePayload struct {
	SHA       string `json:"sha"`
	Filename  string `json:"filename"`
	Status    string `json:"status"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Changes   int    `json:"changes"`
	BlobURL   string `json:"blob_url"`
	RawURL    string `json:"raw_url"`
	Patch     string `json:"patch"`
}

func decodePullFile(raw json.RawMessage) (*PullFile, error) {
	var p pullFilePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode pull request file: %w", err)
	}
	return &PullFile{
		SHA:       p.SHA,
		Filename:  p.Filename,
		Status:    p.Status,
		Additions: p.Additions,
		Deletions: p.Deletions,
		Changes:   p.Changes,
		BlobURL:   p.BlobURL,
		RawURL:    p.RawURL,
		Patch:     p.Patch,
	}, nil
}

type reviewCommentPayload struct {
	ID               int64        `json:"id"`
	User             *userPayload `json:"user"`
	Body             string       `json:"body"`
	Path             string       `json:"path"`
	Position         int          `json:"position"`
	OriginalPosition int          `json:"original_position"`
	CommitID         string       `json:"commit_id"`
	OriginalCommitID string       `json:"original_commit_id"`
	DiffHunk         string       `json:"diff_hunk"`
	CreatedAt        string       `json:"created_at"`
	UpdatedAt        string       `json:"updated_at"`
	HTMLURL          string       `json:"html_url"`
}

func decodeReviewComment(raw json.RawMessage) (*ReviewComment, error) {
	var p reviewCommentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode review comment: %w", err)
	}
	return &ReviewComment{
		ID:               p.ID,
		User:             convertUser(p.User),
		Body:             p.Body,
		Path:             p.Path,
		Position:         p.Position,
		OriginalPosition: p.OriginalPosition,
		CommitID:         p.CommitID,
		OriginalCommitID: p.OriginalCommitID,
		DiffHunk:         p.DiffHunk,
		CreatedAt:        parseTime(p.CreatedAt),
		UpdatedAt:        parseTime(p.UpdatedAt),
		HTMLURL:          p.HTMLURL,
	}, nil
}

type issueCommentPayload struct {
	ID        int64        `json:"id"`
	User      *userPayload `json:"user"`
	Body      string       `json:"body"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	HTMLURL   string       `json:"html_url"`
}

func decodeIssueComment(raw json.RawMessage) (*IssueComment, error) {
	var p issueCommentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode issue comment: %w", err)
	}
	return &IssueComment{
		ID:        p.ID,
		User:      convertUser(p.User),
		Body:      p.Body,
		CreatedAt: parseTime(p.CreatedAt),
		UpdatedAt: parseTime(p.UpdatedAt),
		HTMLURL:   p.HTMLURL,
	}, nil
}

type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"author"`
		Committer struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Date  string `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
	Author    *userPayload `json:"author"`
	Committer *userPayload `json:"committer"`
	Parents   []struct {
		SHA string `json:"sha"`
	} `json:"parents"`
	HTMLURL string `json:"html_url"`
}

func decodeCommit(raw json.RawMessage) (*Commit, error) {
	var p commitPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode commit: %w", err)
	}
	c := &Commit{
		SHA:            p.SHA,
		Message:        p.Commit.Message,
		Author:         convertUser(p.Author),
		Committer:      convertUser(p.Committer),
		AuthorName:     p.Commit.Author.Name,
		AuthorEmail:    p.Commit.Author.Email,
		CommitterName:  p.Commit.Committer.Name,
		CommitterEmail: p.Commit.Committer.Email,
		AuthoredAt:     parseTime(p.Commit.Author.Date),
		CommittedAt:    parseTime(p.Commit.Committer.Date),
		HTMLURL:        p.HTMLURL,
	}
	if len(p.Parents) > 0 {
		c.Parents = make([]string, 0, len(p.Parents))
		for _, parent := range p.Parents {
			c.Parents = append(c.Parents, parent.SHA)
		}
	}
	return c, nil
}

type labelPayload struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
