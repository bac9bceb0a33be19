// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// joinURL builds a sub-resource URL by suffixing path segments onto a
// resource's canonical API URL.
func joinURL(base string, segments ...string) string {
	parts := append([]string{strings.TrimSuffix(base, "/")}, segments...)
	return strings.Join(parts, "/")
}

// issuePath rewrites a pull request API URL into the corresponding issue API
// URL by swapping the pulls path segment for issues, exactly once. This is a
// structural convention of the remote API's URL shape (every pull request is
// also an issue at the same number), not a generic string operation.
func issuePath(apiURL string) string {
	return strings.Replace(apiURL, "/pulls/", "/issues/", 1)
}

// repositoryPattern is the fixed URL shape the (owner, repo) pair is
// extracted from: scheme://host/[repos/]{owner}/{repo}/(issues|pulls)/number.
var repositoryPattern = regexp.MustCompile(
	`^https?://[^/\s]+/(?:repos/)?([^/\s]+)/([^/\s]+)/(?:issues|pulls?)/\d+$`)

// parseRepository extracts the (owner, repo) pair from an issue URL. The
// extraction is option-typed: URLs that do not match the expected shape
// report ok=false rather than failing construction or defaulting silently.
func parseRepository(issueURL string) (owner, repo string, ok bool) {
	m := repositoryPattern.FindStringSubmatch(issueURL)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// parseTemplate compiles an RFC6570 URL template. An absent template string
// yields no callable template rather than an error; a template the remote
// API serves malformed is treated the same way.
func parseTemplate(s string) *uritemplate.Template {
	if s == "" {
		return nil
	}
	t, err := uritemplate.New(s)
	if err != nil {
		return nil
	}
	return t
}

// expandTemplate performs simple string expansion of a single template
// variable. Returns "" when the template is nil.
func expandTemplate(t *uritemplate.Template, name, value string) string {
	if t == nil {
		return ""
	}
	expanded, err := t.Expand(uritemplate.Values{
		name: uritemplate.String(value),
	})
	if err != nil {
		return ""
	}
	return expanded
}
