// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package rest

import "strings"

// parseNextLink extracts the rel="next" target from a Link header.
// Paginated list responses carry their own link-to-next-page metadata in the
// form: <https://api.github.com/...&page=2>; rel="next", <...>; rel="last".
// Returns "" when the header is absent or carries no next relation.
func parseNextLink(header string) string {
	if header == "" {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		target := strings.TrimSpace(section[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range section[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return strings.Trim(target, "<>")
			}
		}
	}
	return ""
}
