// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package main implements the pullbind command-line interface.
// It reads and mutates GitHub pull requests over the REST API, streaming
// records in NDJSON format for further processing.
//
// The CLI supports:
//   - Fetching a single pull request or streaming a repository's listing
//   - Streaming sub-resources: files, commits, review and issue comments
//   - Lazy pagination with a --limit cap and ETag continuation tokens
//   - Mutations: update, close, reopen, merge
//   - Raw diff and patch renditions
//   - Token authentication via flag, environment variable, or .env file
//
// Usage:
//
//	pullbind <command> <owner>/<repo> [<number>] [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	pullbind list golang/go --state open --limit 50 --output prs.ndjson
//	pullbind merge octocat/hello 7 --message "Ship it"
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Resource not found
//   - 4: Rate limit exceeded
//   - 5: Network error
package main
