// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package errors defines sentinel errors for consistent error handling across
// the module. Callers match them with errors.Is; the CLI maps them to exit
// codes for scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrAuthRequired indicates an operation that needs authentication was
	// invoked on an unauthenticated client. Raised before any network call.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidToken indicates GitHub rejected the supplied credentials.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrNotFound indicates the requested resource does not exist or is not
	// accessible with the current credentials.
	ErrNotFound = errors.New("resource not found")

	// ErrNetworkFailure indicates a network connection problem.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrMalformedResponse indicates a response body was missing a field
	// needed to complete the operation.
	ErrMalformedResponse = errors.New("malformed api response")
)
