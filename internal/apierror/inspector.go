package apierror

import (
	"errors"
	"strings"

	binderrors "github.com/pullbindhq/pullbind/internal/errors"
)

// Inspector provides methods for analyzing GitHub API errors.
type Inspector interface {
	// IsAuthError returns true if the error represents an authentication or authorization failure.
	IsAuthError(err error) bool

	// IsNotFoundError returns true if the error represents a resource not found error.
	IsNotFoundError(err error) bool

	// IsRateLimitError returns true if the error represents a rate limit error.
	IsRateLimitError(err error) bool

	// IsNetworkError returns true if the error represents a network connectivity error.
	IsNetworkError(err error) bool
}

// RESTErrorInspector implements the Inspector interface for GitHub REST API errors.
// It checks the error chain for known sentinels first and falls back to
// message inspection for errors produced outside this module.
type RESTErrorInspector struct{}

// NewInspector creates a new RESTErrorInspector.
func NewInspector() Inspector {
	return &RESTErrorInspector{}
}

// IsAuthError checks if the error is an authentication or authorization error.
func (i *RESTErrorInspector) IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, binderrors.ErrAuthRequired) || errors.Is(err, binderrors.ErrInvalidToken) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "401") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "bad credentials") ||
		strings.Contains(errStr, "authentication")
}

// IsNotFoundError checks if the error is a not found error.
func (i *RESTErrorInspector) IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, binderrors.ErrNotFound) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "not found")
}

// IsRateLimitError checks if the error is a rate limit error.
func (i *RESTErrorInspector) IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, binderrors.ErrRateLimit) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "api rate limit exceeded")
}

// IsNetworkError checks if the error is a network connectivity error.
func (i *RESTErrorInspector) IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, binderrors.ErrNetworkFailure) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "dial tcp") ||
		strings.Contains(errStr, "tls handshake") ||
		strings.Contains(errStr, "network is unreachable")
}
