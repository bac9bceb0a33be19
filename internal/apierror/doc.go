// Package apierror provides error inspection capabilities for GitHub API
// errors. It centralizes the logic for identifying different classes of
// errors returned by the REST API, eliminating the need for string-based
// error checking throughout the codebase.
package apierror
