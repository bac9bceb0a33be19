// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package version holds the module version string. It is referenced by the
// REST transport when building the User-Agent header and overridden at build
// time via -ldflags for release binaries.
package version

// Version is the current pullbind version. "dev" unless set by the build.
var Version = "dev"
