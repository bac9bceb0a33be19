// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package pulls provides typed bindings for the GitHub pull-request resource
// family. It decodes REST representations into attribute-stable snapshots,
// derives the related-resource URL map from the canonical API URL, exposes
// lazy paginated iteration over sub-resources (commits, files, review and
// issue comments), and implements the mutating actions (update, close,
// reopen, merge) that fold the response back into the resource state.
//
// Instances are not safe for concurrent use; each PullRequest and its
// iterators belong to a single logical caller at a time.
package pulls
