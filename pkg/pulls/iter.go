// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package pulls

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pullbindhq/pullbind/internal/rest"
)

// Iterator lazily walks a paginated list resource, yielding decoded elements
// one at a time. A page is fetched only when the previously buffered
// elements are exhausted; abandoning the iterator simply means not calling
// Next again.
//
// Usage follows the standard scanner shape:
//
//	it := pr.IterFiles(-1, "")
//	for it.Next(ctx) {
//		f := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// An iterator is single-use; calling the constructing method again restarts
// iteration from the first page. No cursor state is shared across iterators.
type Iterator[T any] struct {
	client *rest.Client
	decode func(json.RawMessage) (T, error)

	nextURL string
	etag    string // continuation token, sent on the first request only
	started bool
	done    bool

	// remaining caps yielded elements; -1 means unbounded.
	remaining int

	buf      []json.RawMessage
	cur      T
	err      error
	pageETag string
}

func newIterator[T any](client *rest.Client, url, etag string, limit int, decode func(json.RawMessage) (T, error)) *Iterator[T] {
	return &Iterator[T]{
		client:    client,
		decode:    decode,
		nextURL:   url,
		etag:      etag,
		remaining: limit,
	}
}

// Next advances to the next element, fetching further pages as needed.
// It returns false when the sequence is exhausted, the configured limit is
// reached, or a fetch fails; Err distinguishes failure from completion.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.done || it.err != nil {
		return false
	}
	if it.remaining == 0 {
		it.done = true
		return false
	}

	for len(it.buf) == 0 {
		if it.started && it.nextURL == "" {
			it.done = true
			return false
		}
		if !it.fetchPage(ctx) {
			return false
		}
	}

	raw := it.buf[0]
	it.buf = it.buf[1:]

	v, err := it.decode(raw)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	it.cur = v
	if it.remaining > 0 {
		it.remaining--
	}
	return true
}

// Value returns the element produced by the last successful Next call.
func (it *Iterator[T]) Value() T {
	return it.cur
}

// Err returns the error that terminated iteration, or nil when the sequence
// completed normally (including the not-modified short circuit).
func (it *Iterator[T]) Err() error {
	return it.err
}

// ETag returns the entity validator of the first fetched page. Pass it as
// the continuation token of a later call to skip refetching an unchanged
// list.
func (it *Iterator[T]) ETag() string {
	return it.pageETag
}

func (it *Iterator[T]) fetchPage(ctx context.Context) bool {
	first := !it.started
	it.started = true

	var header http.Header
	if first && it.etag != "" {
		header = http.Header{}
		header.Set("If-None-Match", it.etag)
	}

	resp, err := it.client.Get(ctx, it.nextURL, header)
	if err != nil {
		it.err = err
		it.done = true
		return false
	}

	// The server reports nothing changed since the continuation token:
	// the sequence is empty, not failed.
	if resp.NotModified {
		it.done = true
		return false
	}

	if !resp.Success() {
		it.err = rest.NewStatusError(resp, it.nextURL)
		it.done = true
		return false
	}

	if first {
		it.pageETag = resp.ETag
	}

	var items []json.RawMessage
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		it.err = fmt.Errorf("failed to decode page from %s: %w", it.nextURL, err)
		it.done = true
		return false
	}

	it.buf = items
	it.nextURL = resp.NextPage
	if len(items) == 0 && it.nextURL == "" {
		it.done = true
		return false
	}
	return true
}
