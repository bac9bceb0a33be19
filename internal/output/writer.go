// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package output streams resource records as NDJSON. Commands write each
// decoded record as soon as the iterator yields it, so memory stays flat
// regardless of how many sub-resources a pull request carries.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// RecordWriter is the sink the CLI commands stream into. The abstraction
// leaves room for other formats without touching the commands.
type RecordWriter interface {
	Write(record interface{}) error
	Close() error
}

// NDJSONWriter writes one JSON document per line. Records are encoded and
// flushed immediately rather than accumulated.
type NDJSONWriter struct {
	enc     *json.Encoder
	count   int
	closeFn func() error
}

// NewWriter returns an NDJSONWriter over an arbitrary io.Writer, typically
// stdout. Close is a no-op for writers the caller owns.
func NewWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

// NewFileWriter returns an NDJSONWriter backed by a newly created file.
// The caller must Close it to flush and release the file.
func NewFileWriter(path string) (*NDJSONWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &NDJSONWriter{
		enc: json.NewEncoder(f),
		closeFn: func() error {
			if err := f.Sync(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}, nil
}

// Write encodes a single record followed by a newline.
func (w *NDJSONWriter) Write(record interface{}) error {
	if err := w.enc.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	w.count++
	return nil
}

// Count reports the number of records written so far.
func (w *NDJSONWriter) Count() int {
	return w.count
}

// Close releases the underlying file, if any.
func (w *NDJSONWriter) Close() error {
	if w.closeFn != nil {
		return w.closeFn()
	}
	return nil
}
