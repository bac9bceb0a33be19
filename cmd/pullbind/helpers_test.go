// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"testing"

	binderrors "github.com/pullbindhq/pullbind/internal/errors"
)

func TestParseRepoArg(t *testing.T) {
	tests := []struct {
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			input:     "golang/go",
			wantOwner: "golang",
			wantRepo:  "go",
		},
		{
			input:     "octocat/hello-world",
			wantOwner: "octocat",
			wantRepo:  "hello-world",
		},
		{
			input:   "invalid",
			wantErr: true,
		},
		{
			input:   "too/many/slashes",
			wantErr: true,
		},
		{
			input:   "/repo",
			wantErr: true,
		},
		{
			input:   "owner/",
			wantErr: true,
		},
		{
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		owner, repo, err := parseRepoArg(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseRepoArg(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if owner != tt.wantOwner || repo != tt.wantRepo {
			t.Errorf("parseRepoArg(%q) = (%q, %q), want (%q, %q)",
				tt.input, owner, repo, tt.wantOwner, tt.wantRepo)
		}
	}
}

func TestParseNumberArg(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "7", want: 7},
		{input: "12345", want: 12345},
		{input: "0", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseNumberArg(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseNumberArg(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseNumberArg(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth required", binderrors.ErrAuthRequired, exitAuth},
		{"invalid token", binderrors.ErrInvalidToken, exitAuth},
		{"not found", binderrors.ErrNotFound, exitNotFound},
		{"rate limit", binderrors.ErrRateLimit, exitRateLimit},
		{"network failure", binderrors.ErrNetworkFailure, exitNetwork},
		{"wrapped sentinel", fmt.Errorf("fetching: %w", binderrors.ErrNotFound), exitNotFound},
		{"plain error", errors.New("boom"), exitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
