// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pullbindhq/pullbind/internal/config"
	"github.com/pullbindhq/pullbind/internal/output"
	"github.com/pullbindhq/pullbind/pkg/pulls"
)

// parseRepoArg parses an owner/repo argument.
func parseRepoArg(arg string) (owner, repo string, err error) {
	parts := strings.Split(arg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", arg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", arg)
	}
	return owner, repo, nil
}

// parseNumberArg parses a pull request number argument.
func parseNumberArg(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid pull request number: %s", arg)
	}
	return n, nil
}

// newBindingClient builds the library client from the command's persistent
// flags: config discovery, then token resolution from flag or environment.
func newBindingClient(cmd *cobra.Command) (*pulls.Client, *config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv(cfg.GitHub.TokenEnv)
	}

	return pulls.NewClient(token, cfg), cfg, nil
}

// fetchPull resolves the common <owner>/<repo> <number> argument pair into a
// live pull request binding.
func fetchPull(ctx context.Context, cmd *cobra.Command, args []string) (*pulls.PullRequest, error) {
	owner, repo, err := parseRepoArg(args[0])
	if err != nil {
		return nil, err
	}
	number, err := parseNumberArg(args[1])
	if err != nil {
		return nil, err
	}

	client, _, err := newBindingClient(cmd)
	if err != nil {
		return nil, err
	}
	return client.Get(ctx, owner, repo, number)
}

// newRecordWriter opens the NDJSON destination: a file when --output is set,
// stdout otherwise.
func newRecordWriter(outputFile string) (output.RecordWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	w, err := output.NewFileWriter(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return w, nil
}

// streamIterator drains a paged iterator into the record writer, reporting
// progress on stderr. Returns the first-page ETag for resume hints.
func streamIterator[T any](ctx context.Context, it *pulls.Iterator[T], writer output.RecordWriter, label string) (string, error) {
	count := 0
	for it.Next(ctx) {
		if err := writer.Write(it.Value()); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", label, err)
		}
		count++
		fmt.Fprintf(os.Stderr, "\rFetching %s... %d", label, count)
	}
	fmt.Fprintf(os.Stderr, "\r\033[K")

	if err := it.Err(); err != nil {
		return "", err
	}

	if count > 0 {
		fmt.Fprintf(os.Stderr, "Fetched %d %s\n", count, label)
	} else {
		fmt.Fprintf(os.Stderr, "No %s found\n", label)
	}
	return it.ETag(), nil
}
