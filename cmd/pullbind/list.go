// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullbindhq/pullbind/internal/output"
	"github.com/pullbindhq/pullbind/pkg/pulls"
)

// listFlags are shared by every streaming command.
type listFlags struct {
	limit      int
	etag       string
	outputFile string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.limit, "limit", -1, "Maximum number of records to fetch (-1 for all)")
	cmd.Flags().StringVar(&f.etag, "etag", "", "Continuation token from a previous run")
	cmd.Flags().StringVar(&f.outputFile, "output", "", "Output file path (default: stdout)")
}

func newListCommand() *cobra.Command {
	var flags listFlags
	var state string

	cmd := &cobra.Command{
		Use:   "list <owner>/<repo>",
		Short: "Stream a repository's pull requests as NDJSON",
		Long: `Stream a repository's pull requests as NDJSON, one record per line.

Pages are fetched lazily as records are consumed; --limit caps the stream
without fetching pages past the cap. Pass a previous run's continuation
token via --etag to skip refetching an unchanged listing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, repo, err := parseRepoArg(args[0])
			if err != nil {
				return err
			}

			client, _, err := newBindingClient(cmd)
			if err != nil {
				return err
			}

			writer, err := newRecordWriter(flags.outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			it := client.List(owner, repo, pulls.ListOptions{
				State: state,
				Limit: flags.limit,
				ETag:  flags.etag,
			})
			etag, err := streamIterator(cmd.Context(), it, writer, "pull requests")
			if err != nil {
				return err
			}
			if etag != "" {
				fmt.Fprintf(os.Stderr, "Continuation token: %s\n", etag)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&state, "state", "", "Filter by state: open, closed, or all")
	return cmd
}

func newFilesCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "files <owner>/<repo> <number>",
		Short: "Stream the files touched by a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubResource(cmd, args, &flags, "files",
				func(ctx context.Context, pr *pulls.PullRequest) streamFunc {
					it := pr.IterFiles(flags.limit, flags.etag)
					return func(w output.RecordWriter) (string, error) {
						return streamIterator(ctx, it, w, "files")
					}
				})
		},
	}

	flags.register(cmd)
	return cmd
}

func newCommitsCommand() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "commits <owner>/<repo> <number>",
		Short: "Stream the commits on a pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubResource(cmd, args, &flags, "commits",
				func(ctx context.Context, pr *pulls.PullRequest) streamFunc {
					it := pr.IterCommits(flags.limit, flags.etag)
					return func(w output.RecordWriter) (string, error) {
						return streamIterator(ctx, it, w, "commits")
					}
				})
		},
	}

	flags.register(cmd)
	return cmd
}

func newCommentsCommand() *cobra.Command {
	var flags listFlags
	var issueComments bool

	cmd := &cobra.Command{
		Use:   "comments <owner>/<repo> <number>",
		Short: "Stream the review comments on a pull request",
		Long: `Stream the inline review comments on a pull request as NDJSON.

With --issue the general comments from the issue thread are streamed
instead of the inline review comments.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubResource(cmd, args, &flags, "comments",
				func(ctx context.Context, pr *pulls.PullRequest) streamFunc {
					if issueComments {
						it := pr.IterIssueComments(flags.limit, flags.etag)
						return func(w output.RecordWriter) (string, error) {
							return streamIterator(ctx, it, w, "issue comments")
						}
					}
					it := pr.IterComments(flags.limit, flags.etag)
					return func(w output.RecordWriter) (string, error) {
						return streamIterator(ctx, it, w, "review comments")
					}
				})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&issueComments, "issue", false, "Stream issue-thread comments instead of review comments")
	return cmd
}

type streamFunc func(output.RecordWriter) (string, error)

// runSubResource handles the shared shape of the files/commits/comments
// commands: resolve the pull request, open the writer, drain the iterator,
// print the continuation token.
func runSubResource(cmd *cobra.Command, args []string, flags *listFlags, label string,
	build func(context.Context, *pulls.PullRequest) streamFunc) error {
	pr, err := fetchPull(cmd.Context(), cmd, args)
	if err != nil {
		return err
	}

	writer, err := newRecordWriter(flags.outputFile)
	if err != nil {
		return err
	}
	defer writer.Close()

	etag, err := build(cmd.Context(), pr)(writer)
	if err != nil {
		return err
	}
	if etag != "" {
		fmt.Fprintf(os.Stderr, "Continuation token: %s\n", etag)
	}
	return nil
}
