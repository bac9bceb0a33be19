// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pullbindhq/pullbind/pkg/pulls"
)

func newUpdateCommand() *cobra.Command {
	var title, body, state string

	cmd := &cobra.Command{
		Use:   "update <owner>/<repo> <number>",
		Short: "Update a pull request's title, body, or state",
		Long: `Update a pull request. Only the flags you pass are submitted; fields
you leave out stay unchanged on the server.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			var opts pulls.UpdateOptions
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("body") {
				opts.Body = &body
			}
			if cmd.Flags().Changed("state") {
				opts.State = &state
			}

			changed, err := pr.Update(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintln(os.Stderr, "Nothing to update")
				return nil
			}
			fmt.Fprintf(os.Stderr, "Updated pull request #%d\n", pr.Number)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&body, "body", "", "New body")
	cmd.Flags().StringVar(&state, "state", "", "New state: open or closed")
	return cmd
}

func newCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <owner>/<repo> <number>",
		Short: "Close a pull request without merging",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			if _, err := pr.Close(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Closed pull request #%d\n", pr.Number)
			return nil
		},
	}
}

func newReopenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <owner>/<repo> <number>",
		Short: "Reopen a closed pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			if _, err := pr.Reopen(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Reopened pull request #%d\n", pr.Number)
			return nil
		},
	}
}

func newMergeCommand() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "merge <owner>/<repo> <number>",
		Short: "Merge a pull request",
		Long: `Merge a pull request, optionally with a merge commit message.

The server's merged flag is authoritative: a conflict can leave the pull
request unmerged without the call itself failing, so the command reports
the outcome explicitly.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			merged, err := pr.Merge(cmd.Context(), message)
			if err != nil {
				return err
			}
			if !merged {
				return fmt.Errorf("pull request #%d was not merged", pr.Number)
			}
			fmt.Fprintf(os.Stderr, "Merged pull request #%d at %s\n", pr.Number, pr.MergeCommitSHA)
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Merge commit message")
	return cmd
}
