// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newShowCommand() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "show <owner>/<repo> <number>",
		Short: "Fetch a pull request and print it as a JSON record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			writer, err := newRecordWriter(outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			return writer.Write(pr)
		},
	}

	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	return cmd
}

func newDiffCommand() *cobra.Command {
	var asPatch bool

	cmd := &cobra.Command{
		Use:   "diff <owner>/<repo> <number>",
		Short: "Print the unified diff of a pull request",
		Long: `Print the unified diff of a pull request to stdout.

With --patch the patch-series rendition is printed instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			var body []byte
			if asPatch {
				body, err = pr.Patch(cmd.Context())
			} else {
				body, err = pr.Diff(cmd.Context())
			}
			if err != nil {
				return err
			}
			if body == nil {
				fmt.Fprintln(os.Stderr, "No diff available")
				return nil
			}

			_, err = os.Stdout.Write(body)
			return err
		},
	}

	cmd.Flags().BoolVar(&asPatch, "patch", false, "Print the patch series instead of the unified diff")
	return cmd
}

func newMergedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merged <owner>/<repo> <number>",
		Short: "Report whether a pull request has been merged",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := fetchPull(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}

			merged, err := pr.IsMerged(cmd.Context())
			if err != nil {
				return err
			}
			if merged {
				fmt.Println("merged")
			} else {
				fmt.Println("not merged")
			}
			return nil
		},
	}
}
