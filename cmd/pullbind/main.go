// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	binderrors "github.com/pullbindhq/pullbind/internal/errors"
	"github.com/pullbindhq/pullbind/pkg/version"
)

// Exit codes by failure class, so scripts can branch on the outcome.
const (
	exitGeneral   = 1
	exitAuth      = 2
	exitNotFound  = 3
	exitRateLimit = 4
	exitNetwork   = 5
)

func main() {
	// A .env file in the working directory supplies tokens during local
	// development; absence is not an error.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "pullbind",
		Short: "Work with GitHub pull requests from the command line",
		Long: `Pullbind reads and mutates GitHub pull requests over the REST API.

Read commands stream records in NDJSON format and work against public
repositories without credentials. Mutating commands (close, reopen, merge,
update) require a token:
  - Use the --token flag to provide a token directly
  - Or set GITHUB_TOKEN (configurable via the token_env config key)`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.PersistentFlags().String("config", "", "Config file path (default: .pullbind.yaml, ~/.pullbind/config.yaml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub personal access token (overrides the token env var)")

	rootCmd.AddCommand(
		newShowCommand(),
		newListCommand(),
		newFilesCommand(),
		newCommitsCommand(),
		newCommentsCommand(),
		newDiffCommand(),
		newMergedCommand(),
		newUpdateCommand(),
		newCloseCommand(),
		newReopenCommand(),
		newMergeCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode translates the sentinel taxonomy into exit codes.
func mapErrorToExitCode(err error) int {
	switch {
	case errors.Is(err, binderrors.ErrAuthRequired), errors.Is(err, binderrors.ErrInvalidToken):
		return exitAuth
	case errors.Is(err, binderrors.ErrNotFound):
		return exitNotFound
	case errors.Is(err, binderrors.ErrRateLimit):
		return exitRateLimit
	case errors.Is(err, binderrors.ErrNetworkFailure):
		return exitNetwork
	default:
		return exitGeneral
	}
}
