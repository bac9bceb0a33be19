// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package ratelimit

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Waiter blocks until a rate limit window resets, honoring context
// cancellation. Progress output goes to the configured writer, typically
// stderr in the CLI.
type Waiter struct {
	showProgress bool
	out          io.Writer
}

// NewWaiter creates a Waiter. When showProgress is true and out is non-nil,
// the waiter prints the reset time before sleeping.
func NewWaiter(showProgress bool, out io.Writer) *Waiter {
	return &Waiter{showProgress: showProgress, out: out}
}

// Wait sleeps until info.Reset (plus a small grace period) or until the
// context is canceled, whichever comes first.
func (w *Waiter) Wait(ctx context.Context, info Info) error {
	delay := time.Until(info.Reset) + 2*time.Second
	if delay <= 0 {
		return nil
	}

	if w.showProgress && w.out != nil {
		fmt.Fprintf(w.out, "Rate limit exhausted. Waiting %s until reset at %s...\n",
			delay.Round(time.Second), info.Reset.Format("15:04:05"))
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
