// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the server.
// It defines the Worker interface and a Workers aggregate that starts every
// worker in its own goroutine and waits for all of them to stop.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper deletes expired sessions and reports how many were removed.
// It is implemented by *session.Manager.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// SweepRecorder receives the number of swept sessions.
// It is implemented by *metrics.Metrics.
type SweepRecorder interface {
	SessionsSwept(n int64)
}
