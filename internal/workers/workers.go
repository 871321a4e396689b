// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-ministry-auth/internal/config"
	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

type Workers struct {
	workers []Worker
}

// New groups ws into a Workers aggregate.
func New(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// NewWorkers builds the session sweeper. A non-positive sweep interval
// disables it.
func NewWorkers(sweeper Sweeper, recorder SweepRecorder, cfg config.Workers, logger *logger.Logger) *Workers {
	if cfg.SessionSweepInterval <= 0 {
		logger.Warn().Msg("session sweeper is disabled")
		return New()
	}
	return New(NewSessionSweeper(sweeper, recorder, cfg.SessionSweepInterval, logger))
}

// Run starts every worker in its own goroutine and blocks until all of
// them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
