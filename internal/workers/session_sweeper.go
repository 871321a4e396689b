// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ministry-auth/internal/logger"
)

// SessionSweeper periodically deletes expired sessions. Reset tokens are
// left alone; they expire lazily on use.
type SessionSweeper struct {
	sweeper  Sweeper
	recorder SweepRecorder
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionSweeper(sweeper Sweeper, recorder SweepRecorder, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		recorder: recorder,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *SessionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	n, err := s.sweeper.Sweep(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("failed to sweep expired sessions")
		}
		return
	}

	if s.recorder != nil {
		s.recorder.SessionsSwept(n)
	}
	s.logger.Debug().Int64("deleted", n).Msg("expired sessions swept")
}
