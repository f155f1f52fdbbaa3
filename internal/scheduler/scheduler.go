// Copyright (c) 2025-2026 David Mendez
// SPDX-License-Identifier: MIT

package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/davidmendez/portfolio/internal/flags"
)

// Scheduler handles recurring background work. Its one job keeps the
// under-construction flag cache warm so gate checks never block on the
// KV backend.
type Scheduler struct {
	flags  *flags.Service
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(flagSvc *flags.Service, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		flags:  flagSvc,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start begins the scheduler with a flag warm job every minute.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		s.flags.Warm(context.Background())
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
