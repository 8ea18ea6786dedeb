package scheduler

import (
	"context"
	"time"

	"github.com/ajdsjdasjh123sd/linkgate/internal/logger"
)

// Sweepable is any store that can drop entries past expiry.
type Sweepable interface {
	Sweep(now time.Time) int
}

// Sweeper periodically expires entries from a store, independent of request
// traffic. Lazy expiry on read and the sweep may race; the store guarantees
// both are safe.
type Sweeper struct {
	name     string
	target   Sweepable
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSweeper creates a sweeper for one store.
func NewSweeper(name string, target Sweepable, log logger.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		name:     name,
		target:   target,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep loop.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Collect(time.Now())
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop ends the sweep loop. Torn down only at process exit.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}

// Collect runs one sweep pass.
func (s *Sweeper) Collect(now time.Time) {
	deleted := s.target.Sweep(now)
	if deleted > 0 {
		s.logger.Info("swept expired entries",
			logger.String("store", s.name),
			logger.Int("deleted", deleted))
	} else {
		s.logger.Debug("nothing to sweep",
			logger.String("store", s.name))
	}
}
