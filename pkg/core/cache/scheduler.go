package cache

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs one named job on a fixed period, warming the cache once
// immediately at start. Job errors are logged and swallowed: the loop must
// outlive any run of upstream failures and only exits when Stop cancels it.
type Scheduler struct {
	name     string
	interval time.Duration
	job      func(context.Context) error

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler builds a scheduler for job; Start launches it.
func NewScheduler(name string, interval time.Duration, job func(context.Context) error) *Scheduler {
	return &Scheduler{
		name:     name,
		interval: interval,
		job:      job,
		done:     make(chan struct{}),
	}
}

// Start launches the background loop: one immediate run, then one per
// interval.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		defer close(s.done)

		s.runOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runID := uuid.New().String()[:8]
	if err := s.job(ctx); err != nil {
		log.Printf("[scheduler] %s run %s failed: %v", s.name, runID, err)
		return
	}
	log.Printf("[scheduler] %s run %s completed", s.name, runID)
}

// Stop cancels the loop and waits for the goroutine to exit.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
