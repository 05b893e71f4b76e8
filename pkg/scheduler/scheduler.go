// Package scheduler drives periodic ingestion runs and view reloads.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsradar/pkg/domain"
)

// Runner executes one ingestion pass
type Runner interface {
	Run(ctx context.Context) (*domain.Artifact, error)
}

// Reloader refreshes the view state from the persisted artifact
type Reloader interface {
	Load(ctx context.Context) error
}

// Scheduler runs the pipeline on a fixed interval and reloads the view after
// each run. Refresh is pull-based; there is no push or incremental update.
type Scheduler struct {
	runner   Runner
	reloader Reloader
	interval time.Duration

	trigger chan struct{}
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// New creates a scheduler with the given run interval
func New(runner Runner, reloader Reloader, interval time.Duration) *Scheduler {
	if interval == 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{
		runner:   runner,
		reloader: reloader,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Start begins the scheduler, running one pass immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// TriggerNow requests an immediate run. Non-blocking; a run already pending
// absorbs the request.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes one ingestion pass and reloads the view. Failures are
// logged, never fatal; the next tick retries from scratch.
func (s *Scheduler) runOnce(ctx context.Context) {
	if _, err := s.runner.Run(ctx); err != nil {
		lgr.Printf("[ERROR] ingestion run failed: %v", err)
		return
	}
	if err := s.reloader.Load(ctx); err != nil {
		lgr.Printf("[WARN] view reload failed: %v", err)
	}
}
