package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsradar/pkg/domain"
)

type fakeRunner struct {
	runs int32
	err  error
}

func (f *fakeRunner) Run(context.Context) (*domain.Artifact, error) {
	atomic.AddInt32(&f.runs, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Artifact{}, nil
}

func (f *fakeRunner) count() int32 { return atomic.LoadInt32(&f.runs) }

type fakeReloader struct{ loads int32 }

func (f *fakeReloader) Load(context.Context) error {
	atomic.AddInt32(&f.loads, 1)
	return nil
}

func (f *fakeReloader) count() int32 { return atomic.LoadInt32(&f.loads) }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 10*time.Millisecond)
}

func TestScheduler(t *testing.T) {
	t.Run("runs immediately on start and reloads view", func(t *testing.T) {
		runner := &fakeRunner{}
		reloader := &fakeReloader{}
		s := New(runner, reloader, time.Hour)

		s.Start(context.Background())
		defer s.Stop()

		waitFor(t, func() bool { return runner.count() == 1 })
		waitFor(t, func() bool { return reloader.count() == 1 })
	})

	t.Run("runs on interval", func(t *testing.T) {
		runner := &fakeRunner{}
		reloader := &fakeReloader{}
		s := New(runner, reloader, 20*time.Millisecond)

		s.Start(context.Background())
		defer s.Stop()

		waitFor(t, func() bool { return runner.count() >= 3 })
	})

	t.Run("trigger forces an extra run", func(t *testing.T) {
		runner := &fakeRunner{}
		reloader := &fakeReloader{}
		s := New(runner, reloader, time.Hour)

		s.Start(context.Background())
		defer s.Stop()

		waitFor(t, func() bool { return runner.count() == 1 })
		s.TriggerNow()
		waitFor(t, func() bool { return runner.count() == 2 })
	})

	t.Run("failed run skips reload", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("boom")}
		reloader := &fakeReloader{}
		s := New(runner, reloader, time.Hour)

		s.Start(context.Background())
		waitFor(t, func() bool { return runner.count() == 1 })
		s.Stop()

		assert.Equal(t, int32(0), reloader.count())
	})

	t.Run("stop terminates the loop", func(t *testing.T) {
		runner := &fakeRunner{}
		s := New(runner, &fakeReloader{}, 10*time.Millisecond)

		s.Start(context.Background())
		waitFor(t, func() bool { return runner.count() >= 1 })
		s.Stop()

		after := runner.count()
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, after, runner.count())
	})
}
