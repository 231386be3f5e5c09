package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go-volunteer/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	calls atomic.Int32
	ran   chan struct{}
}

func (c *countingService) RunOnce(context.Context) (scheduler.CycleResult, error) {
	c.calls.Add(1)
	select {
	case c.ran <- struct{}{}:
	default:
	}
	return scheduler.CycleResult{}, nil
}

func TestRunner(t *testing.T) {
	t.Run("Runs Immediately On Start", func(t *testing.T) {
		svc := &countingService{ran: make(chan struct{}, 1)}
		runner := scheduler.NewRunner(svc, scheduler.RunnerConfig{Interval: time.Hour, RunOnStart: true})

		require.NoError(t, runner.Start(context.Background()))

		select {
		case <-svc.ran:
		case <-time.After(2 * time.Second):
			t.Fatal("expected a cycle on start")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		assert.NoError(t, runner.Stop(ctx))
		assert.Equal(t, int32(1), svc.calls.Load())
	})

	t.Run("Waits For Interval Without RunOnStart", func(t *testing.T) {
		svc := &countingService{ran: make(chan struct{}, 1)}
		runner := scheduler.NewRunner(svc, scheduler.RunnerConfig{Interval: time.Hour})

		require.NoError(t, runner.Start(context.Background()))
		assert.NoError(t, runner.Stop(context.Background()))
		assert.Equal(t, int32(0), svc.calls.Load())
	})

	t.Run("Rejects Non-Positive Interval", func(t *testing.T) {
		runner := scheduler.NewRunner(&countingService{}, scheduler.RunnerConfig{})
		assert.Error(t, runner.Start(context.Background()))
		assert.NoError(t, runner.Stop(context.Background()))
	})
}
