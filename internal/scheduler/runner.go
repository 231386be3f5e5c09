package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type RunnerConfig struct {
	Interval   time.Duration
	RunOnStart bool
}

// Runner triggers Service.RunOnce on a fixed interval. Overlapping cycles are
// skipped, never queued.
type Runner struct {
	service Service
	cfg     RunnerConfig
	logger  *zap.Logger

	cron   *cron.Cron
	job    cron.Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(service Service, cfg RunnerConfig, logger ...*zap.Logger) *Runner {
	l := zap.L().Named("scheduler.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.runner")
	}
	return &Runner{service: service, cfg: cfg, logger: l}
}

func (r *Runner) Start(ctx context.Context) error {
	if r.cfg.Interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}

	cronLog := cronLogger{l: r.logger.Sugar()}
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.cron = cron.New(cron.WithLogger(cronLog))
	r.job = cron.NewChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)).
		Then(cron.FuncJob(r.runCycle))

	if _, err := r.cron.AddJob("@every "+r.cfg.Interval.String(), r.job); err != nil {
		r.cancel()
		return err
	}
	r.cron.Start()

	r.logger.Info("scheduler started",
		zap.Duration("interval", r.cfg.Interval),
		zap.Bool("run_on_start", r.cfg.RunOnStart),
	)

	if r.cfg.RunOnStart {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.job.Run()
		}()
	}
	return nil
}

// Stop halts the schedule and waits for an in-flight cycle. If ctx expires
// first the cycle's context is cancelled and ctx.Err is returned.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cron == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		<-r.cron.Stop().Done()
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.cancel()
		r.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		r.cancel()
		return ctx.Err()
	}
}

func (r *Runner) runCycle() {
	if _, err := r.service.RunOnce(r.ctx); err != nil {
		r.logger.Error("scheduler cycle failed", zap.Error(err))
	}
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
