package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-volunteer/internal/attendance"
	"go-volunteer/internal/config"
	"go-volunteer/internal/event"
	"go-volunteer/internal/messaging/kafka"
	"go-volunteer/internal/messaging/kafka/producer"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/scheduler"
	"go-volunteer/internal/shared/connection"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RunWorker drains the outbox into Kafka and drives the feedback deadline
// scheduler until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	inf, err := connectDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer inf.Close()

	// Event lookups fall back to Postgres when Redis is unavailable.
	inf.Redis, err = connection.ConnectRedisWithRetry(cfg.Redis, cfg.Database.MaxRetries, logger)
	if err != nil {
		log.Warn("redis unavailable, event cache disabled", zap.Error(err))
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka, cfg.Database.MaxRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(inf.SQLDB)

	schedulerService := scheduler.NewService(scheduler.Dependencies{
		Repo:           attendance.NewRepository(inf.GormDB),
		Events:         event.NewLookup(event.NewRepository(inf.GormDB), inf.Redis, 0, logger),
		Notifier:       notification.NewOutboxNotifier(outboxRepo, cfg.Kafka.NotificationTopic, logger),
		Metrics:        scheduler.NewMetrics(prometheus.DefaultRegisterer),
		ReminderWindow: cfg.Scheduler.ReminderWindow,
	}, logger)
	runner := scheduler.NewRunner(schedulerService, scheduler.RunnerConfig{
		Interval:   cfg.Scheduler.Interval,
		RunOnStart: cfg.Scheduler.RunOnStart,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.Kafka.OutboxPoll,
	)

	if err := runner.Start(ctx); err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.Scheduler.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: cfg.Scheduler.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("metrics server running", zap.String("addr", cfg.Scheduler.MetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("worker shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := runner.Stop(shutdownCtx); err != nil {
		log.Warn("scheduler did not stop in time", zap.Error(err))
	}
	if metricsServer != nil {
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	cancel()

	return nil
}
