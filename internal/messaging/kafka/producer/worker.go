package producer

import (
	"context"
	"time"

	"go-volunteer/internal/messaging/kafka"

	"go.uber.org/zap"
)

const defaultBatchSize = 50

// ProcessOutboxEvents drains the outbox on start and then on every tick
// until ctx is cancelled. A full batch is followed immediately by the next
// one so a scheduler burst does not wait pollInterval per batch.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	drain := func() {
		for ctx.Err() == nil {
			sent, err := ProcessPendingEvents(ctx, repo, writer, log)
			if err != nil {
				log.Error("process outbox events failed", zap.Error(err))
				return
			}
			if sent < defaultBatchSize {
				return
			}
		}
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	drain()
	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			drain()
		}
	}
}

// ProcessPendingEvents publishes one batch and returns how many rows were
// marked sent. Publish failures are recorded on the row and skipped.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	batch, err := repo.ListPending(ctx, defaultBatchSize)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	sent, failed := 0, 0
	for _, event := range batch {
		if err := publishEvent(ctx, writer, event); err != nil {
			failed++
			logger.Warn("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("record outbox failure", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			// the message is already on the topic; the consumer's dedupe key absorbs the resend
			logger.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
			continue
		}
		sent++
	}

	logger.Debug("outbox batch processed",
		zap.Int("batch", len(batch)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return sent, nil
}
