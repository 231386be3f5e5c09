package consumer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go-volunteer/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationStore persists delivered notifications.
type NotificationStore interface {
	Store(ctx context.Context, event events.NotificationRequestedEvent, dedupeKey string) (int64, error)
}

// ConsumeNotificationRequested stores one in-app notification per recipient
// for each message until ctx is cancelled. Messages are committed only after
// they are stored, so a crash redelivers them and the dedupe key absorbs the
// duplicate.
func ConsumeNotificationRequested(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification")
	log.Info("notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		handleNotificationMessage(ctx, reader, store, msg, log)
	}
}

func handleNotificationMessage(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	msg kafkago.Message,
	log *zap.Logger,
) bool {
	var event events.NotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return false
	}

	dedupeKey := dedupeKeyFor(msg)
	stored, err := store.Store(ctx, event, dedupeKey)
	if err != nil {
		log.Error("store notification failed",
			zap.String("type", event.Type),
			zap.String("dedupe_key", dedupeKey),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
		return false
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit notification message failed", zap.Error(err))
		return false
	}

	log.Info("notification delivered",
		zap.String("type", event.Type),
		zap.Int("recipients", len(event.UserIDs)),
		zap.Int64("stored", stored),
		zap.String("request_id", event.RequestID),
	)
	return true
}

// dedupeKeyFor prefers the outbox id header and falls back to a digest of the
// message value.
func dedupeKeyFor(msg kafkago.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "outbox_id" && len(h.Value) > 0 {
			return string(h.Value)
		}
	}
	sum := sha256.Sum256(msg.Value)
	return hex.EncodeToString(sum[:])
}
