package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-volunteer/internal/events"
	"go-volunteer/internal/messaging/kafka"
	"go-volunteer/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notificationRequestedEventType = "notification_requested"

// Notifier delivers best-effort notifications. Callers log a returned error
// and carry on; delivery never decides the outcome of the primary operation.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type outboxNotifier struct {
	outbox kafka.OutboxRepository
	topic  string
	logger *zap.Logger
	now    func() time.Time
}

// NewOutboxNotifier queues notifications in the outbox table for the Kafka
// producer worker.
func NewOutboxNotifier(outbox kafka.OutboxRepository, topic string, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.notifier")
	}
	if topic == "" {
		topic = events.NotificationRequestedTopic
	}
	return &outboxNotifier{outbox: outbox, topic: topic, logger: l, now: time.Now}
}

func (n *outboxNotifier) Notify(ctx context.Context, req Notification) error {
	recipients := uniqueRecipients(req.UserIDs)
	if len(recipients) == 0 {
		n.logger.Debug("notification skipped, no recipients", zap.String("type", req.Type))
		return nil
	}

	requestID := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.NotificationRequestedEvent{
		EventType:  notificationRequestedEventType,
		RequestID:  requestID,
		Type:       req.Type,
		UserIDs:    recipients,
		Title:      req.Title,
		Message:    req.Message,
		Payload:    req.Payload,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		return err
	}

	aggregateType := req.AggregateType
	if aggregateType == "" {
		aggregateType = "notification"
	}
	aggregateID := req.AggregateID
	if aggregateID == "" {
		aggregateID = recipients[0]
	}

	if err := n.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     notificationRequestedEventType,
		Topic:         n.topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		n.logger.Error("queue notification failed",
			zap.String("type", req.Type),
			zap.String("aggregate_id", aggregateID),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}

	n.logger.Debug("notification queued",
		zap.String("type", req.Type),
		zap.Int("recipients", len(recipients)),
	)
	return nil
}

func uniqueRecipients(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

type nopNotifier struct{}

// NewNopNotifier returns a Notifier that drops everything.
func NewNopNotifier() Notifier { return nopNotifier{} }

func (nopNotifier) Notify(context.Context, Notification) error { return nil }
