package audit

import (
	"context"
	"time"

	"go-volunteer/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Entry struct {
	Action  string
	ActorID string
	Message string
	Meta    map[string]any
}

// Logger records security-relevant actions. Implementations must not fail the caller.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type StdoutLogger struct {
	logger *zap.Logger
}

func NewStdoutLogger(logger ...*zap.Logger) *StdoutLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutLogger{logger: l}
}

func (l *StdoutLogger) Log(ctx context.Context, entry Entry) {
	if entry.ActorID == "" {
		entry.ActorID = contextutil.GetUserID(ctx)
	}
	l.logger.Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("actor_id", entry.ActorID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

type Nop struct{}

func (Nop) Log(context.Context, Entry) {}
