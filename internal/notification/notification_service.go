package notification

import (
	"context"
	"net/http"

	"go-volunteer/internal/events"
	notificationerrors "go-volunteer/internal/notification/errors"
	"go-volunteer/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Store(ctx context.Context, event events.NotificationRequestedEvent, dedupeKey string) (int64, error)
	List(ctx context.Context, userID string, page, pageSize int) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

// Store writes one inbox row per recipient. Recipients that are not valid
// UUIDs are skipped and logged.
func (s *service) Store(ctx context.Context, event events.NotificationRequestedEvent, dedupeKey string) (int64, error) {
	items := make([]InAppNotification, 0, len(event.UserIDs))
	for _, raw := range event.UserIDs {
		userID, err := uuid.Parse(raw)
		if err != nil {
			s.logger.Warn("skip notification recipient with invalid id",
				zap.String("user_id", raw),
				zap.String("type", event.Type),
			)
			continue
		}
		items = append(items, InAppNotification{
			UserID:    userID,
			Type:      event.Type,
			Title:     event.Title,
			Message:   event.Message,
			Payload:   event.Payload,
			DedupeKey: dedupeKey,
		})
	}

	stored, err := s.repo.CreateMany(ctx, items)
	if err != nil {
		s.logger.Error("store notifications failed",
			zap.String("type", event.Type),
			zap.String("dedupe_key", dedupeKey),
			zap.Error(err),
		)
		return 0, apperror.Wrap(err, apperror.CodeInternalError, "failed to store notifications", http.StatusInternalServerError)
	}

	s.logger.Debug("notifications stored",
		zap.String("type", event.Type),
		zap.Int64("stored", stored),
		zap.Int("recipients", len(items)),
	)
	return stored, nil
}

func (s *service) List(ctx context.Context, userID string, page, pageSize int) ([]NotificationResponse, int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, notificationerrors.ErrInvalidUserID
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := s.repo.ListByUser(ctx, uid, pageSize, (page-1)*pageSize)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("user_id", userID), zap.Error(err))
		return nil, 0, apperror.Wrap(err, apperror.CodeInternalError, "failed to list notifications", http.StatusInternalServerError)
	}

	resp := make([]NotificationResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	return resp, total, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return notificationerrors.ErrInvalidUserID
	}
	nid, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	updated, err := s.repo.MarkRead(ctx, uid, nid)
	if err != nil {
		s.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to update notification", http.StatusInternalServerError)
	}
	if !updated {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}
