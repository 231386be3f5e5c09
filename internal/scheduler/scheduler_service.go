package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-volunteer/internal/attendance"
	"go-volunteer/internal/event"
	"go-volunteer/internal/events"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultReminderWindow = 6 * time.Hour

type CycleResult struct {
	RanAt         time.Time `json:"ranAt"`
	RemindersSent int       `json:"remindersSent"`
	Missed        int       `json:"missed"`
	Failures      int       `json:"failures"`
}

//go:generate mockgen -source=scheduler_service.go -destination=mock/scheduler_service_mock.go -package=mock
type Service interface {
	RunOnce(ctx context.Context) (CycleResult, error)
}

type Dependencies struct {
	Repo           attendance.Repository
	Events         event.Lookup
	Notifier       notification.Notifier
	Metrics        *Metrics
	ReminderWindow time.Duration
	Now            func() time.Time
}

type service struct {
	repo     attendance.Repository
	events   event.Lookup
	notifier notification.Notifier
	metrics  *Metrics
	window   time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("scheduler.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.service")
	}

	s := &service{
		repo:     deps.Repo,
		events:   deps.Events,
		notifier: deps.Notifier,
		metrics:  deps.Metrics,
		window:   deps.ReminderWindow,
		now:      deps.Now,
		logger:   l,
	}
	if s.notifier == nil {
		s.notifier = notification.NewNopNotifier()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.window <= 0 {
		s.window = DefaultReminderWindow
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// RunOnce runs the reminder sweep followed by the expiry sweep. Records are
// processed one at a time; a failing record is logged and skipped.
func (s *service) RunOnce(ctx context.Context) (CycleResult, error) {
	now := s.now().UTC()
	res := CycleResult{RanAt: now}
	cache := map[uuid.UUID]*event.Event{}

	if err := s.sendReminders(ctx, now, cache, &res); err != nil {
		return res, err
	}
	if err := s.expireOverdue(ctx, now, cache, &res); err != nil {
		return res, err
	}

	s.metrics.observe(res)
	s.logger.Info("scheduler cycle finished",
		zap.Int("reminders_sent", res.RemindersSent),
		zap.Int("missed", res.Missed),
		zap.Int("failures", res.Failures),
	)
	return res, nil
}

func (s *service) sendReminders(ctx context.Context, now time.Time, cache map[uuid.UUID]*event.Event, res *CycleResult) error {
	due, err := s.repo.FindDueForReminder(ctx, now, s.window)
	if err != nil {
		s.logger.Error("find records due for reminder failed", zap.Error(err))
		return internalError(err)
	}

	for i := range due {
		rec := &due[i]
		claimed, err := s.repo.MarkReminderSent(ctx, rec.ID, now)
		if err != nil {
			res.Failures++
			s.logger.Error("claim feedback reminder failed", zap.String("record_id", rec.ID.String()), zap.Error(err))
			continue
		}
		if !claimed {
			continue
		}

		name := s.eventName(ctx, rec.EventID, cache)
		deadline := ""
		if rec.DeadlineAt != nil {
			deadline = rec.DeadlineAt.UTC().Format(time.RFC3339)
		}
		s.notify(ctx, notification.Notification{
			UserIDs: []string{rec.VolunteerID.String()},
			Type:    events.NotificationFeedbackReminder,
			Title:   "Feedback due soon",
			Message: fmt.Sprintf("Submit feedback for %s before %s to keep your %.2f hours.",
				name, deadline, rec.TotalHours),
			Payload: map[string]any{
				"recordId":   rec.ID.String(),
				"eventId":    rec.EventID.String(),
				"deadlineAt": deadline,
			},
			AggregateType: "attendance_record",
			AggregateID:   rec.ID.String(),
		})
		res.RemindersSent++
	}
	return nil
}

func (s *service) expireOverdue(ctx context.Context, now time.Time, cache map[uuid.UUID]*event.Event, res *CycleResult) error {
	overdue, err := s.repo.FindPastDeadline(ctx, now)
	if err != nil {
		s.logger.Error("find records past deadline failed", zap.Error(err))
		return internalError(err)
	}

	for i := range overdue {
		rec := &overdue[i]
		marked, err := s.repo.MarkMissed(ctx, rec.ID, now)
		if err != nil {
			res.Failures++
			s.logger.Error("mark feedback missed failed", zap.String("record_id", rec.ID.String()), zap.Error(err))
			continue
		}
		if !marked {
			// submitted or overridden between the query and the write
			continue
		}
		res.Missed++

		s.logger.Info("attendance hours voided",
			zap.String("record_id", rec.ID.String()),
			zap.String("event_id", rec.EventID.String()),
			zap.Float64("hours_lost", rec.TotalHours),
		)

		name := s.eventName(ctx, rec.EventID, cache)
		payload := map[string]any{
			"recordId":    rec.ID.String(),
			"eventId":     rec.EventID.String(),
			"volunteerId": rec.VolunteerID.String(),
			"hoursLost":   rec.TotalHours,
		}
		s.notify(ctx, notification.Notification{
			UserIDs:       []string{rec.VolunteerID.String()},
			Type:          events.NotificationFeedbackMissed,
			Title:         "Feedback deadline missed",
			Message:       fmt.Sprintf("The feedback deadline for %s passed and %.2f hours were voided.", name, rec.TotalHours),
			Payload:       payload,
			AggregateType: "attendance_record",
			AggregateID:   rec.ID.String(),
		})
		if ev := cache[rec.EventID]; ev != nil {
			s.notify(ctx, notification.Notification{
				UserIDs:       []string{ev.CreatedBy.String()},
				Type:          events.NotificationHoursVoided,
				Title:         "Volunteer hours voided",
				Message:       fmt.Sprintf("A volunteer missed the feedback deadline for %s.", name),
				Payload:       payload,
				AggregateType: "attendance_record",
				AggregateID:   rec.ID.String(),
			})
		}
	}
	return nil
}

// eventName resolves and caches the event for the current cycle. Lookup
// failures fall back to a generic name so the volunteer is still told.
func (s *service) eventName(ctx context.Context, id uuid.UUID, cache map[uuid.UUID]*event.Event) string {
	ev, ok := cache[id]
	if !ok {
		var err error
		ev, err = s.events.Get(ctx, id)
		if err != nil {
			s.logger.Warn("event lookup failed", zap.String("event_id", id.String()), zap.Error(err))
			ev = nil
		}
		cache[id] = ev
	}
	if ev == nil {
		return "your event"
	}
	return ev.Name
}

func (s *service) notify(ctx context.Context, n notification.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification dispatch failed", zap.String("type", n.Type), zap.Error(err))
	}
}

func internalError(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
}
