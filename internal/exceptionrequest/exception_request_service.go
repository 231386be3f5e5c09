package exceptionrequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-volunteer/internal/attendance"
	"go-volunteer/internal/domain"
	"go-volunteer/internal/event"
	"go-volunteer/internal/events"
	exceptionrequesterrors "go-volunteer/internal/exceptionrequest/errors"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/shared/apperror"
	"go-volunteer/internal/shared/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=exception_request_service.go -destination=mock/exception_request_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, recordID string, req SubmitRequest) (attendance.RecordResponse, error)
	Review(ctx context.Context, actor domain.Actor, recordID string, req ReviewRequest) (attendance.RecordResponse, error)
}

type Dependencies struct {
	DB       *sql.DB
	Repo     attendance.Repository
	Events   event.Lookup
	Access   attendance.OrganizerChecker
	Notifier notification.Notifier
	Audit    audit.Logger
	Now      func() time.Time
}

type service struct {
	db       *sql.DB
	repo     attendance.Repository
	events   event.Lookup
	access   attendance.OrganizerChecker
	notifier notification.Notifier
	audit    audit.Logger
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("exceptionrequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("exceptionrequest.service")
	}

	s := &service{
		db:       deps.DB,
		repo:     deps.Repo,
		events:   deps.Events,
		access:   deps.Access,
		notifier: deps.Notifier,
		audit:    deps.Audit,
		now:      deps.Now,
		logger:   l,
	}
	if s.notifier == nil {
		s.notifier = notification.NewNopNotifier()
	}
	if s.audit == nil {
		s.audit = audit.Nop{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, recordID string, req SubmitRequest) (attendance.RecordResponse, error) {
	s.logger.Debug("submit exception request", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))

	if _, err := uuid.Parse(actor.UserID); err != nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrInvalidActor
	}
	rid, err := uuid.Parse(recordID)
	if err != nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrInvalidRecordID
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrReasonRequired
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := s.findRecord(ctx, qtx, rid)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !rec.VolunteerIs(actor.UserID) {
		s.logger.Warn("exception request denied", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrNotRecordOwner
	}
	if rec.TimeIn == nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrNoTimeInRecorded
	}
	if rec.TimeOut != nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrTimeOutAlreadyRecorded
	}
	switch rec.Exception.Status {
	case attendance.ExceptionPending, attendance.ExceptionApproved:
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrDuplicateExceptionRequest
	}

	ev, err := s.events.Get(ctx, rec.EventID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	rec.Exception = attendance.Exception{
		Reason:      reason,
		Status:      attendance.ExceptionPending,
		RequestedAt: &now,
	}

	updated, err := qtx.UpdateIfStatus(ctx, rec, rec.Status)
	if err != nil {
		s.logger.Error("save exception request failed", zap.String("record_id", recordID), zap.Error(err))
		return attendance.RecordResponse{}, internalError(err)
	}
	if !updated {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrConcurrentUpdate
	}

	if err := tx.Commit(); err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}

	s.logger.Info("exception request submitted",
		zap.String("record_id", recordID),
		zap.String("event_id", ev.ID.String()),
		zap.String("volunteer_id", rec.VolunteerID.String()),
	)

	s.notify(ctx, notification.Notification{
		UserIDs:       []string{ev.CreatedBy.String()},
		Type:          events.NotificationExceptionRequested,
		Title:         "Attendance exception requested",
		Message:       fmt.Sprintf("A volunteer could not check out of %s: %s", ev.Name, reason),
		Payload:       map[string]any{"recordId": recordID, "eventId": ev.ID.String()},
		AggregateType: "attendance_record",
		AggregateID:   recordID,
	})

	return attendance.ToRecordResponse(*rec), nil
}

func (s *service) Review(ctx context.Context, actor domain.Actor, recordID string, req ReviewRequest) (attendance.RecordResponse, error) {
	s.logger.Debug("review exception request",
		zap.String("record_id", recordID),
		zap.String("actor_id", actor.UserID),
		zap.String("action", req.Action),
	)

	reviewerID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrInvalidActor
	}
	rid, err := uuid.Parse(recordID)
	if err != nil {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrInvalidRecordID
	}
	action, ok := ParseReviewAction(req.Action)
	if !ok {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrInvalidReviewAction
	}

	now := s.now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := s.findRecord(ctx, qtx, rid)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	ev, err := s.events.Get(ctx, rec.EventID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !s.access.IsOrganizer(actor, ev.CreatedBy) {
		s.logger.Warn("exception review denied", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrNotOrganizer
	}
	if rec.Exception.Status != attendance.ExceptionPending {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrNoPendingException
	}

	expected := rec.Status
	rec.Exception.ReviewedAt = &now
	rec.Exception.ReviewedBy = &reviewerID
	rec.Exception.ReviewNotes = strings.TrimSpace(req.Notes)

	if action == ActionApprove {
		if rec.TimeIn == nil {
			return attendance.RecordResponse{}, exceptionrequesterrors.ErrNoTimeInRecorded
		}
		if rec.TimeOut != nil {
			return attendance.RecordResponse{}, exceptionrequesterrors.ErrTimeOutAlreadyRecorded
		}
		rec.Exception.Status = attendance.ExceptionApproved
		timeOut := SyntheticTimeOut(rec, ev)
		rec.CloseSession(ev, timeOut)
		if rec.Status == attendance.StatusPending {
			deadline := ev.FreshFeedbackDeadline(timeOut, now)
			rec.DeadlineAt = &deadline
		}
		rec.IsValid = true
		rec.VoidedHours = false
	} else {
		rec.Exception.Status = attendance.ExceptionRejected
	}

	updated, err := qtx.UpdateIfStatus(ctx, rec, expected)
	if err != nil {
		s.logger.Error("save exception review failed", zap.String("record_id", recordID), zap.Error(err))
		return attendance.RecordResponse{}, internalError(err)
	}
	if !updated {
		return attendance.RecordResponse{}, exceptionrequesterrors.ErrConcurrentUpdate
	}

	if err := tx.Commit(); err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}

	s.logger.Info("exception request reviewed",
		zap.String("record_id", recordID),
		zap.String("event_id", ev.ID.String()),
		zap.String("action", string(action)),
		zap.Float64("total_hours", rec.TotalHours),
		zap.String("status", string(rec.Status)),
	)

	s.audit.Log(ctx, audit.Entry{
		Action:  "attendance.exception." + string(action),
		ActorID: actor.UserID,
		Message: rec.Exception.ReviewNotes,
		Meta: map[string]any{
			"record_id":    recordID,
			"event_id":     ev.ID.String(),
			"volunteer_id": rec.VolunteerID.String(),
			"total_hours":  rec.TotalHours,
		},
	})

	message := fmt.Sprintf("Your attendance exception for %s was rejected.", ev.Name)
	if action == ActionApprove {
		message = fmt.Sprintf("Your attendance exception for %s was approved with %.2f hours.", ev.Name, rec.TotalHours)
		if rec.Status == attendance.StatusPending && rec.DeadlineAt != nil {
			message += fmt.Sprintf(" Submit feedback before %s.", rec.DeadlineAt.Format(time.RFC1123))
		}
	}
	s.notify(ctx, notification.Notification{
		UserIDs:       []string{rec.VolunteerID.String()},
		Type:          events.NotificationExceptionReviewed,
		Title:         "Attendance exception reviewed",
		Message:       message,
		Payload:       map[string]any{"recordId": recordID, "eventId": ev.ID.String(), "decision": string(action)},
		AggregateType: "attendance_record",
		AggregateID:   recordID,
	})

	return attendance.ToRecordResponse(*rec), nil
}

// SyntheticTimeOut closes an approved session at the end of its attendance
// day or at the event end, whichever comes first, and never before TimeIn.
func SyntheticTimeOut(rec *attendance.Record, ev *event.Event) time.Time {
	endOfDay := event.DayBucket(rec.AttendanceDate).Add(24*time.Hour - time.Millisecond)
	out := endOfDay
	if ev.EndDate.Before(out) {
		out = ev.EndDate.UTC()
	}
	if rec.TimeIn != nil && out.Before(*rec.TimeIn) {
		out = *rec.TimeIn
	}
	return out
}

func (s *service) findRecord(ctx context.Context, repo attendance.Repository, id uuid.UUID) (*attendance.Record, error) {
	rec, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptionrequesterrors.ErrRecordNotFound
		}
		s.logger.Error("find attendance record failed", zap.String("record_id", id.String()), zap.Error(err))
		return nil, internalError(err)
	}
	return rec, nil
}

func (s *service) notify(ctx context.Context, n notification.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification dispatch failed", zap.String("type", n.Type), zap.Error(err))
	}
}

func internalError(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
}
