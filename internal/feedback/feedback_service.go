package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go-volunteer/internal/attendance"
	"go-volunteer/internal/domain"
	"go-volunteer/internal/event"
	"go-volunteer/internal/events"
	feedbackerrors "go-volunteer/internal/feedback/errors"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/shared/apperror"
	"go-volunteer/internal/shared/audit"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultCommentMaxLen = 2000

	minRating = 1
	maxRating = 5
)

//go:generate mockgen -source=feedback_service.go -destination=mock/feedback_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor domain.Actor, recordID string, req SubmitRequest) (attendance.RecordResponse, error)
	Override(ctx context.Context, actor domain.Actor, recordID string, req OverrideRequest) (attendance.RecordResponse, error)
	RecalculateEventSummary(ctx context.Context, eventID uuid.UUID) (event.FeedbackSummary, error)
	ListForEvent(ctx context.Context, actor domain.Actor, eventID, status string) ([]EventFeedbackResponse, error)
	ExportForEvent(ctx context.Context, actor domain.Actor, eventID string) ([]byte, string, error)
}

type Dependencies struct {
	DB            *sql.DB
	Repo          attendance.Repository
	Events        event.Lookup
	Access        attendance.OrganizerChecker
	Notifier      notification.Notifier
	Audit         audit.Logger
	CommentMaxLen int
	Now           func() time.Time
}

type service struct {
	db            *sql.DB
	repo          attendance.Repository
	events        event.Lookup
	access        attendance.OrganizerChecker
	notifier      notification.Notifier
	audit         audit.Logger
	commentMaxLen int
	now           func() time.Time
	logger        *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("feedback.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("feedback.service")
	}

	s := &service{
		db:            deps.DB,
		repo:          deps.Repo,
		events:        deps.Events,
		access:        deps.Access,
		notifier:      deps.Notifier,
		audit:         deps.Audit,
		commentMaxLen: deps.CommentMaxLen,
		now:           deps.Now,
		logger:        l,
	}
	if s.notifier == nil {
		s.notifier = notification.NewNopNotifier()
	}
	if s.audit == nil {
		s.audit = audit.Nop{}
	}
	if s.commentMaxLen <= 0 {
		s.commentMaxLen = DefaultCommentMaxLen
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *service) Submit(ctx context.Context, actor domain.Actor, recordID string, req SubmitRequest) (attendance.RecordResponse, error) {
	s.logger.Debug("submit feedback", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))

	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidActor
	}
	rid, err := uuid.Parse(recordID)
	if err != nil {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidRecordID
	}
	if req.Rating < minRating || req.Rating > maxRating {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidRating
	}
	comment, err := s.validateComment(req.Comment, true)
	if err != nil {
		return attendance.RecordResponse{}, err
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

	isOrganizer := s.access.IsOrganizer(actor, ev.CreatedBy)
	isVolunteer := rec.VolunteerIs(actor.UserID)
	if !isOrganizer && !isVolunteer {
		s.logger.Warn("feedback submit denied", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))
		return attendance.RecordResponse{}, feedbackerrors.ErrForbidden
	}

	if !isCompleted(rec) {
		return attendance.RecordResponse{}, feedbackerrors.ErrAttendanceNotCompleted
	}
	if rec.Status == attendance.StatusNotRequired {
		return attendance.RecordResponse{}, feedbackerrors.ErrFeedbackNotRequired
	}
	if !isOrganizer {
		switch {
		case rec.Status == attendance.StatusSubmitted || rec.Status == attendance.StatusOverridden:
			return attendance.RecordResponse{}, feedbackerrors.ErrAlreadySubmitted
		case rec.Status == attendance.StatusMissed || rec.Status == attendance.StatusVoided:
			return attendance.RecordResponse{}, feedbackerrors.ErrDeadlinePassed
		case rec.DeadlineAt != nil && now.After(*rec.DeadlineAt):
			return attendance.RecordResponse{}, feedbackerrors.ErrDeadlinePassed
		}
	}

	expected := rec.Status
	rating := req.Rating
	rec.Feedback.Rating = &rating
	rec.Feedback.Comment = comment
	rec.Feedback.SubmittedAt = &now
	rec.Feedback.SubmittedBy = &actorID

	rec.Status = attendance.StatusSubmitted
	if isOrganizer && !isVolunteer {
		rec.Status = attendance.StatusOverridden
	}
	if rec.VoidedHours || !rec.IsValid {
		reinstate(rec)
	}

	updated, err := qtx.UpdateIfStatus(ctx, rec, expected)
	if err != nil {
		s.logger.Error("save feedback failed", zap.String("record_id", recordID), zap.Error(err))
		return attendance.RecordResponse{}, internalError(err)
	}
	if !updated {
		return attendance.RecordResponse{}, s.lostRace(ctx, qtx, rid, isOrganizer)
	}

	if err := tx.Commit(); err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}

	s.logger.Info("feedback submitted",
		zap.String("record_id", recordID),
		zap.String("event_id", ev.ID.String()),
		zap.String("volunteer_id", rec.VolunteerID.String()),
		zap.Int("rating", rating),
		zap.String("status", string(rec.Status)),
	)

	s.recalculate(ctx, ev.ID)
	s.notify(ctx, notification.Notification{
		UserIDs:       []string{ev.CreatedBy.String()},
		Type:          events.NotificationFeedbackSubmitted,
		Title:         "Feedback received",
		Message:       fmt.Sprintf("A volunteer rated %s %d/5.", ev.Name, rating),
		Payload:       map[string]any{"recordId": recordID, "eventId": ev.ID.String(), "rating": rating},
		AggregateType: "attendance_record",
		AggregateID:   recordID,
	})

	return attendance.ToRecordResponse(*rec), nil
}

func (s *service) Override(ctx context.Context, actor domain.Actor, recordID string, req OverrideRequest) (attendance.RecordResponse, error) {
	s.logger.Debug("override feedback",
		zap.String("record_id", recordID),
		zap.String("actor_id", actor.UserID),
		zap.Bool("reinstate", req.ReinstateHours),
	)

	actorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidActor
	}
	rid, err := uuid.Parse(recordID)
	if err != nil {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidRecordID
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return attendance.RecordResponse{}, feedbackerrors.ErrReasonRequired
	}
	if req.Rating != nil && (*req.Rating < minRating || *req.Rating > maxRating) {
		return attendance.RecordResponse{}, feedbackerrors.ErrInvalidRating
	}
	var comment string
	if req.Comment != nil {
		if comment, err = s.validateComment(*req.Comment, false); err != nil {
			return attendance.RecordResponse{}, err
		}
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
		s.logger.Warn("feedback override denied", zap.String("record_id", recordID), zap.String("actor_id", actor.UserID))
		return attendance.RecordResponse{}, feedbackerrors.ErrNotOrganizer
	}
	if !ev.OverrideAllowed() {
		return attendance.RecordResponse{}, feedbackerrors.ErrOverrideDisabled
	}
	if !isCompleted(rec) {
		return attendance.RecordResponse{}, feedbackerrors.ErrAttendanceNotCompleted
	}

	expected := rec.Status
	rec.Feedback.Overridden = true
	rec.Feedback.OverrideReason = reason
	if req.Rating != nil {
		rating := *req.Rating
		rec.Feedback.Rating = &rating
		rec.Feedback.SubmittedAt = &now
		rec.Feedback.SubmittedBy = &actorID
	}
	if req.Comment != nil {
		rec.Feedback.Comment = comment
	}

	if req.ReinstateHours {
		rec.Status = attendance.StatusOverridden
		reinstate(rec)
	} else {
		rec.Void(attendance.StatusVoided)
	}

	updated, err := qtx.UpdateIfStatus(ctx, rec, expected)
	if err != nil {
		s.logger.Error("save override failed", zap.String("record_id", recordID), zap.Error(err))
		return attendance.RecordResponse{}, internalError(err)
	}
	if !updated {
		return attendance.RecordResponse{}, feedbackerrors.ErrConcurrentUpdate
	}

	if err := tx.Commit(); err != nil {
		return attendance.RecordResponse{}, internalError(err)
	}

	s.logger.Info("feedback overridden",
		zap.String("record_id", recordID),
		zap.String("event_id", ev.ID.String()),
		zap.String("status", string(rec.Status)),
		zap.Float64("total_hours", rec.TotalHours),
	)

	s.audit.Log(ctx, audit.Entry{
		Action:  "feedback.override",
		ActorID: actor.UserID,
		Message: reason,
		Meta: map[string]any{
			"record_id":       recordID,
			"event_id":        ev.ID.String(),
			"previous_status": string(expected),
			"status":          string(rec.Status),
			"reinstate_hours": req.ReinstateHours,
		},
	})

	s.recalculate(ctx, ev.ID)

	message := fmt.Sprintf("An organizer reinstated your %.2f hours for %s.", rec.TotalHours, ev.Name)
	if !req.ReinstateHours {
		message = fmt.Sprintf("An organizer voided your hours for %s.", ev.Name)
	}
	s.notify(ctx, notification.Notification{
		UserIDs:       []string{rec.VolunteerID.String()},
		Type:          events.NotificationFeedbackOverridden,
		Title:         "Attendance reviewed",
		Message:       message,
		Payload:       map[string]any{"recordId": recordID, "eventId": ev.ID.String(), "status": string(rec.Status), "reason": reason},
		AggregateType: "attendance_record",
		AggregateID:   recordID,
	})

	return attendance.ToRecordResponse(*rec), nil
}

// RecalculateEventSummary rebuilds events.feedback_summary_* from the stored
// ratings. It is safe to call repeatedly.
func (s *service) RecalculateEventSummary(ctx context.Context, eventID uuid.UUID) (event.FeedbackSummary, error) {
	stats, err := s.repo.FeedbackStats(ctx, eventID)
	if err != nil {
		s.logger.Error("feedback stats failed", zap.String("event_id", eventID.String()), zap.Error(err))
		return event.FeedbackSummary{}, internalError(err)
	}

	now := s.now().UTC()
	summary := event.FeedbackSummary{
		AverageRating:    stats.AverageRating,
		TotalResponses:   stats.TotalResponses,
		LastCalculatedAt: &now,
	}
	if err := s.events.UpdateFeedbackSummary(ctx, eventID, summary); err != nil {
		s.logger.Error("write feedback summary failed", zap.String("event_id", eventID.String()), zap.Error(err))
		return event.FeedbackSummary{}, err
	}

	s.logger.Info("feedback summary recalculated",
		zap.String("event_id", eventID.String()),
		zap.Float64("average_rating", summary.AverageRating),
		zap.Int("total_responses", summary.TotalResponses),
	)
	return summary, nil
}

// ListForEvent returns the event's checked-out records, optionally narrowed to
// one feedback status.
func (s *service) ListForEvent(ctx context.Context, actor domain.Actor, eventID, status string) ([]EventFeedbackResponse, error) {
	filter := attendance.StatusNone
	if status != "" {
		parsed, ok := attendance.ParseFeedbackStatus(status)
		if !ok {
			return nil, feedbackerrors.ErrInvalidStatusFilter
		}
		filter = parsed
	}

	ev, err := s.organizerEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	return s.feedbackRows(ctx, ev.ID, filter)
}

func (s *service) ExportForEvent(ctx context.Context, actor domain.Actor, eventID string) ([]byte, string, error) {
	ev, err := s.organizerEvent(ctx, actor, eventID)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.feedbackRows(ctx, ev.ID, attendance.StatusNone)
	if err != nil {
		return nil, "", err
	}

	data, err := buildWorkbook(ev, rows)
	if err != nil {
		s.logger.Error("build feedback workbook failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, "", feedbackerrors.ErrExportFailed.WithCause(err)
	}

	filename := fmt.Sprintf("feedback_%s_%s.xlsx", slug(ev.Name), s.now().UTC().Format("20060102"))
	s.logger.Info("feedback exported", zap.String("event_id", eventID), zap.Int("rows", len(rows)))
	return data, filename, nil
}

func (s *service) organizerEvent(ctx context.Context, actor domain.Actor, eventID string) (*event.Event, error) {
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, feedbackerrors.ErrInvalidEventID
	}
	ev, err := s.events.Get(ctx, eid)
	if err != nil {
		return nil, err
	}
	if !s.access.IsOrganizer(actor, ev.CreatedBy) {
		return nil, feedbackerrors.ErrNotOrganizer
	}
	return ev, nil
}

// feedbackRows lists the checked-out records of the event. StatusNone means
// every status.
func (s *service) feedbackRows(ctx context.Context, eventID uuid.UUID, status attendance.FeedbackStatus) ([]EventFeedbackResponse, error) {
	var (
		rows []attendance.Record
		err  error
	)
	if status == attendance.StatusNone {
		rows, err = s.repo.FindByEvent(ctx, eventID)
	} else {
		rows, err = s.repo.FindByEventAndStatus(ctx, eventID, status)
	}
	if err != nil {
		s.logger.Error("list event attendance failed", zap.String("event_id", eventID.String()), zap.Error(err))
		return nil, internalError(err)
	}

	resp := make([]EventFeedbackResponse, 0, len(rows))
	for _, r := range rows {
		if r.Status == attendance.StatusNone {
			continue
		}
		resp = append(resp, toEventFeedbackResponse(r))
	}
	return resp, nil
}

func (s *service) findRecord(ctx context.Context, repo attendance.Repository, id uuid.UUID) (*attendance.Record, error) {
	rec, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, feedbackerrors.ErrRecordNotFound
		}
		s.logger.Error("find attendance record failed", zap.String("record_id", id.String()), zap.Error(err))
		return nil, internalError(err)
	}
	return rec, nil
}

// lostRace explains a conditional update that matched no row. A volunteer
// racing the expiry sweep gets DeadlinePassed; a racing duplicate submission
// gets AlreadySubmitted.
func (s *service) lostRace(ctx context.Context, repo attendance.Repository, id uuid.UUID, isOrganizer bool) error {
	if isOrganizer {
		return feedbackerrors.ErrConcurrentUpdate
	}
	current, err := repo.FindByID(ctx, id)
	if err == nil && (current.Status == attendance.StatusSubmitted || current.Status == attendance.StatusOverridden) {
		return feedbackerrors.ErrAlreadySubmitted
	}
	return feedbackerrors.ErrDeadlinePassed
}

func (s *service) validateComment(raw string, required bool) (string, error) {
	comment := strings.TrimSpace(raw)
	if comment == "" && required {
		return "", feedbackerrors.ErrCommentRequired
	}
	if utf8.RuneCountInString(comment) > s.commentMaxLen {
		return "", feedbackerrors.ErrCommentTooLong
	}
	return comment, nil
}

func (s *service) recalculate(ctx context.Context, eventID uuid.UUID) {
	if _, err := s.RecalculateEventSummary(ctx, eventID); err != nil {
		s.logger.Warn("feedback summary not refreshed", zap.String("event_id", eventID.String()), zap.Error(err))
	}
}

func (s *service) notify(ctx context.Context, n notification.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification dispatch failed", zap.String("type", n.Type), zap.Error(err))
	}
}

// reinstate restores hours that voiding zeroed, recomputing them from the
// recorded session when nothing is left to keep.
func reinstate(r *attendance.Record) {
	r.VoidedHours = false
	r.IsValid = true
	if r.TotalHours == 0 && r.IsCompleted() {
		r.RecomputeTotal()
	}
}

func internalError(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
}
