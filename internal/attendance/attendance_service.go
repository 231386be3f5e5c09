package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	attendanceerrors "go-volunteer/internal/attendance/errors"
	"go-volunteer/internal/attendancetoken"
	"go-volunteer/internal/domain"
	"go-volunteer/internal/event"
	"go-volunteer/internal/events"
	"go-volunteer/internal/notification"
	"go-volunteer/internal/shared/apperror"
	"go-volunteer/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultCheckInLead   = 15 * time.Minute
	DefaultCheckOutGrace = time.Hour

	uniqueDayConstraint = "uq_attendance_event_volunteer_day"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	IssueToken(ctx context.Context, actor domain.Actor, eventID string) (attendancetoken.IssuedToken, error)
	RedeemQR(ctx context.Context, actor domain.Actor, qrData, action string) (RecordResponse, error)
	RedeemToken(ctx context.Context, actor domain.Actor, token, action string) (RecordResponse, error)
	ValidateOpenSessions(ctx context.Context, actor domain.Actor) (ValidationResult, error)
	PreviewOpenSessions(ctx context.Context, actor domain.Actor) (ValidationResult, error)
	GetPendingFeedback(ctx context.Context, volunteerID string) ([]PendingFeedbackResponse, error)
	GetMyAttendance(ctx context.Context, actor domain.Actor, eventID string) ([]RecordResponse, error)
}

// TokenCodec is satisfied by *attendancetoken.Codec.
type TokenCodec interface {
	Issue(eventID, issuerUserID string, ttl time.Duration) (attendancetoken.IssuedToken, error)
	Verify(token string) (*attendancetoken.Claims, error)
}

// OrganizerChecker is satisfied by rbac.Service.
type OrganizerChecker interface {
	IsOrganizer(actor domain.Actor, eventCreatedBy uuid.UUID) bool
	IsPrivileged(role string) bool
}

type Windows struct {
	CheckInLead   time.Duration
	CheckOutGrace time.Duration
}

type Dependencies struct {
	DB       *sql.DB
	Repo     Repository
	Events   event.Lookup
	Access   OrganizerChecker
	Tokens   TokenCodec
	Guard    ScanGuard
	Notifier notification.Notifier
	Windows  Windows
	Now      func() time.Time
}

type service struct {
	db       *sql.DB
	repo     Repository
	events   event.Lookup
	access   OrganizerChecker
	tokens   TokenCodec
	guard    ScanGuard
	notifier notification.Notifier
	windows  Windows
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}

	s := &service{
		db:       deps.DB,
		repo:     deps.Repo,
		events:   deps.Events,
		access:   deps.Access,
		tokens:   deps.Tokens,
		guard:    deps.Guard,
		notifier: deps.Notifier,
		windows:  deps.Windows,
		now:      deps.Now,
		logger:   l,
	}
	if s.guard == nil {
		s.guard = NewNopScanGuard()
	}
	if s.notifier == nil {
		s.notifier = notification.NewNopNotifier()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.windows.CheckInLead <= 0 {
		s.windows.CheckInLead = DefaultCheckInLead
	}
	if s.windows.CheckOutGrace <= 0 {
		s.windows.CheckOutGrace = DefaultCheckOutGrace
	}
	return s
}

type redemption struct {
	actor       domain.Actor
	volunteerID uuid.UUID
	eventID     uuid.UUID
	action      Action
	source      string
	raw         string
}

func (s *service) IssueToken(ctx context.Context, actor domain.Actor, eventID string) (attendancetoken.IssuedToken, error) {
	s.logger.Debug("issue attendance token", zap.String("event_id", eventID), zap.String("actor_id", actor.UserID))

	eid, err := uuid.Parse(eventID)
	if err != nil {
		return attendancetoken.IssuedToken{}, attendanceerrors.ErrInvalidEventID
	}

	ev, err := s.events.Get(ctx, eid)
	if err != nil {
		return attendancetoken.IssuedToken{}, err
	}
	if !s.access.IsOrganizer(actor, ev.CreatedBy) {
		s.logger.Warn("issue attendance token denied", zap.String("event_id", eventID), zap.String("actor_id", actor.UserID))
		return attendancetoken.IssuedToken{}, attendanceerrors.ErrNotOrganizer
	}

	issued, err := s.tokens.Issue(eid.String(), actor.UserID, 0)
	if err != nil {
		s.logger.Error("issue attendance token failed", zap.String("event_id", eventID), zap.Error(err))
		return attendancetoken.IssuedToken{}, err
	}

	s.logger.Info("attendance token issued",
		zap.String("event_id", eventID),
		zap.String("jti", issued.TokenID),
		zap.Time("expires_at", issued.ExpiresAt),
	)
	return issued, nil
}

func (s *service) RedeemQR(ctx context.Context, actor domain.Actor, qrData, action string) (RecordResponse, error) {
	volunteerID, err := parseActor(actor)
	if err != nil {
		return RecordResponse{}, err
	}

	payload, err := ParseQRPayload(qrData)
	if err != nil {
		s.logger.Warn("qr payload rejected", zap.String("volunteer_id", actor.UserID), zap.Error(err))
		return RecordResponse{}, err
	}

	resolved, err := payload.ResolveAction(action)
	if err != nil {
		return RecordResponse{}, err
	}
	if !payload.ActiveOn(s.now()) {
		return RecordResponse{}, attendanceerrors.ErrQrExpiredOrInactive
	}

	eventID, err := uuid.Parse(payload.EventID)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidQRPayload
	}

	return s.redeem(ctx, redemption{
		actor:       actor,
		volunteerID: volunteerID,
		eventID:     eventID,
		action:      resolved,
		source:      SourceQR,
		raw:         qrData,
	})
}

func (s *service) RedeemToken(ctx context.Context, actor domain.Actor, token, action string) (RecordResponse, error) {
	volunteerID, err := parseActor(actor)
	if err != nil {
		return RecordResponse{}, err
	}

	resolved, err := ParseAction(action)
	if err != nil {
		return RecordResponse{}, err
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Warn("attendance token rejected", zap.String("volunteer_id", actor.UserID), zap.Error(err))
		return RecordResponse{}, err
	}

	eventID, err := uuid.Parse(claims.EventID)
	if err != nil {
		return RecordResponse{}, attendanceerrors.ErrTokenEventMismatch
	}

	return s.redeem(ctx, redemption{
		actor:       actor,
		volunteerID: volunteerID,
		eventID:     eventID,
		action:      resolved,
		source:      SourceToken,
		raw:         token,
	})
}

// redeem claims the scan key first so a replayed scan never reaches the
// store. The key is released when the redemption fails, letting the caller
// retry after fixing the cause.
func (s *service) redeem(ctx context.Context, r redemption) (RecordResponse, error) {
	key := ScanKey(r.actor.UserID, r.action, r.raw)
	claimed, err := s.guard.Claim(ctx, key)
	if err != nil {
		s.logger.Warn("scan guard claim failed", zap.Error(err))
		claimed = true
	}
	if !claimed {
		s.logger.Warn("duplicate scan suppressed",
			zap.String("volunteer_id", r.volunteerID.String()),
			zap.String("event_id", r.eventID.String()),
			zap.String("action", string(r.action)),
		)
		return RecordResponse{}, attendanceerrors.ErrDuplicateScan
	}

	var resp RecordResponse
	switch r.action {
	case ActionTimeIn:
		resp, err = s.checkIn(ctx, r)
	case ActionTimeOut:
		resp, err = s.checkOut(ctx, r)
	default:
		err = attendanceerrors.ErrInvalidAction
	}

	if err != nil {
		if relErr := s.guard.Release(ctx, key); relErr != nil {
			s.logger.Warn("scan guard release failed", zap.Error(relErr))
		}
		return RecordResponse{}, err
	}
	return resp, nil
}

func (s *service) checkIn(ctx context.Context, r redemption) (RecordResponse, error) {
	now := s.now().UTC()

	ev, err := s.events.Get(ctx, r.eventID)
	if err != nil {
		return RecordResponse{}, err
	}

	if r.source == SourceToken {
		if now.Before(ev.StartDate.Add(-s.windows.CheckInLead)) || now.After(ev.EndDate) {
			return RecordResponse{}, attendanceerrors.ErrEventNotActive
		}
	} else if now.After(ev.EndDate) {
		return RecordResponse{}, attendanceerrors.ErrEventNotActive
	}

	if ev.EnforceVolunteerList {
		approved, err := s.events.IsApprovedVolunteer(ctx, ev.ID, r.volunteerID)
		if err != nil {
			s.logger.Error("check volunteer registration failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
			return RecordResponse{}, internalError(err)
		}
		if !approved {
			return RecordResponse{}, attendanceerrors.ErrNotRegisteredVolunteer
		}
	}

	day := event.DayBucket(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, internalError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByEventVolunteerAndDate(ctx, ev.ID, r.volunteerID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("find today's attendance failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		return RecordResponse{}, internalError(err)
	}
	if existing != nil && existing.TimeIn != nil {
		return RecordResponse{}, attendanceerrors.ErrDuplicateTimeIn
	}

	var carried float64
	if ev.IsMultiDay() {
		prior, err := qtx.FindByEventAndVolunteer(ctx, ev.ID, r.volunteerID)
		if err != nil {
			s.logger.Error("load prior attendance failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
			return RecordResponse{}, internalError(err)
		}
		carried = CarriedHours(prior, day)
	}

	rec := existing
	if rec == nil {
		rec = &Record{
			ID:             uuid.New(),
			EventID:        ev.ID,
			VolunteerID:    r.volunteerID,
			AttendanceDate: day,
		}
	}
	rec.TimeIn = &now
	rec.PreviousDayHours = carried
	rec.TotalHours = 0
	rec.IsValid = true
	rec.Status = StatusNone
	rec.Source = r.source

	if existing == nil {
		err = qtx.Create(ctx, rec)
	} else {
		err = qtx.Update(ctx, rec)
	}
	if err != nil {
		if isDuplicateDay(err) {
			return RecordResponse{}, attendanceerrors.ErrDuplicateTimeIn
		}
		s.logger.Error("record time-in failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		return RecordResponse{}, internalError(err)
	}

	if err := tx.Commit(); err != nil {
		if isDuplicateDay(err) {
			return RecordResponse{}, attendanceerrors.ErrDuplicateTimeIn
		}
		return RecordResponse{}, internalError(err)
	}

	s.logger.Info("time-in recorded",
		zap.String("record_id", rec.ID.String()),
		zap.String("event_id", ev.ID.String()),
		zap.String("volunteer_id", r.volunteerID.String()),
		zap.String("source", r.source),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
	)

	s.notify(ctx, notification.Notification{
		UserIDs:       []string{r.volunteerID.String()},
		Type:          events.NotificationCheckedIn,
		Title:         "Checked in",
		Message:       fmt.Sprintf("You checked in to %s.", ev.Name),
		Payload:       map[string]any{"recordId": rec.ID.String(), "eventId": ev.ID.String()},
		AggregateType: "attendance_record",
		AggregateID:   rec.ID.String(),
	})

	return ToRecordResponse(*rec), nil
}

func (s *service) checkOut(ctx context.Context, r redemption) (RecordResponse, error) {
	now := s.now().UTC()

	ev, err := s.events.Get(ctx, r.eventID)
	if err != nil {
		return RecordResponse{}, err
	}

	if r.source == SourceToken {
		if now.Before(ev.StartDate.Add(-s.windows.CheckInLead)) || now.After(ev.EndDate.Add(s.windows.CheckOutGrace)) {
			return RecordResponse{}, attendanceerrors.ErrEventNotActive
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, internalError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rec, err := qtx.FindByEventVolunteerAndDate(ctx, ev.ID, r.volunteerID, event.DayBucket(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrNoTimeInRecorded
		}
		s.logger.Error("find today's attendance failed", zap.String("event_id", ev.ID.String()), zap.Error(err))
		return RecordResponse{}, internalError(err)
	}
	if rec.TimeIn == nil {
		return RecordResponse{}, attendanceerrors.ErrNoTimeInRecorded
	}
	if rec.TimeOut != nil {
		return RecordResponse{}, attendanceerrors.ErrDuplicateTimeOut
	}
	if !rec.IsValid {
		return RecordResponse{}, attendanceerrors.ErrSessionInvalidated
	}

	expected := rec.Status
	rec.CloseSession(ev, now)

	updated, err := qtx.UpdateIfStatus(ctx, rec, expected)
	if err != nil {
		s.logger.Error("record time-out failed", zap.String("record_id", rec.ID.String()), zap.Error(err))
		return RecordResponse{}, internalError(err)
	}
	if !updated {
		return RecordResponse{}, attendanceerrors.ErrDuplicateTimeOut
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, internalError(err)
	}

	s.logger.Info("time-out recorded",
		zap.String("record_id", rec.ID.String()),
		zap.String("event_id", ev.ID.String()),
		zap.String("volunteer_id", r.volunteerID.String()),
		zap.Float64("total_hours", rec.TotalHours),
		zap.String("status", string(rec.Status)),
	)

	message := fmt.Sprintf("You checked out of %s with %.2f hours.", ev.Name, rec.TotalHours)
	if rec.Status == StatusPending && rec.DeadlineAt != nil {
		message += fmt.Sprintf(" Submit feedback before %s to keep your hours.", rec.DeadlineAt.Format(time.RFC1123))
	}
	s.notify(ctx, notification.Notification{
		UserIDs:       []string{r.volunteerID.String()},
		Type:          events.NotificationCheckedOut,
		Title:         "Checked out",
		Message:       message,
		Payload:       map[string]any{"recordId": rec.ID.String(), "eventId": ev.ID.String(), "status": string(rec.Status)},
		AggregateType: "attendance_record",
		AggregateID:   rec.ID.String(),
	})

	return ToRecordResponse(*rec), nil
}

func (s *service) ValidateOpenSessions(ctx context.Context, actor domain.Actor) (ValidationResult, error) {
	if !s.access.IsPrivileged(actor.Role) {
		return ValidationResult{}, attendanceerrors.ErrPrivilegedOnly
	}

	count, err := s.repo.InvalidateOpenSessions(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("invalidate open sessions failed", zap.Error(err))
		return ValidationResult{}, internalError(err)
	}

	s.logger.Info("open sessions invalidated",
		zap.Int64("count", count),
		zap.String("actor_id", actor.UserID),
	)
	return ValidationResult{Invalidated: count}, nil
}

// PreviewOpenSessions counts the sessions ValidateOpenSessions would
// invalidate without changing them.
func (s *service) PreviewOpenSessions(ctx context.Context, actor domain.Actor) (ValidationResult, error) {
	if !s.access.IsPrivileged(actor.Role) {
		return ValidationResult{}, attendanceerrors.ErrPrivilegedOnly
	}

	open, err := s.repo.FindOpenSessions(ctx)
	if err != nil {
		s.logger.Error("find open sessions failed", zap.Error(err))
		return ValidationResult{}, internalError(err)
	}
	return ValidationResult{Invalidated: int64(len(open)), DryRun: true}, nil
}

func (s *service) GetPendingFeedback(ctx context.Context, volunteerID string) ([]PendingFeedbackResponse, error) {
	vid, err := uuid.Parse(volunteerID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidActor
	}

	rows, err := s.repo.FindPendingByVolunteer(ctx, vid)
	if err != nil {
		s.logger.Error("list pending feedback failed", zap.String("volunteer_id", volunteerID), zap.Error(err))
		return nil, internalError(err)
	}

	now := s.now().UTC()
	names := make(map[uuid.UUID]string)
	resp := make([]PendingFeedbackResponse, 0, len(rows))
	for _, rec := range rows {
		name, ok := names[rec.EventID]
		if !ok {
			if ev, err := s.events.Get(ctx, rec.EventID); err == nil {
				name = ev.Name
			} else {
				s.logger.Warn("resolve event name failed", zap.String("event_id", rec.EventID.String()), zap.Error(err))
			}
			names[rec.EventID] = name
		}

		var remaining float64
		if rec.DeadlineAt != nil {
			remaining = RoundHours(rec.DeadlineAt.Sub(now).Hours())
		}
		resp = append(resp, PendingFeedbackResponse{
			Record:         ToRecordResponse(rec),
			EventName:      name,
			HoursRemaining: remaining,
		})
	}
	return resp, nil
}

func (s *service) GetMyAttendance(ctx context.Context, actor domain.Actor, eventID string) ([]RecordResponse, error) {
	vid, err := parseActor(actor)
	if err != nil {
		return nil, err
	}
	eid, err := uuid.Parse(eventID)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidEventID
	}

	rows, err := s.repo.FindByEventAndVolunteer(ctx, eid, vid)
	if err != nil {
		s.logger.Error("list attendance failed", zap.String("event_id", eventID), zap.Error(err))
		return nil, internalError(err)
	}
	return ToRecordResponses(rows), nil
}

func (s *service) notify(ctx context.Context, n notification.Notification) {
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("notification dispatch failed", zap.String("type", n.Type), zap.Error(err))
	}
}

func parseActor(actor domain.Actor) (uuid.UUID, error) {
	id, err := uuid.Parse(actor.UserID)
	if err != nil {
		return uuid.Nil, attendanceerrors.ErrInvalidActor
	}
	return id, nil
}

func internalError(err error) error {
	return apperror.Wrap(err, apperror.CodeInternalError, apperror.ErrInternal.Message, http.StatusInternalServerError)
}

// isDuplicateDay detects the unique-index race between two concurrent
// check-ins for the same volunteer and day.
func isDuplicateDay(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && (pgErr.ConstraintName == "" || pgErr.ConstraintName == uniqueDayConstraint)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, uniqueDayConstraint)
}
