package feedback_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"go-volunteer/internal/attendance"
	attendanceMock "go-volunteer/internal/attendance/mock"
	"go-volunteer/internal/domain"
	"go-volunteer/internal/event"
	eventMock "go-volunteer/internal/event/mock"
	"go-volunteer/internal/feedback"
	feedbackerrors "go-volunteer/internal/feedback/errors"
	notificationMock "go-volunteer/internal/notification/mock"
	"go-volunteer/internal/rbac"
	"go-volunteer/internal/rbac/infra"
	"go-volunteer/internal/shared/audit"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type recordingAudit struct {
	entries []audit.Entry
}

func (a *recordingAudit) Log(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

type serviceDeps struct {
	sqlMock  sqlmock.Sqlmock
	repo     *attendanceMock.MockRepository
	events   *eventMock.MockLookup
	notifier *notificationMock.MockNotifier
	audit    *recordingAudit
	service  feedback.Service
}

func setupService(t *testing.T, now time.Time) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	access, err := rbac.NewService(enforcer, []string{"ADMIN", "STAFF"})
	assert.NoError(t, err)

	deps := &serviceDeps{
		sqlMock:  mock,
		repo:     attendanceMock.NewMockRepository(ctrl),
		events:   eventMock.NewMockLookup(ctrl),
		notifier: notificationMock.NewMockNotifier(ctrl),
		audit:    &recordingAudit{},
	}
	deps.service = feedback.NewService(feedback.Dependencies{
		DB:       db,
		Repo:     deps.repo,
		Events:   deps.events,
		Access:   access,
		Notifier: deps.notifier,
		Audit:    deps.audit,
		Now:      func() time.Time { return now },
	})
	return deps
}

type fixture struct {
	now       time.Time
	ev        *event.Event
	volunteer uuid.UUID
	record    attendance.Record
}

func newFixture() fixture {
	now := time.Date(2026, 7, 5, 12, 0, 0, 0, time.UTC)
	start := now.Add(-28 * time.Hour)
	ev := &event.Event{
		ID:            uuid.New(),
		Name:          "River Cleanup",
		StartDate:     start,
		EndDate:       start.Add(6 * time.Hour),
		CreatedBy:     uuid.New(),
		FeedbackRules: event.FeedbackRules{DeadlineHours: 24, RequireFeedback: true},
	}
	in := start.Add(time.Hour)
	out := in.Add(3 * time.Hour)
	deadline := now.Add(2 * time.Hour)
	volunteer := uuid.New()
	return fixture{
		now:       now,
		ev:        ev,
		volunteer: volunteer,
		record: attendance.Record{
			ID:             uuid.New(),
			EventID:        ev.ID,
			VolunteerID:    volunteer,
			AttendanceDate: event.DayBucket(in),
			TimeIn:         &in,
			TimeOut:        &out,
			DeadlineAt:     &deadline,
			TotalHours:     3,
			IsValid:        true,
			Status:         attendance.StatusPending,
		},
	}
}

func (d *serviceDeps) expectRecalc(t *testing.T, ev *event.Event, stats attendance.EventFeedbackStats) {
	d.repo.EXPECT().FeedbackStats(gomock.Any(), ev.ID).Return(stats, nil)
	d.events.EXPECT().UpdateFeedbackSummary(gomock.Any(), ev.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, summary event.FeedbackSummary) error {
			assert.Equal(t, stats.AverageRating, summary.AverageRating)
			assert.NotNil(t, summary.LastCalculatedAt)
			return nil
		})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Volunteer Before Deadline", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusPending).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.expectRecalc(t, fx.ev, attendance.EventFeedbackStats{AverageRating: 4, TotalResponses: 1})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Submit(ctx, domain.NewActor(fx.volunteer.String(), "volunteer"), rec.ID.String(),
			feedback.SubmitRequest{Rating: 4, Comment: "  Well organized  "})
		assert.NoError(t, err)
		assert.Equal(t, string(attendance.StatusSubmitted), resp.Status)
		assert.Equal(t, "Well organized", rec.Feedback.Comment)
		assert.Equal(t, 4, *rec.Feedback.Rating)
		assert.Equal(t, fx.volunteer, *rec.Feedback.SubmittedBy)
		assert.Equal(t, 3.0, resp.TotalHours)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("Organizer Submits For Missed Volunteer", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record
		rec.Status = attendance.StatusMissed
		rec.Void(attendance.StatusMissed)
		rec.IsValid = false

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusMissed).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.expectRecalc(t, fx.ev, attendance.EventFeedbackStats{AverageRating: 5, TotalResponses: 1})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Submit(ctx, domain.NewActor(fx.ev.CreatedBy.String(), "volunteer"), rec.ID.String(),
			feedback.SubmitRequest{Rating: 5, Comment: "Collected on paper"})
		assert.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOverridden), resp.Status)
		assert.False(t, rec.VoidedHours)
		assert.True(t, rec.IsValid)
		assert.Equal(t, 3.0, rec.TotalHours)
	})

	t.Run("Input Validation", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		actor := domain.NewActor(fx.volunteer.String(), "")

		_, err := deps.service.Submit(ctx, actor, fx.record.ID.String(), feedback.SubmitRequest{Rating: 6, Comment: "ok"})
		assert.ErrorIs(t, err, feedbackerrors.ErrInvalidRating)

		_, err = deps.service.Submit(ctx, actor, fx.record.ID.String(), feedback.SubmitRequest{Rating: 0, Comment: "ok"})
		assert.ErrorIs(t, err, feedbackerrors.ErrInvalidRating)

		_, err = deps.service.Submit(ctx, actor, fx.record.ID.String(), feedback.SubmitRequest{Rating: 3, Comment: "   "})
		assert.ErrorIs(t, err, feedbackerrors.ErrCommentRequired)

		_, err = deps.service.Submit(ctx, actor, fx.record.ID.String(), feedback.SubmitRequest{Rating: 3, Comment: strings.Repeat("a", 2001)})
		assert.ErrorIs(t, err, feedbackerrors.ErrCommentTooLong)

		_, err = deps.service.Submit(ctx, actor, "not-a-uuid", feedback.SubmitRequest{Rating: 3, Comment: "ok"})
		assert.ErrorIs(t, err, feedbackerrors.ErrInvalidRecordID)
	})

	rejections := []struct {
		name    string
		mutate  func(r *attendance.Record)
		actor   func(fx fixture) domain.Actor
		wantErr error
	}{
		{
			name:    "Deadline Passed",
			mutate:  func(r *attendance.Record) { past := r.TimeOut.Add(time.Hour); r.DeadlineAt = &past },
			actor:   func(fx fixture) domain.Actor { return domain.NewActor(fx.volunteer.String(), "") },
			wantErr: feedbackerrors.ErrDeadlinePassed,
		},
		{
			name:    "Already Submitted",
			mutate:  func(r *attendance.Record) { r.Status = attendance.StatusSubmitted },
			actor:   func(fx fixture) domain.Actor { return domain.NewActor(fx.volunteer.String(), "") },
			wantErr: feedbackerrors.ErrAlreadySubmitted,
		},
		{
			name:    "Not Required",
			mutate:  func(r *attendance.Record) { r.Status = attendance.StatusNotRequired; r.DeadlineAt = nil },
			actor:   func(fx fixture) domain.Actor { return domain.NewActor(fx.volunteer.String(), "") },
			wantErr: feedbackerrors.ErrFeedbackNotRequired,
		},
		{
			name: "Not Completed",
			mutate: func(r *attendance.Record) {
				r.TimeOut = nil
				r.TotalHours = 0
				r.Status = attendance.StatusNone
				r.DeadlineAt = nil
			},
			actor:   func(fx fixture) domain.Actor { return domain.NewActor(fx.volunteer.String(), "") },
			wantErr: feedbackerrors.ErrAttendanceNotCompleted,
		},
		{
			name:    "Stranger",
			mutate:  func(*attendance.Record) {},
			actor:   func(fixture) domain.Actor { return domain.NewActor(uuid.NewString(), "volunteer") },
			wantErr: feedbackerrors.ErrForbidden,
		},
	}

	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture()
			deps := setupService(t, fx.now)
			rec := fx.record
			tc.mutate(&rec)

			deps.sqlMock.ExpectBegin()
			deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
			deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
			deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
			deps.sqlMock.ExpectRollback()

			_, err := deps.service.Submit(ctx, tc.actor(fx), rec.ID.String(), feedback.SubmitRequest{Rating: 3, Comment: "fine"})
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}

	t.Run("Legacy Record Without Time-In Counts As Completed", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record
		rec.TimeIn = nil

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusPending).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.expectRecalc(t, fx.ev, attendance.EventFeedbackStats{AverageRating: 2, TotalResponses: 1})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.Submit(ctx, domain.NewActor(fx.volunteer.String(), ""), rec.ID.String(),
			feedback.SubmitRequest{Rating: 2, Comment: "late bus"})
		assert.NoError(t, err)
	})

	t.Run("Volunteer Loses Race To Expiry Sweep", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record
		missed := fx.record
		missed.Void(attendance.StatusMissed)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusPending).Return(false, nil)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&missed, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Submit(ctx, domain.NewActor(fx.volunteer.String(), ""), rec.ID.String(),
			feedback.SubmitRequest{Rating: 4, Comment: "great"})
		assert.ErrorIs(t, err, feedbackerrors.ErrDeadlinePassed)
	})

	t.Run("Record Not Found", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, fx.record.ID).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Submit(ctx, domain.NewActor(fx.volunteer.String(), ""), fx.record.ID.String(),
			feedback.SubmitRequest{Rating: 4, Comment: "great"})
		assert.ErrorIs(t, err, feedbackerrors.ErrRecordNotFound)
	})
}

func TestService_Override(t *testing.T) {
	ctx := context.Background()

	t.Run("Reinstate Recomputes Voided Hours", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record
		rec.PreviousDayHours = 1.5
		rec.Void(attendance.StatusMissed)
		rec.IsValid = false

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusMissed).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.expectRecalc(t, fx.ev, attendance.EventFeedbackStats{})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Override(ctx, domain.NewActor(uuid.NewString(), "admin"), rec.ID.String(),
			feedback.OverrideRequest{ReinstateHours: true, Reason: "Paper sign-in sheet confirms attendance"})
		assert.NoError(t, err)
		assert.Equal(t, string(attendance.StatusOverridden), resp.Status)
		assert.Equal(t, 4.5, resp.TotalHours)
		assert.True(t, resp.IsValid)
		assert.False(t, resp.VoidedHours)
		assert.True(t, rec.Feedback.Overridden)
		assert.Len(t, deps.audit.entries, 1)
		assert.Equal(t, "feedback.override", deps.audit.entries[0].Action)
	})

	t.Run("Void Zeroes Hours", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusPending).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.expectRecalc(t, fx.ev, attendance.EventFeedbackStats{})
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Override(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), rec.ID.String(),
			feedback.OverrideRequest{Reason: "Left after ten minutes"})
		assert.NoError(t, err)
		assert.Equal(t, string(attendance.StatusVoided), resp.Status)
		assert.Equal(t, 0.0, resp.TotalHours)
		assert.True(t, resp.VoidedHours)
	})

	t.Run("Disabled For Event", func(t *testing.T) {
		fx := newFixture()
		disabled := false
		fx.ev.FeedbackRules.AllowOrganizerOverride = &disabled
		deps := setupService(t, fx.now)
		rec := fx.record

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Override(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), rec.ID.String(),
			feedback.OverrideRequest{Reason: "x"})
		assert.ErrorIs(t, err, feedbackerrors.ErrOverrideDisabled)
	})

	t.Run("Volunteer Cannot Override", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)
		rec := fx.record

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, rec.ID).Return(&rec, nil)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Override(ctx, domain.NewActor(fx.volunteer.String(), "volunteer"), rec.ID.String(),
			feedback.OverrideRequest{ReinstateHours: true, Reason: "please"})
		assert.ErrorIs(t, err, feedbackerrors.ErrNotOrganizer)
	})

	t.Run("Reason Required", func(t *testing.T) {
		fx := newFixture()
		deps := setupService(t, fx.now)

		_, err := deps.service.Override(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), fx.record.ID.String(),
			feedback.OverrideRequest{Reason: "  "})
		assert.ErrorIs(t, err, feedbackerrors.ErrReasonRequired)
	})
}

func TestService_RecalculateEventSummary(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	deps := setupService(t, fx.now)

	deps.repo.EXPECT().FeedbackStats(ctx, fx.ev.ID).Return(attendance.EventFeedbackStats{AverageRating: 4.33, TotalResponses: 3}, nil)
	deps.events.EXPECT().UpdateFeedbackSummary(ctx, fx.ev.ID, event.FeedbackSummary{
		AverageRating:    4.33,
		TotalResponses:   3,
		LastCalculatedAt: &fx.now,
	}).Return(nil)

	summary, err := deps.service.RecalculateEventSummary(ctx, fx.ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, 4.33, summary.AverageRating)
	assert.Equal(t, 3, summary.TotalResponses)
}

func TestService_ListAndExport(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	rating := 5
	submitted := fx.record
	submitted.Status = attendance.StatusSubmitted
	submitted.Feedback.Rating = &rating
	submitted.Feedback.Comment = "Loved it"
	open := fx.record
	open.ID = uuid.New()
	open.TimeOut = nil
	open.Status = attendance.StatusNone

	t.Run("Organizer Lists Checked-Out Records", func(t *testing.T) {
		deps := setupService(t, fx.now)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().FindByEvent(ctx, fx.ev.ID).Return([]attendance.Record{submitted, open}, nil)

		rows, err := deps.service.ListForEvent(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), fx.ev.ID.String(), "")
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "Loved it", rows[0].Comment)
	})

	t.Run("Status Filter", func(t *testing.T) {
		deps := setupService(t, fx.now)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().FindByEventAndStatus(ctx, fx.ev.ID, attendance.StatusSubmitted).Return([]attendance.Record{submitted}, nil)

		rows, err := deps.service.ListForEvent(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), fx.ev.ID.String(), "Submitted")
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("Unknown Status Filter", func(t *testing.T) {
		deps := setupService(t, fx.now)

		_, err := deps.service.ListForEvent(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), fx.ev.ID.String(), "late")
		assert.ErrorIs(t, err, feedbackerrors.ErrInvalidStatusFilter)
	})

	t.Run("Volunteer Cannot List", func(t *testing.T) {
		deps := setupService(t, fx.now)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)

		_, err := deps.service.ListForEvent(ctx, domain.NewActor(fx.volunteer.String(), ""), fx.ev.ID.String(), "")
		assert.ErrorIs(t, err, feedbackerrors.ErrNotOrganizer)
	})

	t.Run("Export Workbook", func(t *testing.T) {
		deps := setupService(t, fx.now)
		deps.events.EXPECT().Get(ctx, fx.ev.ID).Return(fx.ev, nil)
		deps.repo.EXPECT().FindByEvent(ctx, fx.ev.ID).Return([]attendance.Record{submitted, open}, nil)

		data, filename, err := deps.service.ExportForEvent(ctx, domain.NewActor(fx.ev.CreatedBy.String(), ""), fx.ev.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "feedback_river_cleanup_20260705.xlsx", filename)

		f, err := excelize.OpenReader(bytes.NewReader(data))
		assert.NoError(t, err)
		defer f.Close()

		header, err := f.GetCellValue("Feedback", "B2")
		assert.NoError(t, err)
		assert.Equal(t, "Volunteer ID", header)

		comment, err := f.GetCellValue("Feedback", "F3")
		assert.NoError(t, err)
		assert.Equal(t, "Loved it", comment)

		empty, err := f.GetCellValue("Feedback", "A4")
		assert.NoError(t, err)
		assert.Empty(t, empty)

		commentWidth, err := f.GetColWidth("Feedback", "F")
		assert.NoError(t, err)
		assert.Equal(t, 60.0, commentWidth)

		hoursWidth, err := f.GetColWidth("Feedback", "J")
		assert.NoError(t, err)
		assert.Equal(t, 16.0, hoursWidth)
	})
}
