package attendance_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"go-volunteer/internal/attendance"
	attendanceerrors "go-volunteer/internal/attendance/errors"
	attendanceMock "go-volunteer/internal/attendance/mock"
	"go-volunteer/internal/attendancetoken"
	"go-volunteer/internal/domain"
	"go-volunteer/internal/event"
	eventMock "go-volunteer/internal/event/mock"
	notificationMock "go-volunteer/internal/notification/mock"
	"go-volunteer/internal/rbac"
	"go-volunteer/internal/rbac/infra"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

const tokenSecret = "attendance-token-secret-for-tests"

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *attendanceMock.MockRepository
	guard    *attendanceMock.MockScanGuard
	events   *eventMock.MockLookup
	notifier *notificationMock.MockNotifier
	codec    *attendancetoken.Codec
	clock    *time.Time
	service  attendance.Service
}

func newAccess(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer, []string{"ADMIN", "STAFF"})
	assert.NoError(t, err)
	return svc
}

func setupService(t *testing.T, now time.Time) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := now
	deps := &serviceDeps{
		db:       db,
		sqlMock:  mock,
		repo:     attendanceMock.NewMockRepository(ctrl),
		guard:    attendanceMock.NewMockScanGuard(ctrl),
		events:   eventMock.NewMockLookup(ctrl),
		notifier: notificationMock.NewMockNotifier(ctrl),
		codec:    attendancetoken.NewCodec(tokenSecret, 30*time.Second),
		clock:    &clock,
	}
	deps.service = attendance.NewService(attendance.Dependencies{
		DB:       db,
		Repo:     deps.repo,
		Events:   deps.events,
		Access:   newAccess(t),
		Tokens:   deps.codec,
		Guard:    deps.guard,
		Notifier: deps.notifier,
		Now:      func() time.Time { return *deps.clock },
	})
	return deps
}

func singleDayEvent(start time.Time) *event.Event {
	return &event.Event{
		ID:        uuid.New(),
		Name:      "Food Bank Shift",
		StartDate: start,
		EndDate:   start.Add(8 * time.Hour),
		CreatedBy: uuid.New(),
		FeedbackRules: event.FeedbackRules{
			DeadlineHours:   24,
			RequireFeedback: true,
		},
	}
}

func qrData(eventID uuid.UUID, qrType attendance.QRType, day time.Time) string {
	return fmt.Sprintf(
		`{"eventId":%q,"type":%q,"date":%q,"generatedAt":%q,"generatedBy":"organizer","random":"x9"}`,
		eventID.String(), qrType, day.Format("2006-01-02"), day.Format(time.RFC3339),
	)
}

func (d *serviceDeps) expectClaim(ok bool) {
	d.guard.EXPECT().Claim(gomock.Any(), gomock.Any()).Return(ok, nil)
}

func (d *serviceDeps) expectRelease() {
	d.guard.EXPECT().Release(gomock.Any(), gomock.Any()).Return(nil)
}

func TestService_CheckInAndCheckOut_HappyPath(t *testing.T) {
	start := time.Date(2026, 7, 4, 8, 0, 0, 0, time.UTC)
	checkIn := start.Add(time.Hour)
	deps := setupService(t, checkIn)
	ctx := context.Background()
	ev := singleDayEvent(start)
	volunteer := uuid.New()
	actor := domain.NewActor(volunteer.String(), "volunteer")
	day := event.DayBucket(checkIn)

	var created *attendance.Record

	deps.expectClaim(true)
	deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(nil, gorm.ErrRecordNotFound)
	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *attendance.Record) error {
		created = r
		return nil
	})
	deps.sqlMock.ExpectCommit()
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "timein")
	assert.NoError(t, err)
	assert.NotNil(t, resp.TimeIn)
	assert.Nil(t, resp.TimeOut)
	assert.True(t, resp.IsValid)
	assert.Equal(t, attendance.SourceQR, created.Source)
	assert.Equal(t, 0.0, created.PreviousDayHours)

	checkOut := checkIn.Add(2 * time.Hour)
	*deps.clock = checkOut
	stored := *created

	deps.expectClaim(true)
	deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(&stored, nil)
	deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(true, nil)
	deps.sqlMock.ExpectCommit()
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	resp, err = deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day), "")
	assert.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPending), resp.Status)
	assert.Equal(t, 2.0, resp.TotalHours)

	expectedDeadline := checkOut.Add(24 * time.Hour)
	assert.Equal(t, expectedDeadline, *stored.DeadlineAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestService_CheckOut_DeadlineCappedAtEventEnd(t *testing.T) {
	start := time.Date(2026, 7, 4, 8, 0, 0, 0, time.UTC)
	ev := singleDayEvent(start)
	timeIn := start.Add(7 * time.Hour)
	checkOut := ev.EndDate.Add(30 * time.Minute)
	deps := setupService(t, checkOut)
	ctx := context.Background()
	volunteer := uuid.New()
	day := event.DayBucket(checkOut)

	stored := attendance.Record{
		ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, AttendanceDate: day,
		TimeIn: &timeIn, IsValid: true,
	}

	deps.expectClaim(true)
	deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(&stored, nil)
	deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(true, nil)
	deps.sqlMock.ExpectCommit()
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.RedeemQR(ctx, domain.NewActor(volunteer.String(), ""), qrData(ev.ID, attendance.QRCheckOut, day), "timeout")
	assert.NoError(t, err)
	assert.Equal(t, 1.5, resp.TotalHours)
	assert.Equal(t, ev.EndDate.Add(24*time.Hour), *stored.DeadlineAt)
}

func TestService_CheckOut_FeedbackNotRequired(t *testing.T) {
	start := time.Date(2026, 7, 4, 8, 0, 0, 0, time.UTC)
	ev := singleDayEvent(start)
	ev.FeedbackRules.RequireFeedback = false
	timeIn := start.Add(time.Hour)
	deps := setupService(t, timeIn.Add(time.Hour))
	ctx := context.Background()
	volunteer := uuid.New()
	day := event.DayBucket(timeIn)

	stored := attendance.Record{ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, AttendanceDate: day, TimeIn: &timeIn, IsValid: true}

	deps.expectClaim(true)
	deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(&stored, nil)
	deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(true, nil)
	deps.sqlMock.ExpectCommit()
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.RedeemQR(ctx, domain.NewActor(volunteer.String(), ""), qrData(ev.ID, attendance.QRCheckOut, day), "")
	assert.NoError(t, err)
	assert.Equal(t, string(attendance.StatusNotRequired), resp.Status)
	assert.Nil(t, stored.DeadlineAt)
}

func TestService_CheckIn_Rejections(t *testing.T) {
	start := time.Date(2026, 7, 4, 8, 0, 0, 0, time.UTC)
	now := start.Add(time.Hour)
	ctx := context.Background()
	volunteer := uuid.New()
	actor := domain.NewActor(volunteer.String(), "")
	day := event.DayBucket(now)

	t.Run("Duplicate Time-In", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		earlier := now.Add(-30 * time.Minute)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).
			Return(&attendance.Record{ID: uuid.New(), TimeIn: &earlier, IsValid: true}, nil)
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateTimeIn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("Concurrent Insert Hits Unique Index", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_attendance_event_volunteer_day"})
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "timein")
		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateTimeIn)
	})

	t.Run("Event Already Ended", func(t *testing.T) {
		late := start.Add(9 * time.Hour)
		deps := setupService(t, late)
		ev := singleDayEvent(start)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, event.DayBucket(late)), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrEventNotActive)
	})

	t.Run("Volunteer Not Registered", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		ev.EnforceVolunteerList = true

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.events.EXPECT().IsApprovedVolunteer(ctx, ev.ID, volunteer).Return(false, nil)
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrNotRegisteredVolunteer)
	})

	t.Run("QR From Another Day", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day.AddDate(0, 0, -1)), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrQrExpiredOrInactive)
	})

	t.Run("QR Type Mismatch", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "timeout")
		assert.ErrorIs(t, err, attendanceerrors.ErrQrActionMismatch)
	})

	t.Run("Duplicate Scan Suppressed", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)

		deps.expectClaim(false)

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateScan)
	})
}

func TestService_CheckOut_Rejections(t *testing.T) {
	start := time.Date(2026, 7, 4, 8, 0, 0, 0, time.UTC)
	now := start.Add(3 * time.Hour)
	ctx := context.Background()
	volunteer := uuid.New()
	actor := domain.NewActor(volunteer.String(), "")
	day := event.DayBucket(now)

	t.Run("No Time-In Recorded", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).Return(nil, gorm.ErrRecordNotFound)
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrNoTimeInRecorded)
	})

	t.Run("Duplicate Time-Out", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		in := now.Add(-2 * time.Hour)
		out := now.Add(-time.Hour)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).
			Return(&attendance.Record{ID: uuid.New(), TimeIn: &in, TimeOut: &out, IsValid: true}, nil)
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateTimeOut)
	})

	t.Run("Lost Race To Concurrent Check-Out", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		in := now.Add(-2 * time.Hour)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).
			Return(&attendance.Record{ID: uuid.New(), TimeIn: &in, IsValid: true}, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(false, nil)
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateTimeOut)
	})

	t.Run("Invalidated Session", func(t *testing.T) {
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		in := now.Add(-2 * time.Hour)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day).
			Return(&attendance.Record{ID: uuid.New(), TimeIn: &in, IsValid: false}, nil)
		deps.sqlMock.ExpectRollback()
		deps.expectRelease()

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day), "")
		assert.ErrorIs(t, err, attendanceerrors.ErrSessionInvalidated)
	})
}

func TestService_MultiDayEvent(t *testing.T) {
	start := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	ev := &event.Event{
		ID:            uuid.New(),
		Name:          "Three Day Festival",
		StartDate:     start,
		EndDate:       start.AddDate(0, 0, 2).Add(9 * time.Hour),
		CreatedBy:     uuid.New(),
		FeedbackRules: event.FeedbackRules{DeadlineHours: 48, RequireFeedback: true},
	}
	ctx := context.Background()
	volunteer := uuid.New()
	actor := domain.NewActor(volunteer.String(), "")

	session := func(day time.Time, hours time.Duration) attendance.Record {
		in := day.Add(9 * time.Hour)
		out := in.Add(hours)
		return attendance.Record{
			ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, AttendanceDate: day,
			TimeIn: &in, TimeOut: &out, IsValid: true, Status: attendance.StatusNotRequired,
		}
	}
	day1 := event.DayBucket(start)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	t.Run("Non-Final Day Check-Out Is Not Required", func(t *testing.T) {
		now := day2.Add(15 * time.Hour)
		deps := setupService(t, now)
		in := day2.Add(9 * time.Hour)
		stored := attendance.Record{
			ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, AttendanceDate: day2,
			TimeIn: &in, PreviousDayHours: 4, IsValid: true,
		}

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day2).Return(&stored, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day2), "")
		assert.NoError(t, err)
		assert.Equal(t, string(attendance.StatusNotRequired), resp.Status)
		assert.Equal(t, 10.0, resp.TotalHours)
		assert.Nil(t, stored.DeadlineAt)
	})

	t.Run("Final Day Carries Valid Prior Hours", func(t *testing.T) {
		now := day3.Add(8 * time.Hour)
		deps := setupService(t, now)

		voided := session(day2, 5*time.Hour)
		voided.VoidedHours = true
		prior := []attendance.Record{session(day1, 4*time.Hour), voided}

		var created *attendance.Record
		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day3).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().FindByEventAndVolunteer(ctx, ev.ID, volunteer).Return(prior, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *attendance.Record) error {
			created = r
			return nil
		})
		deps.sqlMock.ExpectCommit()
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckIn, day3), "")
		assert.NoError(t, err)
		assert.Equal(t, 4.0, created.PreviousDayHours)

		*deps.clock = now.Add(3 * time.Hour)
		stored := *created

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, day3).Return(&stored, nil)
		deps.repo.EXPECT().UpdateIfStatus(ctx, gomock.Any(), attendance.StatusNone).Return(true, nil)
		deps.sqlMock.ExpectCommit()
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.RedeemQR(ctx, actor, qrData(ev.ID, attendance.QRCheckOut, day3), "")
		assert.NoError(t, err)
		assert.Equal(t, 7.0, resp.TotalHours)
		assert.Equal(t, string(attendance.StatusPending), resp.Status)
	})
}

func TestService_RedeemToken(t *testing.T) {
	ctx := context.Background()
	volunteer := uuid.New()
	actor := domain.NewActor(volunteer.String(), "")

	t.Run("Too Early For Check-In", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		deps := setupService(t, start.Add(-20*time.Minute))
		ev := singleDayEvent(start)
		issued, err := deps.codec.Issue(ev.ID.String(), ev.CreatedBy.String(), 0)
		assert.NoError(t, err)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.expectRelease()

		_, err = deps.service.RedeemToken(ctx, actor, issued.Token, "timein")
		assert.ErrorIs(t, err, attendanceerrors.ErrEventNotActive)
	})

	t.Run("Check-In Within Lead Window", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		now := start.Add(-10 * time.Minute)
		deps := setupService(t, now)
		ev := singleDayEvent(start)
		issued, err := deps.codec.Issue(ev.ID.String(), ev.CreatedBy.String(), 0)
		assert.NoError(t, err)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByEventVolunteerAndDate(ctx, ev.ID, volunteer, event.DayBucket(now)).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectCommit()
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.RedeemToken(ctx, actor, issued.Token, "timein")
		assert.NoError(t, err)
		assert.Equal(t, attendance.SourceToken, resp.Source)
	})

	t.Run("Check-Out After Grace", func(t *testing.T) {
		start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		ev := singleDayEvent(start)
		deps := setupService(t, ev.EndDate.Add(61*time.Minute))
		issued, err := deps.codec.Issue(ev.ID.String(), ev.CreatedBy.String(), 0)
		assert.NoError(t, err)

		deps.expectClaim(true)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)
		deps.expectRelease()

		_, err = deps.service.RedeemToken(ctx, actor, issued.Token, "timeout")
		assert.ErrorIs(t, err, attendanceerrors.ErrEventNotActive)
	})

	t.Run("Invalid Token", func(t *testing.T) {
		deps := setupService(t, time.Now())
		_, err := deps.service.RedeemToken(ctx, actor, "garbage", "timein")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "attendance token is invalid")
	})
}

func TestService_IssueToken(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Creator Can Issue", func(t *testing.T) {
		deps := setupService(t, start)
		ev := singleDayEvent(start)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)

		issued, err := deps.service.IssueToken(ctx, domain.NewActor(ev.CreatedBy.String(), "volunteer"), ev.ID.String())
		assert.NoError(t, err)

		claims, err := deps.codec.Verify(issued.Token)
		assert.NoError(t, err)
		assert.Equal(t, ev.ID.String(), claims.EventID)
		assert.Equal(t, ev.CreatedBy.String(), claims.IssuedBy)
	})

	t.Run("Privileged Role Can Issue", func(t *testing.T) {
		deps := setupService(t, start)
		ev := singleDayEvent(start)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)

		_, err := deps.service.IssueToken(ctx, domain.NewActor(uuid.NewString(), "staff"), ev.ID.String())
		assert.NoError(t, err)
	})

	t.Run("Volunteer Cannot Issue", func(t *testing.T) {
		deps := setupService(t, start)
		ev := singleDayEvent(start)
		deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil)

		_, err := deps.service.IssueToken(ctx, domain.NewActor(uuid.NewString(), "volunteer"), ev.ID.String())
		assert.ErrorIs(t, err, attendanceerrors.ErrNotOrganizer)
	})
}

func TestService_ValidateOpenSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC)

	t.Run("Privileged", func(t *testing.T) {
		deps := setupService(t, now)
		deps.repo.EXPECT().InvalidateOpenSessions(ctx, now).Return(int64(3), nil)

		res, err := deps.service.ValidateOpenSessions(ctx, domain.NewActor(uuid.NewString(), "admin"))
		assert.NoError(t, err)
		assert.Equal(t, int64(3), res.Invalidated)
	})

	t.Run("Volunteer Denied", func(t *testing.T) {
		deps := setupService(t, now)
		_, err := deps.service.ValidateOpenSessions(ctx, domain.NewActor(uuid.NewString(), "volunteer"))
		assert.ErrorIs(t, err, attendanceerrors.ErrPrivilegedOnly)
	})
}

func TestService_PreviewOpenSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 1, 0, 0, 0, time.UTC)

	t.Run("Counts Without Invalidating", func(t *testing.T) {
		deps := setupService(t, now)
		deps.repo.EXPECT().FindOpenSessions(ctx).Return([]attendance.Record{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

		res, err := deps.service.PreviewOpenSessions(ctx, domain.NewActor(uuid.NewString(), "admin"))
		assert.NoError(t, err)
		assert.Equal(t, int64(2), res.Invalidated)
		assert.True(t, res.DryRun)
	})

	t.Run("Volunteer Denied", func(t *testing.T) {
		deps := setupService(t, now)
		_, err := deps.service.PreviewOpenSessions(ctx, domain.NewActor(uuid.NewString(), "volunteer"))
		assert.ErrorIs(t, err, attendanceerrors.ErrPrivilegedOnly)
	})
}

func TestService_GetPendingFeedback(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	deps := setupService(t, now)
	volunteer := uuid.New()
	ev := singleDayEvent(now.Add(-24 * time.Hour))

	deadline := now.Add(5 * time.Hour)
	rows := []attendance.Record{
		{ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, Status: attendance.StatusPending, DeadlineAt: &deadline, IsValid: true},
		{ID: uuid.New(), EventID: ev.ID, VolunteerID: volunteer, Status: attendance.StatusPending, DeadlineAt: &deadline, IsValid: true},
	}

	deps.repo.EXPECT().FindPendingByVolunteer(ctx, volunteer).Return(rows, nil)
	deps.events.EXPECT().Get(ctx, ev.ID).Return(ev, nil).Times(1)

	resp, err := deps.service.GetPendingFeedback(ctx, volunteer.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, ev.Name, resp[0].EventName)
	assert.Equal(t, 5.0, resp[1].HoursRemaining)
}
