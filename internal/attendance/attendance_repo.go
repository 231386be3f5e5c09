package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventFeedbackStats aggregates ratings over submitted and overridden records.
type EventFeedbackStats struct {
	AverageRating  float64
	TotalResponses int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Record) error
	Update(ctx context.Context, r *Record) error
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByEventVolunteerAndDate(ctx context.Context, eventID, volunteerID uuid.UUID, day time.Time) (*Record, error)
	FindByEventAndVolunteer(ctx context.Context, eventID, volunteerID uuid.UUID) ([]Record, error)
	FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Record, error)
	FindByEventAndStatus(ctx context.Context, eventID uuid.UUID, status FeedbackStatus) ([]Record, error)
	FindPendingByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]Record, error)
	FindOpenSessions(ctx context.Context) ([]Record, error)
	FindDueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]Record, error)
	FindPastDeadline(ctx context.Context, now time.Time) ([]Record, error)
	UpdateIfStatus(ctx context.Context, r *Record, expected FeedbackStatus) (bool, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkMissed(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	InvalidateOpenSessions(ctx context.Context, now time.Time) (int64, error)
	FeedbackStats(ctx context.Context, eventID uuid.UUID) (EventFeedbackStats, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn runs statements on the caller's *sql.Tx when one is bound.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.conn(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.conn(ctx).Save(rec).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	var rec Record
	if err := r.conn(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByEventVolunteerAndDate(ctx context.Context, eventID, volunteerID uuid.UUID, day time.Time) (*Record, error) {
	var rec Record
	err := r.conn(ctx).
		Where("event_id = ?", eventID).
		Where("volunteer_id = ?", volunteerID).
		Where("attendance_date = ?", day.Format("2006-01-02")).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByEventAndVolunteer(ctx context.Context, eventID, volunteerID uuid.UUID) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("event_id = ? AND volunteer_id = ?", eventID, volunteerID).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEvent(ctx context.Context, eventID uuid.UUID) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("event_id = ?", eventID).
		Order("attendance_date ASC, time_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEventAndStatus(ctx context.Context, eventID uuid.UUID, status FeedbackStatus) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("event_id = ? AND status = ?", eventID, status).
		Order("attendance_date ASC, time_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPendingByVolunteer(ctx context.Context, volunteerID uuid.UUID) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("volunteer_id = ? AND status = ? AND is_valid", volunteerID, StatusPending).
		Order("deadline_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindOpenSessions(ctx context.Context) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("time_in IS NOT NULL AND time_out IS NULL AND is_valid").
		Order("time_in ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindDueForReminder(ctx context.Context, now time.Time, window time.Duration) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("status = ? AND is_valid", StatusPending).
		Where("feedback_reminder_sent_at IS NULL").
		Where("deadline_at > ? AND deadline_at <= ?", now, now.Add(window)).
		Order("deadline_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindPastDeadline(ctx context.Context, now time.Time) ([]Record, error) {
	var rows []Record
	err := r.conn(ctx).
		Where("status = ? AND is_valid", StatusPending).
		Where("deadline_at < ?", now).
		Order("deadline_at ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateIfStatus writes every column of rec only while the stored status
// still equals expected. It reports false when another writer got there first.
func (r *repository) UpdateIfStatus(ctx context.Context, rec *Record, expected FeedbackStatus) (bool, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("id = ? AND status = ?", rec.ID, expected).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("id = ? AND feedback_reminder_sent_at IS NULL", id).
		Updates(map[string]any{
			"feedback_reminder_sent_at": at,
			"updated_at":                at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) MarkMissed(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("id = ? AND status = ? AND is_valid", id, StatusPending).
		Updates(map[string]any{
			"status":       StatusMissed,
			"voided_hours": true,
			"total_hours":  0,
			"is_valid":     false,
			"updated_at":   now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) InvalidateOpenSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Record{}).
		Where("time_in IS NOT NULL AND time_out IS NULL AND is_valid").
		Updates(map[string]any{
			"is_valid":    false,
			"total_hours": 0,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FeedbackStats(ctx context.Context, eventID uuid.UUID) (EventFeedbackStats, error) {
	var row struct {
		AverageRating  sql.NullFloat64
		TotalResponses int
	}
	err := r.conn(ctx).
		Model(&Record{}).
		Select("AVG(feedback_rating) AS average_rating, COUNT(feedback_rating) AS total_responses").
		Where("event_id = ? AND status IN ? AND feedback_rating IS NOT NULL", eventID,
			[]FeedbackStatus{StatusSubmitted, StatusOverridden}).
		Scan(&row).Error
	if err != nil {
		return EventFeedbackStats{}, err
	}
	return EventFeedbackStats{
		AverageRating:  Round2(row.AverageRating.Float64),
		TotalResponses: row.TotalResponses,
	}, nil
}
