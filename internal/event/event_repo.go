package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=event_repo.go -destination=mock/event_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Event, error)
	CountApprovedVolunteer(ctx context.Context, eventID, userID uuid.UUID) (int64, error)
	UpdateFeedbackSummary(ctx context.Context, id uuid.UUID, summary FeedbackSummary) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var e Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) CountApprovedVolunteer(ctx context.Context, eventID, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Volunteer{}).
		Where("event_id = ? AND user_id = ? AND status = ?", eventID, userID, VolunteerStatusApproved).
		Count(&count).Error
	return count, err
}

func (r *repository) UpdateFeedbackSummary(ctx context.Context, id uuid.UUID, summary FeedbackSummary) error {
	return r.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"feedback_summary_average_rating":     summary.AverageRating,
			"feedback_summary_total_responses":    summary.TotalResponses,
			"feedback_summary_last_calculated_at": summary.LastCalculatedAt,
			"updated_at":                          time.Now().UTC(),
		}).Error
}
