package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDeadlineHours = 24

	VolunteerStatusApproved = "approved"
)

type FeedbackRules struct {
	DeadlineHours          int
	RequireFeedback        bool
	AllowOrganizerOverride *bool
}

type FeedbackSummary struct {
	AverageRating    float64
	TotalResponses   int
	LastCalculatedAt *time.Time
}

type Event struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name                 string          `gorm:"not null"`
	StartDate            time.Time       `gorm:"not null"`
	EndDate              time.Time       `gorm:"not null"`
	CreatedBy            uuid.UUID       `gorm:"type:uuid;not null"`
	EnforceVolunteerList bool            `gorm:"not null;default:false"`
	FeedbackRules        FeedbackRules   `gorm:"embedded;embeddedPrefix:feedback_rules_"`
	FeedbackSummary      FeedbackSummary `gorm:"embedded;embeddedPrefix:feedback_summary_"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Event) TableName() string {
	return "events"
}

// Volunteer is a registration row in event_volunteers.
type Volunteer struct {
	EventID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status  string
}

func (Volunteer) TableName() string {
	return "event_volunteers"
}

// DayBucket truncates t to its UTC calendar day.
func DayBucket(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsMultiDay reports whether the event spans more than one calendar day.
func (e *Event) IsMultiDay() bool {
	return !DayBucket(e.StartDate).Equal(DayBucket(e.EndDate))
}

// IsFinalDay reports whether day is the last day of the event (or later).
func (e *Event) IsFinalDay(day time.Time) bool {
	return !DayBucket(day).Before(DayBucket(e.EndDate))
}

func (e *Event) DeadlineHours() int {
	if e.FeedbackRules.DeadlineHours <= 0 {
		return DefaultDeadlineHours
	}
	return e.FeedbackRules.DeadlineHours
}

// FeedbackDeadline is min(EndDate, timeOut) plus the configured deadline hours.
func (e *Event) FeedbackDeadline(timeOut time.Time) time.Time {
	base := timeOut
	if e.EndDate.Before(base) {
		base = e.EndDate
	}
	return base.Add(time.Duration(e.DeadlineHours()) * time.Hour)
}

// FreshFeedbackDeadline is FeedbackDeadline(timeOut), pushed out to a full
// deadline window from now when that would leave less time.
func (e *Event) FreshFeedbackDeadline(timeOut, now time.Time) time.Time {
	deadline := e.FeedbackDeadline(timeOut)
	if earliest := now.Add(time.Duration(e.DeadlineHours()) * time.Hour); earliest.After(deadline) {
		return earliest
	}
	return deadline
}

// OverrideAllowed is true unless the rule is explicitly disabled.
func (e *Event) OverrideAllowed() bool {
	return e.FeedbackRules.AllowOrganizerOverride == nil || *e.FeedbackRules.AllowOrganizerOverride
}
