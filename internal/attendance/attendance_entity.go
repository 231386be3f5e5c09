package attendance

import (
	"strings"
	"time"

	"go-volunteer/internal/event"

	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	StatusNone        FeedbackStatus = ""
	StatusPending     FeedbackStatus = "pending"
	StatusSubmitted   FeedbackStatus = "submitted"
	StatusMissed      FeedbackStatus = "missed"
	StatusVoided      FeedbackStatus = "voided"
	StatusOverridden  FeedbackStatus = "overridden"
	StatusNotRequired FeedbackStatus = "not_required"
)

// ParseFeedbackStatus accepts the non-empty statuses a checked-out record can
// carry.
func ParseFeedbackStatus(raw string) (FeedbackStatus, bool) {
	switch s := FeedbackStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusSubmitted, StatusMissed, StatusVoided, StatusOverridden, StatusNotRequired:
		return s, true
	}
	return StatusNone, false
}

type ExceptionStatus string

const (
	ExceptionNone     ExceptionStatus = ""
	ExceptionPending  ExceptionStatus = "pending"
	ExceptionApproved ExceptionStatus = "approved"
	ExceptionRejected ExceptionStatus = "rejected"
)

const (
	SourceQR    = "qr"
	SourceToken = "token"
)

type Feedback struct {
	Rating         *int
	Comment        string
	SubmittedAt    *time.Time
	SubmittedBy    *uuid.UUID `gorm:"type:uuid"`
	Overridden     bool
	OverrideReason string
}

type Exception struct {
	Reason      string
	Status      ExceptionStatus
	RequestedAt *time.Time
	ReviewedAt  *time.Time
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`
	ReviewNotes string
}

// Record is one volunteer's attendance for one event on one calendar day.
type Record struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventID                uuid.UUID      `gorm:"type:uuid;not null"`
	VolunteerID            uuid.UUID      `gorm:"type:uuid;not null"`
	AttendanceDate         time.Time      `gorm:"type:date;not null"`
	TimeIn                 *time.Time
	TimeOut                *time.Time
	DeadlineAt             *time.Time
	PreviousDayHours       float64        `gorm:"not null"`
	TotalHours             float64        `gorm:"not null"`
	IsValid                bool           `gorm:"not null"`
	VoidedHours            bool           `gorm:"not null"`
	Status                 FeedbackStatus `gorm:"type:varchar(20);not null"`
	Source                 string         `gorm:"type:varchar(10);not null"`
	Feedback               Feedback       `gorm:"embedded;embeddedPrefix:feedback_"`
	Exception              Exception      `gorm:"embedded;embeddedPrefix:exception_"`
	FeedbackReminderSentAt *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

func (Record) TableName() string {
	return "attendance_records"
}

// IsCompleted is the single source of truth for "attended": both ends of the
// session were recorded.
func (r *Record) IsCompleted() bool {
	return r.TimeIn != nil && r.TimeOut != nil
}

func (r *Record) HasOpenSession() bool {
	return r.TimeIn != nil && r.TimeOut == nil
}

// CountsTowardHours reports whether the record contributes to carried-forward
// hours on later days of the same event.
func (r *Record) CountsTowardHours() bool {
	return r.IsValid && !r.VoidedHours && r.IsCompleted()
}

func (r *Record) VolunteerIs(userID string) bool {
	return userID != "" && r.VolunteerID.String() == userID
}

// Void zeroes the hours of a record whose feedback obligation lapsed or was
// rejected by an organizer.
func (r *Record) Void(status FeedbackStatus) {
	r.Status = status
	r.VoidedHours = true
	r.TotalHours = 0
}

// CloseSession records timeOut and settles the feedback obligation. Non-final
// days of a multi-day event never require feedback; the final day (or the only
// day) follows the event's feedback rules.
func (r *Record) CloseSession(ev *event.Event, timeOut time.Time) {
	r.TimeOut = &timeOut
	r.RecomputeTotal()

	if ev.IsMultiDay() && !ev.IsFinalDay(r.AttendanceDate) {
		r.Status = StatusNotRequired
		r.DeadlineAt = nil
		return
	}
	if !ev.FeedbackRules.RequireFeedback {
		r.Status = StatusNotRequired
		r.DeadlineAt = nil
		return
	}

	deadline := ev.FeedbackDeadline(timeOut)
	r.DeadlineAt = &deadline
	r.Status = StatusPending
}
