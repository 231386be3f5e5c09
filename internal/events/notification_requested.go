package events

import "time"

const NotificationRequestedTopic = "volunteer.notification.requested.v1"

const (
	NotificationCheckedIn          = "attendance_checked_in"
	NotificationCheckedOut         = "attendance_checked_out"
	NotificationFeedbackReminder   = "feedback_reminder"
	NotificationHoursVoided        = "hours_voided"
	NotificationFeedbackMissed     = "feedback_missed"
	NotificationFeedbackSubmitted  = "feedback_submitted"
	NotificationFeedbackOverridden = "feedback_overridden"
	NotificationExceptionRequested = "exception_requested"
	NotificationExceptionReviewed  = "exception_reviewed"
)

// NotificationRequestedEvent asks the notification consumer to deliver one
// message to every listed user.
type NotificationRequestedEvent struct {
	EventType  string         `json:"event_type"`
	RequestID  string         `json:"request_id,omitempty"`
	Type       string         `json:"type"`
	UserIDs    []string       `json:"user_ids"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
