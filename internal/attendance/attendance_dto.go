package attendance

import "time"

type ScanRequest struct {
	QRData string `json:"qrData" binding:"required"`
	Action string `json:"action"`
}

type TokenRedeemRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action" binding:"required,oneof=timein timeout"`
}

type FeedbackResponse struct {
	Rating         *int    `json:"rating,omitempty"`
	Comment        string  `json:"comment,omitempty"`
	SubmittedAt    *string `json:"submittedAt,omitempty"`
	SubmittedBy    string  `json:"submittedBy,omitempty"`
	Overridden     bool    `json:"overridden"`
	OverrideReason string  `json:"overrideReason,omitempty"`
}

type ExceptionResponse struct {
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	RequestedAt *string `json:"requestedAt,omitempty"`
	ReviewedAt  *string `json:"reviewedAt,omitempty"`
	ReviewedBy  string  `json:"reviewedBy,omitempty"`
	ReviewNotes string  `json:"reviewNotes,omitempty"`
}

type RecordResponse struct {
	ID                     string             `json:"id"`
	EventID                string             `json:"eventId"`
	VolunteerID            string             `json:"volunteerId"`
	AttendanceDate         string             `json:"attendanceDate"`
	TimeIn                 *string            `json:"timeIn,omitempty"`
	TimeOut                *string            `json:"timeOut,omitempty"`
	DeadlineAt             *string            `json:"deadlineAt,omitempty"`
	PreviousDayHours       float64            `json:"previousDayHours"`
	TotalHours             float64            `json:"totalHours"`
	IsValid                bool               `json:"isValid"`
	VoidedHours            bool               `json:"voidedHours"`
	Status                 string             `json:"status"`
	Source                 string             `json:"source"`
	Feedback               *FeedbackResponse  `json:"feedback,omitempty"`
	Exception              *ExceptionResponse `json:"exceptionRequest,omitempty"`
	FeedbackReminderSentAt *string            `json:"feedbackReminderSentAt,omitempty"`
}

type PendingFeedbackResponse struct {
	Record         RecordResponse `json:"record"`
	EventName      string         `json:"eventName"`
	HoursRemaining float64        `json:"hoursRemaining"`
}

type ValidationResult struct {
	Invalidated int64 `json:"invalidated"`
	DryRun      bool  `json:"dryRun,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// ToRecordResponse is the only place canonical field names are translated to
// the wire format.
func ToRecordResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:                     r.ID.String(),
		EventID:                r.EventID.String(),
		VolunteerID:            r.VolunteerID.String(),
		AttendanceDate:         r.AttendanceDate.Format("2006-01-02"),
		TimeIn:                 formatTime(r.TimeIn),
		TimeOut:                formatTime(r.TimeOut),
		DeadlineAt:             formatTime(r.DeadlineAt),
		PreviousDayHours:       r.PreviousDayHours,
		TotalHours:             r.TotalHours,
		IsValid:                r.IsValid,
		VoidedHours:            r.VoidedHours,
		Status:                 string(r.Status),
		Source:                 r.Source,
		FeedbackReminderSentAt: formatTime(r.FeedbackReminderSentAt),
	}

	if r.Feedback.Rating != nil || r.Feedback.SubmittedAt != nil || r.Feedback.Overridden {
		fb := &FeedbackResponse{
			Rating:         r.Feedback.Rating,
			Comment:        r.Feedback.Comment,
			SubmittedAt:    formatTime(r.Feedback.SubmittedAt),
			Overridden:     r.Feedback.Overridden,
			OverrideReason: r.Feedback.OverrideReason,
		}
		if r.Feedback.SubmittedBy != nil {
			fb.SubmittedBy = r.Feedback.SubmittedBy.String()
		}
		resp.Feedback = fb
	}

	if r.Exception.Status != ExceptionNone {
		ex := &ExceptionResponse{
			Reason:      r.Exception.Reason,
			Status:      string(r.Exception.Status),
			RequestedAt: formatTime(r.Exception.RequestedAt),
			ReviewedAt:  formatTime(r.Exception.ReviewedAt),
			ReviewNotes: r.Exception.ReviewNotes,
		}
		if r.Exception.ReviewedBy != nil {
			ex.ReviewedBy = r.Exception.ReviewedBy.String()
		}
		resp.Exception = ex
	}

	return resp
}

func ToRecordResponses(rows []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToRecordResponse(r))
	}
	return out
}
