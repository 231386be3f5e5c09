package feedback

import (
	"time"

	"go-volunteer/internal/attendance"
)

type SubmitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type OverrideRequest struct {
	Rating         *int    `json:"rating"`
	Comment        *string `json:"comment"`
	ReinstateHours bool    `json:"reinstateHours"`
	Reason         string  `json:"reason" binding:"required,notblank"`
}

type EventFeedbackResponse struct {
	RecordID       string  `json:"recordId"`
	VolunteerID    string  `json:"volunteerId"`
	AttendanceDate string  `json:"attendanceDate"`
	Status         string  `json:"status"`
	Rating         *int    `json:"rating,omitempty"`
	Comment        string  `json:"comment,omitempty"`
	SubmittedAt    *string `json:"submittedAt,omitempty"`
	Overridden     bool    `json:"overridden"`
	OverrideReason string  `json:"overrideReason,omitempty"`
	TotalHours     float64 `json:"totalHours"`
	VoidedHours    bool    `json:"voidedHours"`
}

func toEventFeedbackResponse(r attendance.Record) EventFeedbackResponse {
	resp := EventFeedbackResponse{
		RecordID:       r.ID.String(),
		VolunteerID:    r.VolunteerID.String(),
		AttendanceDate: r.AttendanceDate.Format("2006-01-02"),
		Status:         string(r.Status),
		Rating:         r.Feedback.Rating,
		Comment:        r.Feedback.Comment,
		Overridden:     r.Feedback.Overridden,
		OverrideReason: r.Feedback.OverrideReason,
		TotalHours:     r.TotalHours,
		VoidedHours:    r.VoidedHours,
	}
	if r.Feedback.SubmittedAt != nil {
		s := r.Feedback.SubmittedAt.UTC().Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	return resp
}
