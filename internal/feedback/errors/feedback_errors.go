package feedbackerrors

import (
	"net/http"

	"go-volunteer/internal/shared/apperror"
)

var (
	ErrInvalidRecordID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance record id",
		http.StatusBadRequest,
	)
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid event id",
		http.StatusBadRequest,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeUnauthorized,
		"caller identity is missing or malformed",
		http.StatusUnauthorized,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidRating,
		"rating must be a whole number between 1 and 5",
		http.StatusBadRequest,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeCommentRequired,
		"comment is required",
		http.StatusBadRequest,
	)
	ErrCommentTooLong = apperror.New(
		apperror.CodeCommentTooLong,
		"comment is too long",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"override reason is required",
		http.StatusBadRequest,
	)
	ErrAttendanceNotCompleted = apperror.New(
		apperror.CodeAttendanceNotCompleted,
		"attendance must have both time-in and time-out",
		http.StatusBadRequest,
	)
	ErrFeedbackNotRequired = apperror.New(
		apperror.CodeFeedbackNotRequired,
		"feedback is not required for this attendance",
		http.StatusBadRequest,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeAlreadySubmitted,
		"feedback has already been submitted",
		http.StatusConflict,
	)
	ErrDeadlinePassed = apperror.New(
		apperror.CodeDeadlinePassed,
		"the feedback deadline has passed",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"only the volunteer or an organizer can submit this feedback",
		http.StatusForbidden,
	)
	ErrNotOrganizer = apperror.New(
		apperror.CodeNotOrganizer,
		"only the event organizer can perform this action",
		http.StatusForbidden,
	)
	ErrOverrideDisabled = apperror.New(
		apperror.CodeOverrideDisabled,
		"organizer override is disabled for this event",
		http.StatusForbidden,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"attendance record changed while saving, please retry",
		http.StatusConflict,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"unknown feedback status filter",
		http.StatusBadRequest,
	)
	ErrExportFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to generate feedback export",
		http.StatusInternalServerError,
	)
)
