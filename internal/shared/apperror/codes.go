package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Attendance window violations
	CodeEventNotActive        = "EVENT_NOT_ACTIVE"
	CodeTokenExpiredOrInvalid = "TOKEN_EXPIRED_OR_INVALID"
	CodeQrExpiredOrInactive   = "QR_EXPIRED_OR_INACTIVE"
	CodeQrActionMismatch      = "QR_ACTION_MISMATCH"

	// Attendance sequencing violations
	CodeDuplicateTimeIn  = "DUPLICATE_TIME_IN"
	CodeDuplicateTimeOut = "DUPLICATE_TIME_OUT"
	CodeNoTimeInRecorded = "NO_TIME_IN_RECORDED"
	CodeDuplicateScan    = "DUPLICATE_SCAN"

	// Authorization violations
	CodeNotRegisteredVolunteer = "NOT_REGISTERED_VOLUNTEER"
	CodeNotOrganizer           = "NOT_ORGANIZER"

	// Feedback
	CodeFeedbackNotRequired    = "FEEDBACK_NOT_REQUIRED"
	CodeAlreadySubmitted       = "ALREADY_SUBMITTED"
	CodeDeadlinePassed         = "DEADLINE_PASSED"
	CodeInvalidRating          = "INVALID_RATING"
	CodeCommentRequired        = "COMMENT_REQUIRED"
	CodeCommentTooLong         = "COMMENT_TOO_LONG"
	CodeAttendanceNotCompleted = "ATTENDANCE_NOT_COMPLETED"
	CodeOverrideDisabled       = "OVERRIDE_DISABLED"

	// Exception workflow
	CodeTimeOutAlreadyRecorded    = "TIME_OUT_ALREADY_RECORDED"
	CodeDuplicateExceptionRequest = "DUPLICATE_EXCEPTION_REQUEST"
	CodeNoPendingException        = "NO_PENDING_EXCEPTION"
	CodeInvalidReviewAction       = "INVALID_REVIEW_ACTION"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
