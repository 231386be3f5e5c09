package attendanceerrors

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
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be timein or timeout",
		http.StatusBadRequest,
	)
	ErrInvalidQRPayload = apperror.New(
		apperror.CodeInvalidInput,
		"qr payload is malformed",
		http.StatusBadRequest,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)

	ErrEventNotActive = apperror.New(
		apperror.CodeEventNotActive,
		"event is not accepting attendance right now",
		http.StatusBadRequest,
	)
	ErrQrExpiredOrInactive = apperror.New(
		apperror.CodeQrExpiredOrInactive,
		"qr code is expired or not active today",
		http.StatusBadRequest,
	)
	ErrQrActionMismatch = apperror.New(
		apperror.CodeQrActionMismatch,
		"qr code type does not match the requested action",
		http.StatusBadRequest,
	)
	ErrTokenEventMismatch = apperror.New(
		apperror.CodeTokenExpiredOrInvalid,
		"attendance token references an unknown event",
		http.StatusUnauthorized,
	)

	ErrDuplicateTimeIn = apperror.New(
		apperror.CodeDuplicateTimeIn,
		"time-in already recorded for today",
		http.StatusConflict,
	)
	ErrDuplicateTimeOut = apperror.New(
		apperror.CodeDuplicateTimeOut,
		"time-out already recorded for today",
		http.StatusConflict,
	)
	ErrNoTimeInRecorded = apperror.New(
		apperror.CodeNoTimeInRecorded,
		"no time-in recorded for today",
		http.StatusBadRequest,
	)
	ErrSessionInvalidated = apperror.New(
		apperror.CodeNoTimeInRecorded,
		"today's session was invalidated, request an exception instead",
		http.StatusBadRequest,
	)
	ErrDuplicateScan = apperror.New(
		apperror.CodeDuplicateScan,
		"this code was just scanned, please wait before retrying",
		http.StatusConflict,
	)

	ErrNotRegisteredVolunteer = apperror.New(
		apperror.CodeNotRegisteredVolunteer,
		"you are not an approved volunteer for this event",
		http.StatusForbidden,
	)
	ErrNotOrganizer = apperror.New(
		apperror.CodeNotOrganizer,
		"only the event organizer can perform this action",
		http.StatusForbidden,
	)
	ErrPrivilegedOnly = apperror.New(
		apperror.CodeForbidden,
		"only privileged operators can run this maintenance task",
		http.StatusForbidden,
	)
)
