package exceptionrequesterrors

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
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrNotRecordOwner = apperror.New(
		apperror.CodeForbidden,
		"only the volunteer who checked in can request an exception",
		http.StatusForbidden,
	)
	ErrNoTimeInRecorded = apperror.New(
		apperror.CodeNoTimeInRecorded,
		"no time-in recorded for this attendance",
		http.StatusBadRequest,
	)
	ErrTimeOutAlreadyRecorded = apperror.New(
		apperror.CodeTimeOutAlreadyRecorded,
		"time-out is already recorded for this attendance",
		http.StatusBadRequest,
	)
	ErrDuplicateExceptionRequest = apperror.New(
		apperror.CodeDuplicateExceptionRequest,
		"an exception request is already pending or approved",
		http.StatusConflict,
	)
	ErrNotOrganizer = apperror.New(
		apperror.CodeNotOrganizer,
		"only the event organizer can review exception requests",
		http.StatusForbidden,
	)
	ErrNoPendingException = apperror.New(
		apperror.CodeNoPendingException,
		"there is no pending exception request for this attendance",
		http.StatusBadRequest,
	)
	ErrInvalidReviewAction = apperror.New(
		apperror.CodeInvalidReviewAction,
		"action must be approve or reject",
		http.StatusBadRequest,
	)
	ErrConcurrentUpdate = apperror.New(
		apperror.CodeConflict,
		"attendance record changed while saving, please retry",
		http.StatusConflict,
	)
)
