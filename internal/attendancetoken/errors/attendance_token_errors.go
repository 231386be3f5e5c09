package attendancetokenerrors

import (
	"net/http"

	"go-volunteer/internal/shared/apperror"
)

var (
	ErrTokenExpiredOrInvalid = apperror.New(
		apperror.CodeTokenExpiredOrInvalid,
		"attendance token is invalid",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenExpiredOrInvalid,
		"attendance token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid event id",
		http.StatusBadRequest,
	)
	ErrMissingSecret = apperror.New(
		apperror.CodeInternalError,
		"attendance token secret is not configured",
		http.StatusInternalServerError,
	)
)
