package autherrors

import (
	"jornada40/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid email or password",
		http.StatusUnauthorized,
	)
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Authentication credentials were not provided",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token has expired",
		http.StatusUnauthorized,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid refresh token",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"User not found or inactive",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.Validation(
		"email",
		"Email is already registered",
	)
	ErrInvalidTaxID = apperror.Validation(
		"tax_id",
		"RUT is not valid",
	)
	ErrTaxIDAlreadyRegistered = apperror.Validation(
		"tax_id",
		"RUT is already registered",
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Internal server error",
		http.StatusInternalServerError,
	)
)
