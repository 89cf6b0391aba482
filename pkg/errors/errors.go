package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error carrying a stable code, a human-readable
// message suitable for the browser-facing flow, and an HTTP status.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches AppErrors by code, so copies created with WithInternal still
// satisfy errors.Is against the catalog sentinels.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// WithInternal returns a copy of the AppError with an attached internal error.
func (e *AppError) WithInternal(err error) *AppError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// Account lifecycle failure catalog. Handlers translate these into the
// plain-text responses of the registration flow.
var (
	ErrAccountNotFound = &AppError{
		Code:       "ACCOUNT_NOT_FOUND",
		Message:    "No matching account was found",
		StatusCode: http.StatusNotFound,
	}

	ErrAlreadyVerified = &AppError{
		Code:       "ALREADY_VERIFIED",
		Message:    "This account has already been verified",
		StatusCode: http.StatusConflict,
	}

	ErrNotVerified = &AppError{
		Code:       "NOT_VERIFIED",
		Message:    "You are not verified. Please check your email to access your account.",
		StatusCode: http.StatusForbidden,
	}

	ErrBadCredential = &AppError{
		Code:       "BAD_CREDENTIAL",
		Message:    "Incorrect password",
		StatusCode: http.StatusUnauthorized,
	}

	ErrStoreUnavailable = &AppError{
		Code:       "STORE_UNAVAILABLE",
		Message:    "There was an error verifying your account. Please try again.",
		StatusCode: http.StatusInternalServerError,
	}

	ErrNotificationFailed = &AppError{
		Code:       "NOTIFICATION_FAILED",
		Message:    "The verification email could not be sent",
		StatusCode: http.StatusInternalServerError,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	ErrInternalServer = &AppError{
		Code:       "INTERNAL_SERVER_ERROR",
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
	}
)

// New builds a new application error with the provided metadata.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// FromError converts a generic error into an AppError, defaulting to ErrInternalServer.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return ErrInternalServer.WithInternal(err)
}
