// Package apperror defines the error taxonomy shared by the stores, repositories and
// HTTP handlers.
package apperror

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeNetwork          Code = "NETWORK_ERROR"
	CodeUploadRejected   Code = "UPLOAD_REJECTED"
)

// Error is the domain error type.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Sentinels usable with errors.Is.
var (
	ErrNotFound         = &Error{Code: CodeNotFound}
	ErrValidation       = &Error{Code: CodeValidation}
	ErrPermissionDenied = &Error{Code: CodePermissionDenied}
	ErrNetwork          = &Error{Code: CodeNetwork}
	ErrUploadRejected   = &Error{Code: CodeUploadRejected}
)

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

func Validation(message string) *Error {
	return New(CodeValidation, message)
}

func PermissionDenied(message string, cause error) *Error {
	return Wrap(CodePermissionDenied, message, cause)
}

func Network(message string, cause error) *Error {
	return Wrap(CodeNetwork, message, cause)
}

func UploadRejected(message string) *Error {
	return New(CodeUploadRejected, message)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// HTTPStatus maps an error to the status code returned by the API.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeUploadRejected:
		return http.StatusBadRequest
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromHTTPStatus is the inverse of HTTPStatus, used by clients of remote services.
func FromHTTPStatus(status int, message string) *Error {
	switch status {
	case http.StatusNotFound:
		return NotFound(message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return Validation(message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return PermissionDenied(message, nil)
	default:
		return Network(message, nil)
	}
}
