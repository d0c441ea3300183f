// Package domainerrors defines the coded errors the HTTP layer translates
// into responses. Services return these; transport never invents its own.
package domainerrors

import "net/http"

// Code identifies an error category with a stable wire spelling.
type Code string

const (
	CodeBadRequest  Code = "bad_request"
	CodeNotFound    Code = "not_found"
	CodeUnavailable Code = "unavailable"
	CodeInternal    Code = "internal_error"
)

// Error is a coded domain error with a human-readable description.
type Error struct {
	Code        Code
	Description string
	cause       error
}

// New builds a coded domain error.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Wrap builds a coded domain error preserving the underlying cause.
func Wrap(code Code, description string, cause error) *Error {
	return &Error{Code: code, Description: description, cause: cause}
}

func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ToHTTPStatus maps an error code to the HTTP status to respond with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
