// Package errors defines the API error taxonomy. Every expected failure is a
// sentinel carrying the HTTP status that the terminal responder emits; callers
// wrap them with fmt.Errorf("%w: ...") and branch with errors.Is.
package errors

import (
	"errors"
)

// Error is an expected API failure with an associated HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	ErrInvalidArguments = &Error{Status: 400, Message: "invalid arguments"}
	ErrValidation       = &Error{Status: 400, Message: "validation error"}
	ErrUnauthenticated  = &Error{Status: 400, Message: "authentication required"}
	ErrUnauthorized     = &Error{Status: 401, Message: "unauthorized access"}
	ErrNotFound         = &Error{Status: 404, Message: "not found"}
	ErrNotUpdated       = &Error{Status: 400, Message: "not updated"}
	ErrConflict         = &Error{Status: 409, Message: "already exists"}
	ErrInternal         = &Error{Status: 500, Message: "internal failure"}
)

// StatusOf extracts the HTTP status carried on err. Unexpected errors map to 500.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return ErrInternal.Status
}
