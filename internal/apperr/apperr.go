// Package apperr defines the failure kinds the auth core reports. Handlers
// translate kinds into HTTP status codes; anything unwrapped is internal.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

func Conflict(msg string) error     { return fmt.Errorf("%w: %s", ErrConflict, msg) }
func Unauthorized(msg string) error { return fmt.Errorf("%w: %s", ErrUnauthorized, msg) }
func Forbidden(msg string) error    { return fmt.Errorf("%w: %s", ErrForbidden, msg) }
func BadRequest(msg string) error   { return fmt.Errorf("%w: %s", ErrBadRequest, msg) }
func NotFound(msg string) error     { return fmt.Errorf("%w: %s", ErrNotFound, msg) }

func Internal(err error) error {
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// Status maps an error to the HTTP status code it should surface as.
// Unknown errors are treated as internal so a raw storage failure can
// never leak out as a success-ish status.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
