package rest

import (
	"errors"
	"fmt"

	"github.com/kbukum/restkit/transport"
)

// ErrNilTransport is returned by New when the config has no transport.
var ErrNilTransport = errors.New("rest: transport is required")

// Error is a request that completed with a non-success status (outside
// [200, 400)). It carries the raw transport response; the body is never
// parsed on the failure path, so callers inspect StatusCode and decode
// Response.Body themselves when they need error details.
type Error struct {
	// Method is the HTTP method of the failed request.
	Method string
	// Path is the resolved request path.
	Path string
	// Response is the raw transport response, always non-nil.
	Response *transport.Response
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("rest: %s %s: HTTP %d", e.Method, e.Path, e.Response.StatusCode)
}

// StatusCode returns the HTTP status code of the failed response.
func (e *Error) StatusCode() int {
	return e.Response.StatusCode
}

// AsError unwraps err into a *Error when it carries one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsStatus checks if an error is a rest error with the given status code.
func IsStatus(err error, code int) bool {
	var e *Error
	return errors.As(err, &e) && e.Response.StatusCode == code
}

// IsNotFound checks if an error is a rest error with status 404.
func IsNotFound(err error) bool {
	return IsStatus(err, 404)
}

// IsAuth checks if an error is a rest error with status 401 or 403.
func IsAuth(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Response.StatusCode == 401 || e.Response.StatusCode == 403
}

// IsClientError checks if an error is a rest error with a 4xx status.
func IsClientError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Response.StatusCode >= 400 && e.Response.StatusCode < 500
}

// IsServerError checks if an error is a rest error with a 5xx status.
func IsServerError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Response.StatusCode >= 500
}
