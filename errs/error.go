package errs

import (
	"errors"
	"fmt"
)

// Application error codes. They describe the class of a failure, independent
// of the transport that surfaces it.
const (
	ECONFLICT     = "conflict"     // the record already exists
	EINVALID      = "invalid"      // validation failed
	ENOTFOUND     = "not_found"    // the record does not exist
	EUNAUTHORIZED = "unauthorized" // the caller is not allowed to do this
	EINTERNAL     = "internal"     // something unexpected went wrong
)

// Error is an application error. Message is safe to show to an end user,
// Code classifies the failure for programmatic handling.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and a formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps the application error code of any error. Plain errors
// report EINTERNAL, a nil error reports an empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps the user-safe message of any error. Plain errors are
// masked behind a generic message so internals never leak to clients.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}
