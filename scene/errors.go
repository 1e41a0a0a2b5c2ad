package scene

import (
	"errors"
	"fmt"
)

// Code is the result code of a client operation.
type Code int

const (
	CodeOK Code = iota
	// CodeInvalidArgument reports bad caller input.
	CodeInvalidArgument
	// CodeAllocationFailure reports that a buffer could not grow, including
	// a response body larger than Config.MaxResponseBytes.
	CodeAllocationFailure
	// CodeTransportError reports a failure below HTTP: URL, TLS material,
	// dial, handshake, timeout or I/O.
	CodeTransportError
	// CodeHTTPError reports a response status of 400 or above.
	CodeHTTPError
	// CodeParseError reports a response without the expected structure.
	CodeParseError
)

// String returns the fixed description of the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeAllocationFailure:
		return "allocation failed"
	case CodeTransportError:
		return "transport error"
	case CodeHTTPError:
		return "http error"
	case CodeParseError:
		return "parse error"
	default:
		return "unknown error"
	}
}

// ResultString returns the description of code.
func ResultString(code Code) string {
	return code.String()
}

// Error is returned by every Client operation.
type Error struct {
	// Code classifies the failure.
	Code Code
	// Op is the operation, e.g. "health" or "POST /scenes/apply".
	Op string
	// StatusCode is the HTTP status for CodeHTTPError, 0 otherwise.
	StatusCode int
	// Message describes the failure.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	s := fmt.Sprintf("scene: %s: %s", e.Op, e.Code)
	if e.StatusCode > 0 {
		s += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if msg != "" {
		s += ": " + msg
	}
	return s
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, op, msg string, err error) *Error {
	return &Error{Code: code, Op: op, Message: msg, Err: err}
}

// CodeOf returns the result code carried by err: CodeOK for nil and
// CodeTransportError for errors not produced by this package.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeTransportError
}

// IsInvalidArgument checks if err carries CodeInvalidArgument.
func IsInvalidArgument(err error) bool { return hasCode(err, CodeInvalidArgument) }

// IsAllocationFailure checks if err carries CodeAllocationFailure.
func IsAllocationFailure(err error) bool { return hasCode(err, CodeAllocationFailure) }

// IsTransportError checks if err carries CodeTransportError.
func IsTransportError(err error) bool { return hasCode(err, CodeTransportError) }

// IsHTTPError checks if err carries CodeHTTPError.
func IsHTTPError(err error) bool { return hasCode(err, CodeHTTPError) }

// IsParseError checks if err carries CodeParseError.
func IsParseError(err error) bool { return hasCode(err, CodeParseError) }

// StatusCode returns the HTTP status attached to err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

func hasCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
