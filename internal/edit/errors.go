package edit

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for engine failure modes.
type ErrorCode string

const (
	// TargetNotFound indicates a transformation or patch referenced text or
	// a path that does not exist in the file.
	TargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	// InvalidRange indicates line-range bounds outside the file.
	InvalidRange ErrorCode = "INVALID_RANGE"
	// ParseFailure indicates the structural parse of input failed. It is
	// handled inside the semantic strategy (degraded mode) and never
	// surfaced to callers.
	ParseFailure ErrorCode = "PARSE_FAILURE"
	// UnsupportedInDegradedMode indicates a structural-only action was
	// requested while the semantic strategy was in text fallback.
	UnsupportedInDegradedMode ErrorCode = "UNSUPPORTED_IN_DEGRADED_MODE"
	// EmptyFind indicates a text patch with an empty find string.
	EmptyFind ErrorCode = "EMPTY_FIND"
	// UnparseableResult indicates the semantic strategy produced output
	// that no longer parses.
	UnparseableResult ErrorCode = "UNPARSEABLE_RESULT"
	// UnknownEditKind indicates a FileEdit with an unrecognized kind tag.
	UnknownEditKind ErrorCode = "UNKNOWN_EDIT_KIND"
)

// Error is the engine error type: a stable code, a message, and optional
// file/target context plus a wrapped cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	File    string    `json:"file,omitempty"`
	Target  string    `json:"target,omitempty"`
	cause   error
}

// NewError creates an engine error.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Errorf creates an engine error with a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithFile tags the error with the file it occurred in.
func (e *Error) WithFile(file string) *Error {
	e.File = file
	return e
}

// WithTarget tags the error with the target that could not be located.
func (e *Error) WithTarget(target string) *Error {
	e.Target = target
	return e
}

// CodeOf returns the engine error code of err, or "" if err is not an
// engine error.
func CodeOf(err error) ErrorCode {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsCode reports whether err carries the given engine error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
