package response

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is the request-terminal error type: an HTTP status, a public
// message, and optionally the original error chain with its stack for
// diagnostics and Sentry reporting.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Origin  string `json:"-"`
	cause   error
	stack   pkgerrors.StackTrace
}

func New(status int, msg string) *Error {
	return &Error{
		Status:  status,
		Message: msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("status:%d, msg:%s", e.Status, e.Message)
}

// GetCode implements sentry.CodedError.
func (e *Error) GetCode() int32 {
	return int32(e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace implements the pkg/errors stackTracer interface.
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if e.cause != nil {
		type stackTracer interface {
			StackTrace() pkgerrors.StackTrace
		}
		if st, ok := e.cause.(stackTracer); ok {
			return st.StackTrace()
		}
	}
	return nil
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// WithMessage returns a copy with the public message replaced.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Status:  e.Status,
		Message: msg,
		Origin:  e.Origin,
		cause:   e.cause,
		stack:   e.stack,
	}
}

// WithOrigin attaches the underlying error. The origin text is only ever
// rendered to clients in debug mode.
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}

	wrappedErr := ensureStack(err)

	newErr := &Error{
		Status:  e.Status,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", wrappedErr),
		cause:   wrappedErr,
	}

	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if st, ok := wrappedErr.(stackTracer); ok {
		newErr.stack = st.StackTrace()
	}

	return newErr
}

func ensureStack(err error) error {
	if err == nil {
		return nil
	}
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	if _, ok := err.(stackTracer); ok {
		return err
	}
	return pkgerrors.WithStack(err)
}
