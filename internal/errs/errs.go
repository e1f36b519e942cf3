// Package errs defines the error kinds surfaced by the predictive maintenance
// workflow. Every failure carries exactly one kind, the operation that failed
// and the underlying cause.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrDataFormat      = errors.New("data format error")
	ErrNoData          = errors.New("no data")
	ErrSchema          = errors.New("schema error")
	ErrModelNotTrained = errors.New("model not trained")
	ErrTraining        = errors.New("training error")
	ErrPersistence     = errors.New("persistence error")
)

// Error is a kinded failure of a named operation.
type Error struct {
	Kind error
	Op   string
	Err  error
}

// E builds an *Error. cause may be nil when the kind alone describes the failure.
func E(kind error, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Err: cause}
}

// Errorf builds an *Error with a formatted cause.
func Errorf(kind error, op string, format string, args ...any) *Error {
	return E(kind, op, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return e.Kind.Error()
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind of err, or nil if err carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrDataFormat,
		ErrNoData,
		ErrSchema,
		ErrModelNotTrained,
		ErrTraining,
		ErrPersistence,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
