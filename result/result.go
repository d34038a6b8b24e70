// Package result carries the outcome of a migration step without panics or
// thrown errors: a step either succeeded, was rejected by validation, stopped
// on a precondition that did not hold, or failed unexpectedly.
package result

import (
	"errors"
	"fmt"
	"strings"
)

type Status int

const (
	StatusOK Status = iota
	StatusValidationFailed
	StatusPreconditionFailed
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusValidationFailed:
		return "validation failed"
	case StatusPreconditionFailed:
		return "precondition failed"
	case StatusErrored:
		return "errored"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Sentinel errors matched by the error Err returns.
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrErrored            = errors.New("errored")
)

// Result is one of Ok(value), ValidationFailed(errors), PreconditionFailed(reason)
// or Errored(cause). Only the fields of its Status are set.
type Result[T any] struct {
	Status Status
	Value  T
	Errors []string
	Reason string
	Cause  error
}

func OK[T any](value T) Result[T] {
	return Result[T]{Status: StatusOK, Value: value}
}

func ValidationFailed[T any](errs []string) Result[T] {
	return Result[T]{Status: StatusValidationFailed, Errors: errs}
}

func PreconditionFailed[T any](reason string) Result[T] {
	return Result[T]{Status: StatusPreconditionFailed, Reason: reason}
}

func Errored[T any](cause error) Result[T] {
	return Result[T]{Status: StatusErrored, Cause: cause}
}

func (r Result[T]) OK() bool {
	return r.Status == StatusOK
}

// Convert keeps a non-OK outcome while changing the value type.
func Convert[T, U any](r Result[T]) Result[U] {
	return Result[U]{Status: r.Status, Errors: r.Errors, Reason: r.Reason, Cause: r.Cause}
}

// Err returns nil for OK and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.Status == StatusOK {
		return nil
	}
	return &Error{Status: r.Status, Errors: r.Errors, Reason: r.Reason, Cause: r.Cause}
}

// Error is the error form of a failed Result.
type Error struct {
	Status Status
	Errors []string
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	switch e.Status {
	case StatusValidationFailed:
		return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
	case StatusPreconditionFailed:
		return fmt.Sprintf("precondition failed: %s", e.Reason)
	default:
		return fmt.Sprintf("errored: %v", e.Cause)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is match the sentinel of e's status.
func (e *Error) Is(target error) bool {
	switch e.Status {
	case StatusValidationFailed:
		return target == ErrValidationFailed
	case StatusPreconditionFailed:
		return target == ErrPreconditionFailed
	case StatusErrored:
		return target == ErrErrored
	}
	return false
}
