package workflow

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrMissingFields  = errors.New("fill all fields")
	ErrStartInPast    = errors.New("start date cannot be in the past")
	ErrEndBeforeStart = errors.New("end date cannot be before start date")
	ErrInvalidRule    = errors.New("invalid recurrence rule")
	ErrInvalidStatus  = errors.New("status must be accepted or rejected")

	ErrEmailTaken    = errors.New("email already used")
	ErrPendingExists = errors.New("you already have a pending application")
	ErrAccepted      = errors.New("you have already been accepted for this event")
	ErrNotRecruiting = errors.New("recruiting has ended for this event")
	ErrNotPending    = errors.New("application is no longer pending")

	ErrNoMatch             = errors.New("no user found with those credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrEventNotFound       = errors.New("event not found")
	ErrApplicationNotFound = errors.New("application not found")

	ErrVolunteerOnly = errors.New("log in as a volunteer to do this")
	ErrManagerOnly   = errors.New("log in as a manager to do this")
	ErrNotOwner      = errors.New("only the manager who created the event can do this")
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError reports missing or invalid input. Nothing is written.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return ErrInvalidInput.Error()
	}
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Err.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ConflictError reports an action rejected by the current state:
// a duplicate email, a duplicate pending application, a closed event.
type ConflictError struct {
	Err error
}

func (e *ConflictError) Error() string { return e.Err.Error() }
func (e *ConflictError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup miss, including a credential mismatch.
type NotFoundError struct {
	Err error
}

func (e *NotFoundError) Error() string { return e.Err.Error() }
func (e *NotFoundError) Unwrap() error { return e.Err }

// ForbiddenError reports an action attempted by the wrong role or a non-owner.
type ForbiddenError struct {
	Err error
}

func (e *ForbiddenError) Error() string { return e.Err.Error() }
func (e *ForbiddenError) Unwrap() error { return e.Err }

func invalid(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func conflict(err error) error  { return &ConflictError{Err: err} }
func notFound(err error) error  { return &NotFoundError{Err: err} }
func forbidden(err error) error { return &ForbiddenError{Err: err} }

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is (or wraps) a ConflictError
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsForbidden reports whether err is (or wraps) a ForbiddenError
func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}
