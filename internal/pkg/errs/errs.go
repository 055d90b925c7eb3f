package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors used for classification with errors.Is. Each structured error
// type below unwraps to one of these, so callers can branch on the kind of
// failure without inspecting concrete types.
var (
	ErrValueIsRequired         = errors.New("value is required")
	ErrValueIsInvalid          = errors.New("value is invalid")
	ErrObjectNotFound          = errors.New("object not found")
	ErrObjectAlreadyExists     = errors.New("object already exists")
	ErrAccessDenied            = errors.New("access denied")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCannotCancel            = errors.New("cannot cancel")
	ErrPersistence             = errors.New("persistence failure")

	// ErrInvalidCredentials signals a failed login. It deliberately carries no
	// detail, so unknown email and wrong password are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValueIsRequiredError indicates a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is required: %s (cause: %s)", e.ParamName, e.Cause)
	}
	return fmt.Sprintf("value is required: %s", e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value is present but malformed or out of range.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("value is invalid: %s (cause: %s)", e.ParamName, e.Cause)
	}
	return fmt.Sprintf("value is invalid: %s", e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object not found: param is: %s, ID is: %s (cause: %s)", e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("object not found: %s", e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError indicates a uniqueness violation, e.g. a duplicate email.
type ObjectAlreadyExistsError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewObjectAlreadyExistsError(paramName string, value any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, Value: value}
}

func (e *ObjectAlreadyExistsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("object already exists: param is: %s, value is: %s (cause: %s)", e.ParamName, e.Value, e.Cause)
	}
	return fmt.Sprintf("object already exists: %s", e.Value)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

// AccessDeniedError indicates the caller is authenticated but not authorized
// for the requested record or action.
type AccessDeniedError struct {
	Action string
	Cause  error
}

func NewAccessDeniedError(action string) *AccessDeniedError {
	return &AccessDeniedError{Action: action}
}

func (e *AccessDeniedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("access denied: %s (cause: %s)", e.Action, e.Cause)
	}
	return fmt.Sprintf("access denied: %s", e.Action)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// InvalidStatusTransitionError indicates a well-formed status change request
// that violates the transition table. It carries the current status and the
// set of allowed targets for diagnostics.
type InvalidStatusTransitionError struct {
	From    string
	To      string
	Allowed []string
}

func NewInvalidStatusTransitionError(from, to string, allowed []string) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{From: from, To: to, Allowed: allowed}
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: cannot change status from '%s' to '%s' (allowed transitions: %v)",
		e.From, e.To, e.Allowed)
}

func (e *InvalidStatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// CannotCancelError is the cancellation-path specialization of an invalid
// status transition: the order is already in a terminal status. It unwraps to
// both ErrCannotCancel and ErrInvalidStatusTransition.
type CannotCancelError struct {
	Status string
}

func NewCannotCancelError(status string) *CannotCancelError {
	return &CannotCancelError{Status: status}
}

func (e *CannotCancelError) Error() string {
	return fmt.Sprintf("cannot cancel order with status '%s': orders can only be cancelled from 'created' or 'in_progress'",
		e.Status)
}

func (e *CannotCancelError) Unwrap() []error {
	return []error{ErrCannotCancel, ErrInvalidStatusTransition}
}

// PersistenceError indicates a store-layer failure: unavailable storage, a
// failed write, or an expired store call. Retryable at the caller's discretion.
type PersistenceError struct {
	Op    string
	Cause error
}

func NewPersistenceError(op string, cause error) *PersistenceError {
	return &PersistenceError{Op: op, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("persistence failure: %s (cause: %s)", e.Op, e.Cause)
	}
	return fmt.Sprintf("persistence failure: %s", e.Op)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}
