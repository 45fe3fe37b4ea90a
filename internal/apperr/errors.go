package apperr

import "fmt"

// ValidationError is a client input error. Only Message is shown to the client; Err is
// the underlying cause, kept for logs.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NotFoundError is returned by single-record lookups when no record has the requested id.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id int64) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreError marks a failure of the backing store. It is never retried here.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return "store " + e.Op + ": " + e.Err.Error()
	}
	return "store " + e.Op
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStore(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
