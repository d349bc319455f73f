package errors

import (
	"fmt"
)

// ErrValidation is returned when user input fails a client-side check.
// It is never retried and never consumes a network attempt.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrNotFound is returned when a cart item lookup misses
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrNotReady is returned when an operation is invoked before its
// preconditions hold (no uploaded file, empty cart, incomplete form)
type ErrNotReady struct {
	Message string
}

func (e *ErrNotReady) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not ready"
}

// ErrFileTooLarge is returned before any upload attempt when the payload
// exceeds the configured maximum
type ErrFileTooLarge struct {
	Size int64
	Max  int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file too large: %d bytes (max %d)", e.Size, e.Max)
}

// ErrUpload is returned when the upload exchange failed after retries.
// The draft's file fields have been rolled back when this is returned.
type ErrUpload struct {
	FileName string
	Err      error
}

func (e *ErrUpload) Error() string {
	return fmt.Sprintf("upload failed for %s: %v", e.FileName, e.Err)
}

func (e *ErrUpload) Unwrap() error { return e.Err }

// ErrPricing is returned when the price exchange failed after retries.
// The last known price is retained and marked stale.
type ErrPricing struct {
	Err error
}

func (e *ErrPricing) Error() string {
	return fmt.Sprintf("price calculation failed: %v", e.Err)
}

func (e *ErrPricing) Unwrap() error { return e.Err }

// ErrOrderSubmission is returned when the order exchange failed after
// retries. Cart and form are fully preserved for resubmission.
type ErrOrderSubmission struct {
	Err error
}

func (e *ErrOrderSubmission) Error() string {
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *ErrOrderSubmission) Unwrap() error { return e.Err }

// ErrInvalidStateTransition is returned when an invalid checkout or
// navigation transition is attempted
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
