package service

import "fmt"

// The error taxonomy separates recoverable validation failures, which turn
// into a user-facing retry prompt with the stage unchanged, from
// collaborator failures, which abort the current transition.

// ValidationError is an expected rejection of user input (wrong file type,
// unrecognized package key). Message is safe to show verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ExtractionError covers document parsing and model call failures.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string { return fmt.Sprintf("extraction: %v", e.Err) }
func (e *ExtractionError) Unwrap() error { return e.Err }

// StorageError covers upload and account-store failures.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %v", e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError covers email/DNS check failures. Non-fatal: logged and
// shown as a warning, the flow proceeds.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return fmt.Sprintf("notification: %v", e.Err) }
func (e *NotificationError) Unwrap() error { return e.Err }

// PaymentError covers gateway call failures. Never swallowed: it must
// surface to the caller and the operator log.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string { return fmt.Sprintf("payment: %v", e.Err) }
func (e *PaymentError) Unwrap() error { return e.Err }
