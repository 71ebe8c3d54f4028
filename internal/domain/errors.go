package domain

import (
	"errors"
	"fmt"
)

var ErrRecordNotFound = errors.New("Record not found")
var ErrUnauthenticated = errors.New("Unauthenticated")
var ErrNoDraft = errors.New("No draft in progress")

// ValidationError carries a stable code callers can branch on plus a
// human-readable message. Always recoverable by correcting the input.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// TransientError wraps a store or channel failure the caller may retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient failure in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IntegrityError reports corrupted referral data, e.g. a cycle in the invite
// graph. The affected branch is not traversed; the error is surfaced, never
// silently corrected.
type IntegrityError struct {
	NodeID string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("referral data integrity violation at %s: %s", e.NodeID, e.Detail)
}
