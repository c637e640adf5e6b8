// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Coverage errors.
	ErrInvalidRange     = errors.New("invalid date range")
	ErrNonAdjacentRange = errors.New("range is not adjacent to checked range")

	// Review cycle errors.
	ErrScanInFlight         = errors.New("a scan is already in flight")
	ErrUnresolvedCandidates = errors.New("unresolved candidates remain")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// PartialCommitError reports a bulk commit where some pairs failed to
// persist. It is not fatal; the window is still considered reviewed and the
// failures are surfaced as a count.
type PartialCommitError struct {
	Succeeded int
	Failed    int
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("%d pairs committed, %d failed", e.Succeeded, e.Failed)
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
