// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Hierarchy store errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Oracle errors.
	ErrOracleUnavailable = errors.New("classification oracle unavailable")
	ErrOracleMalformed   = errors.New("malformed oracle response")
	// ErrInvalidOracleCode means the oracle returned a chapter or heading
	// that does not exist in the hierarchy store. Fatal for the request;
	// never silently substituted.
	ErrInvalidOracleCode = errors.New("oracle returned unknown code")

	// Classification errors.
	ErrNoCandidates         = errors.New("no classification candidates")
	ErrClassificationFailed = errors.New("classification failed")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

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
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrOracleUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// Validation failures are never retried with different input.
	if errors.Is(err, ErrInvalidOracleCode) {
		return false
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
