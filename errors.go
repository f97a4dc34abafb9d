package tweetlate

import (
	"context"
	"errors"
	"fmt"
)

// FeedError indicates a failed feed fetch (transport error or non-2xx
// response). Retryable is set for transient classes (5xx, 429, transport
// failures); malformed-request classes are terminal.
type FeedError struct {
	StatusCode int // HTTP status, 0 for transport-level failures
	Message    string
	Cause      error
	Retryable  bool
}

func (e *FeedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feed error: %s: %v", e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed error: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("feed error: %s", e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Cause
}

// TranslateError indicates a failed translation call.
type TranslateError struct {
	StatusCode int
	Message    string
	Cause      error
	Retryable  bool
}

func (e *TranslateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translate error: %s: %v", e.Message, e.Cause)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("translate error: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("translate error: %s", e.Message)
}

func (e *TranslateError) Unwrap() error {
	return e.Cause
}

// StoreError indicates a cache store operation failure. Store errors are
// not absorbed by the pipeline; they fail the refresh task as a whole.
type StoreError struct {
	Op    string // Store operation, e.g. "peek", "push", "claim"
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %q: %v", e.Op, e.Key, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether an error is worth another attempt.
// Only collaborator errors explicitly marked retryable qualify; context
// cancellation and anything unclassified are terminal.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var feedErr *FeedError
	if errors.As(err, &feedErr) {
		return feedErr.Retryable
	}

	var trErr *TranslateError
	if errors.As(err, &trErr) {
		return trErr.Retryable
	}

	return false
}
