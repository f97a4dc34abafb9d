package tweetlate

import (
	"context"
	"errors"
	"testing"
)

func TestWithRetries_ZeroAttempts(t *testing.T) {
	for _, maxAttempts := range []int{0, -1, -5} {
		callCount := 0
		_, err := WithRetries(context.Background(), maxAttempts, func() (string, error) {
			callCount++
			return "never", nil
		})

		if callCount != 0 {
			t.Errorf("maxAttempts=%d: operation invoked %d times, want 0", maxAttempts, callCount)
		}
		if !errors.Is(err, ErrNoAttempts) {
			t.Errorf("maxAttempts=%d: err = %v, want ErrNoAttempts", maxAttempts, err)
		}
	}
}

func TestWithRetries_FirstAttemptSucceeds(t *testing.T) {
	callCount := 0
	result, err := WithRetries(context.Background(), 3, func() (string, error) {
		callCount++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" {
		t.Errorf("result = %q, want %q", result, "ok")
	}
	if callCount != 1 {
		t.Errorf("invoked %d times, want 1", callCount)
	}
}

func TestWithRetries_SucceedsOnKthAttempt(t *testing.T) {
	tests := []struct {
		name        string
		maxAttempts int
		succeedOn   int
	}{
		{"second of three", 3, 2},
		{"third of three", 3, 3},
		{"first of five", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			callCount := 0
			result, err := WithRetries(context.Background(), tt.maxAttempts, func() (int, error) {
				callCount++
				if callCount < tt.succeedOn {
					return 0, &FeedError{Message: "flaky", Retryable: true}
				}
				return 42, nil
			})

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != 42 {
				t.Errorf("result = %d, want 42", result)
			}
			if callCount != tt.succeedOn {
				t.Errorf("invoked %d times, want %d", callCount, tt.succeedOn)
			}
		})
	}
}

func TestWithRetries_Exhaustion(t *testing.T) {
	failure := &FeedError{Message: "down", Retryable: true}

	callCount := 0
	_, err := WithRetries(context.Background(), 3, func() (string, error) {
		callCount++
		return "", failure
	})

	if callCount != 3 {
		t.Errorf("invoked %d times, want 3", callCount)
	}
	if !errors.Is(err, failure) {
		t.Errorf("err = %v, want the last failure", err)
	}
}

func TestWithRetries_NonRetryableAbortsImmediately(t *testing.T) {
	badRequest := &TranslateError{StatusCode: 400, Message: "malformed", Retryable: false}

	callCount := 0
	_, err := WithRetries(context.Background(), 3, func() (string, error) {
		callCount++
		return "", badRequest
	})

	if callCount != 1 {
		t.Errorf("invoked %d times, want 1", callCount)
	}
	if !errors.Is(err, badRequest) {
		t.Errorf("err = %v, want the terminal failure", err)
	}
}

func TestWithRetries_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callCount := 0
	_, err := WithRetries(ctx, 3, func() (string, error) {
		callCount++
		return "", &FeedError{Message: "down", Retryable: true}
	})

	if callCount != 0 {
		t.Errorf("invoked %d times after cancellation, want 0", callCount)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
