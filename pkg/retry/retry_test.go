package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "fiasapi/pkg/errors"
)

func TestExponentialBackoff(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    500 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.0, // No jitter for predictable testing
	}

	tests := []struct {
		attempt     int
		expected    time.Duration
		description string
	}{
		{1, 500 * time.Millisecond, "After first attempt"},
		{2, 1 * time.Second, "After second attempt"},
		{3, 2 * time.Second, "After third attempt"},
		{4, 4 * time.Second, "After fourth attempt"},
		{10, 30 * time.Second, "Capped at max delay"},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			delay := backoff.NextDelay(test.attempt)
			if delay != test.expected {
				t.Errorf("Expected delay %v, got %v", test.expected, delay)
			}
		})
	}
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.3,
	}

	delays := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		delays[backoff.NextDelay(2)] = true
	}

	// With jitter, we should get different delays
	if len(delays) < 2 {
		t.Error("Expected multiple different delays with jitter, but got consistent delays")
	}
}

func TestLinearBackoff(t *testing.T) {
	backoff := &LinearBackoff{
		BaseDelay: 100 * time.Millisecond,
		Increment: 50 * time.Millisecond,
		MaxDelay:  250 * time.Millisecond,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 150 * time.Millisecond},
		{3, 200 * time.Millisecond},
		{4, 250 * time.Millisecond},
		{5, 250 * time.Millisecond},
	}

	for _, test := range tests {
		delay := backoff.NextDelay(test.attempt)
		if delay != test.expected {
			t.Errorf("Attempt %d: expected %v, got %v", test.attempt, test.expected, delay)
		}
	}
}

func TestConstantBackoff(t *testing.T) {
	backoff := &ConstantBackoff{Delay: 75 * time.Millisecond}

	for attempt := 1; attempt <= 3; attempt++ {
		if delay := backoff.NextDelay(attempt); delay != 75*time.Millisecond {
			t.Errorf("Attempt %d: expected 75ms, got %v", attempt, delay)
		}
	}
}

func TestRetryWithSuccess(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts < 2 {
			return errs.NewTransport(errors.New("connection reset"))
		}
		return nil
	}

	var delays []time.Duration
	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			delays = append(delays, delay)
		},
	}

	err := Do(context.Background(), op, cfg)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
	if len(delays) != 1 {
		t.Errorf("Expected exactly one delay, got %d", len(delays))
	}
}

func TestRetryWithMaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	persistent := errs.NewStatus(503, "unavailable")
	op := func() error {
		attempts++
		return persistent
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
	}

	err := Do(context.Background(), op, cfg)
	if err == nil {
		t.Fatal("Expected error when max attempts exceeded")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	// The final failure must surface unwrapped
	if !errors.Is(err, persistent) {
		t.Errorf("Expected the last error itself, got %v", err)
	}
}

func TestRetryWithNonRetryableError(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errs.NewStatus(404, "not found")
	}

	err := Do(context.Background(), op, &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
	})
	if err == nil {
		t.Fatal("Expected error for non-retryable failure")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for non-retryable error, got %d", attempts)
	}
	if !errs.IsNotFound(err) {
		t.Errorf("Expected 404 status error, got %v", err)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"transport failure", errs.NewTransport(errors.New("dial tcp: refused")), true},
		{"server error", errs.NewStatus(500, ""), true},
		{"bad gateway", errs.NewStatus(502, ""), true},
		{"not found", errs.NewStatus(404, ""), false},
		{"unauthorized", errs.NewStatus(401, ""), false},
		{"decode failure", errs.NewDecode(errors.New("unexpected EOF"), 200), false},
		{"cancellation", errs.NewCancelled(context.Canceled), false},
		{"token failure", errs.NewToken("missing marker"), false},
		{"plain error", errors.New("who knows"), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DefaultRetryIf(test.err); got != test.retryable {
				t.Errorf("DefaultRetryIf(%v) = %v, want %v", test.err, got, test.retryable)
			}
		})
	}
}

func TestRetryAll(t *testing.T) {
	if !RetryAll(errs.NewStatus(404, "")) {
		t.Error("RetryAll should retry client errors")
	}
	if RetryAll(errs.NewCancelled(context.Canceled)) {
		t.Error("RetryAll must not retry cancellations")
	}
	if RetryAll(nil) {
		t.Error("RetryAll must not retry nil")
	}
}

func TestRetryCancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	op := func() error {
		attempts++
		cancel()
		return errs.NewTransport(errors.New("connection reset"))
	}

	err := Do(ctx, op, &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: 10 * time.Second},
		RetryIf:     DefaultRetryIf,
	})
	if err == nil {
		t.Fatal("Expected error after cancellation")
	}
	if !errs.IsCancelled(err) {
		t.Errorf("Expected cancellation error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errs.NewTransport(errors.New("timeout"))
		}
		return "moscow", nil
	}, &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
	})
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "moscow" {
		t.Errorf("Expected result 'moscow', got %q", result)
	}
}

func TestRetrier(t *testing.T) {
	retrier := NewRetrier(&Config{
		MaxAttempts: 2,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
	}).WithMaxAttempts(4)

	attempts := 0
	err := retrier.Do(context.Background(), func() error {
		attempts++
		return errors.New("always fails")
	})
	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts after WithMaxAttempts, got %d", attempts)
	}
}

func TestWait(t *testing.T) {
	if err := Wait(context.Background(), 0); err != nil {
		t.Errorf("Wait with zero delay should return nil, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Wait(ctx, time.Minute); err == nil {
		t.Error("Wait on cancelled context should return its error")
	}
}

func TestDoWithNilConfig(t *testing.T) {
	err := Do(context.Background(), func() error { return nil }, nil)
	if err != nil {
		t.Errorf("Expected success with nil config, got %v", err)
	}
}
