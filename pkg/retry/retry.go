package retry

import (
	"context"
	"time"

	"fiasapi/pkg/config"
	errs "fiasapi/pkg/errors"
	"fiasapi/pkg/logger"
)

// Operation is a fallible operation that may be retried
type Operation func() error

// OperationWithResult is a fallible operation returning a value
type OperationWithResult[T any] func() (T, error)

// Config holds retry configuration. It is not mutated while an
// operation is executing.
type Config struct {
	// MaxAttempts is the total number of attempts, at least 1
	MaxAttempts int
	// Backoff computes the delay between attempts
	Backoff BackoffStrategy
	// RetryIf decides whether a failure is worth another attempt
	RetryIf func(error) bool
	// OnRetry is called before each delay with the failed attempt number
	OnRetry func(attempt int, err error, delay time.Duration)
	// Logger records retry activity; nil disables logging
	Logger logger.Logger
}

// DefaultConfig returns a retry configuration with the default
// transient-failure predicate: transport failures and 5xx statuses.
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Backoff:     DefaultExponentialBackoff(),
		RetryIf:     DefaultRetryIf,
		Logger:      logger.GetLogger(),
	}
}

// DefaultRetryIf retries transport failures and server-side statuses.
// Client errors, decode failures and cancellations propagate at once.
func DefaultRetryIf(err error) bool {
	return errs.IsRetryable(err)
}

// RetryAll treats every failure as retryable except cancellations
func RetryAll(err error) bool {
	return err != nil && !errs.IsCancelled(err)
}

// FromConfig builds a retry Config from the application configuration
func FromConfig(rc *config.RetryConfig, log logger.Logger) *Config {
	if rc == nil {
		return DefaultConfig()
	}
	return &Config{
		MaxAttempts: rc.MaxAttempts,
		Backoff: &ExponentialBackoff{
			BaseDelay:    rc.BaseDelay,
			MaxDelay:     rc.MaxDelay,
			Multiplier:   rc.Multiplier,
			JitterFactor: rc.Jitter,
		},
		RetryIf: DefaultRetryIf,
		Logger:  log,
	}
}

// Do executes op up to cfg.MaxAttempts times. A failure that does not
// satisfy RetryIf propagates immediately; when attempts run out the
// last failure is returned as-is. The wait between attempts respects
// ctx, and a cancelled wait surfaces as a cancellation failure.
func Do(ctx context.Context, op Operation, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryIf
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := op()
		if err == nil {
			if attempt > 1 && cfg.Logger != nil {
				cfg.Logger.DebugWithFields("operation succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return nil
		}

		lastErr = err

		if !retryIf(err) {
			if cfg.Logger != nil {
				cfg.Logger.DebugWithFields("error is not retryable", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return err
		}

		if attempt == maxAttempts {
			break
		}

		var delay time.Duration
		if cfg.Backoff != nil {
			delay = cfg.Backoff.NextDelay(attempt)
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, delay)
		}

		if cfg.Logger != nil {
			cfg.Logger.WarnWithFields("retrying operation", map[string]interface{}{
				"attempt":      attempt,
				"max_attempts": maxAttempts,
				"error":        err.Error(),
				"delay_ms":     delay.Milliseconds(),
			})
		}

		if err := Wait(ctx, delay); err != nil {
			return errs.NewCancelled(err)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.ErrorWithFields("max retry attempts exceeded", map[string]interface{}{
			"attempts":   maxAttempts,
			"last_error": lastErr.Error(),
		})
	}
	return lastErr
}

// DoWithResult executes an operation returning a value with retry logic
func DoWithResult[T any](ctx context.Context, op OperationWithResult[T], cfg *Config) (T, error) {
	var result T
	err := Do(ctx, func() error {
		var opErr error
		result, opErr = op()
		return opErr
	}, cfg)
	return result, err
}

// Retrier bundles a Config for reuse across calls
type Retrier struct {
	config *Config
}

// NewRetrier creates a retrier with the given configuration
func NewRetrier(cfg *Config) *Retrier {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Retrier{config: cfg}
}

// Do executes an operation with the retrier's configuration
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	return Do(ctx, op, r.config)
}

// WithMaxAttempts returns a retrier with updated max attempts
func (r *Retrier) WithMaxAttempts(maxAttempts int) *Retrier {
	cfg := *r.config
	cfg.MaxAttempts = maxAttempts
	return &Retrier{config: &cfg}
}

// WithBackoff returns a retrier with an updated backoff strategy
func (r *Retrier) WithBackoff(backoff BackoffStrategy) *Retrier {
	cfg := *r.config
	cfg.Backoff = backoff
	return &Retrier{config: &cfg}
}

// WithRetryIf returns a retrier with an updated predicate
func (r *Retrier) WithRetryIf(retryIf func(error) bool) *Retrier {
	cfg := *r.config
	cfg.RetryIf = retryIf
	return &Retrier{config: &cfg}
}
