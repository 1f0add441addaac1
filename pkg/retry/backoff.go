package retry

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy computes the delay before the next attempt
type BackoffStrategy interface {
	// NextDelay returns the delay after `attempt` failed attempts, i.e.
	// the pause before attempt attempt+1. Attempt numbering starts at 1.
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff grows the delay geometrically, capped at MaxDelay
type ExponentialBackoff struct {
	// BaseDelay is the delay after the first failed attempt
	BaseDelay time.Duration
	// MaxDelay caps the delay; 0 means no cap
	MaxDelay time.Duration
	// Multiplier is the growth factor, at least 1.0
	Multiplier float64
	// JitterFactor randomizes the delay by +/- this fraction (0.0 to 1.0)
	JitterFactor float64
}

// DefaultExponentialBackoff returns an exponential backoff with the
// defaults used for registry calls. Jitter is off so delays are exact.
func DefaultExponentialBackoff() *ExponentialBackoff {
	return &ExponentialBackoff{
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
	}
}

// NextDelay returns BaseDelay * Multiplier^(attempt-1), capped and
// never negative.
func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 || eb.BaseDelay <= 0 {
		return 0
	}

	mult := eb.Multiplier
	if mult < 1.0 {
		mult = 1.0
	}

	delay := float64(eb.BaseDelay) * math.Pow(mult, float64(attempt-1))
	if eb.MaxDelay > 0 && delay > float64(eb.MaxDelay) {
		delay = float64(eb.MaxDelay)
	}

	if eb.JitterFactor > 0 {
		jitter := delay * eb.JitterFactor
		delay += (rand.Float64() * 2 * jitter) - jitter
	}

	if delay < 0 || math.IsInf(delay, 1) || math.IsNaN(delay) {
		if eb.MaxDelay > 0 {
			return eb.MaxDelay
		}
		return 0
	}

	return time.Duration(delay)
}

// LinearBackoff increases the delay by a fixed increment per attempt
type LinearBackoff struct {
	BaseDelay    time.Duration
	Increment    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64
}

// NextDelay returns BaseDelay + Increment*(attempt-1), capped
func (lb *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(lb.BaseDelay + lb.Increment*time.Duration(attempt-1))
	if lb.MaxDelay > 0 && delay > float64(lb.MaxDelay) {
		delay = float64(lb.MaxDelay)
	}

	if lb.JitterFactor > 0 {
		jitter := delay * lb.JitterFactor
		delay += (rand.Float64() * 2 * jitter) - jitter
	}

	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

// ConstantBackoff waits the same delay between every attempt
type ConstantBackoff struct {
	Delay time.Duration
}

// NextDelay returns the constant delay
func (cb *ConstantBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 || cb.Delay < 0 {
		return 0
	}
	return cb.Delay
}

// Wait sleeps for delay or until the context is done. Blocking callers
// pass context.Background() and get a plain sleep.
func Wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
