// Package retry provides exponential backoff and retry logic for
// transient registry failures, in particular the bootstrap portal's
// habit of answering the first request with a 500 or a connection
// reset.
//
// The wrapper is generic over the execution model: blocking callers
// pass context.Background() and the delay is a plain sleep, while
// context-driven callers get a cancellable wait. The wrapped operation
// itself may be blocking or context-aware.
//
// Basic usage:
//
//	token, err := retry.DoWithResult(ctx, func() (string, error) {
//		return fias.GetToken("")
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 5,
//		Backoff: &retry.ExponentialBackoff{
//			BaseDelay:  500 * time.Millisecond,
//			MaxDelay:   30 * time.Second,
//			Multiplier: 2.0,
//		},
//		RetryIf: retry.DefaultRetryIf,
//	}
//	err := retry.Do(ctx, operation, cfg)
//
// By default only transport failures and 5xx statuses are retried;
// use RetryAll to retry everything except cancellations.
package retry
