package basis

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often the spread is re-checked and how long to wait
// between checks
type RetryPolicy struct {
	MaxAttempts int
	Backoff     backoff.BackOff
}

// ConstantRetry waits the same duration between attempts
func ConstantRetry(attempts int, wait time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: attempts,
		Backoff:     backoff.NewConstantBackOff(wait),
	}
}

// ExponentialRetry doubles the wait between attempts from initial up to
// maxWait, with jitter
func ExponentialRetry(attempts int, initial, maxWait time.Duration) RetryPolicy {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = maxWait
	b.Multiplier = 2
	b.MaxElapsedTime = 0
	return RetryPolicy{
		MaxAttempts: attempts,
		Backoff:     b,
	}
}

// NewRetryPolicy returns a constant policy when maxWait is zero, otherwise an
// exponential one capped at maxWait
func NewRetryPolicy(attempts int, wait, maxWait time.Duration) (RetryPolicy, error) {
	if attempts < 1 {
		return RetryPolicy{}, errInvalidAttempts
	}
	if wait < 0 || maxWait < 0 {
		return RetryPolicy{}, errInvalidRetryTimings
	}
	if maxWait == 0 {
		return ConstantRetry(attempts, wait), nil
	}
	if wait > maxWait {
		wait = maxWait
	}
	return ExponentialRetry(attempts, wait, maxWait), nil
}

func (r RetryPolicy) check() error {
	if r.MaxAttempts < 1 {
		return errInvalidAttempts
	}
	if r.Backoff == nil {
		return errBackoffIsNil
	}
	return nil
}
