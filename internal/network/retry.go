package network

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy retries an operation with capped exponential backoff and no jitter.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultRetryPolicy waits 0.6s, 1.2s, ... capped at 4s, for three attempts in total.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   600 * time.Millisecond,
		Multiplier:  2,
		MaxDelay:    4 * time.Second,
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a Permanent error, the attempts are used up,
// or ctx is done. notify, when set, is called before each wait. The number of attempts
// made is returned alongside the last error.
func (p RetryPolicy) Do(ctx context.Context, op func(attempt int) error, notify func(attempt int, err error, wait time.Duration)) (int, error) {
	attempts := 0
	operation := func() error {
		attempts++
		return op(attempts)
	}
	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, wait time.Duration) {
			notify(attempts, err, wait)
		}
	}
	err := backoff.RetryNotify(operation, p.backOff(ctx), onRetry)
	return attempts, err
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BaseDelay
	exp.Multiplier = p.Multiplier
	exp.MaxInterval = p.MaxDelay
	exp.RandomizationFactor = 0
	exp.MaxElapsedTime = 0
	if exp.Multiplier < 1 {
		exp.Multiplier = 1
	}

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}
