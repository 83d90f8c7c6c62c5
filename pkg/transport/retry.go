package transport

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const DefaultMaxRetries = 5

// Backoff yields the delay before each successive retry.
type Backoff interface {
	Next() time.Duration
}

// Fibonacci is a Backoff seeded at (1, 1): 2, 3, 5, 8, 13, 21, ... units.
type Fibonacci struct {
	a, b int
	unit time.Duration
}

func NewFibonacci(unit time.Duration) *Fibonacci {
	return &Fibonacci{a: 1, b: 1, unit: unit}
}

func (f *Fibonacci) Next() time.Duration {
	n := f.a + f.b
	f.a, f.b = f.b, n

	return time.Duration(n) * f.unit
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryPolicy wraps a single call with bounded retries. The zero value makes
// exactly one attempt.
type RetryPolicy struct {
	// MaxRetries is the number of attempts allowed after the first one.
	MaxRetries int
	NewBackoff func() Backoff
	Sleep      SleepFunc
	// OnRetry runs before each backoff sleep with the response that failed.
	OnRetry func(retry int, prev *Response, delay time.Duration)
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: DefaultMaxRetries,
		NewBackoff: func() Backoff { return NewFibonacci(time.Second) },
		Sleep:      sleepContext,
	}
}

// Do runs call until it returns a 200 response or the retries run out, in
// which case the last response comes back together with a *RetryError.
func (p RetryPolicy) Do(ctx context.Context, call func(ctx context.Context) *Response) (*Response, error) {
	newBackoff := p.NewBackoff
	if newBackoff == nil {
		newBackoff = func() Backoff { return NewFibonacci(time.Second) }
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	backoff := newBackoff()

	var last *Response
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := backoff.Next()
			if p.OnRetry != nil {
				p.OnRetry(attempt, last, delay)
			}
			if err := sleep(ctx, delay); err != nil {
				return last, errors.Wrap(err, "retry backoff interrupted")
			}
		}

		last = call(ctx)
		if last.OK() {
			return last, nil
		}
	}

	return last, &RetryError{Attempts: p.MaxRetries + 1, Last: last}
}
