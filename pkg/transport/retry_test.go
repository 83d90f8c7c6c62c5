package transport

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleep collects requested delays without waiting.
type recordingSleep struct {
	delays []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func seconds(ns ...int) []time.Duration {
	out := make([]time.Duration, 0, len(ns))
	for _, n := range ns {
		out = append(out, time.Duration(n)*time.Second)
	}
	return out
}

// scripted replays statuses and then keeps returning the last one.
func scripted(statuses ...int) (func(context.Context) *Response, *int) {
	calls := 0
	return func(context.Context) *Response {
		status := statuses[len(statuses)-1]
		if calls < len(statuses) {
			status = statuses[calls]
		}
		calls++
		return &Response{StatusCode: status, Body: []byte("body")}
	}, &calls
}

func TestFibonacci(t *testing.T) {
	f := NewFibonacci(time.Second)

	var got []time.Duration
	for range 6 {
		got = append(got, f.Next())
	}

	assert.Equal(t, seconds(2, 3, 5, 8, 13, 21), got)
}

func TestRetryPolicy_SucceedsAfterFailures(t *testing.T) {
	rec := &recordingSleep{}
	p := DefaultRetryPolicy()
	p.Sleep = rec.sleep

	call, calls := scripted(StatusConnectionFailed, http.StatusServiceUnavailable, http.StatusOK)

	resp, err := p.Do(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, seconds(2, 3), rec.delays)
}

func TestRetryPolicy_FirstAttemptDoesNotSleep(t *testing.T) {
	rec := &recordingSleep{}
	p := DefaultRetryPolicy()
	p.Sleep = rec.sleep

	call, calls := scripted(http.StatusOK)

	_, err := p.Do(context.Background(), call)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Empty(t, rec.delays)
}

func TestRetryPolicy_Exhausted(t *testing.T) {
	rec := &recordingSleep{}
	p := DefaultRetryPolicy()
	p.Sleep = rec.sleep

	var retries []int
	p.OnRetry = func(retry int, prev *Response, _ time.Duration) {
		retries = append(retries, retry)
		assert.Equal(t, http.StatusBadGateway, prev.StatusCode)
	}

	call, calls := scripted(http.StatusBadGateway)

	resp, err := p.Do(context.Background(), call)
	require.ErrorIs(t, err, ErrRetryExhausted)

	var retryErr *RetryError
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, DefaultMaxRetries+1, retryErr.Attempts)
	assert.Equal(t, http.StatusBadGateway, retryErr.Last.StatusCode)
	assert.Same(t, resp, retryErr.Last)

	assert.Equal(t, DefaultMaxRetries+1, *calls)
	assert.Equal(t, seconds(2, 3, 5, 8, 13), rec.delays)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, retries)
}

func TestRetryPolicy_SuccessOnFinalRetry(t *testing.T) {
	rec := &recordingSleep{}
	p := DefaultRetryPolicy()
	p.Sleep = rec.sleep

	call, calls := scripted(500, 500, 500, 500, 500, http.StatusOK)

	resp, err := p.Do(context.Background(), call)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, 6, *calls)
}

func TestRetryPolicy_ZeroValueTriesOnce(t *testing.T) {
	call, calls := scripted(http.StatusNotFound)

	_, err := RetryPolicy{}.Do(context.Background(), call)
	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, 1, *calls)
}

func TestRetryPolicy_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := DefaultRetryPolicy()
	call, calls := scripted(http.StatusInternalServerError)

	_, err := p.Do(ctx, call)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, *calls)
}
