package transport

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"noaa-sdk/pkg/logger"
)

var errServerStatus = errors.New("server error status")

type BreakerSettings struct {
	Name string
	// Failures is the number of consecutive failures that opens the breaker.
	Failures uint32
	// OpenTimeout is how long the breaker stays open before letting a trial request through.
	OpenTimeout time.Duration
}

// BreakerDoer counts connection failures and 5xx responses of next. While the
// breaker is open, Do fails without touching the network.
type BreakerDoer struct {
	next Doer
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerDoer(next Doer, s BreakerSettings, l *logger.Logger) *BreakerDoer {
	if l == nil {
		l = logger.NewNop()
	}
	failures := s.Failures
	if failures == 0 {
		failures = 5
	}

	return &BreakerDoer{
		next: next,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        s.Name,
			MaxRequests: 1,
			Timeout:     s.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				l.Warning("circuit breaker state changed", map[string]any{
					"name": name,
					"from": from.String(),
					"to":   to.String(),
				})
			},
		}),
	}
}

func (b *BreakerDoer) Do(req *http.Request) (*http.Response, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		resp, err := b.next.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}

		return resp, nil
	})

	resp, _ := res.(*http.Response)
	if errors.Is(err, errServerStatus) {
		return resp, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "circuit breaker")
	}

	return resp, nil
}

func (b *BreakerDoer) State() gobreaker.State {
	return b.cb.State()
}
