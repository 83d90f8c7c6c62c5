// Package transport performs the GET requests of the API clients, retrying
// failures with a Fibonacci backoff.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"noaa-sdk/pkg/logger"
)

// StatusConnectionFailed is the status of a Response synthesized from an I/O
// failure. It never collides with a real HTTP status.
const StatusConnectionFailed = -1

const (
	DefaultScheme  = "https"
	DefaultTimeout = 30 * time.Second
)

var ErrRetryExhausted = errors.New("maximum retries exceeded")

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Response struct {
	StatusCode int
	Body       []byte
	// Err holds the I/O failure behind StatusConnectionFailed.
	Err error
}

func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "failed to parse JSON response")
	}

	return nil
}

func (r *Response) String() string {
	if r == nil {
		return "<nil>"
	}
	if r.StatusCode == StatusConnectionFailed {
		return fmt.Sprintf("connection failed: %v", r.Err)
	}

	return fmt.Sprintf("status %d: %s", r.StatusCode, r.Body)
}

type RetryError struct {
	Attempts int
	Last     *Response
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("%s after %d attempts, last response %s", ErrRetryExhausted, e.Attempts, e.Last)
}

func (e *RetryError) Unwrap() error {
	return ErrRetryExhausted
}

// NewHTTPClient returns the default Doer, instrumented with OpenTelemetry.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

type Transport struct {
	client  Doer
	scheme  string
	policy  RetryPolicy
	verbose bool
	l       *logger.Logger
}

type Option func(*Transport)

func WithScheme(scheme string) Option {
	return func(t *Transport) { t.scheme = scheme }
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(t *Transport) { t.policy = p }
}

func WithVerbose(verbose bool) Option {
	return func(t *Transport) { t.verbose = verbose }
}

// New builds a Transport. A nil client uses NewHTTPClient, a nil logger discards.
func New(client Doer, l *logger.Logger, opts ...Option) *Transport {
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	if l == nil {
		l = logger.NewNop()
	}

	t := &Transport{
		client: client,
		scheme: DefaultScheme,
		policy: DefaultRetryPolicy(),
		l:      l,
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *Transport) SetVerbose(verbose bool) {
	t.verbose = verbose
}

func (t *Transport) Verbose() bool {
	return t.verbose
}

// Get requests uri (path plus optional query) from host. Any outcome other
// than a 200 is retried per the transport's policy.
func (t *Transport) Get(ctx context.Context, host, uri string, headers http.Header) (*Response, error) {
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}

	if t.verbose {
		t.l.Info("calling", map[string]any{"host": host, "uri": uri})
	}

	policy := t.policy
	onRetry := policy.OnRetry
	policy.OnRetry = func(retry int, prev *Response, delay time.Duration) {
		t.l.Warning("previous request failed, retrying", map[string]any{
			"host":   host,
			"uri":    uri,
			"status": prev.StatusCode,
			"body":   prev.String(),
			"retry":  retry,
			"delay":  delay.String(),
		})
		if onRetry != nil {
			onRetry(retry, prev, delay)
		}
	}

	return policy.Do(ctx, func(ctx context.Context) *Response {
		return t.do(ctx, host, uri, headers)
	})
}

func (t *Transport) do(ctx context.Context, host, uri string, headers http.Header) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.scheme+"://"+host+uri, nil)
	if err != nil {
		return connectionFailed(errors.Wrap(err, "failed to create request"))
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if t.verbose {
			t.l.Warning("caught request error", map[string]any{"uri": uri, "err": err.Error()})
		}
		return connectionFailed(errors.Wrap(err, "failed to do request"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return connectionFailed(errors.Wrap(err, "failed to read response body"))
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}
}

func connectionFailed(err error) *Response {
	return &Response{StatusCode: StatusConnectionFailed, Err: err}
}
