// Package noaa is a client for the api.weather.gov REST API.
//
// Endpoint methods map one to one to upstream resources and return the
// decoded JSON document. Observations and Forecasts resolve a postal code
// to a point through a Geocoder first.
package noaa

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"noaa-sdk/pkg/logger"
	"noaa-sdk/pkg/osm"
	"noaa-sdk/pkg/transport"
)

const (
	DefaultHost      = "api.weather.gov"
	DefaultUserAgent = "Test (your@email.com)"
	DefaultAccept    = AcceptGeoJSON
)

// Document is a decoded JSON object. No schema is enforced on it.
type Document map[string]any

// Object returns the nested object under key.
func (d Document) Object(key string) (Document, bool) {
	v, ok := d[key].(map[string]any)
	return v, ok
}

// String returns the string under key.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Geocoder resolves a postal code to candidate places.
type Geocoder interface {
	Search(ctx context.Context, postalCode, country string) ([]osm.Place, error)
}

type Config struct {
	// UserAgent identifies the caller to api.weather.gov, e.g. "(myweatherapp.com, contact@myweatherapp.com)".
	UserAgent string
	Accept    Accept
	// Verbose logs every outbound path before it is requested.
	Verbose bool
	Host    string
}

type options struct {
	doer     transport.Doer
	geocoder Geocoder
	l        *logger.Logger
	policy   *transport.RetryPolicy
	scheme   string
}

type Option func(*options)

// WithHTTPClient replaces the instrumented default HTTP client.
func WithHTTPClient(d transport.Doer) Option {
	return func(o *options) { o.doer = d }
}

// WithGeocoder replaces the nominatim geocoder.
func WithGeocoder(g Geocoder) Option {
	return func(o *options) { o.geocoder = g }
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.l = l }
}

func WithRetryPolicy(p transport.RetryPolicy) Option {
	return func(o *options) { o.policy = &p }
}

func WithScheme(scheme string) Option {
	return func(o *options) { o.scheme = scheme }
}

type Client struct {
	cfg Config
	tr  *transport.Transport
	geo Geocoder
	l   *logger.Logger
}

// New validates cfg, filling in defaults for empty fields.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Accept == "" {
		cfg.Accept = DefaultAccept
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if !cfg.Accept.Valid() {
		return nil, invalidAccept(cfg.Accept)
	}

	o := options{scheme: transport.DefaultScheme}
	for _, opt := range opts {
		opt(&o)
	}
	if o.l == nil {
		o.l = logger.NewNop()
	}

	trOpts := []transport.Option{
		transport.WithScheme(o.scheme),
		transport.WithVerbose(cfg.Verbose),
	}
	if o.policy != nil {
		trOpts = append(trOpts, transport.WithRetryPolicy(*o.policy))
	}
	tr := transport.New(o.doer, o.l, trOpts...)

	geo := o.geocoder
	if geo == nil {
		geo = osm.NewClient(tr)
	}

	return &Client{
		cfg: cfg,
		tr:  tr,
		geo: geo,
		l:   o.l,
	}, nil
}

func invalidAccept(a Accept) error {
	return errors.Wrapf(ErrInvalidConfig, "invalid format %q, available formats are: %v", a, Accepts())
}

func (c *Client) UserAgent() string { return c.cfg.UserAgent }

func (c *Client) Accept() Accept { return c.cfg.Accept }

func (c *Client) Verbose() bool { return c.cfg.Verbose }

func (c *Client) SetUserAgent(userAgent string) {
	c.cfg.UserAgent = userAgent
}

func (c *Client) SetAccept(a Accept) error {
	if !a.Valid() {
		return invalidAccept(a)
	}
	c.cfg.Accept = a

	return nil
}

func (c *Client) SetVerbose(verbose bool) {
	c.cfg.Verbose = verbose
	c.tr.SetVerbose(verbose)
}

func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("User-Agent", c.cfg.UserAgent)
	h.Set("Accept", string(c.cfg.Accept))

	return h
}

// GetRaw requests uri and returns the body undecoded. A uri carrying its
// own scheme and host is sent to that host.
func (c *Client) GetRaw(ctx context.Context, uri string) ([]byte, error) {
	host, uri, err := c.split(uri)
	if err != nil {
		return nil, err
	}

	resp, err := c.tr.Get(ctx, host, uri, c.headers())
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s%s", host, uri)
	}
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, errors.Wrapf(ErrEmptyResponse, "empty body from %s%s", host, uri)
	}

	return resp.Body, nil
}

// Get requests uri and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, uri string, out any) error {
	body, err := c.GetRaw(ctx, uri)
	if err != nil {
		return err
	}

	resp := transport.Response{StatusCode: http.StatusOK, Body: body}
	if err := resp.JSON(out); err != nil {
		return errors.Wrapf(err, "decode %s", uri)
	}

	return nil
}

func (c *Client) document(ctx context.Context, r Request) (Document, error) {
	var doc Document
	if err := c.Get(ctx, r.URI(), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (c *Client) split(uri string) (host, requestURI string, err error) {
	if !strings.Contains(uri, "http://") && !strings.Contains(uri, "https://") {
		return c.cfg.Host, uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidArgument, "parse %q: %v", uri, err)
	}
	if u.Host == "" {
		return "", "", errors.Wrapf(ErrInvalidArgument, "no host in %q", uri)
	}

	return u.Host, u.RequestURI(), nil
}

func (c *Client) String() string {
	return fmt.Sprintf("noaa.Client{host: %s, accept: %s}", c.cfg.Host, c.cfg.Accept)
}
