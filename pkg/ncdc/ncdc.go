// Package ncdc is a client for the NCDC Climate Data Online v2 web services.
package ncdc

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/pkg/errors"

	"noaa-sdk/pkg/transport"
)

const (
	DefaultHost = "www.ncdc.noaa.gov"
	basePath    = "/cdo-web/api/v2/"
)

var (
	ErrMissingToken    = errors.New("missing token")
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	ErrStatus          = errors.New("unexpected status")
)

type Endpoint string

const (
	Datasets           Endpoint = "datasets"
	DataCategories     Endpoint = "datacategories"
	DataTypes          Endpoint = "datatypes"
	LocationCategories Endpoint = "locationcategories"
	Locations          Endpoint = "locations"
	Stations           Endpoint = "stations"
	Data               Endpoint = "data"
)

var endpoints = []Endpoint{Datasets, DataCategories, DataTypes, LocationCategories, Locations, Stations, Data}

type Client struct {
	token string
	host  string
	tr    *transport.Transport
}

// NewClient returns a client authenticated by token. tr should not retry:
// CDO answers errors with meaningful statuses.
func NewClient(token string, tr *transport.Transport) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	return &Client{token: token, host: DefaultHost, tr: tr}, nil
}

// Request calls an endpoint with the given filters, e.g. datasetid, startdate,
// enddate, limit or offset, and decodes the JSON result.
func (c *Client) Request(ctx context.Context, e Endpoint, params url.Values) (map[string]any, error) {
	if !slices.Contains(endpoints, e) {
		return nil, errors.Wrapf(ErrUnknownEndpoint, "%q", e)
	}

	uri := basePath + string(e)
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	headers := http.Header{}
	headers.Set("token", c.token)

	resp, err := c.tr.Get(ctx, c.host, uri, headers)
	if err != nil {
		var retryErr *transport.RetryError
		if errors.As(err, &retryErr) && retryErr.Last.StatusCode > 0 {
			return nil, errors.Wrapf(ErrStatus, "%d %s", retryErr.Last.StatusCode, http.StatusText(retryErr.Last.StatusCode))
		}
		return nil, errors.Wrap(err, "cdo request")
	}

	var out map[string]any
	if err := resp.JSON(&out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) Datasets(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, Datasets, params)
}

func (c *Client) DataCategories(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, DataCategories, params)
}

func (c *Client) DataTypes(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, DataTypes, params)
}

func (c *Client) LocationCategories(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, LocationCategories, params)
}

func (c *Client) Locations(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, Locations, params)
}

func (c *Client) Stations(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, Stations, params)
}

func (c *Client) Data(ctx context.Context, params url.Values) (map[string]any, error) {
	return c.Request(ctx, Data, params)
}
