package osm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noaa-sdk/pkg/transport"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tr := transport.New(server.Client(), nil,
		transport.WithScheme("http"),
		transport.WithRetryPolicy(transport.RetryPolicy{}),
	)

	return NewClient(tr).WithHost(strings.TrimPrefix(server.URL, "http://"))
}

func TestClient_LatLon(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		got = r.URL.Query()
		_, _ = w.Write([]byte(`[{"lat":"56.34","lon":"12.78","display_name":"Queens"}]`))
	})

	lat, lon, err := c.LatLon(context.Background(), "11365", "US")
	require.NoError(t, err)
	assert.Equal(t, 56.34, lat)
	assert.Equal(t, 12.78, lon)
	assert.Equal(t, url.Values{"postalcode": {"11365"}, "country": {"US"}, "format": {"json"}}, got)
}

func TestClient_LatLon_Empty(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, _, err := c.LatLon(context.Background(), "11365", "US")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_LatLon_MissingCoordinates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"display_name":"nowhere"}]`))
	})

	_, _, err := c.LatLon(context.Background(), "00000", "US")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Reverse(t *testing.T) {
	var got url.Values
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		got = r.URL.Query()
		_, _ = w.Write([]byte(`{"address":{"postcode":"11375","country_code":"us"}}`))
	})

	postcode, country, err := c.Reverse(context.Background(), 23.22, 33.33)
	require.NoError(t, err)
	assert.Equal(t, "11375", postcode)
	assert.Equal(t, "us", country)
	assert.Equal(t, url.Values{
		"lat":            {"23.22"},
		"lon":            {"33.33"},
		"addressdetails": {"1"},
		"format":         {"json"},
	}, got)
}

func TestClient_Reverse_MissingAddress(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty document", `{}`},
		{"no postcode", `{"address":{"country_code":"us"}}`},
		{"no country code", `{"address":{"postcode":"11375"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, _, err := c.Reverse(context.Background(), 23.22, 33.33)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClient_UpstreamFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "11365", "US")
	assert.ErrorIs(t, err, transport.ErrRetryExhausted)
}

type stubSearcher struct {
	places []Place
	err    error
}

func (s stubSearcher) Search(context.Context, string, string) ([]Place, error) {
	return s.places, s.err
}

func TestLatLon_AnySearcher(t *testing.T) {
	lat, lon, err := LatLon(context.Background(), stubSearcher{places: []Place{
		{Lat: "40.7128", Lon: "-74.006"},
		{Lat: "0", Lon: "0"},
	}}, "10007", "US")
	require.NoError(t, err)
	assert.Equal(t, 40.7128, lat)
	assert.Equal(t, -74.006, lon)
}

func TestLatLon_UnusableCoordinates(t *testing.T) {
	_, _, err := LatLon(context.Background(), stubSearcher{places: []Place{{Lat: "north", Lon: "-74.006"}}}, "10007", "US")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLatLon_SearchError(t *testing.T) {
	boom := errors.New("nominatim down")

	_, _, err := LatLon(context.Background(), stubSearcher{err: boom}, "10007", "US")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}
