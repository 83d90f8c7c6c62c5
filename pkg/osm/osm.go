// Package osm geocodes postal codes through the OpenStreetMap nominatim API.
package osm

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"noaa-sdk/pkg/transport"
)

const (
	DefaultHost      = "nominatim.openstreetmap.org"
	DefaultUserAgent = "noaa-sdk (https://github.com/paulokuong/noaa)"
)

var ErrNotFound = errors.New("no geocoding result")

// Place is one nominatim search hit. Coordinates come back as strings.
type Place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	PlaceID     int64  `json:"place_id"`
}

// Coordinates parses the place's latitude and longitude.
func (p Place) Coordinates() (lat, lon float64, err error) {
	if p.Lat == "" || p.Lon == "" {
		return 0, 0, errors.Wrap(ErrNotFound, "place has no lat/lon")
	}
	if lat, err = strconv.ParseFloat(p.Lat, 64); err != nil {
		return 0, 0, errors.Wrapf(err, "parse lat %q", p.Lat)
	}
	if lon, err = strconv.ParseFloat(p.Lon, 64); err != nil {
		return 0, 0, errors.Wrapf(err, "parse lon %q", p.Lon)
	}

	return lat, lon, nil
}

type Address struct {
	Postcode    string `json:"postcode"`
	CountryCode string `json:"country_code"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
}

type Client struct {
	host      string
	userAgent string
	tr        *transport.Transport
}

// NewClient returns a nominatim client sending requests through tr.
func NewClient(tr *transport.Transport) *Client {
	return &Client{
		host:      DefaultHost,
		userAgent: DefaultUserAgent,
		tr:        tr,
	}
}

// WithHost points the client at another nominatim deployment.
func (c *Client) WithHost(host string) *Client {
	c.host = host
	return c
}

// Search returns the places matching a postal code in a country.
func (c *Client) Search(ctx context.Context, postalCode, country string) ([]Place, error) {
	q := url.Values{}
	q.Set("postalcode", postalCode)
	q.Set("country", country)
	q.Set("format", "json")

	var places []Place
	if err := c.get(ctx, "/search?"+q.Encode(), &places); err != nil {
		return nil, err
	}

	return places, nil
}

// Searcher finds places by postal code. *Client is one.
type Searcher interface {
	Search(ctx context.Context, postalCode, country string) ([]Place, error)
}

// LatLon returns the coordinates of the first place s finds for a postal code.
// No place, or a place without usable coordinates, is ErrNotFound.
func LatLon(ctx context.Context, s Searcher, postalCode, country string) (float64, float64, error) {
	places, err := s.Search(ctx, postalCode, country)
	if err != nil {
		return 0, 0, err
	}
	if len(places) == 0 {
		return 0, 0, errors.Wrapf(ErrNotFound, "no location for %s %s", postalCode, country)
	}

	lat, lon, err := places[0].Coordinates()
	if err != nil {
		return 0, 0, errors.Wrapf(ErrNotFound, "no coordinates for %s %s: %v", postalCode, country, err)
	}

	return lat, lon, nil
}

// LatLon returns the coordinates of the first place matching a postal code.
func (c *Client) LatLon(ctx context.Context, postalCode, country string) (float64, float64, error) {
	return LatLon(ctx, c, postalCode, country)
}

// Reverse returns the postal code and country code of a point.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (postcode, countryCode string, err error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("addressdetails", "1")
	q.Set("format", "json")

	var res struct {
		Address *Address `json:"address"`
	}
	if err := c.get(ctx, "/reverse?"+q.Encode(), &res); err != nil {
		return "", "", err
	}

	if res.Address == nil || res.Address.CountryCode == "" || res.Address.Postcode == "" {
		return "", "", errors.Wrapf(ErrNotFound, "no address from %s for %v,%v", c.host, lat, lon)
	}

	return res.Address.Postcode, res.Address.CountryCode, nil
}

func (c *Client) get(ctx context.Context, uri string, out any) error {
	headers := http.Header{}
	headers.Set("User-Agent", c.userAgent)
	headers.Set("Accept", "application/json")

	resp, err := c.tr.Get(ctx, c.host, uri, headers)
	if err != nil {
		return errors.Wrap(err, "nominatim request")
	}

	return resp.JSON(out)
}
