package noaa

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// ForecastKind names the forecast link followed from a point.
type ForecastKind string

const (
	ForecastDaily  ForecastKind = "forecast"
	ForecastHourly ForecastKind = "forecastHourly"
	ForecastGrid   ForecastKind = "forecastGridData"
)

func (k ForecastKind) Valid() bool {
	switch k {
	case ForecastDaily, ForecastHourly, ForecastGrid:
		return true
	}

	return false
}

// PointsForecast looks up the point and follows its forecast link of the given kind.
func (c *Client) PointsForecast(ctx context.Context, lat, lon float64, kind ForecastKind) (Document, error) {
	if !kind.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown forecast kind %q", kind)
	}

	point, err := c.Points(ctx, FormatPoint(lat, lon), false)
	if err != nil {
		return nil, err
	}

	props, ok := point.Object("properties")
	if !ok {
		return nil, errors.Wrap(ErrNotFound, "point has no properties")
	}
	link, ok := props.String(string(kind))
	if !ok || link == "" {
		return nil, errors.Wrapf(ErrNotFound, "point has no %s link", kind)
	}

	var doc Document
	if err := c.Get(ctx, link, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Forecasts returns the forecast periods for a postal code.
func (c *Client) Forecasts(ctx context.Context, postalCode, country string, kind ForecastKind) ([]Document, error) {
	if kind == ForecastGrid {
		return nil, errors.Wrap(ErrInvalidArgument, "grid data has no periods, use GridForecast")
	}

	props, err := c.forecastProperties(ctx, postalCode, country, kind)
	if err != nil {
		return nil, err
	}

	raw, ok := props["periods"].([]any)
	if !ok {
		return nil, errors.Wrap(ErrNotFound, `"periods" attribute not found`)
	}

	periods := make([]Document, 0, len(raw))
	for _, p := range raw {
		if period, ok := p.(map[string]any); ok {
			periods = append(periods, period)
		}
	}

	return periods, nil
}

// GridForecast returns the raw gridded forecast properties for a postal code.
func (c *Client) GridForecast(ctx context.Context, postalCode, country string) (Document, error) {
	return c.forecastProperties(ctx, postalCode, country, ForecastGrid)
}

func (c *Client) forecastProperties(ctx context.Context, postalCode, country string, kind ForecastKind) (Document, error) {
	lat, lon, err := c.geocode(ctx, postalCode, country)
	if err != nil {
		return nil, err
	}

	doc, err := c.PointsForecast(ctx, lat, lon, kind)
	if err != nil {
		return nil, err
	}

	if status, ok := doc["status"].(float64); ok && int(status) == http.StatusServiceUnavailable {
		if detail, ok := doc.String("detail"); ok {
			return nil, errors.Wrapf(ErrUpstream, "status %d: %s", int(status), detail)
		}
	}

	props, ok := doc.Object("properties")
	if !ok {
		return nil, errors.Wrap(ErrNotFound, `"properties" attribute not found`)
	}

	return props, nil
}
