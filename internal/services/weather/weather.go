package weather

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"noaa-sdk/internal/models"
	"noaa-sdk/pkg/logger"
	"noaa-sdk/pkg/ncdc"
	"noaa-sdk/pkg/noaa"
)

const defaultMaxRecords = 500

// ErrClimateDisabled is returned by Climate when no CDO token is configured.
var ErrClimateDisabled = errors.New("climate data is not configured")

// NOAAClient is the part of *noaa.Client the service uses.
type NOAAClient interface {
	Points(ctx context.Context, point string, stations bool) (noaa.Document, error)
	Forecasts(ctx context.Context, postalCode, country string, kind noaa.ForecastKind) ([]noaa.Document, error)
	GridForecast(ctx context.Context, postalCode, country string) (noaa.Document, error)
	Observations(ctx context.Context, postalCode, country string, q noaa.ObservationQuery) (*noaa.ObservationStream, error)
	ObservationsByLatLon(ctx context.Context, lat, lon float64, q noaa.ObservationQuery) (*noaa.ObservationStream, error)
	Stations(ctx context.Context, p noaa.StationsParams) (noaa.Document, error)
	StationObservations(ctx context.Context, stationID string, p noaa.ObservationsParams) (noaa.Document, error)
	Alerts(ctx context.Context, p noaa.AlertsParams) (noaa.Document, error)
	ActiveAlerts(ctx context.Context, p noaa.ActiveAlertsParams) (noaa.Document, error)
	Zones(ctx context.Context, zoneType, zoneID string, forecast bool) (noaa.Document, error)
	Offices(ctx context.Context, officeID string) (noaa.Document, error)
	Products(ctx context.Context, id string) (noaa.Document, error)
}

// ClimateClient is the part of *ncdc.Client the service uses.
type ClimateClient interface {
	Request(ctx context.Context, e ncdc.Endpoint, params url.Values) (map[string]any, error)
}

type Options struct {
	// MaxRecords caps the observations collected per request.
	MaxRecords int
	// Stations is the default number of nearest stations read.
	Stations int
	// Climate is optional.
	Climate ClimateClient
}

// WeatherService represents the weather service.
type WeatherService struct {
	noaa    NOAAClient
	climate ClimateClient
	opts    Options
	l       *logger.Logger
}

func NewWeatherService(c NOAAClient, l *logger.Logger, opts Options) *WeatherService {
	if opts.MaxRecords <= 0 {
		opts.MaxRecords = defaultMaxRecords
	}
	if l == nil {
		l = logger.NewNop()
	}

	return &WeatherService{
		noaa:    c,
		climate: opts.Climate,
		opts:    opts,
		l:       l,
	}
}

// ObservationsRequest locates observations either by postal code and country
// or, when HasPoint is set, by coordinates.
type ObservationsRequest struct {
	PostalCode string
	Country    string
	HasPoint   bool
	Lat, Lon   float64
	Start      string
	End        string
	// Stations overrides the service default when positive.
	Stations int
	// SkipFailedStations skips stations that fail instead of failing the request.
	SkipFailedStations bool
}

// Observations resolves the nearest stations and collects their observations.
func (s *WeatherService) Observations(ctx context.Context, req ObservationsRequest) (*models.ObservationsResponse, error) {
	q := noaa.ObservationQuery{
		Start:              req.Start,
		End:                req.End,
		Stations:           s.opts.Stations,
		SkipFailedStations: req.SkipFailedStations,
	}
	if req.Stations > 0 {
		q.Stations = req.Stations
	}

	s.l.Info("starting observations fetch", map[string]any{
		"postalCode": req.PostalCode,
		"country":    req.Country,
		"hasPoint":   req.HasPoint,
		"start":      req.Start,
		"end":        req.End,
		"stations":   q.Stations,
	})

	var (
		stream *noaa.ObservationStream
		err    error
	)
	if req.HasPoint {
		stream, err = s.noaa.ObservationsByLatLon(ctx, req.Lat, req.Lon, q)
	} else {
		stream, err = s.noaa.Observations(ctx, req.PostalCode, req.Country, q)
	}
	if err != nil {
		return nil, err
	}

	resp, err := CollectObservations(ctx, stream, s.opts.MaxRecords)
	if err != nil {
		s.l.Error(err, map[string]any{"postalCode": req.PostalCode, "country": req.Country})
		return nil, err
	}

	s.l.Info("completed observations fetch", map[string]any{
		"count":     resp.Count,
		"truncated": resp.Truncated,
	})

	return resp, nil
}

// CollectObservations drains stream into a response of at most maxRecords records.
// Truncated is set when the stream had more to give, or when the station read
// past the cap failed: the records already collected are returned either way.
func CollectObservations(ctx context.Context, stream *noaa.ObservationStream, maxRecords int) (*models.ObservationsResponse, error) {
	resp := &models.ObservationsResponse{
		Stations:     stream.StationIDs(),
		Observations: []noaa.Document{},
	}

	for len(resp.Observations) < maxRecords && stream.Next(ctx) {
		resp.Observations = append(resp.Observations, stream.Observation())
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if len(resp.Observations) == maxRecords {
		resp.Truncated = stream.Next(ctx) || stream.Err() != nil
	}

	resp.Count = len(resp.Observations)

	return resp, nil
}

func (s *WeatherService) Forecast(ctx context.Context, postalCode, country string, kind noaa.ForecastKind) (*models.ForecastResponse, error) {
	s.l.Debug("fetching forecast", map[string]any{"postalCode": postalCode, "country": country, "kind": kind})

	resp := &models.ForecastResponse{
		PostalCode: postalCode,
		Country:    country,
		Kind:       kind,
	}

	if kind == noaa.ForecastGrid {
		grid, err := s.noaa.GridForecast(ctx, postalCode, country)
		if err != nil {
			return nil, err
		}
		resp.Grid = grid

		return resp, nil
	}

	periods, err := s.noaa.Forecasts(ctx, postalCode, country, kind)
	if err != nil {
		return nil, err
	}
	resp.Periods = periods

	return resp, nil
}

func (s *WeatherService) Point(ctx context.Context, lat, lon float64, stations bool) (noaa.Document, error) {
	return s.noaa.Points(ctx, noaa.FormatPoint(lat, lon), stations)
}

func (s *WeatherService) Stations(ctx context.Context, p noaa.StationsParams) (noaa.Document, error) {
	return s.noaa.Stations(ctx, p)
}

func (s *WeatherService) StationObservations(ctx context.Context, stationID string, p noaa.ObservationsParams) (noaa.Document, error) {
	return s.noaa.StationObservations(ctx, stationID, p)
}

func (s *WeatherService) ActiveAlerts(ctx context.Context, p noaa.ActiveAlertsParams) (noaa.Document, error) {
	return s.noaa.ActiveAlerts(ctx, p)
}

func (s *WeatherService) Alert(ctx context.Context, id string) (noaa.Document, error) {
	return s.noaa.Alerts(ctx, noaa.AlertsParams{AlertID: id})
}

func (s *WeatherService) Zone(ctx context.Context, zoneType, zoneID string, forecast bool) (noaa.Document, error) {
	return s.noaa.Zones(ctx, zoneType, zoneID, forecast)
}

func (s *WeatherService) Office(ctx context.Context, officeID string) (noaa.Document, error) {
	return s.noaa.Offices(ctx, officeID)
}

func (s *WeatherService) Product(ctx context.Context, id string) (noaa.Document, error) {
	return s.noaa.Products(ctx, id)
}

// Climate queries a Climate Data Online endpoint.
func (s *WeatherService) Climate(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	if s.climate == nil {
		return nil, ErrClimateDisabled
	}

	return s.climate.Request(ctx, ncdc.Endpoint(endpoint), params)
}
