package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"noaa-sdk/internal/models"
	"noaa-sdk/internal/services/weather"
	"noaa-sdk/pkg/ncdc"
	"noaa-sdk/pkg/noaa"
	"noaa-sdk/pkg/osm"
	"noaa-sdk/pkg/timestamp"
	"noaa-sdk/pkg/transport"
)

const defaultCountry = "US"

type pointQuery struct {
	Lat float64 `validate:"min=-90,max=90"`
	Lon float64 `validate:"min=-180,max=180"`
}

type forecastQuery struct {
	PostalCode string `query:"postal_code" validate:"required"`
	Country    string `query:"country" validate:"omitempty,len=2"`
	Kind       string `query:"kind" validate:"omitempty,oneof=forecast forecastHourly forecastGridData"`
}

type observationsQuery struct {
	PostalCode string   `query:"postal_code" validate:"required_without=Lat"`
	Country    string   `query:"country" validate:"omitempty,len=2"`
	Lat        *float64 `query:"lat" validate:"required_with=Lon,omitempty,min=-90,max=90"`
	Lon        *float64 `query:"lon" validate:"required_with=Lat,omitempty,min=-180,max=180"`
	Start      string   `query:"start"`
	End        string   `query:"end"`
	Stations   int      `query:"stations" validate:"min=0"`
	SkipFailed bool     `query:"skip_failed"`
}

type stationsQuery struct {
	ID    string `query:"id"`
	State string `query:"state" validate:"omitempty,len=2"`
	Limit int    `query:"limit" validate:"min=0,max=500"`
}

type stationObservationsQuery struct {
	Start    string `query:"start"`
	End      string `query:"end"`
	Limit    int    `query:"limit" validate:"min=0"`
	Current  bool   `query:"current"`
	RecordID string `query:"record_id"`
}

type activeAlertsQuery struct {
	Count  bool   `query:"count"`
	Zone   string `query:"zone"`
	Area   string `query:"area"`
	Region string `query:"region"`
}

// GetPoint godoc
// @Summary Get point metadata
// @Description Returns the api.weather.gov metadata of a point, or the observation stations nearest to it
// @Tags Points
// @Produce json
// @Param point path string true "Latitude and longitude separated by a comma" example(40.7128,-74.006)
// @Param stations query boolean false "Return the nearest stations instead"
// @Success 200 {object} map[string]any
// @Failure 400 {object} models.ErrorResponse "Invalid point"
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/points/{point} [get]
func (r *routes) handlePoint(c *fiber.Ctx) error {
	latRaw, lonRaw, ok := strings.Cut(c.Params("point"), ",")
	if !ok {
		return r.badRequest(c, "point must be lat,lon")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return r.badRequest(c, "invalid latitude format")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
	if err != nil {
		return r.badRequest(c, "invalid longitude format")
	}
	if err := r.validate.Struct(pointQuery{Lat: lat, Lon: lon}); err != nil {
		return r.badRequest(c, validationMessage(err))
	}

	doc, err := r.service.Point(c.UserContext(), lat, lon, c.QueryBool("stations"))
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetForecast godoc
// @Summary Get forecast for a postal code
// @Description Geocodes the postal code and follows the point's forecast link
// @Tags Forecasts
// @Produce json
// @Param postal_code query string true "Postal code" example(10007)
// @Param country query string false "ISO 3166-1 alpha-2 country code, default US" example(US)
// @Param kind query string false "forecast, forecastHourly or forecastGridData" default(forecast)
// @Success 200 {object} models.ForecastResponse
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 404 {object} models.ErrorResponse "Postal code or forecast not found"
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/forecasts [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	var q forecastQuery
	if err := r.parseQuery(c, &q); err != nil {
		return r.badRequest(c, err.Error())
	}

	kind := noaa.ForecastDaily
	if q.Kind != "" {
		kind = noaa.ForecastKind(q.Kind)
	}

	resp, err := r.service.Forecast(c.UserContext(), q.PostalCode, country(q.Country), kind)
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(resp)
}

// GetObservations godoc
// @Summary Get observations near a location
// @Description Collects the observations of the stations nearest to a postal code or a point, nearest station first
// @Tags Observations
// @Produce json
// @Param postal_code query string false "Postal code, required without lat and lon" example(10007)
// @Param country query string false "ISO 3166-1 alpha-2 country code, default US" example(US)
// @Param lat query number false "Latitude (-90 to 90)" minimum(-90) maximum(90)
// @Param lon query number false "Longitude (-180 to 180)" minimum(-180) maximum(180)
// @Param start query string false "Inclusive start, 2006-01-02, 2006-01-02 15:04:05 or 2006-01-02T15:04:05Z"
// @Param end query string false "Inclusive end, same formats as start"
// @Param stations query integer false "Number of nearest stations read"
// @Param skip_failed query boolean false "Skip stations that fail"
// @Success 200 {object} models.ObservationsResponse
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 404 {object} models.ErrorResponse "Location or stations not found"
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/observations [get]
func (r *routes) handleObservations(c *fiber.Ctx) error {
	var q observationsQuery
	if err := r.parseQuery(c, &q); err != nil {
		return r.badRequest(c, err.Error())
	}

	req := weather.ObservationsRequest{
		PostalCode:         q.PostalCode,
		Country:            country(q.Country),
		Start:              q.Start,
		End:                q.End,
		Stations:           q.Stations,
		SkipFailedStations: q.SkipFailed,
	}
	if q.Lat != nil && q.Lon != nil {
		req.HasPoint = true
		req.Lat, req.Lon = *q.Lat, *q.Lon
	}

	resp, err := r.service.Observations(c.UserContext(), req)
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(resp)
}

// GetStations godoc
// @Summary List observation stations
// @Tags Stations
// @Produce json
// @Param id query string false "Station id"
// @Param state query string false "Two letter state code"
// @Param limit query integer false "Maximum stations returned" maximum(500)
// @Success 200 {object} map[string]any
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/stations [get]
func (r *routes) handleStations(c *fiber.Ctx) error {
	var q stationsQuery
	if err := r.parseQuery(c, &q); err != nil {
		return r.badRequest(c, err.Error())
	}

	doc, err := r.service.Stations(c.UserContext(), noaa.StationsParams{
		StationID: q.ID,
		State:     q.State,
		Limit:     q.Limit,
	})
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetStationObservations godoc
// @Summary Get the observations of one station
// @Tags Stations
// @Produce json
// @Param id path string true "Station id" example(KNYC)
// @Param start query string false "Start of the window"
// @Param end query string false "End of the window"
// @Param limit query integer false "Maximum observations returned"
// @Param current query boolean false "Latest observation only"
// @Param record_id query string false "A single observation, exclusive with current"
// @Success 200 {object} map[string]any
// @Failure 400 {object} models.ErrorResponse "Invalid parameters"
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/stations/{id}/observations [get]
func (r *routes) handleStationObservations(c *fiber.Ctx) error {
	var q stationObservationsQuery
	if err := r.parseQuery(c, &q); err != nil {
		return r.badRequest(c, err.Error())
	}

	doc, err := r.service.StationObservations(c.UserContext(), c.Params("id"), noaa.ObservationsParams{
		Start:    q.Start,
		End:      q.End,
		Limit:    q.Limit,
		Current:  q.Current,
		RecordID: q.RecordID,
	})
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetActiveAlerts godoc
// @Summary Get active alerts
// @Description count wins over zone, then area, then region
// @Tags Alerts
// @Produce json
// @Param count query boolean false "Only the active alert counts"
// @Param zone query string false "Zone id"
// @Param area query string false "State or marine area"
// @Param region query string false "Marine region"
// @Success 200 {object} map[string]any
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/alerts/active [get]
func (r *routes) handleActiveAlerts(c *fiber.Ctx) error {
	var q activeAlertsQuery
	if err := r.parseQuery(c, &q); err != nil {
		return r.badRequest(c, err.Error())
	}

	doc, err := r.service.ActiveAlerts(c.UserContext(), noaa.ActiveAlertsParams{
		Count:  q.Count,
		ZoneID: q.Zone,
		Area:   q.Area,
		Region: q.Region,
	})
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetAlert godoc
// @Summary Get one alert
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert id"
// @Success 200 {object} map[string]any
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/alerts/{id} [get]
func (r *routes) handleAlert(c *fiber.Ctx) error {
	doc, err := r.service.Alert(c.UserContext(), c.Params("id"))
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetZone godoc
// @Summary Get a zone or its forecast
// @Tags Zones
// @Produce json
// @Param type path string true "Zone type" example(forecast)
// @Param id path string true "Zone id" example(NYZ072)
// @Param forecast query boolean false "Return the zone forecast"
// @Success 200 {object} map[string]any
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/zones/{type}/{id} [get]
func (r *routes) handleZone(c *fiber.Ctx) error {
	doc, err := r.service.Zone(c.UserContext(), c.Params("type"), c.Params("id"), c.QueryBool("forecast"))
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetOffice godoc
// @Summary Get a forecast office
// @Tags Offices
// @Produce json
// @Param id path string true "Office id" example(OKX)
// @Success 200 {object} map[string]any
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/offices/{id} [get]
func (r *routes) handleOffice(c *fiber.Ctx) error {
	doc, err := r.service.Office(c.UserContext(), c.Params("id"))
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetProduct godoc
// @Summary Get a text product
// @Tags Products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} map[string]any
// @Failure 502 {object} models.ErrorResponse "api.weather.gov failed"
// @Router /api/v1/products/{id} [get]
func (r *routes) handleProduct(c *fiber.Ctx) error {
	doc, err := r.service.Product(c.UserContext(), c.Params("id"))
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(doc)
}

// GetClimate godoc
// @Summary Query Climate Data Online
// @Description Query parameters are passed through to the CDO endpoint
// @Tags Climate
// @Produce json
// @Param endpoint path string true "datasets, datacategories, datatypes, locationcategories, locations, stations or data"
// @Success 200 {object} map[string]any
// @Failure 400 {object} models.ErrorResponse "Unknown endpoint"
// @Failure 502 {object} models.ErrorResponse "CDO failed"
// @Failure 503 {object} models.ErrorResponse "No CDO token configured"
// @Router /api/v1/climate/{endpoint} [get]
func (r *routes) handleClimate(c *fiber.Ctx) error {
	params := url.Values{}
	for k, v := range c.Queries() {
		params.Set(k, v)
	}

	out, err := r.service.Climate(c.UserContext(), c.Params("endpoint"), params)
	if err != nil {
		return r.fail(c, err)
	}

	return c.JSON(out)
}

func (r *routes) parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errors.Wrap(err, "invalid query")
	}
	if err := r.validate.Struct(out); err != nil {
		return errors.New(validationMessage(err))
	}

	return nil
}

func (r *routes) badRequest(c *fiber.Ctx, msg string) error {
	r.l.Warning("bad request", map[string]any{"path": c.Path(), "error": msg})

	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: msg})
}

func (r *routes) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		r.l.Error(err, map[string]any{"path": c.Path(), "status": status})
	} else {
		r.l.Warning("request failed", map[string]any{"path": c.Path(), "status": status, "error": err.Error()})
	}

	return c.Status(status).JSON(models.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, noaa.ErrInvalidArgument),
		errors.Is(err, timestamp.ErrFormat),
		errors.Is(err, ncdc.ErrUnknownEndpoint):
		return fiber.StatusBadRequest
	case errors.Is(err, noaa.ErrNotFound), errors.Is(err, osm.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, weather.ErrClimateDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, transport.ErrRetryExhausted),
		errors.Is(err, noaa.ErrUpstream),
		errors.Is(err, noaa.ErrEmptyResponse),
		errors.Is(err, ncdc.ErrStatus):
		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}

func country(c string) string {
	if c == "" {
		return defaultCountry
	}

	return strings.ToUpper(c)
}
