package http

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "noaa-sdk/docs"
	"noaa-sdk/internal/models"
	"noaa-sdk/internal/services/weather"
	"noaa-sdk/pkg/logger"
	"noaa-sdk/pkg/noaa"
)

// Service is what the handlers need from *weather.WeatherService.
type Service interface {
	Point(ctx context.Context, lat, lon float64, stations bool) (noaa.Document, error)
	Forecast(ctx context.Context, postalCode, country string, kind noaa.ForecastKind) (*models.ForecastResponse, error)
	Observations(ctx context.Context, req weather.ObservationsRequest) (*models.ObservationsResponse, error)
	Stations(ctx context.Context, p noaa.StationsParams) (noaa.Document, error)
	StationObservations(ctx context.Context, stationID string, p noaa.ObservationsParams) (noaa.Document, error)
	ActiveAlerts(ctx context.Context, p noaa.ActiveAlertsParams) (noaa.Document, error)
	Alert(ctx context.Context, id string) (noaa.Document, error)
	Zone(ctx context.Context, zoneType, zoneID string, forecast bool) (noaa.Document, error)
	Office(ctx context.Context, officeID string) (noaa.Document, error)
	Product(ctx context.Context, id string) (noaa.Document, error)
	Climate(ctx context.Context, endpoint string, params url.Values) (map[string]any, error)
}

type routes struct {
	service  Service
	l        *logger.Logger
	validate *validator.Validate
}

func NewRouter(
	app *fiber.App,
	service Service,
	l *logger.Logger,
) {
	r := &routes{
		service:  service,
		l:        l,
		validate: newValidator(),
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes
	v1 := app.Group("/api/v1")
	v1.Get("/points/:point", r.handlePoint)
	v1.Get("/forecasts", r.handleForecast)
	v1.Get("/observations", r.handleObservations)
	v1.Get("/stations", r.handleStations)
	v1.Get("/stations/:id/observations", r.handleStationObservations)
	v1.Get("/alerts/active", r.handleActiveAlerts)
	v1.Get("/alerts/:id", r.handleAlert)
	v1.Get("/zones/:type/:id", r.handleZone)
	v1.Get("/offices/:id", r.handleOffice)
	v1.Get("/products/:id", r.handleProduct)
	v1.Get("/climate/:endpoint", r.handleClimate)
}

// newValidator reports fields by their query parameter name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("query"); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})

	return v
}

func validationMessage(err error) string {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required", "required_without", "required_with":
			msgs = append(msgs, "missing parameter: "+fe.Field())
		case "min", "max", "len", "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, "invalid parameter: "+fe.Field())
		}
	}

	return strings.Join(msgs, "; ")
}
