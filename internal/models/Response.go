package models

import "noaa-sdk/pkg/noaa"

type ErrorResponse struct {
	Error string `json:"error" example:"missing postal code"`
}

// ObservationsResponse carries the observations collected from the stations
// nearest to a location, nearest station first.
type ObservationsResponse struct {
	Stations     []string        `json:"stations" example:"KNYC,KLGA"`
	Count        int             `json:"count" example:"2"`
	Truncated    bool            `json:"truncated" example:"false"`
	Observations []noaa.Document `json:"observations"`
}

type ForecastResponse struct {
	PostalCode string            `json:"postal_code" example:"10007"`
	Country    string            `json:"country" example:"US"`
	Kind       noaa.ForecastKind `json:"kind" example:"forecast"`
	// Periods is set for the daily and hourly forecasts, Grid for the raw grid data.
	Periods []noaa.Document `json:"periods,omitempty"`
	Grid    noaa.Document   `json:"grid,omitempty"`
}
