package noaa_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noaa-sdk/pkg/noaa"
	"noaa-sdk/pkg/timestamp"
)

func TestFormatPoint(t *testing.T) {
	assert.Equal(t, "40.7128,-74.006", noaa.FormatPoint(40.71284999, -74.00601234))
	assert.Equal(t, "40.7128,-74.006", noaa.FormatPoint(40.7128, -74.0060))
	assert.Equal(t, "39,-77.5", noaa.FormatPoint(39, -77.5))
}

func TestRequest_URI_EmptyQuery(t *testing.T) {
	assert.Equal(t, "/stations", noaa.Request{Path: "/stations", Query: url.Values{}}.URI())
	assert.Equal(t, "/stations", noaa.Request{Path: "/stations"}.URI())
}

func TestPointsRequest(t *testing.T) {
	assert.Equal(t, "/points/40.7128,-74.006", noaa.PointsRequest("40.7128,-74.006", false).URI())
	assert.Equal(t, "/points/40.7128,-74.006/stations", noaa.PointsRequest("40.7128,-74.006", true).URI())
}

func TestStationsParams(t *testing.T) {
	tests := []struct {
		name string
		in   noaa.StationsParams
		want string
	}{
		{"no params", noaa.StationsParams{}, "/stations"},
		{"station id renamed", noaa.StationsParams{StationID: "PAULOSTATION"}, "/stations?id=PAULOSTATION"},
		{"state and limit", noaa.StationsParams{State: "NY", Limit: 10}, "/stations?limit=10&state=NY"},
		{
			"extra passthrough",
			noaa.StationsParams{Extra: url.Values{"cursor": {"abc"}}},
			"/stations?cursor=abc",
		},
		{
			"station_id in extra renamed",
			noaa.StationsParams{Extra: url.Values{"station_id": {"KNYC"}}},
			"/stations?id=KNYC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Request().URI()
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "station_id")
		})
	}
}

func TestObservationsParams(t *testing.T) {
	tests := []struct {
		name    string
		station string
		in      noaa.ObservationsParams
		want    string
	}{
		{"bare", "PAULOSTATION", noaa.ObservationsParams{}, "/stations/PAULOSTATION/observations"},
		{"current", "PAULOSTATION", noaa.ObservationsParams{Current: true}, "/stations/PAULOSTATION/observations/current"},
		{
			"record id",
			"PAULOSTATION",
			noaa.ObservationsParams{RecordID: "2017-01-04T18:54:00+00:00", Start: "2017-01-01"},
			"/stations/PAULOSTATION/observations/2017-01-04T18:54:00+00:00",
		},
		{
			"date only window",
			"KNYC",
			noaa.ObservationsParams{Start: "2020-01-01", End: "2020-01-02"},
			"/stations/KNYC/observations?" + url.Values{
				"start": {"2020-01-01T00:00:00Z"},
				"end":   {"2020-01-02T23:59:59Z"},
			}.Encode(),
		},
		{
			"space separated start only",
			"KNYC",
			noaa.ObservationsParams{Start: "2020-01-01 06:30:00", Limit: 5},
			"/stations/KNYC/observations?" + url.Values{
				"start": {"2020-01-01T06:30:00Z"},
				"limit": {"5"},
			}.Encode(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.in.Request(tt.station)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.URI())
		})
	}
}

func TestObservationsParams_Invalid(t *testing.T) {
	_, err := noaa.ObservationsParams{Current: true, RecordID: "x"}.Request("KNYC")
	assert.ErrorIs(t, err, noaa.ErrInvalidArgument)

	_, err = noaa.ObservationsParams{Current: true, RecordID: "x", Start: "garbage", Limit: 3}.Request("KNYC")
	assert.ErrorIs(t, err, noaa.ErrInvalidArgument)

	_, err = noaa.ObservationsParams{}.Request("")
	assert.ErrorIs(t, err, noaa.ErrInvalidArgument)

	_, err = noaa.ObservationsParams{End: "tomorrow"}.Request("KNYC")
	assert.ErrorIs(t, err, timestamp.ErrFormat)
}

func TestProductTypesParams(t *testing.T) {
	tests := []struct {
		name string
		in   noaa.ProductTypesParams
		want string
	}{
		{"nothing", noaa.ProductTypesParams{}, "/products/types"},
		{"type only", noaa.ProductTypesParams{TypeID: "AFD"}, "/products/types/AFD"},
		{"type locations", noaa.ProductTypesParams{TypeID: "AFD", Locations: true}, "/products/types/AFD/locations"},
		{
			"type and location",
			noaa.ProductTypesParams{TypeID: "AFD", Locations: true, LocationID: "OKX"},
			"/products/types/AFD/locations/OKX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.in.Request()
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.URI())
		})
	}

	_, err := noaa.ProductTypesParams{Locations: true, LocationID: "OKX"}.Request()
	require.ErrorIs(t, err, noaa.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "missing type id")
}

func TestProductLocationsParams(t *testing.T) {
	assert.Equal(t, "/products/locations", noaa.ProductLocationsParams{}.Request().URI())
	assert.Equal(t, "/products/locations/OKX/types", noaa.ProductLocationsParams{LocationID: "OKX"}.Request().URI())
}

func TestSimpleRequests(t *testing.T) {
	assert.Equal(t, "/products/test_id", noaa.ProductRequest("test_id").URI())
	assert.Equal(t, "/offices/OKX", noaa.OfficeRequest("OKX").URI())
	assert.Equal(t, "/zones/forecast/NYZ072", noaa.ZoneRequest("forecast", "NYZ072", false).URI())
	assert.Equal(t, "/zones/forecast/NYZ072/forecast", noaa.ZoneRequest("forecast", "NYZ072", true).URI())
}

func TestAlertsParams(t *testing.T) {
	active := true

	assert.Equal(t, "/alerts", noaa.AlertsParams{}.Request().URI())
	assert.Equal(t, "/alerts/urn:oid:1", noaa.AlertsParams{AlertID: "urn:oid:1", Area: "NY"}.Request().URI())
	assert.Equal(t, "/alerts?active=true", noaa.AlertsParams{Active: &active}.Request().URI())

	got := noaa.AlertsParams{
		Area:     "NY",
		Severity: "Severe",
		Limit:    50,
		Extra:    url.Values{"area": {"NJ"}, "foo": {"bar"}},
	}.Request()
	assert.Equal(t, "/alerts", got.Path)
	assert.Equal(t, url.Values{
		"area":     {"NY"},
		"severity": {"Severe"},
		"limit":    {"50"},
		"foo":      {"bar"},
	}, got.Query)
}

func TestActiveAlertsParams(t *testing.T) {
	tests := []struct {
		name string
		in   noaa.ActiveAlertsParams
		want string
	}{
		{"all", noaa.ActiveAlertsParams{}, "/alerts/active"},
		{"count wins", noaa.ActiveAlertsParams{Count: true, ZoneID: "Z", Area: "NY"}, "/alerts/active/count"},
		{"zone", noaa.ActiveAlertsParams{ZoneID: "NYZ072", Area: "NY", Region: "AT"}, "/alerts/active/zone/NYZ072"},
		{"area", noaa.ActiveAlertsParams{Area: "nyc", Region: "AT"}, "/alerts/active/area/nyc"},
		{"region", noaa.ActiveAlertsParams{Region: "AT"}, "/alerts/active/region/AT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Request().URI())
		})
	}
}
