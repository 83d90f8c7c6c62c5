package noaa

import (
	"context"
)

// Points returns the metadata of a point ("lat,lon"), or the stations nearest
// to it ordered by distance.
func (c *Client) Points(ctx context.Context, point string, stations bool) (Document, error) {
	return c.document(ctx, PointsRequest(point, stations))
}

func (c *Client) Stations(ctx context.Context, p StationsParams) (Document, error) {
	return c.document(ctx, p.Request())
}

// StationObservations returns the observation collection of a station, or a
// single observation when p selects Current or a RecordID.
func (c *Client) StationObservations(ctx context.Context, stationID string, p ObservationsParams) (Document, error) {
	r, err := p.Request(stationID)
	if err != nil {
		return nil, err
	}

	return c.document(ctx, r)
}

func (c *Client) Products(ctx context.Context, id string) (Document, error) {
	return c.document(ctx, ProductRequest(id))
}

func (c *Client) ProductTypes(ctx context.Context, p ProductTypesParams) (Document, error) {
	r, err := p.Request()
	if err != nil {
		return nil, err
	}

	return c.document(ctx, r)
}

func (c *Client) ProductLocations(ctx context.Context, p ProductLocationsParams) (Document, error) {
	return c.document(ctx, p.Request())
}

func (c *Client) Offices(ctx context.Context, officeID string) (Document, error) {
	return c.document(ctx, OfficeRequest(officeID))
}

func (c *Client) Zones(ctx context.Context, zoneType, zoneID string, forecast bool) (Document, error) {
	return c.document(ctx, ZoneRequest(zoneType, zoneID, forecast))
}

func (c *Client) Alerts(ctx context.Context, p AlertsParams) (Document, error) {
	return c.document(ctx, p.Request())
}

func (c *Client) ActiveAlerts(ctx context.Context, p ActiveAlertsParams) (Document, error) {
	return c.document(ctx, p.Request())
}
