package noaa

import (
	"math"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"noaa-sdk/pkg/timestamp"
)

// Request is a resolved endpoint: a path and an optional query.
type Request struct {
	Path  string
	Query url.Values
}

// URI renders the request, dropping the query when it is empty.
func (r Request) URI() string {
	if len(r.Query) == 0 {
		return r.Path
	}

	return r.Path + "?" + r.Query.Encode()
}

// FormatPoint renders coordinates as a point path segment, rounded to 4 decimals.
func FormatPoint(lat, lon float64) string {
	return formatCoordinate(lat) + "," + formatCoordinate(lon)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func setString(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value int) {
	if value > 0 {
		q.Set(key, strconv.Itoa(value))
	}
}

// merge copies extra into q without overwriting named parameters.
func merge(q, extra url.Values) {
	for k, vs := range extra {
		if _, ok := q[k]; ok {
			continue
		}
		for _, v := range vs {
			q.Add(k, v)
		}
	}
}

// PointsRequest addresses /points/{point}, or the point's station list.
func PointsRequest(point string, stations bool) Request {
	if stations {
		return Request{Path: "/points/" + point + "/stations"}
	}

	return Request{Path: "/points/" + point}
}

type StationsParams struct {
	// StationID is sent upstream as "id".
	StationID string
	State     string
	Limit     int
	// Extra holds any other filter, passed through as is.
	Extra url.Values
}

func (p StationsParams) Request() Request {
	q := url.Values{}
	setString(q, "id", p.StationID)
	setString(q, "state", p.State)
	setInt(q, "limit", p.Limit)

	extra := url.Values{}
	for k, vs := range p.Extra {
		if k == "station_id" {
			k = "id"
		}
		extra[k] = append(extra[k], vs...)
	}
	merge(q, extra)

	return Request{Path: "/stations", Query: q}
}

type ObservationsParams struct {
	// Start and End accept "2006-01-02T15:04:05Z", "2006-01-02" or "2006-01-02 15:04:05".
	Start string
	End   string
	Limit int
	// Current and RecordID are mutually exclusive.
	Current  bool
	RecordID string
	Extra    url.Values
}

func (p ObservationsParams) Request(stationID string) (Request, error) {
	if stationID == "" {
		return Request{}, errors.Wrap(ErrInvalidArgument, "missing station id")
	}
	if p.Current && p.RecordID != "" {
		return Request{}, errors.Wrap(ErrInvalidArgument, "cannot have both current and recordId")
	}

	path := "/stations/" + stationID + "/observations"
	switch {
	case p.RecordID != "":
		return Request{Path: path + "/" + p.RecordID}, nil
	case p.Current:
		return Request{Path: path + "/current"}, nil
	}

	q := url.Values{}
	if p.Start != "" {
		start, err := timestamp.ExpandStart(p.Start)
		if err != nil {
			return Request{}, errors.Wrap(err, "start")
		}
		q.Set("start", start)
	}
	if p.End != "" {
		end, err := timestamp.ExpandEnd(p.End)
		if err != nil {
			return Request{}, errors.Wrap(err, "end")
		}
		q.Set("end", end)
	}
	setInt(q, "limit", p.Limit)
	merge(q, p.Extra)

	return Request{Path: path, Query: q}, nil
}

type ProductTypesParams struct {
	TypeID string
	// Locations lists the locations that issued products of TypeID.
	Locations  bool
	LocationID string
}

func (p ProductTypesParams) Request() (Request, error) {
	switch {
	case p.TypeID != "" && !p.Locations:
		return Request{Path: "/products/types/" + p.TypeID}, nil
	case p.Locations && p.TypeID == "":
		return Request{}, errors.Wrap(ErrInvalidArgument, "missing type id")
	case p.Locations && p.LocationID != "":
		return Request{Path: "/products/types/" + p.TypeID + "/locations/" + p.LocationID}, nil
	case p.Locations:
		return Request{Path: "/products/types/" + p.TypeID + "/locations"}, nil
	}

	return Request{Path: "/products/types"}, nil
}

type ProductLocationsParams struct {
	LocationID string
}

func (p ProductLocationsParams) Request() Request {
	if p.LocationID != "" {
		return Request{Path: "/products/locations/" + p.LocationID + "/types"}
	}

	return Request{Path: "/products/locations"}
}

func ProductRequest(id string) Request {
	return Request{Path: "/products/" + id}
}

func OfficeRequest(officeID string) Request {
	return Request{Path: "/offices/" + officeID}
}

func ZoneRequest(zoneType, zoneID string, forecast bool) Request {
	path := "/zones/" + zoneType + "/" + zoneID
	if forecast {
		path += "/forecast"
	}

	return Request{Path: path}
}

// AlertsParams filters /alerts. Empty fields are not sent.
type AlertsParams struct {
	AlertID     string
	Active      *bool
	Start       string
	End         string
	Status      string
	MessageType string
	Event       string
	Code        string
	RegionType  string
	Point       string
	Region      string
	Area        string
	Zone        string
	Urgency     string
	Severity    string
	Certainty   string
	Limit       int
	Cursor      string
	Extra       url.Values
}

func (p AlertsParams) Request() Request {
	if p.AlertID != "" {
		return Request{Path: "/alerts/" + p.AlertID}
	}

	q := url.Values{}
	if p.Active != nil {
		q.Set("active", strconv.FormatBool(*p.Active))
	}
	setString(q, "start", p.Start)
	setString(q, "end", p.End)
	setString(q, "status", p.Status)
	setString(q, "message_type", p.MessageType)
	setString(q, "event", p.Event)
	setString(q, "code", p.Code)
	setString(q, "region_type", p.RegionType)
	setString(q, "point", p.Point)
	setString(q, "region", p.Region)
	setString(q, "area", p.Area)
	setString(q, "zone", p.Zone)
	setString(q, "urgency", p.Urgency)
	setString(q, "severity", p.Severity)
	setString(q, "certainty", p.Certainty)
	setInt(q, "limit", p.Limit)
	setString(q, "cursor", p.Cursor)
	merge(q, p.Extra)

	return Request{Path: "/alerts", Query: q}
}

// ActiveAlertsParams selects one view of the active alerts. Count wins over
// everything, then ZoneID, Area and Region in that order.
type ActiveAlertsParams struct {
	Count  bool
	ZoneID string
	Area   string
	Region string
}

func (p ActiveAlertsParams) Request() Request {
	switch {
	case p.Count:
		return Request{Path: "/alerts/active/count"}
	case p.ZoneID != "":
		return Request{Path: "/alerts/active/zone/" + p.ZoneID}
	case p.Area != "":
		return Request{Path: "/alerts/active/area/" + p.Area}
	case p.Region != "":
		return Request{Path: "/alerts/active/region/" + p.Region}
	}

	return Request{Path: "/alerts/active"}
}
