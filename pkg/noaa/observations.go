package noaa

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"noaa-sdk/pkg/osm"
	"noaa-sdk/pkg/timestamp"
)

// ObservationQuery bounds an observation lookup around a point.
type ObservationQuery struct {
	// Start and End accept the same formats as ObservationsParams and are inclusive.
	Start string
	End   string
	// Stations caps how many stations are read, nearest first. Zero or less reads them all.
	Stations int
	// SkipFailedStations logs and skips a station whose observations cannot be
	// fetched instead of ending the stream with its error.
	SkipFailedStations bool
}

// ObservationStream yields observation properties station by station. Each
// station is fetched only once the previous one has been consumed. A stream
// cannot be rewound.
type ObservationStream struct {
	c        *Client
	stations []string
	params   ObservationsParams
	from, to time.Time
	limit    int
	skip     bool

	next  int
	batch []Document
	cur   Document
	err   error
}

// Next advances to the next observation, fetching the next station when the
// current one is drained. It returns false at the end or on error.
func (s *ObservationStream) Next(ctx context.Context) bool {
	if s.err != nil {
		return false
	}

	for {
		for len(s.batch) > 0 {
			rec := s.batch[0]
			s.batch = s.batch[1:]

			ok, err := s.inWindow(rec)
			if err != nil {
				s.fail(err)
				return false
			}
			if ok {
				s.cur = rec
				return true
			}
		}

		if !s.fetch(ctx) {
			return false
		}
	}
}

// Observation returns the properties of the current observation.
func (s *ObservationStream) Observation() Document {
	return s.cur
}

func (s *ObservationStream) Err() error {
	return s.err
}

// StationIDs returns the stations the stream reads from, in order.
func (s *ObservationStream) StationIDs() []string {
	ids := make([]string, 0, len(s.stations))
	for _, st := range s.stations {
		ids = append(ids, stationID(st))
	}

	return ids
}

func (s *ObservationStream) fail(err error) {
	s.err = err
	s.cur = nil
	s.batch = nil
}

func (s *ObservationStream) exhausted() bool {
	return s.next >= len(s.stations) || (s.limit > 0 && s.next >= s.limit)
}

// fetch loads the next station's batch, reporting whether there is one.
func (s *ObservationStream) fetch(ctx context.Context) bool {
	for !s.exhausted() {
		id := stationID(s.stations[s.next])
		s.next++

		batch, err := s.c.stationObservations(ctx, id, s.params)
		if err == nil {
			s.batch = batch
			return true
		}
		if !s.skip || ctx.Err() != nil {
			s.fail(errors.Wrapf(err, "station %s", id))
			return false
		}

		s.c.l.Warning("skipping station", map[string]any{"station": id, "err": err.Error()})
	}

	s.cur = nil
	return false
}

func (s *ObservationStream) inWindow(rec Document) (bool, error) {
	if s.from.IsZero() && s.to.IsZero() {
		return true, nil
	}

	raw, _ := rec.String("timestamp")
	ts, err := timestamp.ParseResponse(raw)
	if err != nil {
		return false, errors.Wrap(err, "observation timestamp")
	}

	if !s.from.IsZero() && ts.Before(s.from) {
		return false, nil
	}
	if !s.to.IsZero() && ts.After(s.to) {
		return false, nil
	}

	return true, nil
}

func stationID(link string) string {
	link = strings.TrimRight(link, "/")
	return link[strings.LastIndex(link, "/")+1:]
}

// Observations streams the observations of the stations nearest to a postal code.
func (c *Client) Observations(ctx context.Context, postalCode, country string, q ObservationQuery) (*ObservationStream, error) {
	lat, lon, err := c.geocode(ctx, postalCode, country)
	if err != nil {
		return nil, err
	}

	return c.ObservationsByLatLon(ctx, lat, lon, q)
}

// ObservationsByPostalCodeCountry streams observations near a postal code.
//
// Deprecated: use Observations.
func (c *Client) ObservationsByPostalCodeCountry(ctx context.Context, postalCode, country string, q ObservationQuery) (*ObservationStream, error) {
	return c.Observations(ctx, postalCode, country, q)
}

// ObservationsByLatLon streams the observations of the stations nearest to a
// point. The point and its station list are resolved before it returns.
func (c *Client) ObservationsByLatLon(ctx context.Context, lat, lon float64, q ObservationQuery) (*ObservationStream, error) {
	s := &ObservationStream{
		c:     c,
		limit: q.Stations,
		skip:  q.SkipFailedStations,
	}

	if q.Start != "" {
		start, err := timestamp.ExpandStart(q.Start)
		if err != nil {
			return nil, errors.Wrap(err, "start")
		}
		s.params.Start = start
		s.from, _ = timestamp.ParseParam(start)
	}
	if q.End != "" {
		end, err := timestamp.ExpandEnd(q.End)
		if err != nil {
			return nil, errors.Wrap(err, "end")
		}
		s.params.End = end
		s.to, _ = timestamp.ParseParam(end)
	}

	stations, err := c.observationStations(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	s.stations = stations

	return s, nil
}

func (c *Client) observationStations(ctx context.Context, lat, lon float64) ([]string, error) {
	point, err := c.Points(ctx, FormatPoint(lat, lon), false)
	if err != nil {
		return nil, err
	}

	props, _ := point.Object("properties")
	link, ok := props.String("observationStations")
	if !ok || link == "" {
		return nil, errors.Wrap(ErrNotFound, "no observation stations found")
	}

	var list struct {
		ObservationStations *[]string `json:"observationStations"`
	}
	if err := c.Get(ctx, link, &list); err != nil {
		return nil, err
	}
	if list.ObservationStations == nil {
		return nil, errors.Wrap(ErrNotFound, "station list has no observationStations")
	}

	return *list.ObservationStations, nil
}

func (c *Client) stationObservations(ctx context.Context, id string, p ObservationsParams) ([]Document, error) {
	r, err := p.Request(id)
	if err != nil {
		return nil, err
	}

	var collection struct {
		Features *[]struct {
			Properties Document `json:"properties"`
		} `json:"features"`
	}
	if err := c.Get(ctx, r.URI(), &collection); err != nil {
		return nil, err
	}
	if collection.Features == nil {
		return nil, errors.Wrap(ErrNotFound, "observations have no features")
	}

	out := make([]Document, 0, len(*collection.Features))
	for _, f := range *collection.Features {
		if f.Properties != nil {
			out = append(out, f.Properties)
		}
	}

	return out, nil
}

func (c *Client) geocode(ctx context.Context, postalCode, country string) (float64, float64, error) {
	lat, lon, err := osm.LatLon(ctx, c.geo, postalCode, country)
	if errors.Is(err, osm.ErrNotFound) {
		return 0, 0, errors.Wrap(ErrNotFound, err.Error())
	}
	if err != nil {
		return 0, 0, errors.Wrap(err, "geocode")
	}

	return lat, lon, nil
}
