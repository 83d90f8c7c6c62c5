package noaa

import (
	"slices"
)

// Accept is a response format understood by api.weather.gov.
type Accept string

const (
	AcceptGeoJSON Accept = "application/geo+json"
	AcceptJSONLD  Accept = "application/ld+json"
	AcceptDWML    Accept = "application/vnd.noaa.dwml+xml"
	AcceptOXML    Accept = "application/vnd.noaa.obs+xml"
	AcceptCAP     Accept = "application/cap+xml"
	AcceptATOM    Accept = "application/atom+xml"
	AcceptJSON    Accept = "application/json"
)

var accepts = []Accept{
	AcceptGeoJSON,
	AcceptJSONLD,
	AcceptDWML,
	AcceptOXML,
	AcceptCAP,
	AcceptATOM,
	AcceptJSON,
}

// Accepts lists every supported format, sorted.
func Accepts() []Accept {
	out := slices.Clone(accepts)
	slices.Sort(out)

	return out
}

func (a Accept) Valid() bool {
	return slices.Contains(accepts, a)
}
