// Package timestamp parses the date strings accepted from callers and the
// timestamps returned by api.weather.gov into comparable UTC instants.
package timestamp

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Layouts accepted by ParseParam, tried in order.
const (
	LayoutZulu     = "2006-01-02T15:04:05Z"
	LayoutDate     = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04:05"

	// LayoutResponse is the only layout upstream emits for observation timestamps.
	LayoutResponse = "2006-01-02T15:04:05+00:00"
)

var ErrFormat = errors.New("invalid timestamp format")

var paramLayouts = []string{LayoutZulu, LayoutDate, LayoutDateTime}

// ParseParam parses a caller supplied start/end value.
func ParseParam(s string) (time.Time, error) {
	for _, layout := range paramLayouts {
		if t, err := parseExact(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, errors.Wrapf(ErrFormat, "%q must have format %q | %q | %q",
		s, LayoutZulu, LayoutDate, LayoutDateTime)
}

// ParseResponse parses an upstream observation timestamp.
func ParseResponse(s string) (time.Time, error) {
	t, err := parseExact(LayoutResponse, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrFormat, "%q must have format %q", s, LayoutResponse)
	}

	return t.UTC(), nil
}

// parseExact is time.Parse without its leniency: fractional seconds the layout
// does not name are rejected.
func parseExact(layout, s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(layout) != s {
		return time.Time{}, errors.Errorf("%q does not match %q exactly", s, layout)
	}

	return t, nil
}

// ExpandStart validates s and widens it to a full zulu timestamp, a date only
// value becoming the start of that day.
func ExpandStart(s string) (string, error) {
	return expand(s, "T00:00:00Z")
}

// ExpandEnd is ExpandStart with a date only value becoming the end of that day.
func ExpandEnd(s string) (string, error) {
	return expand(s, "T23:59:59Z")
}

func expand(s, dayTime string) (string, error) {
	if _, err := ParseParam(s); err != nil {
		return "", err
	}

	switch {
	case len(s) < len(LayoutDateTime):
		return s[:len(LayoutDate)] + dayTime, nil
	case len(s) < len(LayoutZulu):
		return strings.Replace(s, " ", "T", 1) + "Z", nil
	default:
		return s, nil
	}
}
