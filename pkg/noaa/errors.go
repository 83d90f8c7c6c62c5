package noaa

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig reports a client configuration that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidArgument reports a parameter combination an endpoint rejects.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports a response missing a field needed to continue.
	ErrNotFound = errors.New("not found")
	// ErrUpstream reports an error document returned by the API.
	ErrUpstream = errors.New("upstream error")
	// ErrEmptyResponse reports a successful call with nothing in the body.
	ErrEmptyResponse = errors.New("cannot connect to weather.gov")
)
