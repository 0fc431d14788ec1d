package errors

import (
	"errors"
)

var (
	// ErrAllocation is returned whenever a request-scoped arena can't fit
	// more data. It is fatal for the current response only.
	ErrAllocation = errors.New("arena exhausted")

	ErrBadLocation = errors.New("location prefix must start with a slash")
	ErrBadFlag     = errors.New(`flag value must be either "on" or "off"`)
	ErrNoUpstream  = errors.New("upstream is not specified")
)
