package report

import "errors"

var (
	// ErrInvalidRequest marks requests the service cannot interpret, such as an unknown activity type.
	ErrInvalidRequest = errors.New("invalid report request")
	// ErrNotFound marks requests that matched no renderable records.
	ErrNotFound = errors.New("no matching report data")
	// ErrUpstreamLookup marks failed department or directory lookups.
	ErrUpstreamLookup = errors.New("upstream lookup failed")
	// ErrRenderFailure marks failures while laying out or styling an output.
	ErrRenderFailure = errors.New("report rendering failed")
)
