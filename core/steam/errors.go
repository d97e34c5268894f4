package steam

import "errors"

var (
	// ErrNotFound means the handle or app id does not match anything remotely.
	ErrNotFound = errors.New("steam: not found")
	// ErrUpstream wraps transport, status and decoding failures.
	ErrUpstream = errors.New("steam: upstream failure")
	// ErrMissingAPIKey is returned when the Web API is built without a key.
	ErrMissingAPIKey = errors.New("steam: api key is not configured")
)
