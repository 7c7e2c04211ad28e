package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSourceOffline indicates the card source is unreachable
	ErrSourceOffline = errors.New("card source is unreachable")

	// ErrUnexpectedStatus indicates the listing endpoint answered with a non-success status
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMissingComponent indicates a required collaborator was not provided at startup
	ErrMissingComponent = errors.New("required component is missing")

	// ErrUnknownSource indicates the configured source type is not supported
	ErrUnknownSource = errors.New("unknown card source type")
)
