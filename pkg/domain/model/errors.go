package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by fetchers and the AI gateway
var (
	// ErrRateLimited is returned when a source answers HTTP 429
	ErrRateLimited = goerr.New("source rate limited")

	// ErrSourceUnavailable covers transport failures and unexpected status codes
	ErrSourceUnavailable = goerr.New("source unavailable")

	// ErrMissingCredential is returned when a source needs an API key that is not set
	ErrMissingCredential = goerr.New("missing credential")

	// ErrInvalidResponse is returned when a response body cannot be parsed
	ErrInvalidResponse = goerr.New("invalid response")
)

// Context keys for error values
const (
	SourceKey = "source"
	StatusKey = "status"
	URLKey    = "url"
)
