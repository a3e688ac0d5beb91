package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrInvalidFeedURL = goerr.New("invalid feed URL")
	ErrOutOfRange     = goerr.New("value out of range")
	ErrInvalidLogger  = goerr.New("invalid logger configuration")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	FieldKey      = "field"
	ValueKey      = "value"
	FeedURLKey    = "feed_url"
)
