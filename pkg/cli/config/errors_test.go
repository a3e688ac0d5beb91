package config_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/cli/config"
)

func TestConfigErrors_SentinelIdentification(t *testing.T) {
	sentinels := []error{
		config.ErrConfigNotFound,
		config.ErrInvalidConfig,
		config.ErrInvalidFeedURL,
		config.ErrOutOfRange,
		config.ErrInvalidLogger,
	}

	for i, sentinel := range sentinels {
		wrapped := goerr.Wrap(sentinel, "wrapped", goerr.V(config.FieldKey, "x"))
		for j, other := range sentinels {
			gt.Value(t, errors.Is(wrapped, other)).Equal(i == j)
		}
	}
}

func TestConfigErrors_Values(t *testing.T) {
	err := goerr.Wrap(config.ErrConfigNotFound, "failed", goerr.V(config.ConfigPathKey, "/tmp/x.toml"))

	var ge *goerr.Error
	gt.Bool(t, errors.As(err, &ge)).True()
	gt.Value(t, ge.Values()[config.ConfigPathKey]).Equal("/tmp/x.toml")
}
