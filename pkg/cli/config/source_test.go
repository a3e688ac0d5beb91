package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/vantagepoint/pkg/cli/config"
)

func TestSource_Configure(t *testing.T) {
	t.Run("without NewsAPI key the secondary source is skipped", func(t *testing.T) {
		srcs, err := config.NewSourceForTest(config.SourceForTest{}).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, srcs.Primary).NotNil()
		gt.Value(t, srcs.Secondary).Nil()
		gt.Value(t, srcs.Tertiary).NotNil()
		gt.Array(t, srcs.UseCaseOptions()).Length(2)
	})

	t.Run("with NewsAPI key all sources are built", func(t *testing.T) {
		srcs, err := config.NewSourceForTest(config.SourceForTest{NewsAPIKey: "k"}).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, srcs.Secondary).NotNil()
		gt.Array(t, srcs.UseCaseOptions()).Length(3)
	})

	t.Run("blank NewsAPI key counts as unset", func(t *testing.T) {
		srcs, err := config.NewSourceForTest(config.SourceForTest{NewsAPIKey: "   "}).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, srcs.Secondary).Nil()
	})

	t.Run("offline disables every live source", func(t *testing.T) {
		srcs, err := config.NewSourceForTest(config.SourceForTest{NewsAPIKey: "k", Offline: true}).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, srcs.Primary).Nil()
		gt.Value(t, srcs.Secondary).Nil()
		gt.Value(t, srcs.Tertiary).Nil()
		gt.Array(t, srcs.UseCaseOptions()).Length(0)
	})

	t.Run("config file is loaded", func(t *testing.T) {
		path := writeConfig(t, `
[rss]
feeds = ["https://example.com/feed.xml"]
`)
		srcs, err := config.NewSourceForTest(config.SourceForTest{ConfigPath: path}).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, srcs.Tertiary).NotNil()
	})

	t.Run("invalid config file", func(t *testing.T) {
		path := writeConfig(t, "[gdelt]\nmax_records = 1000\n")
		_, err := config.NewSourceForTest(config.SourceForTest{ConfigPath: path}).Configure(t.Context())
		gt.Error(t, err).Is(config.ErrOutOfRange)
	})

	t.Run("invalid feed flag", func(t *testing.T) {
		_, err := config.NewSourceForTest(config.SourceForTest{RSSFeeds: []string{"not a url"}}).Configure(t.Context())
		gt.Error(t, err).Is(config.ErrInvalidFeedURL)
	})

	t.Run("out of range flag", func(t *testing.T) {
		_, err := config.NewSourceForTest(config.SourceForTest{NewsAPIPageSize: 500}).Configure(t.Context())
		gt.Error(t, err).Is(config.ErrOutOfRange)
	})
}
