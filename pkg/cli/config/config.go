package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
)

// Upper bounds accepted by the upstream APIs
const (
	MaxGDELTRecords    = 250
	MaxNewsAPIPageSize = 100
	MaxFeedEntries     = 100
)

// FileConfig is the optional TOML file that tunes the live sources
type FileConfig struct {
	GDELT     GDELTSection     `toml:"gdelt"`
	NewsAPI   NewsAPISection   `toml:"newsapi"`
	RSS       RSSSection       `toml:"rss"`
	Relevance RelevanceSection `toml:"relevance"`
}

// GDELTSection holds the primary source query
type GDELTSection struct {
	Query      string `toml:"query"`
	MaxRecords int    `toml:"max_records"`
	Timespan   string `toml:"timespan"`
}

// NewsAPISection holds the secondary source query. The API key is never read
// from the file.
type NewsAPISection struct {
	Query    string `toml:"query"`
	PageSize int    `toml:"page_size"`
	Language string `toml:"language"`
	SortBy   string `toml:"sort_by"`
}

// RSSSection lists the tertiary source feeds
type RSSSection struct {
	Feeds      []string `toml:"feeds"`
	MaxEntries int      `toml:"max_entries"`
}

// RelevanceSection overrides the keyword vocabulary NewsAPI articles are matched against
type RelevanceSection struct {
	Keywords     []string `toml:"keywords"`
	MinRelevance int      `toml:"min_relevance"`
}

func checkRange(field string, v, maxV int) error {
	if v < 0 || v > maxV {
		return goerr.Wrap(ErrOutOfRange, "value must be between 0 and upper bound",
			goerr.V(FieldKey, field), goerr.V(ValueKey, v), goerr.V("max", maxV))
	}
	return nil
}

// Validate checks limits and feed URLs. Zero values are allowed and mean "default".
func (c *FileConfig) Validate() error {
	if err := checkRange("gdelt.max_records", c.GDELT.MaxRecords, MaxGDELTRecords); err != nil {
		return err
	}
	if err := checkRange("newsapi.page_size", c.NewsAPI.PageSize, MaxNewsAPIPageSize); err != nil {
		return err
	}
	if err := checkRange("rss.max_entries", c.RSS.MaxEntries, MaxFeedEntries); err != nil {
		return err
	}
	if c.Relevance.MinRelevance < 0 {
		return goerr.Wrap(ErrOutOfRange, "min_relevance must not be negative",
			goerr.V(FieldKey, "relevance.min_relevance"), goerr.V(ValueKey, c.Relevance.MinRelevance))
	}

	for _, feed := range c.RSS.Feeds {
		if err := validateFeedURL(feed); err != nil {
			return err
		}
	}
	for i, kw := range c.Relevance.Keywords {
		if strings.TrimSpace(kw) == "" {
			return goerr.Wrap(ErrInvalidConfig, "relevance keyword is empty",
				goerr.V(FieldKey, "relevance.keywords"), goerr.V("index", i))
		}
	}
	return nil
}

func validateFeedURL(feed string) error {
	u, err := url.Parse(feed)
	if err != nil {
		return goerr.Wrap(ErrInvalidFeedURL, "failed to parse feed URL", goerr.V(FeedURLKey, feed), goerr.V("cause", err.Error()))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return goerr.Wrap(ErrInvalidFeedURL, "feed URL must be absolute http(s)", goerr.V(FeedURLKey, feed))
	}
	return nil
}

// RelevanceKeywords returns the configured vocabulary, lower-cased, or nil for the default
func (c *FileConfig) RelevanceKeywords() model.KeywordSet {
	if len(c.Relevance.Keywords) == 0 {
		return nil
	}
	set := make(model.KeywordSet, 0, len(c.Relevance.Keywords))
	for _, kw := range c.Relevance.Keywords {
		set = append(set, strings.ToLower(strings.TrimSpace(kw)))
	}
	return set
}

// LoadFile reads and validates a TOML source configuration
func LoadFile(path string) (*FileConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var cfg FileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &cfg, nil
}
