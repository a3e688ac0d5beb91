package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/service/gdelt"
	"github.com/secmon-lab/vantagepoint/pkg/service/newsapi"
	"github.com/secmon-lab/vantagepoint/pkg/service/rss"
	"github.com/secmon-lab/vantagepoint/pkg/usecase"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Source holds configuration for the live news sources. Explicit flags win
// over the TOML file, which wins over the built-in defaults.
type Source struct {
	configPath string

	gdeltQuery      string
	gdeltMaxRecords int
	gdeltTimespan   string

	newsAPIKey      string
	newsAPIQuery    string
	newsAPIPageSize int

	rssFeeds      []string
	rssMaxEntries int

	disableLive bool
}

// Sources are the fetchers built from a Source configuration. Secondary is
// nil when no NewsAPI key is configured; Primary and Tertiary are nil when
// live acquisition is disabled.
type Sources struct {
	Primary   *gdelt.Client
	Secondary *newsapi.Client
	Tertiary  *rss.Client
}

// Flags returns CLI flags for source configuration
func (s *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML file overriding source queries, limits, feeds and relevance keywords",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_CONFIG"),
			Destination: &s.configPath,
		},
		&cli.StringFlag{
			Name:        "gdelt-query",
			Usage:       "GDELT DOC API query",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_GDELT_QUERY"),
			Destination: &s.gdeltQuery,
		},
		&cli.IntFlag{
			Name:        "gdelt-max-records",
			Usage:       "Maximum number of GDELT articles per fetch (default 25)",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_GDELT_MAX_RECORDS"),
			Destination: &s.gdeltMaxRecords,
		},
		&cli.StringFlag{
			Name:        "gdelt-timespan",
			Usage:       "GDELT lookback window, e.g. 48h or 7d (default 48h)",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_GDELT_TIMESPAN"),
			Destination: &s.gdeltTimespan,
		},
		&cli.StringFlag{
			Name:        "newsapi-key",
			Usage:       "NewsAPI key. NewsAPI is skipped when unset",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_NEWSAPI_KEY", "NEWSAPI_API_KEY"),
			Destination: &s.newsAPIKey,
		},
		&cli.StringFlag{
			Name:        "newsapi-query",
			Usage:       "NewsAPI keyword query",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_NEWSAPI_QUERY"),
			Destination: &s.newsAPIQuery,
		},
		&cli.IntFlag{
			Name:        "newsapi-page-size",
			Usage:       "NewsAPI page size (default 50)",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_NEWSAPI_PAGE_SIZE"),
			Destination: &s.newsAPIPageSize,
		},
		&cli.StringSliceFlag{
			Name:        "rss-feed",
			Usage:       "RSS or Atom feed URL (repeatable). Replaces the default feed list",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_RSS_FEEDS"),
			Destination: &s.rssFeeds,
		},
		&cli.IntFlag{
			Name:        "rss-max-entries",
			Usage:       "Maximum entries read from each feed (default 15)",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_RSS_MAX_ENTRIES"),
			Destination: &s.rssMaxEntries,
		},
		&cli.BoolFlag{
			Name:        "offline",
			Usage:       "Disable every live source; live mode always falls back to synthetic data",
			Category:    "Source",
			Sources:     cli.EnvVars("VANTAGEPOINT_OFFLINE"),
			Destination: &s.disableLive,
		},
	}
}

// LogAttrs returns log attributes for the source configuration
func (s *Source) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("config", s.configPath),
		slog.String("gdelt_query", s.gdeltQuery),
		slog.Bool("newsapi_configured", strings.TrimSpace(s.newsAPIKey) != ""),
		slog.Int("rss_feeds", len(s.rssFeeds)),
		slog.Bool("offline", s.disableLive),
	}
}

// Configure loads the optional TOML file and builds the live fetchers
func (s *Source) Configure(ctx context.Context) (*Sources, error) {
	file := &FileConfig{}
	if s.configPath != "" {
		loaded, err := LoadFile(s.configPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load source configuration")
		}
		file = loaded
	}

	if err := checkRange("gdelt-max-records", s.gdeltMaxRecords, MaxGDELTRecords); err != nil {
		return nil, err
	}
	if err := checkRange("newsapi-page-size", s.newsAPIPageSize, MaxNewsAPIPageSize); err != nil {
		return nil, err
	}
	if err := checkRange("rss-max-entries", s.rssMaxEntries, MaxFeedEntries); err != nil {
		return nil, err
	}

	feeds := s.rssFeeds
	if len(feeds) == 0 {
		feeds = file.RSS.Feeds
	}
	for _, feed := range feeds {
		if err := validateFeedURL(feed); err != nil {
			return nil, err
		}
	}

	if s.disableLive {
		logging.From(ctx).Warn("Live sources disabled")
		return &Sources{}, nil
	}

	out := &Sources{
		Primary: gdelt.New(gdelt.Config{
			Query:      firstString(s.gdeltQuery, file.GDELT.Query),
			MaxRecords: firstInt(s.gdeltMaxRecords, file.GDELT.MaxRecords),
			Timespan:   firstString(s.gdeltTimespan, file.GDELT.Timespan),
		}),
		Tertiary: rss.New(rss.Config{
			Feeds:             feeds,
			MaxEntriesPerFeed: firstInt(s.rssMaxEntries, file.RSS.MaxEntries),
		}),
	}

	if strings.TrimSpace(s.newsAPIKey) != "" {
		client, err := newsapi.New(newsapi.Config{
			APIKey:       s.newsAPIKey,
			Query:        firstString(s.newsAPIQuery, file.NewsAPI.Query),
			PageSize:     firstInt(s.newsAPIPageSize, file.NewsAPI.PageSize),
			Language:     file.NewsAPI.Language,
			SortBy:       file.NewsAPI.SortBy,
			Keywords:     file.RelevanceKeywords(),
			MinRelevance: file.Relevance.MinRelevance,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure NewsAPI")
		}
		out.Secondary = client
	} else {
		logging.From(ctx).Info("NewsAPI key not configured, NewsAPI source is skipped")
	}

	return out, nil
}

// UseCaseOptions wires the configured fetchers. Unset sources stay unset so
// the acquisition skips them.
func (s *Sources) UseCaseOptions() []usecase.Option {
	var opts []usecase.Option
	if s.Primary != nil {
		opts = append(opts, usecase.WithPrimaryFetcher(s.Primary))
	}
	if s.Secondary != nil {
		opts = append(opts, usecase.WithSecondaryFetcher(s.Secondary))
	}
	if s.Tertiary != nil {
		opts = append(opts, usecase.WithTertiaryFetcher(s.Tertiary))
	}
	return opts
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
