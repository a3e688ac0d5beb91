package rss

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mmcdole/gofeed"
	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/logging"
)

const (
	DefaultMaxEntriesPerFeed = 15
	DefaultUserAgent         = "VantagePoint/1.0"
	DefaultTimeout           = 15 * time.Second
)

// DefaultFeeds are logistics and supply chain news feeds that need no key
var DefaultFeeds = []string{
	"https://feeds.feedburner.com/logisticsmgmt/latest",
	"https://theloadstar.com/feed/",
}

// Config holds the feed list and per-feed limits. Zero values select the defaults.
type Config struct {
	Feeds             []string
	MaxEntriesPerFeed int
	UserAgent         string
	Timeout           time.Duration
}

// Client reads a fixed list of syndication feeds
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

var _ interfaces.EventFetcher = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock replaces time.Now, used for entries without any time
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates an RSS client
func New(cfg Config, opts ...Option) *Client {
	if cfg.Feeds == nil {
		cfg.Feeds = DefaultFeeds
	}
	if cfg.MaxEntriesPerFeed <= 0 {
		cfg.MaxEntriesPerFeed = DefaultMaxEntriesPerFeed
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Source() types.SourceID {
	return types.SourceRSS
}

// Fetch parses the configured feeds one after another and concatenates the
// entries in feed order. q.Limit overrides the per-feed entry cap; q.Query is
// unused. A feed that fails is logged and skipped; an error is returned only
// when every feed failed.
func (c *Client) Fetch(ctx context.Context, q model.FetchQuery) ([]*model.Event, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = c.cfg.MaxEntriesPerFeed
	}

	var events []*model.Event
	var failures []error
	for _, feedURL := range c.cfg.Feeds {
		if err := ctx.Err(); err != nil {
			return nil, goerr.Wrap(err, "RSS fetch cancelled", goerr.V(model.SourceKey, types.SourceRSS))
		}
		feedEvents, err := c.fetchFeed(ctx, feedURL, limit)
		if err != nil {
			logging.From(ctx).Warn("Failed to read feed", slog.String("url", feedURL), slog.Any("error", err))
			failures = append(failures, err)
			continue
		}
		events = append(events, feedEvents...)
	}
	if len(c.cfg.Feeds) > 0 && len(failures) == len(c.cfg.Feeds) {
		return nil, goerr.Wrap(classify(errors.Join(failures...)), "all RSS feeds failed",
			goerr.V(model.SourceKey, types.SourceRSS), goerr.V("feeds", len(c.cfg.Feeds)))
	}
	if events == nil {
		events = []*model.Event{}
	}
	return events, nil
}

func (c *Client) fetchFeed(ctx context.Context, feedURL string, limit int) ([]*model.Event, error) {
	fp := gofeed.NewParser()
	fp.Client = c.httpClient
	fp.UserAgent = c.cfg.UserAgent

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse feed", goerr.V(model.URLKey, feedURL))
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = feedURL
	}

	items := feed.Items
	if len(items) > limit {
		items = items[:limit]
	}

	events := make([]*model.Event, 0, len(items))
	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		events = append(events, model.NewEvent(model.RawEvent{
			Headline:  item.Title,
			Snippet:   itemSummary(item),
			Source:    source,
			SourceURL: item.Link,
			Timestamp: ItemTimestamp(item, c.now()),
		}))
	}
	return events, nil
}

func itemSummary(item *gofeed.Item) string {
	for _, s := range []string{item.Description, item.Content} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return item.Title
}

// ItemTimestamp picks the best available entry time: the parsed published
// time, then the parsed updated time, then the first 16 characters of the raw
// string, then now.
func ItemTimestamp(item *gofeed.Item, now time.Time) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(model.TimestampLayout)
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(model.TimestampLayout)
	}

	raw := strings.TrimSpace(item.Published)
	if raw == "" {
		raw = strings.TrimSpace(item.Updated)
	}
	if raw == "" {
		return now.Format(model.TimestampLayout)
	}
	if r := []rune(raw); len(r) > 16 {
		raw = string(r[:16])
	}
	return raw
}

func classify(err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		return goerr.Wrap(model.ErrRateLimited, err.Error())
	}
	return goerr.Wrap(model.ErrSourceUnavailable, err.Error())
}
