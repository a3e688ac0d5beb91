package gdelt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/domain/model"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
	"github.com/secmon-lab/vantagepoint/pkg/utils/safe"
)

const (
	DefaultBaseURL    = "https://api.gdeltproject.org/api/v2/doc/doc"
	DefaultQuery      = "port strike OR factory OR shortage OR cement OR steel OR infrastructure OR supply chain"
	DefaultMaxRecords = 25
	DefaultTimespan   = "48h"
	DefaultTimeout    = 15 * time.Second

	// fallbackSource is used when an article has no domain
	fallbackSource = "GDELT"
)

// Config holds the GDELT DOC API parameters. Zero values select the defaults.
type Config struct {
	BaseURL    string
	Query      string
	MaxRecords int
	Timespan   string
	Timeout    time.Duration
}

// Client fetches recent articles from the GDELT DOC 2.0 API in artlist mode
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

// WithClock replaces time.Now, used for missing seen dates
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a GDELT client
func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultMaxRecords
	}
	if cfg.Timespan == "" {
		cfg.Timespan = DefaultTimespan
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
	return types.SourceGDELT
}

// Fetch runs one artlist query. Empty query fields fall back to the client config.
// A 429 answer yields model.ErrRateLimited, any other failure model.ErrSourceUnavailable.
func (c *Client) Fetch(ctx context.Context, q model.FetchQuery) ([]*model.Event, error) {
	query := q.Query
	if query == "" {
		query = c.cfg.Query
	}
	limit := q.Limit
	if limit <= 0 {
		limit = c.cfg.MaxRecords
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", "artlist")
	params.Set("format", "json")
	params.Set("maxrecords", strconv.Itoa(limit))
	params.Set("timespan", c.cfg.Timespan)
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build GDELT request", goerr.V(model.URLKey, reqURL))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "GDELT request failed",
			goerr.V(model.SourceKey, types.SourceGDELT), goerr.V("cause", err.Error()))
	}
	defer safe.DrainAndClose(ctx, resp.Body)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, goerr.Wrap(model.ErrRateLimited, "GDELT rate limited",
			goerr.V(model.SourceKey, types.SourceGDELT), goerr.V(model.StatusKey, resp.StatusCode))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "GDELT returned error status",
			goerr.V(model.SourceKey, types.SourceGDELT), goerr.V(model.StatusKey, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "failed to read GDELT response",
			goerr.V(model.SourceKey, types.SourceGDELT), goerr.V("cause", err.Error()))
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return []*model.Event{}, nil
	}

	var payload artListResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "failed to decode GDELT response",
			goerr.V(model.SourceKey, types.SourceGDELT), goerr.V("cause", err.Error()))
	}

	events := make([]*model.Event, 0, len(payload.Articles))
	for _, art := range payload.Articles {
		events = append(events, c.toEvent(art))
	}
	return events, nil
}

type artListResponse struct {
	Articles []article `json:"articles"`
}

type article struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Description string `json:"description"`
	SeenDate    string `json:"seendate"`
	Domain      string `json:"domain"`
}

func (c *Client) toEvent(art article) *model.Event {
	snippet := art.Snippet
	if snippet == "" {
		snippet = art.Description
	}
	source := art.Domain
	if source == "" {
		source = fallbackSource
	}

	return model.NewEvent(model.RawEvent{
		Headline:  art.Title,
		Snippet:   snippet,
		Source:    source,
		SourceURL: art.URL,
		Timestamp: ParseSeenDate(art.SeenDate, c.now()),
	})
}

// ParseSeenDate converts a compact GDELT seen date such as "20260115103000"
// or "20260115T103000Z" into "2026-01-15 10:30". The first 8 characters are
// the date and the next 4 the hour and minute; a shorter value gets "00:00".
// An empty value uses now.
func ParseSeenDate(seen string, now time.Time) string {
	seen = strings.TrimSpace(seen)
	if seen == "" {
		return now.Format(model.TimestampLayout)
	}
	if len(seen) < 8 {
		return seen
	}

	date := seen[:8]
	if d, err := time.Parse("20060102", date); err == nil {
		date = d.Format(time.DateOnly)
	}

	clock := "00:00"
	rest := strings.TrimPrefix(seen[8:], "T")
	if len(rest) >= 4 {
		clock = rest[:2] + ":" + rest[2:4]
	}
	return date + " " + clock
}
