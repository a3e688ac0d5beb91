package newsapi

import (
	"context"
	"encoding/json"
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
	DefaultBaseURL  = "https://newsapi.org/v2/everything"
	DefaultQuery    = `"supply chain" OR logistics OR "shipping" OR freight OR "port" OR "cargo" OR "shortage" OR "supply shortage" OR "factory" OR "disruption" OR "visibility"`
	DefaultPageSize = 50
	DefaultSortBy   = "relevance"
	DefaultLanguage = "en"
	DefaultTimeout  = 12 * time.Second

	fallbackSource = "NewsAPI"
)

// Config holds the NewsAPI "everything" endpoint parameters.
// Zero values select the defaults, except APIKey which is required.
type Config struct {
	APIKey       string `masq:"secret"`
	BaseURL      string
	Query        string
	PageSize     int
	SortBy       string
	Language     string
	Timeout      time.Duration
	Keywords     model.KeywordSet
	MinRelevance int
}

// Client is the keyword-based secondary news source
type Client struct {
	cfg        Config
	httpClient *http.Client
	heuristics *model.Heuristics
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

// WithHeuristics replaces the default risk rules
func WithHeuristics(h *model.Heuristics) Option {
	return func(c *Client) {
		c.heuristics = h
	}
}

// WithClock replaces time.Now, used for missing publish times
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a NewsAPI client. It fails when no API key is configured.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, goerr.Wrap(model.ErrMissingCredential, "NewsAPI key is required",
			goerr.V(model.SourceKey, types.SourceNewsAPI))
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Query == "" {
		cfg.Query = DefaultQuery
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.SortBy == "" {
		cfg.SortBy = DefaultSortBy
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = model.DefaultRelevanceKeywords
	}
	if cfg.MinRelevance <= 0 {
		cfg.MinRelevance = model.DefaultMinRelevance
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		heuristics: model.DefaultHeuristics(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Source() types.SourceID {
	return types.SourceNewsAPI
}

// Fetch runs one search and returns the relevant articles with a heuristic risk score
func (c *Client) Fetch(ctx context.Context, q model.FetchQuery) ([]*model.Event, error) {
	query := q.Query
	if query == "" {
		query = c.cfg.Query
	}
	pageSize := q.Limit
	if pageSize <= 0 {
		pageSize = c.cfg.PageSize
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("sortBy", c.cfg.SortBy)
	params.Set("language", c.cfg.Language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build NewsAPI request")
	}
	req.Header.Set("X-Api-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "NewsAPI request failed",
			goerr.V(model.SourceKey, types.SourceNewsAPI), goerr.V("cause", err.Error()))
	}
	defer safe.DrainAndClose(ctx, resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, goerr.Wrap(model.ErrRateLimited, "NewsAPI rate limited",
			goerr.V(model.SourceKey, types.SourceNewsAPI), goerr.V(model.StatusKey, resp.StatusCode))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "failed to decode NewsAPI response",
			goerr.V(model.SourceKey, types.SourceNewsAPI), goerr.V(model.StatusKey, resp.StatusCode),
			goerr.V("cause", err.Error()))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || payload.Status == "error" {
		return nil, goerr.Wrap(model.ErrSourceUnavailable, "NewsAPI returned error",
			goerr.V(model.SourceKey, types.SourceNewsAPI), goerr.V(model.StatusKey, resp.StatusCode),
			goerr.V("code", payload.Code), goerr.V("message", payload.Message))
	}

	events := make([]*model.Event, 0, len(payload.Articles))
	for _, art := range payload.Articles {
		if ev := c.toEvent(art); ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

type searchResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// toEvent returns nil for untitled or irrelevant articles
func (c *Client) toEvent(art article) *model.Event {
	title := strings.TrimSpace(art.Title)
	if title == "" {
		return nil
	}
	desc := art.Description
	if strings.TrimSpace(desc) == "" {
		desc = title
	}
	if model.RelevanceCount(title+" "+desc, c.cfg.Keywords) < c.cfg.MinRelevance {
		return nil
	}

	source := strings.TrimSpace(art.Source.Name)
	if source == "" {
		source = fallbackSource
	}

	return model.NewEvent(model.RawEvent{
		Headline:  title,
		Snippet:   desc,
		Source:    source,
		SourceURL: art.URL,
		Timestamp: ParsePublishedAt(art.PublishedAt, c.now()),
		RiskScore: c.heuristics.Risk(title, desc),
	})
}

// ParsePublishedAt truncates an ISO-8601 timestamp such as
// "2026-01-15T10:30:59Z" to "2026-01-15 10:30". An empty value uses now.
func ParsePublishedAt(published string, now time.Time) string {
	published = strings.TrimSpace(published)
	if published == "" {
		return now.Format(model.TimestampLayout)
	}
	if len(published) > 16 {
		published = published[:16]
	}
	if len(published) == 16 && published[10] == 'T' {
		return published[:10] + " " + published[11:]
	}
	return published
}
