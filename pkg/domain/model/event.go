package model

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// TimestampLayout is the canonical event timestamp format (YYYY-MM-DD HH:MM)
const TimestampLayout = "2006-01-02 15:04"

// Defaults substituted by NewEvent when a source omits a field
const (
	DefaultHeadline  = "Unknown Event"
	DefaultLocation  = "Global Signal (Live)"
	DefaultCommodity = "Mixed"
	DefaultSourceURL = "#"
	DefaultSource    = "Live"

	MaxHeadlineLength = 500
	MaxSnippetLength  = 200

	MinRiskScore = 0
	MaxRiskScore = 10
)

// Placeholder coordinate box for live sources that cannot geocode
const (
	placeholderLatMin = -45.0
	placeholderLatMax = 55.0
	placeholderLonMin = -130.0
	placeholderLonMax = 150.0
)

// Event is the canonical record flowing from fetchers to callers
type Event struct {
	ID             string          `json:"id"`
	Timestamp      string          `json:"timestamp"`
	Headline       string          `json:"headline"`
	Location       string          `json:"location"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	RiskScore      int             `json:"risk_score"`
	Category       types.Category  `json:"category"`
	Commodity      string          `json:"commodity"`
	Reasoning      string          `json:"reasoning"`
	ArticleSnippet string          `json:"article_snippet"`
	SourceURL      string          `json:"source_url"`
	Source         string          `json:"source"`
	GeminiAnalysis *AnalysisResult `json:"gemini_analysis"`
}

// RawEvent carries the source-specific fields a fetcher extracted.
// Any field may be empty; NewEvent fills in defaults.
type RawEvent struct {
	Headline  string
	Snippet   string
	Source    string
	SourceURL string
	Timestamp string
	RiskScore int
}

// NewEvent normalizes a raw record into an Event. It never fails.
func NewEvent(raw RawEvent) *Event {
	headline := truncate(strings.TrimSpace(raw.Headline), MaxHeadlineLength)
	if headline == "" {
		headline = DefaultHeadline
	}

	snippet := strings.TrimSpace(raw.Snippet)
	if snippet == "" {
		snippet = strings.TrimSpace(raw.Headline)
	}

	sourceURL := strings.TrimSpace(raw.SourceURL)
	if sourceURL == "" {
		sourceURL = DefaultSourceURL
	}

	source := strings.TrimSpace(raw.Source)
	if source == "" {
		source = DefaultSource
	}

	timestamp := strings.TrimSpace(raw.Timestamp)
	if timestamp == "" {
		timestamp = time.Now().Format(TimestampLayout)
	}

	return &Event{
		ID:             NewEventID(sourceURL, headline),
		Timestamp:      timestamp,
		Headline:       headline,
		Location:       DefaultLocation,
		Latitude:       placeholderLatMin + rand.Float64()*(placeholderLatMax-placeholderLatMin),
		Longitude:      placeholderLonMin + rand.Float64()*(placeholderLonMax-placeholderLonMin),
		RiskScore:      ClampRiskScore(raw.RiskScore),
		Category:       Categorize(headline),
		Commodity:      DefaultCommodity,
		ArticleSnippet: truncate(snippet, MaxSnippetLength),
		SourceURL:      sourceURL,
		Source:         source,
	}
}

// NewEventID derives a stable identifier so a refetched article keeps its ID
func NewEventID(sourceURL, headline string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sourceURL+"\n"+headline)).String()
}

// ClampRiskScore bounds a heuristic score into [0,10]
func ClampRiskScore(score int) int {
	return min(MaxRiskScore, max(MinRiskScore, score))
}

// Normalize enforces the event invariants on a record that did not come
// through NewEvent, such as one decoded from a client request. It fills
// defaults, truncates text fields, clamps the risk score and replaces an
// unknown category with the headline's heuristic category.
func (e *Event) Normalize() {
	if e == nil {
		return
	}
	e.Headline = truncate(strings.TrimSpace(e.Headline), MaxHeadlineLength)
	if e.Headline == "" {
		e.Headline = DefaultHeadline
	}
	e.ArticleSnippet = truncate(e.ArticleSnippet, MaxSnippetLength)
	e.RiskScore = ClampRiskScore(e.RiskScore)
	if !e.Category.IsValid() {
		e.Category = Categorize(e.Headline)
	}
	if strings.TrimSpace(e.Location) == "" {
		e.Location = DefaultLocation
	}
	if strings.TrimSpace(e.Commodity) == "" {
		e.Commodity = DefaultCommodity
	}
	if strings.TrimSpace(e.SourceURL) == "" {
		e.SourceURL = DefaultSourceURL
	}
	if strings.TrimSpace(e.Source) == "" {
		e.Source = DefaultSource
	}
	if strings.TrimSpace(e.Timestamp) == "" {
		e.Timestamp = time.Now().Format(TimestampLayout)
	}
	if e.ID == "" {
		e.ID = NewEventID(e.SourceURL, e.Headline)
	}
}

// Clone returns a deep copy of the event
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	c.GeminiAnalysis = e.GeminiAnalysis.Clone()
	return &c
}

// CloneEvents deep-copies a slice of events. A nil slice stays nil.
func CloneEvents(events []*Event) []*Event {
	if events == nil {
		return nil
	}
	out := make([]*Event, len(events))
	for i, ev := range events {
		out[i] = ev.Clone()
	}
	return out
}

// truncate cuts s to at most n runes
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
