package model

import (
	"time"

	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// NoticeLevel is the severity of a user-visible advisory
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a non-fatal advisory surfaced to the user alongside events
type Notice struct {
	Level   NoticeLevel    `json:"level"`
	Source  types.SourceID `json:"source,omitempty"`
	Message string         `json:"message"`
}

// Acquisition is the result of one acquisition call: the events of exactly one
// source plus the advisories collected along the way.
type Acquisition struct {
	Source  types.SourceID `json:"source"`
	Events  []*Event       `json:"events"`
	Notices []Notice       `json:"notices"`
	// Fallback is true when live sources were exhausted and synthetic data was substituted
	Fallback bool `json:"fallback"`
}

// Empty reports whether no source produced events
func (a *Acquisition) Empty() bool {
	return a == nil || len(a.Events) == 0
}

// AddNotice appends an advisory
func (a *Acquisition) AddNotice(level NoticeLevel, source types.SourceID, msg string) {
	a.Notices = append(a.Notices, Notice{Level: level, Source: source, Message: msg})
}

// CacheKey identifies one memoized fetch: the fetcher plus all call arguments
type CacheKey struct {
	Source types.SourceID
	Query  string
	Limit  int
}

// CacheEntry is an immutable snapshot of a fetch result
type CacheEntry struct {
	Key       CacheKey
	Events    []*Event
	CreatedAt time.Time
}

// FetchQuery holds the call arguments of a fetch: the keyword query and a
// record-count or page-size bound. Zero values select the fetcher's defaults.
type FetchQuery struct {
	Query string
	Limit int
}

// CacheKey builds the memoization key for this query against source
func (q FetchQuery) CacheKey(source types.SourceID) CacheKey {
	return CacheKey{Source: source, Query: q.Query, Limit: q.Limit}
}
