package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// FilterAll disables the category or commodity dimension of a filter
const FilterAll = "All"

// EventFilter narrows an event collection by simple categorical criteria.
// Empty fields behave like "All".
type EventFilter struct {
	Region    types.Region
	RiskLevel types.RiskLevel
	Category  string
	Commodity string
}

// ParseEventFilter validates user supplied filter values. Empty values and
// "All" disable a dimension.
func ParseEventFilter(region, riskLevel, category, commodity string) (EventFilter, error) {
	r, err := types.ParseRegion(region)
	if err != nil {
		return EventFilter{}, goerr.Wrap(err, "invalid region filter", goerr.V("region", region))
	}
	l, err := types.ParseRiskLevel(riskLevel)
	if err != nil {
		return EventFilter{}, goerr.Wrap(err, "invalid risk level filter", goerr.V("risk_level", riskLevel))
	}
	if category != "" && category != FilterAll {
		if _, err := types.ParseCategory(category); err != nil {
			return EventFilter{}, goerr.Wrap(err, "invalid category filter", goerr.V("category", category))
		}
	}
	return EventFilter{Region: r, RiskLevel: l, Category: category, Commodity: commodity}, nil
}

// Match reports whether ev passes every dimension of the filter
func (f EventFilter) Match(ev *Event) bool {
	if ev == nil {
		return false
	}
	if !f.RiskLevel.Contains(ev.RiskScore) {
		return false
	}
	if !f.Region.Contains(ev.Latitude, ev.Longitude) {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && string(ev.Category) != f.Category {
		return false
	}
	if f.Commodity != "" && f.Commodity != FilterAll && ev.Commodity != f.Commodity {
		return false
	}
	return true
}

// Apply returns the events that match, preserving order
func (f EventFilter) Apply(events []*Event) []*Event {
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		if f.Match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// Stats are the headline numbers shown next to the event table
type Stats struct {
	Events       int `json:"events"`
	HighRisk     int `json:"high_risk"`
	Construction int `json:"construction"`
	Disruptions  int `json:"disruptions"`
	HealthIndex  int `json:"health_index"`
}

// Summarize counts events by risk and category and derives the health index
func Summarize(events []*Event) Stats {
	var s Stats
	for _, ev := range events {
		if ev == nil {
			continue
		}
		s.Events++
		if ev.RiskScore >= types.HighRiskThreshold {
			s.HighRisk++
		}
		switch ev.Category {
		case types.CategoryConstruction:
			s.Construction++
		case types.CategoryDisruption:
			s.Disruptions++
		}
	}
	s.HealthIndex = healthIndex(s)
	return s
}

// HealthIndex is the global supply chain health score in [0,100]; higher is healthier.
// Each high-risk event costs 5 points and each disruption 3.
func HealthIndex(events []*Event) int {
	return Summarize(events).HealthIndex
}

func healthIndex(s Stats) int {
	if s.Events == 0 {
		return 100
	}
	return min(100, max(0, 100-s.HighRisk*5-s.Disruptions*3))
}
