package model

import (
	"strings"

	"github.com/secmon-lab/vantagepoint/pkg/domain/types"
)

// KeywordSet is a list of lowercase terms matched as case-insensitive substrings
type KeywordSet []string

// Matches reports whether any keyword occurs in text
func (k KeywordSet) Matches(text string) bool {
	t := strings.ToLower(text)
	for _, kw := range k {
		if kw != "" && strings.Contains(t, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Count returns how many distinct keywords occur in text
func (k KeywordSet) Count(text string) int {
	if text == "" {
		return 0
	}
	t := strings.ToLower(text)
	seen := make(map[string]struct{}, len(k))
	count := 0
	for _, kw := range k {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		if strings.Contains(t, kw) {
			count++
		}
	}
	return count
}

// CategoryRule maps headline keywords to a category
type CategoryRule struct {
	Category types.Category
	Keywords KeywordSet
}

// RiskTier maps keywords to a heuristic risk score
type RiskTier struct {
	Score    int
	Keywords KeywordSet
}

// Heuristics holds the keyword rules for categorization and risk scoring.
// Rules and tiers are evaluated in order and the first match wins.
type Heuristics struct {
	CategoryRules []CategoryRule
	RiskTiers     []RiskTier
	BaseRisk      int
}

// DefaultHeuristics returns the built-in rule set. Rule order is significant:
// a headline mentioning both "steel" and "strike" is Construction.
func DefaultHeuristics() *Heuristics {
	return &Heuristics{
		CategoryRules: []CategoryRule{
			{Category: types.CategoryConstruction, Keywords: KeywordSet{"cement", "steel", "lumber", "infrastructure"}},
			{Category: types.CategoryDisruption, Keywords: KeywordSet{"strike", "port", "congestion", "canal", "blockade"}},
			{Category: types.CategoryShortage, Keywords: KeywordSet{"shortage"}},
			{Category: types.CategoryManufacturing, Keywords: KeywordSet{"factory", "fab", "assembly"}},
			{Category: types.CategoryGeopolitical, Keywords: KeywordSet{"sanction", "trade", "export"}},
		},
		RiskTiers: []RiskTier{
			{Score: 4, Keywords: KeywordSet{"strike", "shortage", "blockade", "outage", "closure", "crisis"}},
			{Score: 3, Keywords: KeywordSet{"disruption", "delay", "backlog", "congestion"}},
			{Score: 2, Keywords: KeywordSet{"supply chain", "logistics", "shipping", "freight", "port", "cargo"}},
		},
		BaseRisk: 1,
	}
}

var defaultHeuristics = DefaultHeuristics()

// Categorize returns the category of the first rule whose keywords occur in title
func (h *Heuristics) Categorize(title string) types.Category {
	for _, rule := range h.CategoryRules {
		if rule.Keywords.Matches(title) {
			return rule.Category
		}
	}
	return types.CategoryGeneral
}

// Risk scores title and description against the tiers
func (h *Heuristics) Risk(title, description string) int {
	text := title + " " + description
	for _, tier := range h.RiskTiers {
		if tier.Keywords.Matches(text) {
			return tier.Score
		}
	}
	return h.BaseRisk
}

// Categorize infers a category from a headline with the default rules
func Categorize(title string) types.Category {
	return defaultHeuristics.Categorize(title)
}

// HeuristicRisk assigns a 1-5 score from keywords with the default tiers
func HeuristicRisk(title, description string) int {
	return defaultHeuristics.Risk(title, description)
}

// RelevanceCount counts distinct keywords from set occurring in text
func RelevanceCount(text string, set KeywordSet) int {
	return set.Count(text)
}

// DefaultRelevanceKeywords is the secondary news source's relevance vocabulary.
// It is deliberately independent of the category and risk rules.
var DefaultRelevanceKeywords = KeywordSet{
	"supply chain", "logistics", "shipping", "freight", "cargo", "port", "shortage",
	"disruption", "strike", "factory", "manufacturing", "inventory", "shipment",
	"supplier", "procurement", "warehouse", "distribution", "export", "import",
	"container", "rail", "trucking", "delivery", "outage", "closure", "backlog",
}

// DefaultMinRelevance is the number of relevance keywords an article must match to be kept
const DefaultMinRelevance = 1
