package types

import "fmt"

// SourceID identifies an event source (and the fetcher that reads it)
type SourceID string

const (
	SourceGDELT     SourceID = "gdelt"
	SourceNewsAPI   SourceID = "newsapi"
	SourceRSS       SourceID = "rss"
	SourceSynthetic SourceID = "synthetic"
)

// DisplayName returns the human readable name used in notices
func (s SourceID) DisplayName() string {
	switch s {
	case SourceGDELT:
		return "GDELT"
	case SourceNewsAPI:
		return "NewsAPI"
	case SourceRSS:
		return "RSS"
	case SourceSynthetic:
		return "Synthetic"
	default:
		return string(s)
	}
}

// IsValid checks if the source ID is known
func (s SourceID) IsValid() bool {
	switch s {
	case SourceGDELT, SourceNewsAPI, SourceRSS, SourceSynthetic:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source ID
func (s SourceID) String() string {
	return string(s)
}

// DataMode selects between live acquisition and the synthetic catalog
type DataMode string

const (
	DataModeLive      DataMode = "live"
	DataModeSynthetic DataMode = "synthetic"
)

// ParseDataMode parses a string into a DataMode. Empty means synthetic,
// which needs no network access.
func ParseDataMode(s string) (DataMode, error) {
	switch DataMode(s) {
	case "", DataModeSynthetic:
		return DataModeSynthetic, nil
	case DataModeLive:
		return DataModeLive, nil
	default:
		return "", fmt.Errorf("invalid data mode: %s", s)
	}
}
