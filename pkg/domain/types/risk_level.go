package types

import "fmt"

// RiskLevel is a coarse band over the 0-10 risk score used for filtering
type RiskLevel string

const (
	RiskLevelAll    RiskLevel = "All"
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// HighRiskThreshold is the lowest score counted as high risk
const HighRiskThreshold = 7

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelAll,
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelAll, RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	default:
		return false
	}
}

// Normalize returns the level, treating empty as RiskLevelAll
func (l RiskLevel) Normalize() RiskLevel {
	if l == "" {
		return RiskLevelAll
	}
	return l
}

// Contains reports whether score falls into the band.
// Low is 0-3, Medium is 4-6 and High is 7 and above.
func (l RiskLevel) Contains(score int) bool {
	switch l.Normalize() {
	case RiskLevelLow:
		return score <= 3
	case RiskLevelMedium:
		return score >= 4 && score <= 6
	case RiskLevelHigh:
		return score >= HighRiskThreshold
	default:
		return true
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// ParseRiskLevel parses a string into a RiskLevel. Empty means All.
func ParseRiskLevel(s string) (RiskLevel, error) {
	l := RiskLevel(s).Normalize()
	if !l.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return l, nil
}
