package types

import "fmt"

// Region is a coarse geographic box used to filter events by coordinates
type Region string

const (
	RegionAll      Region = "All"
	RegionAsia     Region = "Asia"
	RegionEurope   Region = "Europe"
	RegionAmericas Region = "Americas"
	RegionAfrica   Region = "Africa"
)

// AllRegions returns all valid regions
func AllRegions() []Region {
	return []Region{
		RegionAll,
		RegionAsia,
		RegionEurope,
		RegionAmericas,
		RegionAfrica,
	}
}

// IsValid checks if the region is valid
func (r Region) IsValid() bool {
	switch r {
	case RegionAll, RegionAsia, RegionEurope, RegionAmericas, RegionAfrica:
		return true
	default:
		return false
	}
}

// Normalize returns the region, treating empty as RegionAll
func (r Region) Normalize() Region {
	if r == "" {
		return RegionAll
	}
	return r
}

// Contains reports whether the coordinate lies inside the region box
func (r Region) Contains(lat, lon float64) bool {
	switch r.Normalize() {
	case RegionAsia:
		return lon >= 60 && lon <= 150
	case RegionEurope:
		return lon >= -20 && lon <= 40 && lat >= 35
	case RegionAmericas:
		return lon >= -170 && lon <= -50
	case RegionAfrica:
		return lat >= -35 && lat <= 37 && lon >= -20 && lon <= 52
	default:
		return true
	}
}

// String returns the string representation of the region
func (r Region) String() string {
	return string(r)
}

// ParseRegion parses a string into a Region. Empty means All.
func ParseRegion(s string) (Region, error) {
	r := Region(s).Normalize()
	if !r.IsValid() {
		return "", fmt.Errorf("invalid region: %s", s)
	}
	return r, nil
}
