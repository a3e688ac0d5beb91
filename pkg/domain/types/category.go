package types

import "fmt"

// Category is the supply-chain classification assigned to an event
type Category string

const (
	CategoryConstruction  Category = "Construction"
	CategoryDisruption    Category = "Disruption"
	CategoryShortage      Category = "Shortage"
	CategoryManufacturing Category = "Manufacturing"
	CategoryGeopolitical  Category = "Geopolitical"
	CategoryGeneral       Category = "General"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryConstruction,
		CategoryDisruption,
		CategoryShortage,
		CategoryManufacturing,
		CategoryGeopolitical,
		CategoryGeneral,
	}
}

// IsValid checks if the category is one of the enumerated values
func (c Category) IsValid() bool {
	switch c {
	case CategoryConstruction,
		CategoryDisruption,
		CategoryShortage,
		CategoryManufacturing,
		CategoryGeopolitical,
		CategoryGeneral:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
