package domain

import (
	"fmt"
	"strings"
)

// ExpenseCategory is the closed set of expense categories. The string
// value is the canonical lowercase form used in the interchange schema
// and in the database.
type ExpenseCategory string

const (
	CategoryCruise    ExpenseCategory = "cruise"
	CategoryFlight    ExpenseCategory = "flight"
	CategoryHotel     ExpenseCategory = "hotel"
	CategoryExcursion ExpenseCategory = "excursion"
	CategoryOnboard   ExpenseCategory = "onboard"
	CategoryOther     ExpenseCategory = "other"
)

// Categories lists all valid categories in display order.
var Categories = []ExpenseCategory{
	CategoryCruise, CategoryFlight, CategoryHotel,
	CategoryExcursion, CategoryOnboard, CategoryOther,
}

// String returns the canonical lowercase form.
func (c ExpenseCategory) String() string { return string(c) }

// Valid reports whether c is one of the closed set of categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryCruise, CategoryFlight, CategoryHotel,
		CategoryExcursion, CategoryOnboard, CategoryOther:
		return true
	}
	return false
}

// ParseExpenseCategory parses a canonical category string. Unlike
// MapExpenseCategory it rejects anything outside the closed set.
func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	c := ExpenseCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown expense category %q", ErrValidation, s)
	}
	return c, nil
}

// MapExpenseCategory maps an arbitrary interchange category string onto
// the closed set. The mapping is total and case-insensitive; it accepts
// both the English canonical names and the German labels used by older
// exports. Anything unrecognized maps to CategoryOther.
func MapExpenseCategory(s string) ExpenseCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excursion", "ausflug":
		return CategoryExcursion
	case "cruise", "kreuzfahrt":
		return CategoryCruise
	case "flight", "flug":
		return CategoryFlight
	case "hotel":
		return CategoryHotel
	case "onboard", "an bord":
		return CategoryOnboard
	default:
		return CategoryOther
	}
}
