// Package domain contains the core data types for the cruise logbook.
// This package has zero external dependencies beyond ids and decimal
// arithmetic and is imported by every other internal package (archive,
// interchange, repo, service, handler).
package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cruise is the aggregate root of the entity graph. It owns its route,
// expenses, and photos by value: deleting a cruise discards all children
// with it, and no child has a lifetime of its own.
type Cruise struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	ShippingLine  string    `json:"shipping_line"`
	Ship          string    `json:"ship"`
	CabinType     string    `json:"cabin_type,omitempty"`
	CabinNumber   string    `json:"cabin_number,omitempty"`
	BookingNumber string    `json:"booking_number,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Rating        int       `json:"rating"` // 0–5 stars

	Route    []Port    `json:"route,omitempty"`
	Expenses []Expense `json:"expenses,omitempty"`
	Photos   []Photo   `json:"photos,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration returns the length of the cruise in days, counting both the
// start and the end day.
func (c Cruise) Duration() int {
	days := int(c.EndDate.Sub(c.StartDate).Hours() / 24)
	return days + 1
}

// TotalExpenses sums the amounts of all expenses on the cruise.
func (c Cruise) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SortedRoute returns the ports ordered by SortOrder ascending.
// The receiver's slice is not modified.
func (c Cruise) SortedRoute() []Port {
	route := make([]Port, len(c.Route))
	copy(route, c.Route)
	sort.SliceStable(route, func(i, j int) bool { return route[i].SortOrder < route[j].SortOrder })
	return route
}

// SortedPhotos returns the photos ordered by SortOrder ascending.
// SortOrder is not guaranteed unique across photos, so the sort is stable.
func (c Cruise) SortedPhotos() []Photo {
	photos := make([]Photo, len(c.Photos))
	copy(photos, c.Photos)
	sort.SliceStable(photos, func(i, j int) bool { return photos[i].SortOrder < photos[j].SortOrder })
	return photos
}
