package domain

import (
	"time"

	"github.com/google/uuid"
)

// Port is a single call on a cruise route. A sea day is represented as a
// port record with IsSeaDay set: it has no country and no meaningful
// coordinates.
type Port struct {
	ID        uuid.UUID `json:"id"`
	CruiseID  uuid.UUID `json:"cruise_id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`

	// SortOrder defines the route order. It is unique within a cruise and
	// ascending with the route index.
	SortOrder int `json:"sort_order"`

	IsSeaDay   bool     `json:"is_sea_day"`
	Excursions []string `json:"excursions,omitempty"`

	// ImageData is an optional picture of the port. Excluded from JSON
	// responses; clients fetch images through the export archive.
	ImageData []byte `json:"-"`
}

// HasValidCoordinates reports whether the port can be placed on a map:
// it is not a sea day and its coordinates are not the (0,0) placeholder.
func (p Port) HasValidCoordinates() bool {
	return !p.IsSeaDay && !(p.Latitude == 0 && p.Longitude == 0)
}

// StayDuration returns the whole hours between arrival and departure,
// never negative.
func (p Port) StayDuration() int {
	hours := int(p.Departure.Sub(p.Arrival).Hours())
	if hours < 0 {
		return 0
	}
	return hours
}
