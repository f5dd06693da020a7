package interchange

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// seaDayName is the canonical route-entry name for a day at sea.
const seaDayName = "Seetag"

// ToInterchange maps the entity graph onto the interchange schema.
// Ports and photos are emitted in SortOrder, identifiers are freshly
// minted, and empty optional strings become null.
func ToInterchange(cruises []domain.Cruise) []ExportCruise {
	now := time.Now()
	out := make([]ExportCruise, 0, len(cruises))
	for _, c := range cruises {
		out = append(out, exportCruise(c, now))
	}
	return out
}

// Encode renders the interchange document: a pretty-printed JSON array
// with sorted keys, matching what the companion web application emits.
func Encode(cruises []domain.Cruise) ([]byte, error) {
	doc, err := json.MarshalIndent(ToInterchange(cruises), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("interchange.Encode: %w", err)
	}
	return doc, nil
}

func exportCruise(c domain.Cruise, now time.Time) ExportCruise {
	cruiseID := "cruise_" + uuid.NewString()

	route := make([]ExportPort, 0, len(c.Route))
	for _, p := range c.SortedRoute() {
		route = append(route, exportPort(p))
	}

	expenses := make([]ExportExpense, 0, len(c.Expenses))
	for _, e := range c.Expenses {
		expenses = append(expenses, exportExpense(e, cruiseID, now))
	}

	// Every photo is embedded as a PNG data URI regardless of the actual
	// image encoding; the web application decodes the base64 payload and
	// ignores the media type.
	photos := make([]string, 0, len(c.Photos))
	for _, p := range c.SortedPhotos() {
		photos = append(photos, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(p.ImageData))
	}

	return ExportCruise{
		BookingNumber: optional(c.BookingNumber),
		CabinNumber:   optional(c.CabinNumber),
		CabinType:     optional(c.CabinType),
		EndDate:       c.EndDate.Format(DateFormat),
		Expenses:      expenses,
		ID:            cruiseID,
		Notes:         optional(c.Notes),
		Photos:        photos,
		Rating:        c.Rating,
		Route:         route,
		Ship:          c.Ship,
		ShippingLine:  c.ShippingLine,
		StartDate:     c.StartDate.Format(DateFormat),
		Title:         c.Title,
	}
}

func exportPort(p domain.Port) ExportPort {
	out := ExportPort{
		Arrival:    p.Arrival.Format(DateTimeFormat),
		Departure:  p.Departure.Format(DateTimeFormat),
		Excursions: append([]string{}, p.Excursions...),
		ID:         "port-" + uuid.NewString(),
		Name:       p.Name,
	}
	if p.IsSeaDay {
		// Sea days carry no country and no coordinates.
		out.Name = seaDayName
		return out
	}
	out.Country = optional(p.Country)
	lat := fmt.Sprintf("%.8f", p.Latitude)
	lng := fmt.Sprintf("%.8f", p.Longitude)
	out.Lat = &lat
	out.Lng = &lng
	return out
}

func exportExpense(e domain.Expense, cruiseID string, now time.Time) ExportExpense {
	amount, _ := e.Amount.Float64()
	out := ExportExpense{
		Amount:    amount,
		Category:  e.Category.String(),
		CreatedAt: now.Format(time.RFC3339),
		CruiseID:  cruiseID,
		ID:        uuid.NewString(),
	}
	out.Description = optional(e.Description)
	if e.ExpenseDate != nil {
		d := e.ExpenseDate.Format(DateFormat)
		out.ExpenseDate = &d
	}
	return out
}

// optional converts an internal empty string to null on the wire.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
