package interchange

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// Decode parses an interchange document. Anything that is not a JSON
// array of the expected shape is a domain.ErrDecode; the caller aborts
// before any record processing.
func Decode(data []byte) ([]ExportCruise, error) {
	var cruises []ExportCruise
	if err := json.Unmarshal(data, &cruises); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}
	return cruises, nil
}

// ToCruise builds a candidate domain cruise from one interchange record.
// imagesDir, when non-empty, is the directory that held data.json; photo
// and port image references are resolved against it. Unresolvable images
// and unparsable sub-item dates are recovered locally — only unparsable
// cruise start/end dates fail the record.
func ToCruise(ec ExportCruise, imagesDir string) (domain.Cruise, error) {
	startDate, err := time.Parse(DateFormat, ec.StartDate)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("interchange.ToCruise: start date %q: %w", ec.StartDate, err)
	}
	endDate, err := time.Parse(DateFormat, ec.EndDate)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("interchange.ToCruise: end date %q: %w", ec.EndDate, err)
	}

	c := domain.Cruise{
		Title:         ec.Title,
		StartDate:     startDate,
		EndDate:       endDate,
		ShippingLine:  ec.ShippingLine,
		Ship:          ec.Ship,
		CabinType:     deref(ec.CabinType),
		CabinNumber:   deref(ec.CabinNumber),
		BookingNumber: deref(ec.BookingNumber),
		Notes:         deref(ec.Notes),
		Rating:        ec.Rating,
	}

	for i, ep := range ec.Route {
		c.Route = append(c.Route, importPort(ep, i, imagesDir))
	}
	for i, ref := range ec.Photos {
		data, ok := resolvePhoto(ref, imagesDir)
		if !ok {
			// Unreadable photo references are dropped without failing
			// the record.
			continue
		}
		c.Photos = append(c.Photos, domain.Photo{ImageData: data, SortOrder: i})
	}
	for _, ee := range ec.Expenses {
		c.Expenses = append(c.Expenses, importExpense(ee))
	}

	return c, nil
}

// importPort maps one route entry; index becomes the new SortOrder.
func importPort(ep ExportPort, index int, imagesDir string) domain.Port {
	name := strings.ToLower(ep.Name)
	isSeaDay := name == "seetag" || name == "sea day" || ep.Lat == nil

	p := domain.Port{
		Name:       ep.Name,
		Country:    deref(ep.Country),
		Latitude:   parseCoordinate(ep.Lat),
		Longitude:  parseCoordinate(ep.Lng),
		SortOrder:  index,
		IsSeaDay:   isSeaDay,
		Excursions: append([]string{}, ep.Excursions...),
	}

	// Newer exports carry full timestamps, older ones carry bare dates.
	// Unparsable values stay at the zero time.
	if t, ok := parsePortTime(ep.Arrival); ok {
		p.Arrival = t
	}
	if t, ok := parsePortTime(ep.Departure); ok {
		p.Departure = t
	}

	if imagesDir != "" && ep.ImageURL != nil {
		// A failed lookup leaves the port without an image; the port
		// itself is still created.
		if data, err := os.ReadFile(filepath.Join(imagesDir, filepath.Clean(*ep.ImageURL))); err == nil {
			p.ImageData = data
		}
	}

	return p
}

func importExpense(ee ExportExpense) domain.Expense {
	e := domain.Expense{
		Category:    domain.MapExpenseCategory(ee.Category),
		Description: deref(ee.Description),
		Amount:      decimal.NewFromFloat(ee.Amount),
	}
	if ee.ExpenseDate != nil {
		if d, err := time.Parse(DateFormat, *ee.ExpenseDate); err == nil {
			e.ExpenseDate = &d
		}
	}
	return e
}

// resolvePhoto decodes a photo reference: either an embedded data URI or
// a file path relative to imagesDir.
func resolvePhoto(ref, imagesDir string) ([]byte, bool) {
	if strings.HasPrefix(ref, "data:image") {
		idx := strings.LastIndex(ref, ",")
		if idx < 0 {
			return nil, false
		}
		data, err := base64.StdEncoding.DecodeString(ref[idx+1:])
		if err != nil {
			return nil, false
		}
		return data, true
	}
	if imagesDir == "" {
		return nil, false
	}
	data, err := os.ReadFile(filepath.Join(imagesDir, filepath.Clean(ref)))
	if err != nil {
		return nil, false
	}
	return data, true
}

// parsePortTime tries the datetime layout first, then the date-only
// layout used by older exports.
func parsePortTime(s string) (time.Time, bool) {
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseCoordinate(s *string) float64 {
	if s == nil {
		return 0
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return 0
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
