// Package interchange implements the bidirectional transcoder between
// the domain entity graph and the versioned JSON interchange schema
// shared with the companion web application.
//
// The schema is transport-only and string-typed: dates, times, and
// coordinates all cross the wire as strings, optional fields as null.
// Every export mints fresh identifiers; no identity survives a round
// trip, which is why import deduplication works on a field heuristic
// instead.
package interchange

// Date and time layouts used across the interchange schema.
const (
	// DateFormat is the day-granularity layout for cruise start/end and
	// expense dates.
	DateFormat = "2006-01-02"

	// DateTimeFormat is the local (no offset) layout for port arrival
	// and departure times.
	DateTimeFormat = "2006-01-02T15:04:05"
)

// Struct fields below are declared in alphabetical key order so that
// encoding/json emits sorted keys, keeping exports byte-for-byte
// deterministic apart from freshly minted ids and timestamps.

// ExportCruise is one cruise in the interchange document. Optional
// fields are emitted as JSON null, never as empty strings.
type ExportCruise struct {
	BookingNumber *string         `json:"bookingNumber"`
	CabinNumber   *string         `json:"cabinNumber"`
	CabinType     *string         `json:"cabinType"`
	EndDate       string          `json:"endDate"`
	Expenses      []ExportExpense `json:"expenses"`
	ID            string          `json:"id"`
	Notes         *string         `json:"notes"`
	Photos        []string        `json:"photos"`
	Rating        int             `json:"rating"`
	Route         []ExportPort    `json:"route"`
	Ship          string          `json:"ship"`
	ShippingLine  string          `json:"shippingLine"`
	StartDate     string          `json:"startDate"`
	Title         string          `json:"title"`
}

// ExportPort is one route entry. A sea day carries the name "Seetag" and
// null country and coordinates.
type ExportPort struct {
	Arrival    string   `json:"arrival"`
	Country    *string  `json:"country"`
	Departure  string   `json:"departure"`
	Excursions []string `json:"excursions"`
	ID         string   `json:"id"`
	ImageURL   *string  `json:"imageUrl"`
	Lat        *string  `json:"lat"`
	Lng        *string  `json:"lng"`
	Name       string   `json:"name"`
}

// ExportExpense is one expense row. Category is the lexical form mapped
// through domain.MapExpenseCategory on import.
type ExportExpense struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"createdAt"`
	CruiseID    string  `json:"cruiseId"`
	Description *string `json:"description"`
	ExpenseDate *string `json:"expenseDate"`
	ID          string  `json:"id"`
}
