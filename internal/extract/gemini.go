// Package extract implements the booking-confirmation text extractor,
// an external collaborator of the core: it turns pasted free text into
// prefilled cruise fields. The core never owns the API key — it is
// injected at construction.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// CruiseDetails is what the extractor hands back to the app. All fields
// are optional; dates use the "2006-01-02" layout and times "15:04".
type CruiseDetails struct {
	Title         string        `json:"title"`
	ShippingLine  string        `json:"shippingLine"`
	Ship          string        `json:"ship"`
	StartDate     string        `json:"startDate"`
	EndDate       string        `json:"endDate"`
	CabinType     string        `json:"cabinType"`
	CabinNumber   string        `json:"cabinNumber"`
	BookingNumber string        `json:"bookingNumber"`
	Ports         []PortDetails `json:"ports"`
}

// PortDetails is one extracted route entry.
type PortDetails struct {
	Name          string `json:"name"`
	Country       string `json:"country"`
	ArrivalDate   string `json:"arrivalDate"`
	ArrivalTime   string `json:"arrivalTime"`
	DepartureDate string `json:"departureDate"`
	DepartureTime string `json:"departureTime"`
	IsSeaDay      bool   `json:"isSeaDay"`
}

const model = "gemini-2.5-flash"

const promptTemplate = `Analysiere den folgenden Text einer Kreuzfahrt-Buchung und extrahiere die Daten.
Antworte NUR im JSON-Format ohne Markdown-Formatierung:

{
  "title": "Titel der Reise",
  "shippingLine": "Name der Reederei",
  "ship": "Name des Schiffs",
  "startDate": "YYYY-MM-DD",
  "endDate": "YYYY-MM-DD",
  "cabinType": "Art der Kabine",
  "cabinNumber": "Kabinennummer",
  "bookingNumber": "Buchungsnummer",
  "ports": [
    {
      "name": "Hafenname oder Seetag",
      "country": "Land (leer bei Seetag)",
      "arrivalDate": "YYYY-MM-DD",
      "arrivalTime": "HH:MM",
      "departureDate": "YYYY-MM-DD",
      "departureTime": "HH:MM",
      "isSeaDay": false
    }
  ]
}

WICHTIG:
- Falls ein Feld nicht gefunden wird, lasse es leer
- Bei "Seetag", "Tag auf See", "Sea Day" etc.: setze isSeaDay auf true, name auf "Seetag"
- arrivalDate/departureDate im Format YYYY-MM-DD, Zeiten im Format HH:MM (24h)

Text zur Analyse:
%s`

// GeminiExtractor extracts cruise details with the Gemini API.
type GeminiExtractor struct {
	client *genai.Client
}

// NewGeminiExtractor builds an extractor for the given API key.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("extract.NewGeminiExtractor: %w", err)
	}
	return &GeminiExtractor{client: client}, nil
}

// ExtractCruise sends the booking text to the model and parses the JSON
// reply. Markdown code fences around the JSON are tolerated.
func (g *GeminiExtractor) ExtractCruise(ctx context.Context, text string) (CruiseDetails, error) {
	prompt := fmt.Sprintf(promptTemplate, text)

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return CruiseDetails{}, fmt.Errorf("extract.GeminiExtractor.ExtractCruise: %w", err)
	}

	var details CruiseDetails
	if err := json.Unmarshal([]byte(stripFences(resp.Text())), &details); err != nil {
		return CruiseDetails{}, fmt.Errorf("extract.GeminiExtractor.ExtractCruise: parse reply: %w", err)
	}
	return details, nil
}

// stripFences cuts the reply down to the outermost JSON object, dropping
// any surrounding prose or ```json fences the model may emit despite the
// prompt.
func stripFences(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
