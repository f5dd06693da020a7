// Package service contains the business logic for the cruise logbook.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/cruiselog/backend/internal/interchange"
	"github.com/pkordes/cruiselog/backend/internal/repo"
)

// ExportService renders the whole store as an interchange document.
type ExportService struct {
	cruises repo.CruiseRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(cruises repo.CruiseRepo) *ExportService {
	return &ExportService{cruises: cruises}
}

// Export returns the interchange JSON document for all cruises: a
// pretty-printed array with sorted keys, byte-for-byte deterministic
// across runs except for freshly minted ids and createdAt timestamps.
func (s *ExportService) Export(ctx context.Context) ([]byte, error) {
	cruises, err := s.cruises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	doc, err := interchange.Encode(cruises)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return doc, nil
}
