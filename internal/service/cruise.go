package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
	"github.com/pkordes/cruiselog/backend/internal/repo"
)

// CruiseService implements business logic for cruise aggregates.
type CruiseService struct {
	repo repo.CruiseRepo
}

// NewCruiseService constructs a CruiseService backed by the provided repo.
func NewCruiseService(r repo.CruiseRepo) *CruiseService {
	return &CruiseService{repo: r}
}

// Create validates and persists a new cruise with all its children.
// Returns domain.ErrValidation if input violates business rules.
func (s *CruiseService) Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
	if err := validateCruise(cruise); err != nil {
		return domain.Cruise{}, err
	}
	result, err := s.repo.Create(ctx, cruise)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("service.CruiseService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single cruise aggregate by ID.
// Returns domain.ErrNotFound if no cruise with that ID exists.
func (s *CruiseService) GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("service.CruiseService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all cruises, most recent start date first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *CruiseService) List(ctx context.Context) ([]domain.Cruise, error) {
	cruises, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CruiseService.List: %w", err)
	}
	if cruises == nil {
		return []domain.Cruise{}, nil
	}
	return cruises, nil
}

// Delete removes a cruise and, through aggregate ownership, all its
// ports, expenses, and photos. Returns domain.ErrNotFound if it does
// not exist.
func (s *CruiseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CruiseService.Delete: %w", err)
	}
	return nil
}

// validateCruise enforces business rules on a cruise aggregate.
//   - Title and ship must be non-empty.
//   - End date must not be before start date.
//   - Rating must be within 0–5.
//   - Port sort orders must be unique within the route.
func validateCruise(cruise domain.Cruise) error {
	if strings.TrimSpace(cruise.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(cruise.Ship) == "" {
		return fmt.Errorf("%w: ship is required", domain.ErrValidation)
	}
	if cruise.EndDate.Before(cruise.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if cruise.Rating < 0 || cruise.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	seen := make(map[int]bool, len(cruise.Route))
	for _, p := range cruise.Route {
		if seen[p.SortOrder] {
			return fmt.Errorf("%w: duplicate port sort_order %d", domain.ErrValidation, p.SortOrder)
		}
		seen[p.SortOrder] = true
	}
	return nil
}
