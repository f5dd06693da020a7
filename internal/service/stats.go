package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/cruiselog/backend/internal/domain"
	"github.com/pkordes/cruiselog/backend/internal/repo"
)

// Stats is the dashboard summary over the whole store.
type Stats struct {
	Cruises       int                        `json:"cruises"`
	Ports         int                        `json:"ports"`
	SeaDays       int                        `json:"sea_days"`
	Countries     int                        `json:"countries"`
	Photos        int                        `json:"photos"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	ByCategory    map[string]decimal.Decimal `json:"expenses_by_category"`
}

// StatsService aggregates dashboard numbers from the cruise store.
type StatsService struct {
	cruises repo.CruiseRepo
}

// NewStatsService constructs a StatsService backed by the provided repo.
func NewStatsService(cruises repo.CruiseRepo) *StatsService {
	return &StatsService{cruises: cruises}
}

// Summary computes totals across all cruises. Sea days do not count as
// port calls and contribute no country.
func (s *StatsService) Summary(ctx context.Context) (Stats, error) {
	cruises, err := s.cruises.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}

	stats := Stats{
		Cruises:       len(cruises),
		TotalExpenses: decimal.Zero,
		ByCategory:    make(map[string]decimal.Decimal, len(domain.Categories)),
	}
	countries := make(map[string]bool)

	for _, c := range cruises {
		stats.Photos += len(c.Photos)
		for _, p := range c.Route {
			if p.IsSeaDay {
				stats.SeaDays++
				continue
			}
			stats.Ports++
			if p.Country != "" {
				countries[p.Country] = true
			}
		}
		for _, e := range c.Expenses {
			stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
			key := e.Category.String()
			stats.ByCategory[key] = stats.ByCategory[key].Add(e.Amount)
		}
	}
	stats.Countries = len(countries)
	return stats, nil
}
