package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
	"github.com/pkordes/cruiselog/backend/internal/repo"
)

var _ repo.CruiseRepo = (*mockCruiseRepo)(nil)

// mockCruiseRepo satisfies repo.CruiseRepo through settable function
// fields. Unset methods return zero values.
type mockCruiseRepo struct {
	createFn      func(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error)
	createBatchFn func(ctx context.Context, cruises []domain.Cruise) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (domain.Cruise, error)
	listFn        func(ctx context.Context) ([]domain.Cruise, error)
	deleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCruiseRepo) Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
	if m.createFn == nil {
		return domain.Cruise{}, nil
	}
	return m.createFn(ctx, cruise)
}

func (m *mockCruiseRepo) CreateBatch(ctx context.Context, cruises []domain.Cruise) error {
	if m.createBatchFn == nil {
		return nil
	}
	return m.createBatchFn(ctx, cruises)
}

func (m *mockCruiseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error) {
	if m.getByIDFn == nil {
		return domain.Cruise{}, nil
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockCruiseRepo) List(ctx context.Context) ([]domain.Cruise, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockCruiseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}
