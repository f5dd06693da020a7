package repo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// MemCruiseRepo is an in-memory CruiseRepo. It backs service tests and
// DB-less deployments with real commit semantics: CreateBatch either
// stores the whole batch or nothing.
type MemCruiseRepo struct {
	mu      sync.Mutex
	cruises map[uuid.UUID]domain.Cruise
}

// NewMemCruiseRepo returns an empty in-memory store.
func NewMemCruiseRepo() *MemCruiseRepo {
	return &MemCruiseRepo{cruises: make(map[uuid.UUID]domain.Cruise)}
}

var _ CruiseRepo = (*MemCruiseRepo)(nil)

func (r *MemCruiseRepo) Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store(cruise), nil
}

func (r *MemCruiseRepo) CreateBatch(ctx context.Context, cruises []domain.Cruise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range cruises {
		r.store(c)
	}
	return nil
}

func (r *MemCruiseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cruises[id]
	if !ok {
		return domain.Cruise{}, fmt.Errorf("repo.MemCruiseRepo.GetByID: %w", domain.ErrNotFound)
	}
	return c, nil
}

func (r *MemCruiseRepo) List(ctx context.Context) ([]domain.Cruise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Cruise, 0, len(r.cruises))
	for _, c := range r.cruises {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *MemCruiseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cruises[id]; !ok {
		return fmt.Errorf("repo.MemCruiseRepo.Delete: %w", domain.ErrNotFound)
	}
	// Children live inside the aggregate, so deleting the cruise is the
	// whole cascade.
	delete(r.cruises, id)
	return nil
}

// store assigns ids and timestamps and keeps the aggregate. Caller holds
// the lock.
func (r *MemCruiseRepo) store(c domain.Cruise) domain.Cruise {
	now := time.Now()
	c.ID = uuid.New()
	c.CreatedAt = now
	c.UpdatedAt = now
	for i := range c.Route {
		c.Route[i].ID = uuid.New()
		c.Route[i].CruiseID = c.ID
	}
	for i := range c.Expenses {
		c.Expenses[i].ID = uuid.New()
		c.Expenses[i].CruiseID = c.ID
		c.Expenses[i].CreatedAt = now
	}
	for i := range c.Photos {
		c.Photos[i].ID = uuid.New()
		c.Photos[i].CruiseID = c.ID
		c.Photos[i].CreatedAt = now
	}
	r.cruises[c.ID] = c
	return c
}
