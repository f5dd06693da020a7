package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

func TestListCruises(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		listFn: func(ctx context.Context) ([]domain.Cruise, error) {
			return []domain.Cruise{{Title: "Mittelmeer"}, {Title: "Ostsee"}}, nil
		},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/cruises", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var cruises []domain.Cruise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cruises))
	require.Len(t, cruises, 2)
	assert.Equal(t, "Mittelmeer", cruises[0].Title)
}

func TestCreateCruise(t *testing.T) {
	id := uuid.New()
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		createFn: func(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
			cruise.ID = id
			return cruise, nil
		},
	}})

	body := `{"title":"Mittelmeer","ship":"Mein Schiff 4","start_date":"2024-05-01T00:00:00Z","end_date":"2024-05-08T00:00:00Z"}`
	rec := doRequest(t, h, http.MethodPost, "/api/cruises", body, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Cruise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, id, created.ID)
	assert.Equal(t, "Mittelmeer", created.Title)
}

func TestCreateCruise_malformedBody(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{}})

	rec := doRequest(t, h, http.MethodPost, "/api/cruises", `{"title":`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateCruise_validationFailure(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		createFn: func(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
			return domain.Cruise{}, fmt.Errorf("service.CruiseService.Create: %w: title is required", domain.ErrValidation)
		},
	}})

	rec := doRequest(t, h, http.MethodPost, "/api/cruises", `{"ship":"X"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "title is required", resp.Error.Message)
}

func TestGetCruise(t *testing.T) {
	id := uuid.New()
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		getByIDFn: func(ctx context.Context, got uuid.UUID) (domain.Cruise, error) {
			assert.Equal(t, id, got)
			return domain.Cruise{ID: id, Title: "Mittelmeer", StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}, nil
		},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/cruises/"+id.String(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCruise_notFound(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		getByIDFn: func(ctx context.Context, id uuid.UUID) (domain.Cruise, error) {
			return domain.Cruise{}, domain.ErrNotFound
		},
	}})

	rec := doRequest(t, h, http.MethodGet, "/api/cruises/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetCruise_invalidID(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{}})

	rec := doRequest(t, h, http.MethodGet, "/api/cruises/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCruise(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}})

	rec := doRequest(t, h, http.MethodDelete, "/api/cruises/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteCruise_notFound(t *testing.T) {
	h := newTestServer(serverDeps{cruises: &mockCruiseService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return domain.ErrNotFound },
	}})

	rec := doRequest(t, h, http.MethodDelete, "/api/cruises/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
