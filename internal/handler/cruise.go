package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// handleListCruises implements GET /api/cruises.
func (s *Server) handleListCruises(w http.ResponseWriter, r *http.Request) {
	cruises, err := s.cruises.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to list cruises")
		return
	}
	writeJSON(w, http.StatusOK, cruises)
}

// handleCreateCruise implements POST /api/cruises. The body is a cruise
// aggregate; children are persisted with it.
func (s *Server) handleCreateCruise(w http.ResponseWriter, r *http.Request) {
	var cruise domain.Cruise
	if err := json.NewDecoder(r.Body).Decode(&cruise); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}

	created, err := s.cruises.Create(r.Context(), cruise)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to create cruise")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleGetCruise implements GET /api/cruises/{id}.
func (s *Server) handleGetCruise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid cruise id")
		return
	}

	cruise, err := s.cruises.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "cruise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load cruise")
		return
	}
	writeJSON(w, http.StatusOK, cruise)
}

// handleDeleteCruise implements DELETE /api/cruises/{id}. Deleting a
// cruise discards the whole aggregate, children included.
func (s *Server) handleDeleteCruise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "invalid cruise id")
		return
	}

	if err := s.cruises.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "cruise not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete cruise")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
