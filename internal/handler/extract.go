package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// extractRequest is the body of POST /api/extract.
type extractRequest struct {
	Text string `json:"text"`
}

// handleExtract implements POST /api/extract: booking-confirmation text
// in, prefilled cruise fields out. Responds 503 when no extractor is
// configured.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		writeError(w, http.StatusServiceUnavailable, "extractor_unavailable", "no extraction API key configured")
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", "malformed request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "text is required")
		return
	}

	details, err := s.extractor.ExtractCruise(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, "extraction_failed", "text extraction failed")
		return
	}
	writeJSON(w, http.StatusOK, details)
}
