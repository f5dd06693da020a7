package handler

import "net/http"

// handleStats implements GET /api/stats.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
