package handler

import "net/http"

// handleHealth implements GET /healthz. It returns HTTP 200 with
// {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
