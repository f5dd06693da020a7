package handler

import (
	"net/http"
	"strconv"
)

// exportFileName matches the download name the original app used.
const exportFileName = "kreuzfahrten-export.json"

// handleExport implements GET /api/export. It returns the interchange
// JSON document as a file download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.exporter.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
