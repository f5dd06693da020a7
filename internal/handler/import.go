package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/pkordes/cruiselog/backend/internal/archive"
	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// zipMagic is the local-file-header signature every web-app archive
// starts with. Bodies are sniffed so clients do not have to set a
// correct Content-Type.
var zipMagic = []byte{0x50, 0x4B}

// handleImport implements POST /api/import. The body is either a ZIP
// archive or a bare interchange JSON document; the response reports the
// aggregate imported/skipped counts.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		// MaxBytesReader surfaces oversized bodies as a read error.
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "import payload too large")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "validation_error", "empty request body")
		return
	}

	isArchive := bytes.HasPrefix(body, zipMagic) || r.Header.Get("Content-Type") == "application/zip"

	result, err := func() (any, error) {
		if isArchive {
			return s.importer.ImportArchive(r.Context(), body)
		}
		return s.importer.ImportJSON(r.Context(), body)
	}()
	if err != nil {
		switch {
		case errors.Is(err, archive.ErrFormat):
			writeError(w, http.StatusBadRequest, "invalid_archive", "corrupt or unsupported archive")
		case errors.Is(err, domain.ErrMissingDataFile):
			writeError(w, http.StatusUnprocessableEntity, "missing_data_file", "no data.json found in archive")
		case errors.Is(err, domain.ErrDecode):
			writeError(w, http.StatusUnprocessableEntity, "invalid_document", "malformed interchange document")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "import failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}
