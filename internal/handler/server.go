// Package handler implements the HTTP handlers for the cruise logbook
// API. All handlers are methods on Server; they are split into
// domain-specific files (cruise.go, export.go, import.go, ...) but share
// the same struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/domain"
	"github.com/pkordes/cruiselog/backend/internal/extract"
	"github.com/pkordes/cruiselog/backend/internal/service"
)

// CruiseServicer defines the business operations the cruise handlers
// depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types".
// It lets handler tests inject a mock without touching the database or
// service layer.
type CruiseServicer interface {
	Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error)
	List(ctx context.Context) ([]domain.Cruise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Exporter renders the store as an interchange document.
type Exporter interface {
	Export(ctx context.Context) ([]byte, error)
}

// Importer ingests interchange archives and documents.
type Importer interface {
	ImportArchive(ctx context.Context, buf []byte) (service.ImportResult, error)
	ImportJSON(ctx context.Context, doc []byte) (service.ImportResult, error)
}

// Statser computes the dashboard summary.
type Statser interface {
	Summary(ctx context.Context) (service.Stats, error)
}

// TextExtractor turns pasted booking text into prefilled cruise fields.
// It is an optional dependency; a nil extractor disables the endpoint.
type TextExtractor interface {
	ExtractCruise(ctx context.Context, text string) (extract.CruiseDetails, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	cruises   CruiseServicer
	exporter  Exporter
	importer  Importer
	stats     Statser
	extractor TextExtractor
}

// NewServer constructs the Server with all its dependencies. extractor
// may be nil when no API key is configured.
func NewServer(cruises CruiseServicer, exporter Exporter, importer Importer, stats Statser, extractor TextExtractor) *Server {
	return &Server{
		cruises:   cruises,
		exporter:  exporter,
		importer:  importer,
		stats:     stats,
		extractor: extractor,
	}
}

// Routes returns the API router. Mount it at the server root.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/cruises", s.handleListCruises)
		r.Post("/cruises", s.handleCreateCruise)
		r.Get("/cruises/{id}", s.handleGetCruise)
		r.Delete("/cruises/{id}", s.handleDeleteCruise)
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Get("/stats", s.handleStats)
		r.Post("/extract", s.handleExtract)
	})
	return r
}
