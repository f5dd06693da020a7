package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/cruiselog/backend/internal/archive"
	"github.com/pkordes/cruiselog/backend/internal/domain"
	"github.com/pkordes/cruiselog/backend/internal/interchange"
	"github.com/pkordes/cruiselog/backend/internal/repo"
)

// dataFileName is the interchange document the web application places at
// the archive root or inside a single nested directory.
const dataFileName = "data.json"

// ImportResult is the aggregate outcome of one import. Skipped counts
// both detected duplicates and records whose cruise dates could not be
// parsed; there are no per-item diagnostics.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService drives archive extraction, duplicate detection, and the
// all-or-nothing batch commit.
//
// Exports mint fresh identifiers every time, so no identity survives a
// round trip: duplicate detection relies purely on the title / start day
// / ship heuristic, and independent edits made on two devices are never
// merged.
type ImportService struct {
	cruises repo.CruiseRepo
}

// NewImportService constructs an ImportService backed by the provided repo.
func NewImportService(cruises repo.CruiseRepo) *ImportService {
	return &ImportService{cruises: cruises}
}

// ImportArchive imports cruises from a ZIP archive produced by the web
// application. Archive-structural errors (archive.ErrFormat) and schema
// errors (domain.ErrDecode, domain.ErrMissingDataFile) abort with zero
// side effects. The temporary extraction directory is removed on every
// exit path.
func (s *ImportService) ImportArchive(ctx context.Context, buf []byte) (ImportResult, error) {
	// Parse before touching the filesystem so a corrupt archive leaves
	// nothing behind, not even transiently.
	entries, err := archive.Parse(buf)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "cruiselog-import-"+uuid.NewString())
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := extractTo(tempDir, entries); err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: %w", err)
	}

	dataPath, err := findDataFile(tempDir)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: %w", err)
	}

	doc, err := os.ReadFile(dataPath)
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: %w", err)
	}

	result, err := s.importJSON(ctx, doc, filepath.Dir(dataPath))
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportArchive: %w", err)
	}
	return result, nil
}

// ImportJSON imports cruises from a bare interchange document. Photo and
// image references that are not embedded data URIs cannot be resolved
// and are dropped.
func (s *ImportService) ImportJSON(ctx context.Context, doc []byte) (ImportResult, error) {
	result, err := s.importJSON(ctx, doc, "")
	if err != nil {
		return ImportResult{}, fmt.Errorf("service.ImportService.ImportJSON: %w", err)
	}
	return result, nil
}

func (s *ImportService) importJSON(ctx context.Context, doc []byte, imagesDir string) (ImportResult, error) {
	records, err := interchange.Decode(doc)
	if err != nil {
		return ImportResult{}, err
	}

	existing, err := s.cruises.List(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	var batch []domain.Cruise
	for _, rec := range records {
		candidate, err := interchange.ToCruise(rec, imagesDir)
		if err != nil {
			// Unparsable cruise dates skip the record, not the batch.
			result.Skipped++
			continue
		}
		if isDuplicate(candidate, existing) {
			result.Skipped++
			continue
		}
		batch = append(batch, candidate)
		result.Imported++
	}

	// Single commit for the whole batch: a failure here persists nothing.
	if len(batch) > 0 {
		if err := s.cruises.CreateBatch(ctx, batch); err != nil {
			return ImportResult{}, err
		}
	}
	return result, nil
}

// isDuplicate reports whether a candidate matches an existing cruise:
// exact title, start date on the same calendar day, and ship compared
// case-insensitively.
func isDuplicate(candidate domain.Cruise, existing []domain.Cruise) bool {
	for _, e := range existing {
		if e.Title == candidate.Title &&
			sameDay(e.StartDate, candidate.StartDate) &&
			strings.EqualFold(e.Ship, candidate.Ship) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// extractTo writes file entries below dir. Directory entries and entries
// without a payload (unsupported compression method) are skipped, as is
// any path that would escape the extraction directory.
func extractTo(dir string, entries []archive.Entry) error {
	for _, e := range entries {
		if e.Kind != archive.KindFile || e.Payload == nil {
			continue
		}
		dest := filepath.Join(dir, filepath.FromSlash(e.Path))
		if !strings.HasPrefix(dest, dir+string(os.PathSeparator)) {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("extract %q: %w", e.Path, err)
		}
		if err := os.WriteFile(dest, e.Payload, 0o644); err != nil {
			return fmt.Errorf("extract %q: %w", e.Path, err)
		}
	}
	return nil
}

// findDataFile looks for data.json at the extraction root, then one
// directory down. Returns domain.ErrMissingDataFile when absent.
func findDataFile(dir string) (string, error) {
	root := filepath.Join(dir, dataFileName)
	if _, err := os.Stat(root); err == nil {
		return root, nil
	}

	items, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		nested := filepath.Join(dir, item.Name(), dataFileName)
		if _, err := os.Stat(nested); err == nil {
			return nested, nil
		}
	}
	return "", domain.ErrMissingDataFile
}
