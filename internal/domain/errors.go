package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingDataFile is returned by the import orchestrator when an
// extracted archive contains no data.json at its root or one directory
// down. The import aborts before any parsing.
var ErrMissingDataFile = errors.New("no data.json found in archive")

// ErrDecode is returned when the interchange JSON is not an array of the
// expected shape. The import aborts before any record processing.
var ErrDecode = errors.New("malformed interchange document")
