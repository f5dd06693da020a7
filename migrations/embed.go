// Package migrations embeds the cruise logbook schema migrations for
// the goose programmatic API, used by server bootstrap and the repo
// integration tests.
package migrations

import "embed"

// FS holds the *.sql migration files embedded at compile time, so the
// binary never depends on a migrations directory being present on disk.
//
//go:embed *.sql
var FS embed.FS
