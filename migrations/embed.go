// Package migrations embeds the goose SQL migrations so the server and the
// integration tests can apply them without a filesystem path at runtime.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
