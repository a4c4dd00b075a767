// Package migrations embeds the goose SQL migrations of the cognet schema.
package migrations

import "embed"

// FS holds every *.sql migration, ordered by goose version prefix.
//
//go:embed *.sql
var FS embed.FS
