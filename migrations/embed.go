// Package migrations embeds the Postgres schema migration files.
package migrations

import "embed"

// FS holds every SQL migration, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
