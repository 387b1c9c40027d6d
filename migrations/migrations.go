// Package migrations embeds the SQLite schema.
package migrations

import "embed"

// FS holds the *.up.sql files applied at start-up.
//
//go:embed *.sql
var FS embed.FS

// Initial is the name of the schema migration.
const Initial = "001_initial_schema.up.sql"
