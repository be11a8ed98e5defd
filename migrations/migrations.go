// Package migrations embeds the PostgreSQL schema. Files are applied in name
// order; each NNNN_name.sql has a NNNN_name_rollback.sql companion.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
