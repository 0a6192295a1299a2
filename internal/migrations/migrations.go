// Package migrations holds the schema of the per-network archive database.
package migrations

import (
	_ "embed"

	"github.com/goran-ethernal/SwapIndexor/internal/db"
)

//go:embed 001_archive_blocks.sql
var mig001 string

//go:embed 002_archive_sync_state.sql
var mig002 string

// All returns the archive migrations in order.
func All() []db.Migration {
	return []db.Migration{
		{
			ID:  "001_archive_blocks.sql",
			SQL: mig001,
		},
		{
			ID:  "002_archive_sync_state.sql",
			SQL: mig002,
		},
	}
}
