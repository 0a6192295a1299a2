package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	migrate "github.com/rubenv/sql-migrate"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded schema change. SQL holds the down section first and the up
// section after the "-- +migrate Up" marker.
type Migration struct {
	ID  string
	SQL string
}

func (m Migration) parse() (*migrate.Migration, error) {
	down, up, ok := strings.Cut(m.SQL, upMarker)
	if !ok {
		return nil, fmt.Errorf("migration %s missing '%s' separator", m.ID, upMarker)
	}
	if _, after, found := strings.Cut(down, downMarker); found {
		down = after
	}

	return &migrate.Migration{
		Id:   m.ID,
		Up:   []string{strings.TrimSpace(up)},
		Down: []string{strings.TrimSpace(down)},
	}, nil
}

// Migrate applies every pending migration on db.
func Migrate(log *logger.Logger, db *sql.DB, migrations []Migration) error {
	source := &migrate.MemoryMigrationSource{}
	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		parsed, err := m.parse()
		if err != nil {
			return err
		}
		source.Migrations = append(source.Migrations, parsed)
		ids = append(ids, m.ID)
	}

	applied, err := migrate.Exec(db, "sqlite3", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("failed to run migrations [%s]: %w", strings.Join(ids, ", "), err)
	}

	log.Debugw("migrations applied", "applied", applied, "known", len(ids))
	return nil
}
