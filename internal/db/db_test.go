package db

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

const testMigration = `
-- +migrate Down
DROP TABLE IF EXISTS checkpoints;

-- +migrate Up
CREATE TABLE checkpoints (
	id     INTEGER PRIMARY KEY,
	height INTEGER NOT NULL
);
`

func TestOpen_RunsMigrations(t *testing.T) {
	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "mainnet.sqlite")}
	cfg.ApplyDefaults()

	migrations := []Migration{{ID: "001_checkpoints.sql", SQL: testMigration}}

	db, err := Open(cfg, migrations, logger.NewNopLogger())
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO checkpoints (id, height) VALUES (1, 42)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening applies nothing twice
	db, err = Open(cfg, migrations, logger.NewNopLogger())
	require.NoError(t, err)
	defer db.Close()

	var height int
	require.NoError(t, db.QueryRow(`SELECT height FROM checkpoints WHERE id = 1`).Scan(&height))
	require.Equal(t, 42, height)
}

func TestOpen_MissingSeparator(t *testing.T) {
	cfg := config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "broken.sqlite")}
	cfg.ApplyDefaults()

	_, err := Open(cfg, []Migration{{ID: "001_broken.sql", SQL: "CREATE TABLE x (id INTEGER);"}}, logger.NewNopLogger())
	require.ErrorContains(t, err, "missing '-- +migrate Up' separator")
}

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{Path: "/var/lib/swapindexor/mainnet.sqlite", EnableForeignKeys: true}
	cfg.ApplyDefaults()

	got := dsn(cfg)
	require.True(t, strings.HasPrefix(got, "file:/var/lib/swapindexor/mainnet.sqlite?"), got)
	for _, want := range []string{"_txlock=immediate", "_foreign_keys=true", "_journal_mode=WAL", "_synchronous=NORMAL"} {
		require.Contains(t, got, want)
	}
}

func TestVacuum_Modes(t *testing.T) {
	for _, journal := range []string{"DELETE", "TRUNCATE"} {
		t.Run(journal, func(t *testing.T) {
			dbPath := filepath.Join(t.TempDir(), "vacuum.sqlite")
			cfg := config.DatabaseConfig{Path: dbPath, JournalMode: journal}
			cfg.ApplyDefaults()

			db, err := NewSQLiteDBFromConfig(cfg)
			require.NoError(t, err)
			defer db.Close()

			_, err = db.Exec(`CREATE TABLE vouts (id INTEGER PRIMARY KEY, script TEXT)`)
			require.NoError(t, err)
			for range 2000 {
				_, err = db.Exec(`INSERT INTO vouts (script) VALUES (?)`, "6a0a44665478730102030405")
				require.NoError(t, err)
			}
			_, err = db.Exec(`DELETE FROM vouts`)
			require.NoError(t, err)

			before, err := DBTotalSize(dbPath)
			require.NoError(t, err)
			require.NoError(t, Vacuum(db))
			after, err := DBTotalSize(dbPath)
			require.NoError(t, err)

			require.Less(t, after, before)
		})
	}
}

func TestDBTotalSize(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  int64
	}{
		{name: "missing", want: 0},
		{name: "main only", files: map[string]string{"": "main-db-content"}, want: 15},
		{
			name:  "with wal and shm",
			files: map[string]string{"": "main-db", "-wal": "wal-content", "-shm": "shm"},
			want:  7 + 11 + 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mainPath := filepath.Join(t.TempDir(), "main.db")
			for suffix, content := range tt.files {
				require.NoError(t, os.WriteFile(mainPath+suffix, []byte(content), 0o600))
			}

			size, err := DBTotalSize(mainPath)
			require.NoError(t, err)
			require.Equal(t, tt.want, size)
		})
	}
}
