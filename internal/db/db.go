// Package db opens the SQLite databases of the archive and keeps them healthy.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/goran-ethernal/SwapIndexor/internal/logger"
	"github.com/goran-ethernal/SwapIndexor/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// dsn builds the go-sqlite3 connection string. Options in the DSN apply to every pooled
// connection.
func dsn(cfg config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("_txlock", "immediate")
	q.Set("_foreign_keys", strconv.FormatBool(cfg.EnableForeignKeys))
	q.Set("_busy_timeout", strconv.Itoa(cfg.BusyTimeout))
	if cfg.JournalMode != "" {
		q.Set("_journal_mode", cfg.JournalMode)
	}
	if cfg.Synchronous != "" {
		q.Set("_synchronous", cfg.Synchronous)
	}
	return "file:" + cfg.Path + "?" + q.Encode()
}

// NewSQLiteDBFromConfig opens a SQLite database with the given configuration.
func NewSQLiteDBFromConfig(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConnections)
	db.SetMaxIdleConns(cfg.MaxIdleConnections)

	if cfg.CacheSize != 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize)); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set cache size: %w", err)
		}
	}

	return db, nil
}

// Open opens the database described by cfg and brings its schema up to date.
func Open(cfg config.DatabaseConfig, migrations []Migration, log *logger.Logger) (*sql.DB, error) {
	db, err := NewSQLiteDBFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(log, db, migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", cfg.Path, err)
	}

	return db, nil
}
