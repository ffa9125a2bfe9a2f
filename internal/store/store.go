// Package store persists host-side data in SQLite: saved settings, the trade
// watchlist, and simulation run history. The analytics engine never touches
// this package; the CLI reads settings out and passes explicit values in.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database connection.
type Store struct {
	sql *sql.DB
}

// Open opens (or creates) the SQLite database in dir and runs migrations.
func Open(dir string) (*Store, error) {
	path := filepath.Join(dir, "evetrade.db")
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	s := &Store{sql: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.sql.Close()
}

func (s *Store) migrate() error {
	version := 0
	// Try to read current version; absent table means a fresh database.
	s.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := s.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS watchlist (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				label      TEXT NOT NULL,
				buy_price  REAL NOT NULL,
				sell_price REAL NOT NULL,
				volume     INTEGER NOT NULL,
				quantity   INTEGER NOT NULL,
				note       TEXT NOT NULL DEFAULT '',
				added_at   TEXT NOT NULL
			);

			CREATE TABLE IF NOT EXISTS sim_runs (
				id                  INTEGER PRIMARY KEY AUTOINCREMENT,
				ran_at              TEXT NOT NULL,
				buy_price           REAL NOT NULL,
				sell_price          REAL NOT NULL,
				daily_market_volume INTEGER NOT NULL,
				order_quantity      INTEGER NOT NULL,
				competitor_count    INTEGER NOT NULL,
				days                INTEGER NOT NULL,
				initial_margin      REAL NOT NULL,
				final_margin        REAL NOT NULL,
				total_profit        REAL NOT NULL,
				success_probability REAL NOT NULL
			);

			INSERT INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}
	return nil
}
