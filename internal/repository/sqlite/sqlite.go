// Package sqlite implements the repository interfaces on an embedded SQLite
// database. modernc.org/sqlite is a pure Go driver, so no C toolchain is
// needed and ":memory:" databases keep the tests self-contained.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// DB wraps the connection pool and exposes one store per entity. Each store
// implements the matching repository interface; they share the pool.
type DB struct {
	conn *sql.DB

	Descriptions *DescriptionStore
	Saved        *SavedDescriptionStore
	Corrections  *CorrectionStore
	Prompts      *PromptStore
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for a throwaway in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{
		conn:         conn,
		Descriptions: &DescriptionStore{conn: conn},
		Saved:        &SavedDescriptionStore{conn: conn},
		Corrections:  &CorrectionStore{conn: conn},
		Prompts:      &PromptStore{conn: conn},
	}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS descriptions (
			id                    TEXT PRIMARY KEY,
			description_type      TEXT NOT NULL,
			input_text            TEXT NOT NULL,
			generated_description TEXT NOT NULL,
			tokens_used           INTEGER,
			model_version         TEXT NOT NULL DEFAULT '',
			processing_time       REAL NOT NULL DEFAULT 0,
			created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_descriptions_created_at ON descriptions(created_at);

		CREATE TABLE IF NOT EXISTS saved_descriptions (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			content          TEXT NOT NULL,
			description_type TEXT NOT NULL,
			category         TEXT NOT NULL DEFAULT '',
			tags             TEXT NOT NULL DEFAULT '[]',
			is_public        INTEGER NOT NULL DEFAULT 0,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_saved_created_at ON saved_descriptions(created_at);

		CREATE TABLE IF NOT EXISTS corrections (
			id               TEXT PRIMARY KEY,
			original_text    TEXT NOT NULL,
			corrected_text   TEXT NOT NULL,
			description_type TEXT NOT NULL,
			correction_type  TEXT NOT NULL DEFAULT 'general',
			description_id   TEXT REFERENCES descriptions(id),
			notes            TEXT NOT NULL DEFAULT '',
			is_applied       INTEGER NOT NULL DEFAULT 0,
			created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_corrections_created_at ON corrections(created_at);

		CREATE TABLE IF NOT EXISTS prompts (
			id          TEXT PRIMARY KEY,
			prompt_type TEXT NOT NULL,
			title       TEXT NOT NULL,
			content     TEXT NOT NULL,
			is_active   INTEGER NOT NULL DEFAULT 0,
			version     INTEGER NOT NULL DEFAULT 1,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_prompts_type ON prompts(prompt_type);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}
