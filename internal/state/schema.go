package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS last_file (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			path TEXT NOT NULL,
			opened_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS history (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			artist TEXT,
			position_ms INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_history_updated_at ON history(updated_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
