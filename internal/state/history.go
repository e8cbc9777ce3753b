package state

import (
	"database/sql"
	"errors"
	"time"
)

// Entry is one listened file.
type Entry struct {
	Path      string
	Title     string
	Artist    string
	Position  time.Duration
	UpdatedAt time.Time
}

// LastFile returns the path opened most recently, or "" if none.
func (m *Manager) LastFile() (string, error) {
	var path string
	err := m.db.QueryRow(`SELECT path FROM last_file WHERE id = 1`).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return path, err
}

// SetLastFile records path as the file to reopen when none is given.
func (m *Manager) SetLastFile(path string) error {
	_, err := m.db.Exec(`
		INSERT INTO last_file (id, path, opened_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			path = excluded.path,
			opened_at = excluded.opened_at
	`, path, time.Now().Unix())
	return err
}

// RecordPosition upserts the history entry of e.Path.
// A zero UpdatedAt means now.
func (m *Manager) RecordPosition(e Entry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = time.Now()
	}
	_, err := m.db.Exec(`
		INSERT INTO history (path, title, artist, position_ms, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			position_ms = excluded.position_ms,
			updated_at = excluded.updated_at
	`, e.Path, e.Title, nullString(e.Artist), e.Position.Milliseconds(), e.UpdatedAt.Unix())
	return err
}

// Recent returns up to limit entries, most recently updated first.
func (m *Manager) Recent(limit int) ([]Entry, error) {
	rows, err := m.db.Query(`
		SELECT path, title, artist, position_ms, updated_at
		FROM history
		ORDER BY updated_at DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			artist  sql.NullString
			posMS   int64
			updated int64
		)
		if err := rows.Scan(&e.Path, &e.Title, &artist, &posMS, &updated); err != nil {
			return nil, err
		}
		e.Artist = artist.String
		e.Position = time.Duration(posMS) * time.Millisecond
		e.UpdatedAt = time.Unix(updated, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
