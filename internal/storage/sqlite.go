// Package storage provides SQLite-based history for saved tile maps and
// remote play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tilegame/internal/tilemap"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Snapshot is one saved version of a tile map file.
type Snapshot struct {
	ID        int64
	MapName   string
	Tiles     int
	Data      []byte // File contents, in the map file's format
	CreatedAt time.Time
}

// SessionRecord describes one finished SSH session.
type SessionRecord struct {
	ID        int64
	User      string
	Mode      string
	Games     int // Modes played
	EndReason string // "quit", "disconnect"
	Duration  int    // Duration in seconds
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_name TEXT NOT NULL,
			tiles INTEGER NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_map_name ON snapshots(map_name);

		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user TEXT NOT NULL,
			mode TEXT NOT NULL,
			games INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordSnapshot stores a copy of a saved map file.
// It implements tilemap.SnapshotRecorder.
func (s *Store) RecordSnapshot(name string, data []byte, tiles int) error {
	_, err := s.SaveSnapshot(name, data, tiles)
	return err
}

// Ensure Store implements SnapshotRecorder
var _ tilemap.SnapshotRecorder = (*Store)(nil)

// SaveSnapshot stores a copy of a saved map file.
// Returns the ID of the inserted record.
func (s *Store) SaveSnapshot(name string, data []byte, tiles int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO snapshots (map_name, tiles, data) VALUES (?, ?, ?)",
		name, tiles, data,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// ListSnapshots returns the newest snapshots first, without their data.
// An empty name lists every map.
func (s *Store) ListSnapshots(name string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, map_name, tiles, created_at
		 FROM snapshots
		 WHERE ? = '' OR map_name = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Snapshot
	for rows.Next() {
		var e Snapshot
		var createdAt any
		if err := rows.Scan(&e.ID, &e.MapName, &e.Tiles, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Snapshot retrieves one snapshot with its data.
// Returns nil, nil if no snapshot has the ID.
func (s *Store) Snapshot(id int64) (*Snapshot, error) {
	var e Snapshot
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, map_name, tiles, data, created_at
		 FROM snapshots
		 WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.MapName, &e.Tiles, &e.Data, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// PruneSnapshots keeps the newest keep snapshots of a map and deletes the
// rest. Returns the number of deleted rows.
func (s *Store) PruneSnapshots(name string, keep int) (int64, error) {
	result, err := s.db.Exec(
		`DELETE FROM snapshots
		 WHERE map_name = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE map_name = ? ORDER BY id DESC LIMIT ?
		 )`,
		name, name, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune snapshots: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count pruned rows: %w", err)
	}
	return n, nil
}

// SaveSession records a finished SSH session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(rec SessionRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions (user, mode, games, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.User, rec.Mode, rec.Games, rec.EndReason, rec.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, user, mode, games, end_reason, duration_secs, created_at
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.User, &r.Mode, &r.Games, &r.EndReason, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
