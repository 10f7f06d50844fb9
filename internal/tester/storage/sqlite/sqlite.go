// Package sqlite persists tester session snapshots in a SQLite
// database so a restarted process resumes where the last run left off.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/rxlab/internal/tester/storage"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store implements storage.SnapshotStore on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database at path and
// applies pending migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	if err := sqlitemigrate.ApplyMigrations(db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate snapshot db: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the snapshot for key, replacing any previous state.
func (s *Store) Save(ctx context.Context, key string, state storage.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO snapshots (key, state, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
`, key, string(payload), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot for key. A missing row or a snapshot that
// no longer decodes reports ok=false so the caller falls back to a
// fresh session. An unknown engine value alone does not discard the
// snapshot; the engine resets to the default and the rest restores.
func (s *Store) Load(ctx context.Context, key string) (storage.SessionState, bool, error) {
	var payload string
	row := s.db.QueryRowContext(ctx, "SELECT state FROM snapshots WHERE key = ?", key)
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return storage.SessionState{}, false, nil
		}
		return storage.SessionState{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var state storage.SessionState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return storage.SessionState{}, false, nil
	}
	if _, ok := match.ParseEngineID(string(state.Engine)); !ok {
		state.Engine = match.EngineGo
	}
	return state, true, nil
}
