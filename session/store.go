// Copyright © 2026 VibeTerm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/store.go
// Summary: SQLite-backed session persistence. Snapshots are stored as JSON
//          rows keyed by uuid, named uniquely.

package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned for lookups of unknown sessions.
var ErrNotFound = errors.New("session not found")

// Meta describes a stored session without its layout payload.
type Meta struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists snapshots in one SQLite file.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	data       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Open creates or opens the store at path, creating parent directories as
// needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores snap under name, replacing any previous snapshot with that
// name, and returns the session id.
func (s *Store) Save(ctx context.Context, name string, snap Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	now := time.Now().UTC().Unix()
	id := uuid.NewString()

	_, err = s.db.ExecContext(ctx, `
INSERT INTO sessions(session_id, name, data, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	data=excluded.data,
	updated_at=excluded.updated_at`,
		id, name, string(data), now, now)
	if err != nil {
		return "", fmt.Errorf("save session %q: %w", name, err)
	}

	// On replace the original id survives; read it back.
	var storedID string
	if err := s.db.QueryRowContext(ctx,
		`SELECT session_id FROM sessions WHERE name = ?`, name).Scan(&storedID); err != nil {
		return "", fmt.Errorf("resolve session id: %w", err)
	}
	return storedID, nil
}

// Load returns the snapshot stored under name.
func (s *Store) Load(ctx context.Context, name string) (Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM sessions WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load session %q: %w", name, err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session %q: %w", name, err)
	}
	return snap, nil
}

// List returns session metadata, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Meta, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, name, created_at, updated_at
FROM sessions ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Meta
	for rows.Next() {
		var m Meta
		var created, updated int64
		if err := rows.Scan(&m.ID, &m.Name, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		m.CreatedAt = time.Unix(created, 0).UTC()
		m.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

// Delete removes the session stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete session %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
