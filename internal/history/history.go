// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides message history persistence for the side panel.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("history store closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// MESSAGE
// =============================================================================

// Message roles.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// Message is one entry in the panel's message history.
type Message struct {
	ID        string
	Role      string // RoleUser or RoleSystem
	Text      string
	Target    string // Terminal target the message was sent to, if any
	CreatedAt time.Time
}

// =============================================================================
// STORE
// =============================================================================

// Schema creates the history table.
const Schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         TEXT PRIMARY KEY,
	role       TEXT NOT NULL,
	text       TEXT NOT NULL,
	target     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
`

// Store persists messages in a SQLite database. Safe for concurrent use;
// the connection pool is capped at one writer the way SQLite wants.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Append stores a message. A missing ID or timestamp is filled in.
func (s *Store) Append(m Message) (Message, error) {
	if s.db == nil {
		return m, ErrClosed
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.Role == "" {
		m.Role = RoleUser
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (id, role, text, target, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.Role, m.Text, m.Target, m.CreatedAt.UnixMilli())
	if err != nil {
		return m, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return m, nil
}

// Recent returns up to limit messages, oldest first, drawn from the most
// recently appended.
func (s *Store) Recent(limit int) ([]Message, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	// rowid keeps insertion order when two messages share a millisecond.
	rows, err := s.db.Query(`
		SELECT id, role, text, target, created_at
		FROM messages
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var newestFirst []Message
	for rows.Next() {
		var m Message
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.Role, &m.Text, &m.Target, &createdAt); err != nil {
			continue
		}
		m.CreatedAt = time.UnixMilli(createdAt)
		newestFirst = append(newestFirst, m)
	}

	// Reverse to chronological order for display.
	out := make([]Message, len(newestFirst))
	for i, m := range newestFirst {
		out[len(out)-1-i] = m
	}
	return out, nil
}

// Clear deletes all stored messages.
func (s *Store) Clear() error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Count returns how many messages are stored.
func (s *Store) Count() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return n, nil
}
