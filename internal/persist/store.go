// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// LOCAL SQLITE STORE
// =============================================================================

// storeSchema keeps the full board payload as JSON; the metadata columns
// exist so ListMeta never has to decode payloads.
const storeSchema = `
CREATE TABLE IF NOT EXISTS boards (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	rows       INTEGER NOT NULL,
	cols       INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_boards_updated ON boards(updated_at);
`

// Store is a local SQLite-backed Service implementation.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) a board database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Create(ctx context.Context, b *board.Board) (string, error) {
	payload, err := b.Encode()
	if err != nil {
		return "", fmt.Errorf("encode board: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO boards (id, name, rows, cols, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, b.Name, b.Grid.Rows, b.Grid.Cols, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert board: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*board.Board, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM boards WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query board: %w", err)
	}
	b, err := board.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode board %s: %w", id, err)
	}
	return b, nil
}

func (s *Store) Update(ctx context.Context, id string, b *board.Board) error {
	payload, err := b.Encode()
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE boards SET name = ?, rows = ?, cols = ?, payload = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, b.Grid.Rows, b.Grid.Cols, payload, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) ListMeta(ctx context.Context) ([]BoardMeta, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, rows, cols, updated_at
		FROM boards ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	var meta []BoardMeta
	for rows.Next() {
		var m BoardMeta
		var updated string
		if err := rows.Scan(&m.ID, &m.Name, &m.Rows, &m.Cols, &updated); err != nil {
			return nil, fmt.Errorf("scan board row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, updated); err == nil {
			m.UpdatedAt = t
		}
		meta = append(meta, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return meta, nil
}
