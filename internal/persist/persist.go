// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persist

import (
	"context"
	"errors"
	"time"

	"github.com/jeranaias/boardforge/internal/board"
	"github.com/jeranaias/boardforge/internal/workspace"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound = errors.New("board not found")
	ErrConflict = errors.New("board already exists")
)

// =============================================================================
// SERVICE INTERFACE
// =============================================================================

// BoardMeta is the lightweight listing record: enough to show a board picker
// and hydrate the workspace without fetching page data.
type BoardMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Listing converts metadata records into workspace hydration input.
func Listing(meta []BoardMeta) []workspace.BoardListing {
	out := make([]workspace.BoardListing, 0, len(meta))
	for _, m := range meta {
		out = append(out, workspace.BoardListing{
			RemoteID: m.ID,
			Name:     m.Name,
			Rows:     m.Rows,
			Cols:     m.Cols,
		})
	}
	return out
}

// Service is the board persistence collaborator.
type Service interface {
	// Create stores a new board and returns its assigned id.
	Create(ctx context.Context, b *board.Board) (string, error)

	// Get fetches a board's full content by id.
	Get(ctx context.Context, id string) (*board.Board, error)

	// Update replaces a stored board's content.
	Update(ctx context.Context, id string, b *board.Board) error

	// Delete removes a stored board.
	Delete(ctx context.Context, id string) error

	// ListMeta returns the metadata-only listing.
	ListMeta(ctx context.Context) ([]BoardMeta, error)
}
