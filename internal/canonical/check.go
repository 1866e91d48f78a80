// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canonical

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// SCHEMA ERROR
// =============================================================================

// SchemaError reports a structurally unsound canonical record. It indicates
// a converter defect: records built by Convert from a validated board must
// always pass CheckRecord, so this error is fatal and never surfaced as a
// user-actionable condition.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return "canonical schema violation: " + e.Detail
}

func schemaErrf(format string, args ...any) *SchemaError {
	return &SchemaError{Detail: fmt.Sprintf(format, args...)}
}

// knownActionTypes is the closed canonical action vocabulary.
var knownActionTypes = map[string]bool{
	string(board.KindSpeak):     true,
	string(board.KindNavigate):  true,
	string(board.KindLink):      true,
	string(board.KindBack):      true,
	string(board.KindBookmark):  true,
	string(board.KindHome):      true,
	string(board.KindPlayVideo): true,
	string(board.KindOpenURL):   true,
}

// =============================================================================
// RECORD CHECK
// =============================================================================

// CheckRecord verifies the record's own structural invariants. Packagers run
// this once before emitting anything; a failure aborts the whole export.
func CheckRecord(r *Record) error {
	if r == nil {
		return schemaErrf("record is nil")
	}
	if r.Meta.Title == "" {
		return schemaErrf("meta.title is empty")
	}
	if _, err := language.Parse(r.Meta.Locale); err != nil {
		return schemaErrf("meta.locale %q: %v", r.Meta.Locale, err)
	}
	if len(r.Boards) == 0 {
		return schemaErrf("record has no boards")
	}

	seen := make(map[string]bool, len(r.Boards))
	for _, cb := range r.Boards {
		if cb.ID == "" {
			return schemaErrf("board %q has no id", cb.Name)
		}
		if seen[cb.ID] {
			return schemaErrf("duplicate board id %q", cb.ID)
		}
		seen[cb.ID] = true
		if err := checkBoard(r, cb); err != nil {
			return err
		}
	}
	return nil
}

func checkBoard(r *Record, cb Board) error {
	if cb.Layout.Rows < board.MinGridDim || cb.Layout.Rows > board.MaxGridDim ||
		cb.Layout.Cols < board.MinGridDim || cb.Layout.Cols > board.MaxGridDim {
		return schemaErrf("board %q layout %dx%d out of range", cb.Name, cb.Layout.Rows, cb.Layout.Cols)
	}

	for _, cell := range cb.Cells {
		if cell.Row < 1 || cell.Row > cb.Layout.Rows || cell.Col < 1 || cell.Col > cb.Layout.Cols {
			return schemaErrf("board %q cell %q at (%d,%d) outside 1-indexed %dx%d layout",
				cb.Name, cell.ID, cell.Row, cell.Col, cb.Layout.Rows, cb.Layout.Cols)
		}
		if cell.SymbolID != "" {
			if _, ok := r.Assets.Symbols[cell.SymbolID]; !ok {
				return schemaErrf("cell %q references unpooled symbol %q", cell.ID, cell.SymbolID)
			}
		}
		for _, act := range cell.Actions {
			if !knownActionTypes[act.Type] {
				return schemaErrf("cell %q has unknown action type %q", cell.ID, act.Type)
			}
			if act.Type == string(board.KindNavigate) {
				if !boardExists(r, act.Target) {
					return schemaErrf("cell %q navigates to unknown board %q", cell.ID, act.Target)
				}
			}
			if act.Type == string(board.KindPlayVideo) {
				if _, ok := r.Assets.Videos[act.Target]; !ok {
					return schemaErrf("cell %q plays unpooled video %q", cell.ID, act.Target)
				}
			}
		}
	}
	return nil
}

func boardExists(r *Record, id string) bool {
	for _, cb := range r.Boards {
		if cb.ID == id {
			return true
		}
	}
	return false
}

// FindBoard returns the canonical board with the given id, or nil.
func (r *Record) FindBoard(id string) *Board {
	for i := range r.Boards {
		if r.Boards[i].ID == id {
			return &r.Boards[i]
		}
	}
	return nil
}
