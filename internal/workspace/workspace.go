// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jeranaias/boardforge/internal/board"
	"github.com/jeranaias/boardforge/internal/validate"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNoActiveBoard  = errors.New("workspace: no active board")
	ErrBoardNotFound  = errors.New("workspace: board not found")
	ErrBoardLoading   = errors.New("workspace: board content is still loading")
	ErrBoardNotLoaded = errors.New("workspace: board content not loaded")
	ErrPageNotFound   = errors.New("workspace: page not found")
	ErrButtonNotFound = errors.New("workspace: button not found")
	ErrSolePage       = errors.New("workspace: cannot delete the only page")
	ErrBadIndex       = errors.New("workspace: index out of range")
)

// =============================================================================
// STATE TYPES
// =============================================================================

// Mode is the editor interaction mode.
type Mode int

const (
	ModeEdit Mode = iota
	ModePreview
)

// LoadState tracks whether a managed board's full content is available.
type LoadState int

const (
	// StateIdle: metadata-only stub, content never fetched.
	StateIdle LoadState = iota
	// StateLoading: content fetch in flight; mutations are rejected.
	StateLoading
	// StateReady: full content present and editable.
	StateReady
	// StateError: the last content fetch failed (see LoadErr).
	StateError
)

// ManagedBoard wraps a board IR with editor-only bookkeeping. The wrapper is
// exclusively owned by the workspace; it is created on import/generation or
// hydrate and discarded when the board is deleted or superseded.
type ManagedBoard struct {
	// LocalID is the stable workspace-local identity.
	LocalID string
	// RemoteID is the persisted-record identity, empty for unsaved boards.
	RemoteID string

	Board *board.Board

	State   LoadState
	LoadErr string
	// Loaded distinguishes a metadata-only stub from a board whose page data
	// has been fetched.
	Loaded bool
	Dirty  bool

	// Validation is the cached validator result, refreshed after every
	// content mutation. Export gating reads this, never re-validates.
	Validation *validate.Result
}

// BoardListing is one entry of a lightweight metadata-only board listing,
// as returned by the persistence collaborator.
type BoardListing struct {
	RemoteID string
	Name     string
	Rows     int
	Cols     int
}

// Workspace is one immutable editing snapshot.
type Workspace struct {
	boards   []*ManagedBoard
	activeID string // LocalID of the active board
	homeID   string // LocalID of the home board
	pageID   string // current page id on the active board
	buttonID string // selected button id, empty for none
	mode     Mode
	history  []string // page ids, most recent last
	bookmark string   // single bookmarked page id, empty for none
}

// New returns an empty workspace in edit mode.
func New() *Workspace {
	return &Workspace{}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Boards returns the managed boards in order. The returned slice is a copy;
// the wrappers themselves are shared snapshot state and must not be mutated.
func (w *Workspace) Boards() []*ManagedBoard {
	return append([]*ManagedBoard(nil), w.boards...)
}

// BoardCount returns the number of managed boards.
func (w *Workspace) BoardCount() int { return len(w.boards) }

// ActiveBoard returns the active managed board, or nil.
func (w *Workspace) ActiveBoard() *ManagedBoard {
	if i := w.boardIndex(w.activeID); i >= 0 {
		return w.boards[i]
	}
	return nil
}

// FindBoard returns the managed board with the given local id, or nil.
func (w *Workspace) FindBoard(localID string) *ManagedBoard {
	if i := w.boardIndex(localID); i >= 0 {
		return w.boards[i]
	}
	return nil
}

// ActiveBoardID returns the local id of the active board.
func (w *Workspace) ActiveBoardID() string { return w.activeID }

// HomeBoardID returns the local id of the home board.
func (w *Workspace) HomeBoardID() string { return w.homeID }

// CurrentPageID returns the current page id on the active board.
func (w *Workspace) CurrentPageID() string { return w.pageID }

// CurrentPage returns the current page of the active board, or nil.
func (w *Workspace) CurrentPage() *board.Page {
	mb := w.ActiveBoard()
	if mb == nil || mb.Board == nil {
		return nil
	}
	return mb.Board.FindPage(w.pageID)
}

// SelectedButtonID returns the selected button id, empty for none.
func (w *Workspace) SelectedButtonID() string { return w.buttonID }

// Mode returns the editor interaction mode.
func (w *Workspace) Mode() Mode { return w.mode }

// BookmarkedPageID returns the bookmarked page id, empty for none.
func (w *Workspace) BookmarkedPageID() string { return w.bookmark }

// HistoryDepth returns the number of entries on the navigation stack.
func (w *Workspace) HistoryDepth() int { return len(w.history) }

// SetMode returns a snapshot with the interaction mode changed.
func (w *Workspace) SetMode(m Mode) *Workspace {
	if w.mode == m {
		return w
	}
	next := w.clone()
	next.mode = m
	return next
}

// =============================================================================
// SNAPSHOT PLUMBING
// =============================================================================

// clone copies the top-level snapshot. Managed boards are shared until a
// mutation clones the one it touches.
func (w *Workspace) clone() *Workspace {
	out := *w
	out.boards = append([]*ManagedBoard(nil), w.boards...)
	out.history = append([]string(nil), w.history...)
	return &out
}

// cloneWrapperAt replaces boards[i] with a copy of the wrapper (board content
// still shared) and returns it. For flag-only changes.
func (w *Workspace) cloneWrapperAt(i int) *ManagedBoard {
	mb := *w.boards[i]
	w.boards[i] = &mb
	return &mb
}

// cloneBoardAt replaces boards[i] with a copy of the wrapper holding a deep
// copy of the board content, and returns it. For content mutations.
func (w *Workspace) cloneBoardAt(i int) *ManagedBoard {
	mb := w.cloneWrapperAt(i)
	mb.Board = mb.Board.Clone()
	return mb
}

func (w *Workspace) boardIndex(localID string) int {
	if localID == "" {
		return -1
	}
	for i, mb := range w.boards {
		if mb.LocalID == localID {
			return i
		}
	}
	return -1
}

// editableActiveIndex returns the index of the active board if it accepts
// content mutations, or the reason it does not.
func (w *Workspace) editableActiveIndex() (int, error) {
	i := w.boardIndex(w.activeID)
	if i < 0 {
		return 0, ErrNoActiveBoard
	}
	switch w.boards[i].State {
	case StateReady:
		return i, nil
	case StateLoading:
		return 0, ErrBoardLoading
	default:
		return 0, ErrBoardNotLoaded
	}
}

// revalidate refreshes the cached validator result and dirty flag after a
// content mutation.
func revalidate(mb *ManagedBoard) {
	mb.Dirty = true
	mb.Validation = validate.Validate(mb.Board)
}

// =============================================================================
// BOARD OPERATIONS
// =============================================================================

// ImportBoard appends a board (imported or freshly generated), marks it
// dirty, selects it as active, and assigns it the home role if it is the
// first board in the workspace.
func (w *Workspace) ImportBoard(b *board.Board) *Workspace {
	next := w.clone()
	mb := &ManagedBoard{
		LocalID:    uuid.NewString(),
		Board:      b.Clone(),
		State:      StateReady,
		Loaded:     true,
		Dirty:      true,
		Validation: validate.Validate(b),
	}
	next.boards = append(next.boards, mb)
	next.activeID = mb.LocalID
	if len(next.boards) == 1 {
		next.homeID = mb.LocalID
	}
	next.resetTraversal(mb)
	return next
}

// ReplaceActiveBoard swaps in new content for the active board while
// preserving its persisted identity, home role, and loaded flag.
func (w *Workspace) ReplaceActiveBoard(b *board.Board) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	next := w.clone()
	mb := next.cloneWrapperAt(i)
	mb.Board = b.Clone()
	revalidate(mb)
	if mb.Board.FindPage(next.pageID) == nil {
		next.resetTraversal(mb)
	} else {
		next.buttonID = ""
	}
	return next, nil
}

// MoveBoard swaps the boards at the two indices.
func (w *Workspace) MoveBoard(i, j int) (*Workspace, error) {
	if i < 0 || i >= len(w.boards) || j < 0 || j >= len(w.boards) {
		return w, ErrBadIndex
	}
	if i == j {
		return w, nil
	}
	next := w.clone()
	next.boards[i], next.boards[j] = next.boards[j], next.boards[i]
	return next, nil
}

// DeleteBoard removes a board. If the deleted board held the active or home
// role, the role moves to the first remaining board.
func (w *Workspace) DeleteBoard(localID string) (*Workspace, error) {
	i := w.boardIndex(localID)
	if i < 0 {
		return w, ErrBoardNotFound
	}
	next := w.clone()
	next.boards = append(next.boards[:i], next.boards[i+1:]...)

	if len(next.boards) == 0 {
		next.activeID = ""
		next.homeID = ""
		next.resetTraversal(nil)
		return next, nil
	}
	if next.homeID == localID {
		next.homeID = next.boards[0].LocalID
	}
	if next.activeID == localID {
		next.activeID = next.boards[0].LocalID
		next.resetTraversal(next.boards[0])
	}
	return next, nil
}

// SetHomeBoard designates a board as the workspace home board.
func (w *Workspace) SetHomeBoard(localID string) (*Workspace, error) {
	if w.boardIndex(localID) < 0 {
		return w, ErrBoardNotFound
	}
	if w.homeID == localID {
		return w, nil
	}
	next := w.clone()
	next.homeID = localID
	return next, nil
}

// HydrateBoards merges a metadata-only listing from the persistence
// collaborator. Boards already present with a matching persisted id keep
// their local edits and flags and only refresh the display name; listings
// with no local counterpart become metadata stubs. Purely local boards
// (no persisted id yet) are never touched.
func (w *Workspace) HydrateBoards(listings []BoardListing) *Workspace {
	next := w.clone()
	for _, l := range listings {
		if l.RemoteID == "" {
			continue
		}
		if i := next.remoteIndex(l.RemoteID); i >= 0 {
			if next.boards[i].Board.Name != l.Name {
				mb := next.cloneBoardAt(i)
				mb.Board.Name = l.Name
			}
			continue
		}
		next.boards = append(next.boards, &ManagedBoard{
			LocalID:  uuid.NewString(),
			RemoteID: l.RemoteID,
			Board: &board.Board{
				Name: l.Name,
				Grid: board.Grid{Rows: l.Rows, Cols: l.Cols},
			},
			State: StateIdle,
		})
	}
	if next.activeID == "" && len(next.boards) > 0 {
		next.activeID = next.boards[0].LocalID
		if next.homeID == "" {
			next.homeID = next.boards[0].LocalID
		}
		next.resetTraversal(next.boards[0])
	}
	return next
}

func (w *Workspace) remoteIndex(remoteID string) int {
	for i, mb := range w.boards {
		if mb.RemoteID != "" && mb.RemoteID == remoteID {
			return i
		}
	}
	return -1
}

// =============================================================================
// LOAD LIFECYCLE
// =============================================================================

// BeginLoading marks a stub board as mid-fetch. Content mutations against it
// are rejected until FinishLoading or FailLoading.
func (w *Workspace) BeginLoading(localID string) (*Workspace, error) {
	i := w.boardIndex(localID)
	if i < 0 {
		return w, ErrBoardNotFound
	}
	if w.boards[i].State == StateLoading {
		return w, nil
	}
	next := w.clone()
	mb := next.cloneWrapperAt(i)
	mb.State = StateLoading
	mb.LoadErr = ""
	return next, nil
}

// FinishLoading installs freshly fetched content on a loading board. The
// board comes back clean: a server copy supersedes the stub.
func (w *Workspace) FinishLoading(localID string, b *board.Board) (*Workspace, error) {
	i := w.boardIndex(localID)
	if i < 0 {
		return w, ErrBoardNotFound
	}
	next := w.clone()
	mb := next.cloneWrapperAt(i)
	mb.Board = b.Clone()
	mb.State = StateReady
	mb.Loaded = true
	mb.Dirty = false
	mb.LoadErr = ""
	mb.Validation = validate.Validate(mb.Board)
	if next.activeID == localID && mb.Board.FindPage(next.pageID) == nil {
		next.resetTraversal(mb)
	}
	return next, nil
}

// FailLoading records a failed content fetch.
func (w *Workspace) FailLoading(localID string, reason string) (*Workspace, error) {
	i := w.boardIndex(localID)
	if i < 0 {
		return w, ErrBoardNotFound
	}
	next := w.clone()
	mb := next.cloneWrapperAt(i)
	mb.State = StateError
	mb.LoadErr = reason
	return next, nil
}

// resetTraversal points the page cursor at the board's first page and drops
// selection, history, and bookmark. Used when the traversal context changes
// wholesale (new active board, replaced content).
func (w *Workspace) resetTraversal(mb *ManagedBoard) {
	w.pageID = ""
	w.buttonID = ""
	w.history = nil
	w.bookmark = ""
	if mb != nil && mb.Board != nil && len(mb.Board.Pages) > 0 {
		w.pageID = mb.Board.Pages[0].ID
	}
}
