// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// NAVIGATION SUB-STATE MACHINE
// =============================================================================

// Navigation drives in-editor and preview page traversal on the active
// board. Navigation never touches board content, so it does not dirty the
// board or re-run validation. Every operation is a no-op (returning the
// receiver) when it cannot act.

// JumpToPage switches the current page, pushing the prior page onto the
// navigation history. No-op if the page does not exist or is already
// current.
func (w *Workspace) JumpToPage(pageID string) *Workspace {
	mb := w.readyActive()
	if mb == nil {
		return w
	}
	if pageID == w.pageID || mb.Board.FindPage(pageID) == nil {
		return w
	}
	next := w.clone()
	if next.pageID != "" {
		next.history = append(next.history, next.pageID)
	}
	next.pageID = pageID
	next.buttonID = ""
	return next
}

// JumpHome switches to the active board's first page. No-op if already
// there.
func (w *Workspace) JumpHome() *Workspace {
	mb := w.readyActive()
	if mb == nil || len(mb.Board.Pages) == 0 {
		return w
	}
	return w.JumpToPage(mb.Board.Pages[0].ID)
}

// BookmarkCurrentPage records the current page as the single bookmark,
// overwriting any prior bookmark.
func (w *Workspace) BookmarkCurrentPage() *Workspace {
	if w.pageID == "" || w.bookmark == w.pageID {
		return w
	}
	next := w.clone()
	next.bookmark = next.pageID
	return next
}

// JumpBack returns to the bookmark when one is set and resolves to an
// existing, non-current page; the bookmark takes precedence over history and
// is not cleared by use. Otherwise the history stack is popped, skipping
// entries that no longer exist or equal the current page, until a valid
// target is found or the stack is exhausted (then a no-op).
func (w *Workspace) JumpBack() *Workspace {
	mb := w.readyActive()
	if mb == nil {
		return w
	}

	if w.bookmark != "" && w.bookmark != w.pageID && mb.Board.FindPage(w.bookmark) != nil {
		next := w.clone()
		next.pageID = next.bookmark
		next.buttonID = ""
		return next
	}

	history := w.history
	for n := len(history); n > 0; n-- {
		target := history[n-1]
		if target != w.pageID && mb.Board.FindPage(target) != nil {
			next := w.clone()
			next.history = append([]string(nil), history[:n-1]...)
			next.pageID = target
			next.buttonID = ""
			return next
		}
	}
	return w
}

// =============================================================================
// BUTTON ACTION DISPATCH
// =============================================================================

// ApplyButtonAction resolves the acting button (current page first, then all
// pages of the active board) and dispatches its action to the navigation
// machine. Speak and media actions are not interpreted here; they belong to
// the runtime and the export targets.
//
// A self-closing button triggers an automatic JumpBack after its primary
// action resolves, unless that action was itself Back.
func (w *Workspace) ApplyButtonAction(buttonID string) *Workspace {
	mb := w.readyActive()
	if mb == nil {
		return w
	}

	var btn *board.Button
	if page := mb.Board.FindPage(w.pageID); page != nil {
		btn = page.FindButton(buttonID)
	}
	if btn == nil {
		_, btn = mb.Board.FindButton(buttonID)
	}
	if btn == nil {
		return w
	}

	next := w
	primaryWasBack := false
	if btn.Action != nil {
		switch act := btn.Action.(type) {
		case board.Navigate:
			next = w.JumpToPage(act.ToPageID)
		case board.Link:
			next = w.activateLinkedBoard(act.ToBoardID)
		case board.Back:
			next = w.JumpBack()
			primaryWasBack = true
		case board.Bookmark:
			next = w.BookmarkCurrentPage()
		case board.Home:
			next = w.JumpHome()
		case board.Speak, board.PlayVideo, board.OpenURL:
			// Deferred to runtime/export.
		}
	}

	// Preserved behavior: a self-closing navigate performs two transitions in
	// immediate succession (jump, then auto-back). Flagged for product
	// clarification; see DESIGN.md.
	if btn.SelfClosing && !primaryWasBack {
		next = next.JumpBack()
	}
	return next
}

// activateLinkedBoard switches the active board when the link target
// resolves to a managed board (by persisted id first, then local id).
// Traversal state always belongs to one board, so it resets on switch.
func (w *Workspace) activateLinkedBoard(boardID string) *Workspace {
	if boardID == "" {
		return w
	}
	i := w.remoteIndex(boardID)
	if i < 0 {
		i = w.boardIndex(boardID)
	}
	if i < 0 || w.boards[i].LocalID == w.activeID {
		return w
	}
	next := w.clone()
	next.activeID = next.boards[i].LocalID
	next.resetTraversal(next.boards[i])
	return next
}

// readyActive returns the active board when it is loaded and traversable.
func (w *Workspace) readyActive() *ManagedBoard {
	mb := w.ActiveBoard()
	if mb == nil || mb.State != StateReady || mb.Board == nil {
		return nil
	}
	return mb
}
