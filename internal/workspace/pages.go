// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"github.com/google/uuid"

	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// PAGE OPERATIONS
// =============================================================================

// AddPage appends a page to the active board and makes it the current page.
func (w *Workspace) AddPage(name string) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	next := w.clone()
	mb := next.cloneBoardAt(i)
	p := board.NewPage(name)
	mb.Board.Pages = append(mb.Board.Pages, p)
	revalidate(mb)
	next.pageID = p.ID
	next.buttonID = ""
	return next, nil
}

// RenamePage changes a page's display name.
func (w *Workspace) RenamePage(pageID, name string) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	if w.boards[i].Board.FindPage(pageID) == nil {
		return w, ErrPageNotFound
	}
	next := w.clone()
	mb := next.cloneBoardAt(i)
	mb.Board.FindPage(pageID).Name = name
	revalidate(mb)
	return next, nil
}

// DeletePage removes a page from the active board. Deleting the only
// remaining page is rejected. If the deleted page was current, the new
// current page is the nearest remaining index (clamped); otherwise the
// current page is kept, falling back to the first page if it disappeared.
func (w *Workspace) DeletePage(pageID string) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	b := w.boards[i].Board
	idx := b.PageIndex(pageID)
	if idx < 0 {
		return w, ErrPageNotFound
	}
	if len(b.Pages) == 1 {
		return w, ErrSolePage
	}

	next := w.clone()
	mb := next.cloneBoardAt(i)
	mb.Board.Pages = append(mb.Board.Pages[:idx], mb.Board.Pages[idx+1:]...)
	revalidate(mb)

	switch {
	case next.pageID == pageID:
		// Nearest remaining index, clamped to the new last page.
		at := idx
		if at >= len(mb.Board.Pages) {
			at = len(mb.Board.Pages) - 1
		}
		next.pageID = mb.Board.Pages[at].ID
		next.buttonID = ""
	case mb.Board.FindPage(next.pageID) == nil:
		next.pageID = mb.Board.Pages[0].ID
		next.buttonID = ""
	}
	return next, nil
}

// MovePage swaps the pages at the two indices. The current page selection
// follows the page id, so it is unaffected by the reorder.
func (w *Workspace) MovePage(i, j int) (*Workspace, error) {
	bi, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	pages := w.boards[bi].Board.Pages
	if i < 0 || i >= len(pages) || j < 0 || j >= len(pages) {
		return w, ErrBadIndex
	}
	if i == j {
		return w, nil
	}
	next := w.clone()
	mb := next.cloneBoardAt(bi)
	mb.Board.Pages[i], mb.Board.Pages[j] = mb.Board.Pages[j], mb.Board.Pages[i]
	revalidate(mb)
	return next, nil
}

// =============================================================================
// BUTTON OPERATIONS
// =============================================================================

// AddButton appends a button to the current page and selects it.
func (w *Workspace) AddButton(btn *board.Button) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	if w.boards[i].Board.FindPage(w.pageID) == nil {
		return w, ErrPageNotFound
	}
	next := w.clone()
	mb := next.cloneBoardAt(i)
	p := mb.Board.FindPage(next.pageID)
	add := btn.Clone()
	p.Buttons = append(p.Buttons, add)
	revalidate(mb)
	next.buttonID = add.ID
	return next, nil
}

// UpdateButton replaces the fields of the button with the same id, wherever
// it lives on the active board.
func (w *Workspace) UpdateButton(btn *board.Button) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	if _, found := w.boards[i].Board.FindButton(btn.ID); found == nil {
		return w, ErrButtonNotFound
	}
	next := w.clone()
	mb := next.cloneBoardAt(i)
	_, target := mb.Board.FindButton(btn.ID)
	*target = *btn.Clone()
	revalidate(mb)
	return next, nil
}

// DeleteButton removes a button from the active board, clearing the
// selection if it pointed at the removed button.
func (w *Workspace) DeleteButton(buttonID string) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	page, btn := w.boards[i].Board.FindButton(buttonID)
	if btn == nil {
		return w, ErrButtonNotFound
	}
	next := w.clone()
	mb := next.cloneBoardAt(i)
	p := mb.Board.FindPage(page.ID)
	for bi, candidate := range p.Buttons {
		if candidate.ID == buttonID {
			p.Buttons = append(p.Buttons[:bi], p.Buttons[bi+1:]...)
			break
		}
	}
	revalidate(mb)
	if next.buttonID == buttonID {
		next.buttonID = ""
	}
	return next, nil
}

// DuplicateButton copies a button on the current page into the first free
// cell found scanning row-major from the cell immediately right of the
// source, wrapping to column 0 of the next row. The scan never wraps back to
// the top: with no free cell below, the duplication is silently abandoned
// and the snapshot is returned unchanged.
func (w *Workspace) DuplicateButton(buttonID string) (*Workspace, error) {
	i, err := w.editableActiveIndex()
	if err != nil {
		return w, err
	}
	b := w.boards[i].Board
	page := b.FindPage(w.pageID)
	if page == nil {
		return w, ErrPageNotFound
	}
	src := page.FindButton(buttonID)
	if src == nil {
		return w, ErrButtonNotFound
	}

	grid := page.EffectiveGrid(b)
	row, col, ok := nextFreeCell(page, grid, src.Row, src.Col)
	if !ok {
		return w, nil
	}

	next := w.clone()
	mb := next.cloneBoardAt(i)
	p := mb.Board.FindPage(next.pageID)
	dup := p.FindButton(buttonID).Clone()
	dup.ID = uuid.NewString()
	dup.Row = row
	dup.Col = col
	p.Buttons = append(p.Buttons, dup)
	revalidate(mb)
	next.buttonID = dup.ID
	return next, nil
}

// nextFreeCell implements the documented duplicate-placement rule: first
// unoccupied cell in row-major order starting at (row, col+1).
func nextFreeCell(p *board.Page, grid board.Grid, row, col int) (int, int, bool) {
	r, c := row, col+1
	for r < grid.Rows {
		if c >= grid.Cols {
			c = 0
			r++
			continue
		}
		if p.ButtonAt(r, c) == nil {
			return r, c, true
		}
		c++
	}
	return 0, 0, false
}

// SelectButton points the selection at a button on the current page.
func (w *Workspace) SelectButton(buttonID string) (*Workspace, error) {
	page := w.CurrentPage()
	if page == nil {
		return w, ErrPageNotFound
	}
	if buttonID != "" && page.FindButton(buttonID) == nil {
		return w, ErrButtonNotFound
	}
	if w.buttonID == buttonID {
		return w, nil
	}
	next := w.clone()
	next.buttonID = buttonID
	return next, nil
}
