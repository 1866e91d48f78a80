// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import (
	"fmt"

	"github.com/mazznoer/csscolorparser"

	"github.com/jeranaias/boardforge/internal/board"
)

// Display limits that trigger warnings (not errors). Most AAC targets clip
// or scroll long text, so these are advisory.
const (
	MaxLabelRunes  = 50
	MaxSpokenRunes = 200
)

// Issue codes. Stable identifiers for UI-level grouping; messages are for
// humans and may change.
const (
	CodeBoardNameEmpty     = "board_name_empty"
	CodeGridOutOfRange     = "grid_out_of_range"
	CodeNoPages            = "no_pages"
	CodePageNameEmpty      = "page_name_empty"
	CodeButtonMissingID    = "button_missing_id"
	CodeButtonMissingLabel = "button_missing_label"
	CodeButtonOutOfBounds  = "button_out_of_bounds"
	CodeCellConflict       = "cell_conflict"
	CodeActionMissingField = "action_missing_field"
	CodeActionUnknown      = "action_unknown"
	CodeNavigateUnresolved = "navigate_unresolved"

	CodeLabelTooLong      = "label_too_long"
	CodeSpokenTooLong     = "spoken_text_too_long"
	CodeColorUnrecognized = "color_unrecognized"
	CodePageEmpty         = "page_empty"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// Issue is one validation finding, scoped to a page and/or button when the
// finding concerns one.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	PageID   string `json:"page_id,omitempty"`
	ButtonID string `json:"button_id,omitempty"`
}

// Result is the outcome of validating one board.
type Result struct {
	IsValid  bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks a board against every structural invariant and returns the
// full list of errors and warnings. The board is never mutated.
func Validate(b *board.Board) *Result {
	r := &Result{
		Errors:   make([]Issue, 0),
		Warnings: make([]Issue, 0),
	}
	if b == nil {
		r.error(Issue{Code: CodeNoPages, Message: "board is nil"})
		return r
	}

	if b.Name == "" {
		r.error(Issue{Code: CodeBoardNameEmpty, Message: "board must have a name"})
	}
	if !b.Grid.InRange() {
		r.error(Issue{
			Code: CodeGridOutOfRange,
			Message: fmt.Sprintf("board grid %dx%d outside allowed range %d..%d",
				b.Grid.Rows, b.Grid.Cols, board.MinGridDim, board.MaxGridDim),
		})
	}
	if len(b.Pages) == 0 {
		r.error(Issue{Code: CodeNoPages, Message: "board must have at least one page"})
	}

	for _, p := range b.Pages {
		validatePage(b, p, r)
	}

	r.IsValid = len(r.Errors) == 0
	return r
}

func validatePage(b *board.Board, p *board.Page, r *Result) {
	if p.Name == "" {
		r.error(Issue{Code: CodePageNameEmpty, PageID: p.ID, Message: "page must have a name"})
	}

	grid := p.EffectiveGrid(b)
	if p.Layout != nil && !p.Layout.InRange() {
		r.error(Issue{
			Code:   CodeGridOutOfRange,
			PageID: p.ID,
			Message: fmt.Sprintf("page %q layout %dx%d outside allowed range %d..%d",
				p.Name, p.Layout.Rows, p.Layout.Cols, board.MinGridDim, board.MaxGridDim),
		})
	}

	if len(p.Buttons) == 0 {
		r.warn(Issue{Code: CodePageEmpty, PageID: p.ID,
			Message: fmt.Sprintf("page %q has no buttons", p.Name)})
	}

	occupied := make(map[[2]int]string, len(p.Buttons))
	for _, btn := range p.Buttons {
		validateButton(b, p, grid, btn, r)

		cell := [2]int{btn.Row, btn.Col}
		if prev, taken := occupied[cell]; taken {
			r.error(Issue{
				Code:     CodeCellConflict,
				PageID:   p.ID,
				ButtonID: btn.ID,
				Message: fmt.Sprintf("page %q: buttons %q and %q both occupy cell (%d,%d)",
					p.Name, prev, btn.ID, btn.Row, btn.Col),
			})
			continue
		}
		occupied[cell] = btn.ID
	}
}

func validateButton(b *board.Board, p *board.Page, grid board.Grid, btn *board.Button, r *Result) {
	if btn.ID == "" {
		r.error(Issue{Code: CodeButtonMissingID, PageID: p.ID,
			Message: fmt.Sprintf("page %q: button at (%d,%d) has no id", p.Name, btn.Row, btn.Col)})
	}
	if btn.Label == "" {
		r.error(Issue{Code: CodeButtonMissingLabel, PageID: p.ID, ButtonID: btn.ID,
			Message: fmt.Sprintf("page %q: button %q has no label", p.Name, btn.ID)})
	}
	if btn.Row < 0 || btn.Row >= grid.Rows || btn.Col < 0 || btn.Col >= grid.Cols {
		r.error(Issue{Code: CodeButtonOutOfBounds, PageID: p.ID, ButtonID: btn.ID,
			Message: fmt.Sprintf("page %q: button %q at (%d,%d) outside %dx%d grid",
				p.Name, btn.Label, btn.Row, btn.Col, grid.Rows, grid.Cols)})
	}

	if len([]rune(btn.Label)) > MaxLabelRunes {
		r.warn(Issue{Code: CodeLabelTooLong, PageID: p.ID, ButtonID: btn.ID,
			Message: fmt.Sprintf("button label exceeds %d characters", MaxLabelRunes)})
	}
	if len([]rune(btn.SpokenText)) > MaxSpokenRunes {
		r.warn(Issue{Code: CodeSpokenTooLong, PageID: p.ID, ButtonID: btn.ID,
			Message: fmt.Sprintf("spoken text exceeds %d characters", MaxSpokenRunes)})
	}
	if btn.Color != "" {
		if _, err := csscolorparser.Parse(btn.Color); err != nil {
			r.warn(Issue{Code: CodeColorUnrecognized, PageID: p.ID, ButtonID: btn.ID,
				Message: fmt.Sprintf("color %q is not a recognized hex or CSS color", btn.Color)})
		}
	}

	validateAction(b, p, btn, r)
}

func validateAction(b *board.Board, p *board.Page, btn *board.Button, r *Result) {
	if btn.Action == nil {
		return
	}
	switch act := btn.Action.(type) {
	case board.Speak:
		if act.Text == "" {
			r.error(Issue{Code: CodeActionMissingField, PageID: p.ID, ButtonID: btn.ID,
				Message: fmt.Sprintf("button %q: speak action has no text", btn.Label)})
		}
	case board.Navigate:
		if act.ToPageID == "" {
			r.error(Issue{Code: CodeActionMissingField, PageID: p.ID, ButtonID: btn.ID,
				Message: fmt.Sprintf("button %q: navigate action has no target page", btn.Label)})
		} else if b.FindPage(act.ToPageID) == nil {
			// Resolved globally: the target may live on any page of the board.
			r.error(Issue{Code: CodeNavigateUnresolved, PageID: p.ID, ButtonID: btn.ID,
				Message: fmt.Sprintf("button %q: navigate target page %q does not exist",
					btn.Label, act.ToPageID)})
		}
	case board.Link:
		if act.ToBoardID == "" {
			r.error(Issue{Code: CodeActionMissingField, PageID: p.ID, ButtonID: btn.ID,
				Message: fmt.Sprintf("button %q: link action has no target board", btn.Label)})
		}
	case board.Back, board.Bookmark, board.Home, board.PlayVideo, board.OpenURL:
		// No required fields beyond the tag.
	default:
		// Unreachable for actions built through this module; kept so a result
		// is produced instead of a silent pass if the sum type ever grows.
		r.error(Issue{Code: CodeActionUnknown, PageID: p.ID, ButtonID: btn.ID,
			Message: fmt.Sprintf("button %q: unrecognized action kind %q", btn.Label, btn.Action.Kind())})
	}
}

func (r *Result) error(i Issue) { r.Errors = append(r.Errors, i) }
func (r *Result) warn(i Issue)  { r.Warnings = append(r.Warnings, i) }
