// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package workspace

import (
	"testing"

	"github.com/jeranaias/boardforge/internal/board"
)

// navFixture builds a workspace holding one board with pages P1..Pn and
// returns it alongside the page ids in order.
func navFixture(t *testing.T, pages int) (*Workspace, []string) {
	t.Helper()
	ws := New().ImportBoard(testBoard("Nav"))
	for i := 2; i <= pages; i++ {
		var err error
		ws, err = ws.AddPage("P")
		if err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
	}
	ids := make([]string, 0, pages)
	for _, p := range ws.ActiveBoard().Board.Pages {
		ids = append(ids, p.ID)
	}
	// AddPage leaves the last page current; start traversal from the first.
	ws = ws.JumpToPage(ids[0])
	ws.history = nil
	return ws, ids
}

func TestJumpToPage_PushesHistory(t *testing.T) {
	ws, ids := navFixture(t, 3)

	next := ws.JumpToPage(ids[1])
	if next.CurrentPageID() != ids[1] {
		t.Fatal("Did not switch page")
	}
	if next.HistoryDepth() != 1 {
		t.Errorf("HistoryDepth = %d, want 1", next.HistoryDepth())
	}
	if ws.CurrentPageID() != ids[0] {
		t.Error("Prior snapshot changed")
	}
}

func TestJumpToPage_MissingOrCurrentIsNoOp(t *testing.T) {
	ws, ids := navFixture(t, 2)

	if got := ws.JumpToPage("nope"); got != ws {
		t.Error("Jump to a missing page should return the receiver")
	}
	if got := ws.JumpToPage(ids[0]); got != ws {
		t.Error("Jump to the current page should return the receiver")
	}
}

// A single-page board: jumping to an unknown page is a no-op, and a
// subsequent jumpBack with empty history is also a no-op, so the page
// pointer never leaves P1.
func TestJumpToMissingThenBack_StaysPut(t *testing.T) {
	ws, ids := navFixture(t, 1)

	ws = ws.JumpToPage("P2")
	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[0] {
		t.Errorf("CurrentPageID = %q, want %q", ws.CurrentPageID(), ids[0])
	}
	if ws.HistoryDepth() != 0 {
		t.Errorf("HistoryDepth = %d, want 0", ws.HistoryDepth())
	}
}

func TestJumpBack_PopsHistory(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.JumpToPage(ids[1]).JumpToPage(ids[2])

	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[1] {
		t.Fatalf("First back landed on %q, want %q", ws.CurrentPageID(), ids[1])
	}
	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[0] {
		t.Fatalf("Second back landed on %q, want %q", ws.CurrentPageID(), ids[0])
	}
	if got := ws.JumpBack(); got != ws {
		t.Error("Back on an empty history should be a no-op")
	}
}

func TestJumpBack_SkipsDeletedPages(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.JumpToPage(ids[1]).JumpToPage(ids[2])

	// Delete the page sitting on top of the history stack.
	ws, err := ws.DeletePage(ids[1])
	if err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[0] {
		t.Errorf("Back should skip the dead entry and land on %q, got %q", ids[0], ws.CurrentPageID())
	}
}

func TestJumpHome(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.JumpToPage(ids[2])

	ws = ws.JumpHome()
	if ws.CurrentPageID() != ids[0] {
		t.Fatal("Home should land on the first page")
	}
	if got := ws.JumpHome(); got != ws {
		t.Error("Home while on the first page should be a no-op")
	}
}

func TestBookmark_PrecedenceOverHistory(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.JumpToPage(ids[1]).BookmarkCurrentPage().JumpToPage(ids[2])

	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[1] {
		t.Fatalf("Back should prefer the bookmark, landed on %q", ws.CurrentPageID())
	}
	// Bookmark survives use and the history was not consumed.
	if ws.BookmarkedPageID() != ids[1] {
		t.Error("Bookmark must not be cleared by use")
	}
	if ws.HistoryDepth() == 0 {
		t.Error("A bookmark jump must not pop history")
	}

	// On the bookmarked page itself, back falls through to history.
	ws = ws.JumpBack()
	if ws.CurrentPageID() == ids[1] {
		t.Error("Back while on the bookmark should fall back to history")
	}
}

func TestBookmark_Overwrites(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.BookmarkCurrentPage()
	ws = ws.JumpToPage(ids[1]).BookmarkCurrentPage()
	if ws.BookmarkedPageID() != ids[1] {
		t.Error("A later bookmark should replace the earlier one")
	}
}

func TestBookmark_DeadTargetFallsBackToHistory(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws = ws.JumpToPage(ids[1]).BookmarkCurrentPage().JumpToPage(ids[2])

	ws, err := ws.DeletePage(ids[1])
	if err != nil {
		t.Fatalf("DeletePage failed: %v", err)
	}
	ws = ws.JumpBack()
	if ws.CurrentPageID() != ids[0] {
		t.Errorf("Dead bookmark should yield to history, landed on %q", ws.CurrentPageID())
	}
}

// =============================================================================
// ACTION DISPATCH
// =============================================================================

// addActionButton appends a button carrying the given action on the current
// page and returns its id.
func addActionButton(t *testing.T, ws *Workspace, act board.Action, selfClosing bool) (*Workspace, string) {
	t.Helper()
	btn := board.NewButton("act", 1, 1)
	btn.Action = act
	btn.SelfClosing = selfClosing
	next, err := ws.AddButton(btn)
	if err != nil {
		t.Fatalf("AddButton failed: %v", err)
	}
	return next, btn.ID
}

func TestApplyButtonAction_Navigate(t *testing.T) {
	ws, ids := navFixture(t, 2)
	ws, id := addActionButton(t, ws, board.Navigate{ToPageID: ids[1]}, false)

	next := ws.ApplyButtonAction(id)
	if next.CurrentPageID() != ids[1] {
		t.Error("Navigate action should switch the current page")
	}
	if next.HistoryDepth() != 1 {
		t.Error("Navigate action should push history")
	}
}

func TestApplyButtonAction_BackAndHome(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws, backID := addActionButton(t, ws, board.Back{}, false)
	ws, homeID := addActionButton(t, ws, board.Home{}, false)
	// Buttons live on ids[0]; dispatch resolves across pages.
	ws = ws.JumpToPage(ids[1]).JumpToPage(ids[2])

	back := ws.ApplyButtonAction(backID)
	if back.CurrentPageID() != ids[1] {
		t.Error("Back action should pop history")
	}
	home := ws.ApplyButtonAction(homeID)
	if home.CurrentPageID() != ids[0] {
		t.Error("Home action should land on the first page")
	}
}

func TestApplyButtonAction_Bookmark(t *testing.T) {
	ws, ids := navFixture(t, 2)
	ws, id := addActionButton(t, ws, board.Bookmark{}, false)

	next := ws.ApplyButtonAction(id)
	if next.BookmarkedPageID() != ids[0] {
		t.Error("Bookmark action should bookmark the current page")
	}
}

func TestApplyButtonAction_SpeakLeavesStateAlone(t *testing.T) {
	ws, _ := navFixture(t, 2)
	ws, id := addActionButton(t, ws, board.Speak{Text: "hi"}, false)

	if got := ws.ApplyButtonAction(id); got != ws {
		t.Error("Speak has no editor-side effect and must return the receiver")
	}
}

func TestApplyButtonAction_SelfClosingAutoBack(t *testing.T) {
	ws, ids := navFixture(t, 3)
	// Speak button marked self-closing on ids[1].
	ws = ws.JumpToPage(ids[1])
	ws, id := addActionButton(t, ws, board.Speak{Text: "hi"}, true)
	ws = ws.JumpToPage(ids[2])
	ws = ws.JumpToPage(ids[1])

	next := ws.ApplyButtonAction(id)
	if next.CurrentPageID() != ids[2] {
		t.Errorf("Self-closing button should auto-back to %q, got %q", ids[2], next.CurrentPageID())
	}
}

func TestApplyButtonAction_SelfClosingBackRunsOnce(t *testing.T) {
	ws, ids := navFixture(t, 3)
	ws, id := addActionButton(t, ws, board.Back{}, true)
	ws = ws.JumpToPage(ids[1]).JumpToPage(ids[2])

	next := ws.ApplyButtonAction(id)
	if next.CurrentPageID() != ids[1] {
		t.Errorf("Self-closing Back must transition once, got %q", next.CurrentPageID())
	}
}

func TestApplyButtonAction_UnknownButtonIsNoOp(t *testing.T) {
	ws, _ := navFixture(t, 2)
	if got := ws.ApplyButtonAction("nope"); got != ws {
		t.Error("Unknown button should return the receiver")
	}
}

func TestApplyButtonAction_LinkSwitchesBoard(t *testing.T) {
	ws := New().ImportBoard(testBoard("A"))
	ws.ActiveBoard().RemoteID = "srv-linked"
	ws = ws.ImportBoard(testBoard("B"))
	target := ws.Boards()[0].LocalID

	ws, id := addActionButton(t, ws, board.Link{ToBoardID: "srv-linked"}, false)
	next := ws.ApplyButtonAction(id)
	if next.ActiveBoardID() != target {
		t.Error("Link action should activate the target board")
	}
	if next.CurrentPageID() != next.ActiveBoard().Board.Pages[0].ID {
		t.Error("Board switch should reset traversal to the first page")
	}
	if next.HistoryDepth() != 0 {
		t.Error("Board switch should clear history")
	}
}

func TestApplyButtonAction_LinkUnresolvedIsNoOp(t *testing.T) {
	ws, _ := navFixture(t, 2)
	ws, id := addActionButton(t, ws, board.Link{ToBoardID: "missing"}, false)
	if got := ws.ApplyButtonAction(id); got != ws {
		t.Error("Unresolvable link should return the receiver")
	}
}
