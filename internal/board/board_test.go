// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"strings"
	"testing"
)

// =============================================================================
// MODEL TESTS
// =============================================================================

func TestNew(t *testing.T) {
	b := New("Core Words", 4, 6)

	if b.Name != "Core Words" {
		t.Errorf("Name = %q, want %q", b.Name, "Core Words")
	}
	if b.Grid.Rows != 4 || b.Grid.Cols != 6 {
		t.Errorf("Grid = %+v, want 4x6", b.Grid)
	}
	if len(b.Pages) != 1 {
		t.Fatalf("Pages = %d, want 1", len(b.Pages))
	}
	if b.Pages[0].ID == "" {
		t.Error("Expected generated page id")
	}
}

func TestGrid_InRange(t *testing.T) {
	tests := []struct {
		rows, cols int
		want       bool
	}{
		{1, 1, true},
		{25, 25, true},
		{4, 6, true},
		{0, 5, false},
		{5, 0, false},
		{26, 5, false},
		{5, 26, false},
		{-1, -1, false},
	}
	for _, tt := range tests {
		g := Grid{Rows: tt.rows, Cols: tt.cols}
		if got := g.InRange(); got != tt.want {
			t.Errorf("Grid{%d,%d}.InRange() = %v, want %v", tt.rows, tt.cols, got, tt.want)
		}
	}
}

func TestBoard_Lookups(t *testing.T) {
	b := New("Lookup", 3, 3)
	p2 := NewPage("Second")
	b.Pages = append(b.Pages, p2)

	btn := NewButton("more", 1, 2)
	p2.Buttons = append(p2.Buttons, btn)

	if got := b.FindPage(p2.ID); got != p2 {
		t.Error("FindPage did not return the page")
	}
	if got := b.FindPage("nope"); got != nil {
		t.Error("FindPage returned a page for an unknown id")
	}
	if got := b.PageIndex(p2.ID); got != 1 {
		t.Errorf("PageIndex = %d, want 1", got)
	}

	page, found := b.FindButton(btn.ID)
	if page != p2 || found != btn {
		t.Error("FindButton did not locate the button across pages")
	}
	if got := p2.ButtonAt(1, 2); got != btn {
		t.Error("ButtonAt(1,2) did not return the button")
	}
	if got := p2.ButtonAt(0, 0); got != nil {
		t.Error("ButtonAt(0,0) should be empty")
	}
}

func TestPage_EffectiveGrid(t *testing.T) {
	b := New("Layouts", 4, 4)
	p := b.Pages[0]

	if g := p.EffectiveGrid(b); g != b.Grid {
		t.Errorf("EffectiveGrid = %+v, want board grid", g)
	}

	p.Layout = &Grid{Rows: 2, Cols: 8}
	if g := p.EffectiveGrid(b); g.Rows != 2 || g.Cols != 8 {
		t.Errorf("EffectiveGrid = %+v, want layout override", g)
	}
}

func TestBoard_Clone_Independent(t *testing.T) {
	b := New("Original", 2, 2)
	btn := NewButton("go", 0, 0)
	btn.Action = Navigate{ToPageID: "p2"}
	b.Pages[0].Buttons = append(b.Pages[0].Buttons, btn)
	b.Assets.Symbols = append(b.Assets.Symbols, AssetRef{ID: "s1", URL: "http://x/s1.png"})

	clone := b.Clone()
	clone.Name = "Changed"
	clone.Pages[0].Name = "Renamed"
	clone.Pages[0].Buttons[0].Label = "stop"
	clone.Assets.Symbols[0].URL = "http://x/other.png"

	if b.Name != "Original" {
		t.Error("Clone mutation leaked into original board name")
	}
	if b.Pages[0].Name == "Renamed" {
		t.Error("Clone mutation leaked into original page")
	}
	if b.Pages[0].Buttons[0].Label != "go" {
		t.Error("Clone mutation leaked into original button")
	}
	if b.Assets.Symbols[0].URL != "http://x/s1.png" {
		t.Error("Clone mutation leaked into original assets")
	}
}

// =============================================================================
// SERIALIZATION TESTS
// =============================================================================

func TestBoard_EncodeDecode(t *testing.T) {
	b := New("Round Trip", 3, 4)
	speak := NewButton("hello", 0, 0)
	speak.Action = Speak{Text: "hello there"}
	speak.SpokenText = "hello there"
	speak.Color = "#ff0000"
	nav := NewButton("food", 0, 1)
	nav.Action = Navigate{ToPageID: b.Pages[0].ID}
	nav.SelfClosing = true
	b.Pages[0].Buttons = append(b.Pages[0].Buttons, speak, nav)

	data, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.Name != b.Name || got.Grid != b.Grid {
		t.Errorf("Decoded board header mismatch: %+v", got)
	}
	if len(got.Pages) != 1 || len(got.Pages[0].Buttons) != 2 {
		t.Fatalf("Decoded shape mismatch: %d pages", len(got.Pages))
	}

	gotSpeak := got.Pages[0].Buttons[0]
	act, ok := gotSpeak.Action.(Speak)
	if !ok {
		t.Fatalf("Expected Speak action, got %T", gotSpeak.Action)
	}
	if act.Text != "hello there" {
		t.Errorf("Speak text = %q", act.Text)
	}

	gotNav := got.Pages[0].Buttons[1]
	if !gotNav.SelfClosing {
		t.Error("SelfClosing flag lost in round trip")
	}
	if _, ok := gotNav.Action.(Navigate); !ok {
		t.Fatalf("Expected Navigate action, got %T", gotNav.Action)
	}
}

func TestUnmarshalAction_AllKinds(t *testing.T) {
	tests := []struct {
		in   string
		want ActionKind
	}{
		{`{"type":"speak","text":"hi"}`, KindSpeak},
		{`{"type":"navigate","to_page_id":"p1"}`, KindNavigate},
		{`{"type":"link","to_board_id":"b1"}`, KindLink},
		{`{"type":"back"}`, KindBack},
		{`{"type":"bookmark"}`, KindBookmark},
		{`{"type":"home"}`, KindHome},
		{`{"type":"play_video","video_id":"v1"}`, KindPlayVideo},
		{`{"type":"open_url","url":"https://example.com"}`, KindOpenURL},
	}
	for _, tt := range tests {
		act, err := UnmarshalAction([]byte(tt.in))
		if err != nil {
			t.Fatalf("UnmarshalAction(%s) failed: %v", tt.in, err)
		}
		if act.Kind() != tt.want {
			t.Errorf("Kind = %q, want %q", act.Kind(), tt.want)
		}
	}
}

func TestUnmarshalAction_UnknownTag(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"type":"teleport"}`))
	if err == nil {
		t.Fatal("Expected error for unknown action type")
	}
	if !strings.Contains(err.Error(), "teleport") {
		t.Errorf("Error should name the bad tag: %v", err)
	}
}

func TestButton_UnmarshalJSON_BadAction(t *testing.T) {
	var btn Button
	err := btn.UnmarshalJSON([]byte(`{"id":"b1","label":"x","action":{"type":"warp"}}`))
	if err == nil {
		t.Fatal("Expected decode error for unknown action inside button")
	}
}
