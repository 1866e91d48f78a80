// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canonical

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/jeranaias/boardforge/internal/board"
)

// sampleBoard builds a two-page board exercising every conversion path.
func sampleBoard() *board.Board {
	b := board.New("My Voice", 3, 4)
	b.Pages[0].Name = "Home"
	snacks := board.NewPage("Snacks")
	b.Pages = append(b.Pages, snacks)

	b.Assets.Symbols = []board.AssetRef{{ID: "apple", Name: "apple", URL: "http://sym/apple.png"}}
	b.Assets.Videos = []board.AssetRef{{ID: "v1", Name: "clip", URL: "http://vid/clip.mp4"}}
	b.Assets.Audio = []board.AssetRef{{ID: "a1", Name: "chime", URL: "http://aud/chime.mp3"}}

	speak := board.NewButton("hello", 0, 0)
	speak.Action = board.Speak{Text: "hello there"}
	speak.Color = "#ffcc00"
	speak.SymbolRef = "apple"

	nav := board.NewButton("snacks", 0, 1)
	nav.Action = board.Navigate{ToPageID: snacks.ID}
	nav.SelfClosing = true

	vid := board.NewButton("watch", 1, 0)
	vid.Action = board.PlayVideo{VideoID: "v1"}

	b.Pages[0].Buttons = append(b.Pages[0].Buttons, speak, nav, vid)

	apple := board.NewButton("apple", 0, 0)
	apple.SymbolRef = "apple" // same symbol as page one: must pool once
	apple.SpokenText = "I want an apple"
	snacks.Buttons = append(snacks.Buttons, apple)

	return b
}

// =============================================================================
// CONVERTER TESTS
// =============================================================================

func TestConvert_Structure(t *testing.T) {
	b := sampleBoard()
	rec := Convert(b)

	if rec.Meta.Title != "My Voice" {
		t.Errorf("Title = %q", rec.Meta.Title)
	}
	if rec.Meta.Locale != DefaultLocale || rec.Meta.Version != RecordVersion {
		t.Errorf("Meta = %+v", rec.Meta)
	}
	if len(rec.Boards) != 2 {
		t.Fatalf("Boards = %d, want one per page", len(rec.Boards))
	}
	if rec.Boards[0].ID != b.Pages[0].ID || rec.Boards[1].ID != b.Pages[1].ID {
		t.Error("Canonical boards must preserve page ids and order")
	}
	if rec.Boards[0].Layout.Rows != 3 || rec.Boards[0].Layout.Cols != 4 {
		t.Errorf("Layout = %+v", rec.Boards[0].Layout)
	}
}

func TestConvert_OneIndexedCoordinates(t *testing.T) {
	rec := Convert(sampleBoard())

	cell := rec.Boards[0].Cells[0]
	if cell.Row != 1 || cell.Col != 1 {
		t.Errorf("Cell at IR (0,0) should be canonical (1,1), got (%d,%d)", cell.Row, cell.Col)
	}
	cell = rec.Boards[0].Cells[2]
	if cell.Row != 2 || cell.Col != 1 {
		t.Errorf("Cell at IR (1,0) should be canonical (2,1), got (%d,%d)", cell.Row, cell.Col)
	}
}

func TestConvert_ActionFlattening(t *testing.T) {
	b := sampleBoard()
	rec := Convert(b)
	cells := rec.Boards[0].Cells

	if got := cells[0].Actions[0]; got.Type != "speak" || got.Text != "hello there" {
		t.Errorf("Speak flattened to %+v", got)
	}
	if got := cells[1].Actions[0]; got.Type != "navigate" || got.Target != b.Pages[1].ID {
		t.Errorf("Navigate flattened to %+v", got)
	}
	if !cells[1].SelfClosing {
		t.Error("SelfClosing lost in conversion")
	}
	if got := cells[2].Actions[0]; got.Type != "play_video" || got.Target == "" {
		t.Errorf("PlayVideo flattened to %+v", got)
	}
}

func TestConvert_AssetPooling(t *testing.T) {
	rec := Convert(sampleBoard())

	if len(rec.Assets.Symbols) != 1 {
		t.Fatalf("Symbols pooled = %d, want 1 (same ref used twice)", len(rec.Assets.Symbols))
	}
	sym := rec.Assets.Symbols["sym_1"]
	if sym.URL != "http://sym/apple.png" {
		t.Errorf("Pooled symbol should carry the board pool URL, got %+v", sym)
	}

	// Both referencing cells share the pooled id.
	first := rec.Boards[0].Cells[0].SymbolID
	second := rec.Boards[1].Cells[0].SymbolID
	if first != "sym_1" || second != "sym_1" {
		t.Errorf("Symbol ids = %q, %q, want shared sym_1", first, second)
	}

	if len(rec.Assets.Videos) != 1 {
		t.Errorf("Videos pooled = %d, want 1", len(rec.Assets.Videos))
	}
	if len(rec.Assets.Audio) != 1 {
		t.Errorf("Audio carried = %d, want 1", len(rec.Assets.Audio))
	}
}

func TestConvert_Deterministic(t *testing.T) {
	b := sampleBoard()
	first, err := json.Marshal(Convert(b))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(Convert(b))
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("Convert is not deterministic for the same input")
	}
}

func TestConvert_PureInput(t *testing.T) {
	b := sampleBoard()
	before, _ := b.Encode()
	Convert(b)
	after, _ := b.Encode()
	if string(before) != string(after) {
		t.Error("Convert mutated the source board")
	}
}

// =============================================================================
// RECORD CHECK TESTS
// =============================================================================

func TestCheckRecord_ConvertedBoardPasses(t *testing.T) {
	rec := Convert(sampleBoard())
	if err := CheckRecord(rec); err != nil {
		t.Fatalf("Converted record failed its own check: %v", err)
	}
}

func TestCheckRecord_Violations(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(r *Record)
	}{
		{"empty title", func(r *Record) { r.Meta.Title = "" }},
		{"bad locale", func(r *Record) { r.Meta.Locale = "no-such-locale-tag!!" }},
		{"no boards", func(r *Record) { r.Boards = nil }},
		{"zero-indexed cell", func(r *Record) { r.Boards[0].Cells[0].Row = 0 }},
		{"cell past layout", func(r *Record) { r.Boards[0].Cells[0].Col = 99 }},
		{"unpooled symbol", func(r *Record) { r.Boards[0].Cells[0].SymbolID = "sym_404" }},
		{"unknown action type", func(r *Record) { r.Boards[0].Cells[0].Actions = []Action{{Type: "warp"}} }},
		{"dangling navigate", func(r *Record) { r.Boards[0].Cells[1].Actions[0].Target = "gone" }},
		{"unpooled video", func(r *Record) { r.Boards[0].Cells[2].Actions[0].Target = "vid_404" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Convert(sampleBoard())
			tt.corrupt(rec)
			err := CheckRecord(rec)
			if err == nil {
				t.Fatal("Expected schema violation")
			}
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Errorf("Expected *SchemaError, got %T", err)
			}
		})
	}
}
