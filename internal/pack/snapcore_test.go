// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"testing"
)

func packageSnapCore(t *testing.T, beta bool) (map[string][]byte, *Input) {
	t.Helper()
	in := fixtureInput()
	p := &SnapCorePackager{beta: beta}
	data, err := p.Package(in)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	return readArchive(t, data), in
}

func TestSnapCore_PagesetIndex(t *testing.T) {
	files, in := packageSnapCore(t, false)
	src := in.Board

	var pageset snapPageset
	if err := json.Unmarshal(files["pageset.json"], &pageset); err != nil {
		t.Fatalf("decode pageset: %v", err)
	}
	if pageset.Title != "Core Words" || pageset.SchemaVersion != 1 {
		t.Errorf("pageset = %+v", pageset)
	}
	if pageset.GridRows != src.Grid.Rows || pageset.GridCols != src.Grid.Cols {
		t.Errorf("pageset grid %dx%d", pageset.GridRows, pageset.GridCols)
	}
	if len(pageset.Pages) != len(src.Pages) {
		t.Fatalf("pageset lists %d pages, want %d", len(pageset.Pages), len(src.Pages))
	}
	for _, ref := range pageset.Pages {
		if _, ok := files[ref.File]; !ok {
			t.Errorf("pageset references missing entry %s", ref.File)
		}
	}
}

func TestSnapCore_FlatPositions(t *testing.T) {
	files, _ := packageSnapCore(t, false)

	var home snapPage
	if err := json.Unmarshal(files["pages/page_1.json"], &home); err != nil {
		t.Fatalf("decode page 1: %v", err)
	}

	want := map[string]int{
		"hello":  0, // (1-1)*2 + (1-1)
		"snacks": 1, // (1-1)*2 + (2-1)
		"news":   2, // (2-1)*2 + (1-1)
	}
	for _, btn := range home.Buttons {
		if pos, ok := want[btn.Label]; ok && btn.Position != pos {
			t.Errorf("%s at position %d, want %d", btn.Label, btn.Position, pos)
		}
	}
}

func TestSnapCore_CommandTranslation(t *testing.T) {
	files, in := packageSnapCore(t, false)
	src := in.Board

	var home, snacks snapPage
	if err := json.Unmarshal(files["pages/page_1.json"], &home); err != nil {
		t.Fatalf("decode page 1: %v", err)
	}
	if err := json.Unmarshal(files["pages/page_2.json"], &snacks); err != nil {
		t.Fatalf("decode page 2: %v", err)
	}

	byLabel := func(p snapPage, label string) snapButton {
		for _, btn := range p.Buttons {
			if btn.Label == label {
				return btn
			}
		}
		t.Fatalf("page %s has no button %q", p.Name, label)
		return snapButton{}
	}

	hello := byLabel(home, "hello")
	if len(hello.Commands) != 1 || hello.Commands[0].Type != "speak" || hello.Commands[0].Text != "hello there" {
		t.Errorf("speak commands = %+v", hello.Commands)
	}
	if hello.Symbol != "symbol://core/yes" {
		t.Errorf("symbol = %q", hello.Symbol)
	}

	nav := byLabel(home, "snacks")
	if nav.Commands[0].Type != "goToPage" || nav.Commands[0].Target != src.Pages[1].ID {
		t.Errorf("navigate commands = %+v", nav.Commands)
	}

	back := byLabel(snacks, "back")
	if back.Commands[0].Type != "goBack" {
		t.Errorf("back commands = %+v", back.Commands)
	}

	song := byLabel(snacks, "song")
	if song.Commands[0].Type != "playVideo" || song.Commands[0].URL != "https://cdn.example.com/song.mp4" {
		t.Errorf("play_video commands = %+v", song.Commands)
	}
}

func TestSnapCoreBeta_StyleRecords(t *testing.T) {
	files, _ := packageSnapCore(t, true)

	var pageset snapPageset
	if err := json.Unmarshal(files["pageset.json"], &pageset); err != nil {
		t.Fatalf("decode pageset: %v", err)
	}
	if pageset.SchemaVersion != 2 {
		t.Errorf("beta schemaVersion = %d, want 2", pageset.SchemaVersion)
	}

	var home, snacks snapPage
	if err := json.Unmarshal(files["pages/page_1.json"], &home); err != nil {
		t.Fatalf("decode page 1: %v", err)
	}
	if err := json.Unmarshal(files["pages/page_2.json"], &snacks); err != nil {
		t.Fatalf("decode page 2: %v", err)
	}

	for _, btn := range home.Buttons {
		if btn.Label == "hello" {
			if btn.Style == nil || btn.Style.BackgroundColor != "#ff0000" {
				t.Errorf("hello style = %+v", btn.Style)
			}
		}
	}
	for _, btn := range snacks.Buttons {
		if btn.Label == "song" {
			if btn.Style == nil || !btn.Style.AutoClose {
				t.Error("self-closing should appear as beta autoClose style")
			}
		}
	}

	// Current revision never emits style records.
	current, _ := packageSnapCore(t, false)
	var currentHome snapPage
	if err := json.Unmarshal(current["pages/page_1.json"], &currentHome); err != nil {
		t.Fatalf("decode current page 1: %v", err)
	}
	for _, btn := range currentHome.Buttons {
		if btn.Style != nil {
			t.Errorf("current %s carries a style record", btn.Label)
		}
	}
}
