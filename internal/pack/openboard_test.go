// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"testing"
)

// packageOpenBoard also returns the packaged input, since ids are minted per
// fixture and the archive can only be cross-checked against its own source.
func packageOpenBoard(t *testing.T, beta bool) (map[string][]byte, *Input) {
	t.Helper()
	in := fixtureInput()
	p := &OpenBoardPackager{beta: beta}
	data, err := p.Package(in)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	return readArchive(t, data), in
}

func TestOpenBoard_ManifestAndRoot(t *testing.T) {
	files, in := packageOpenBoard(t, false)
	src := in.Board

	var manifest obzManifest
	if err := json.Unmarshal(files["manifest.json"], &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.Format != obfFormatCurrent {
		t.Errorf("format = %q, want %q", manifest.Format, obfFormatCurrent)
	}
	if len(manifest.Paths.Boards) != len(src.Pages) {
		t.Errorf("manifest lists %d boards, want %d", len(manifest.Paths.Boards), len(src.Pages))
	}
	if manifest.Root != "boards/"+src.Pages[0].ID+".obf" {
		t.Errorf("root = %q", manifest.Root)
	}
	for _, path := range manifest.Paths.Boards {
		if _, ok := files[path]; !ok {
			t.Errorf("manifest references missing entry %s", path)
		}
	}
}

func TestOpenBoard_RoundTripCounts(t *testing.T) {
	files, in := packageOpenBoard(t, false)
	src := in.Board

	var home obfBoard
	if err := json.Unmarshal(files["boards/"+src.Pages[0].ID+".obf"], &home); err != nil {
		t.Fatalf("decode home board: %v", err)
	}
	if home.Grid.Rows != src.Grid.Rows || home.Grid.Columns != src.Grid.Cols {
		t.Errorf("grid %dx%d, want %dx%d", home.Grid.Rows, home.Grid.Columns, src.Grid.Rows, src.Grid.Cols)
	}
	if len(home.Buttons) != len(src.Pages[0].Buttons) {
		t.Errorf("buttons = %d, want %d", len(home.Buttons), len(src.Pages[0].Buttons))
	}
	if len(home.Grid.Order) != src.Grid.Rows || len(home.Grid.Order[0]) != src.Grid.Cols {
		t.Fatal("grid.order matrix has wrong dimensions")
	}
	helloID := src.Pages[0].Buttons[0].ID
	if home.Grid.Order[0][0] == nil || *home.Grid.Order[0][0] != helloID {
		t.Error("grid.order[0][0] should hold the hello button id")
	}
	if home.Grid.Order[1][1] != nil {
		t.Error("empty cells must be null in grid.order")
	}
}

func TestOpenBoard_ActionTranslation(t *testing.T) {
	files, in := packageOpenBoard(t, false)
	src := in.Board

	var home, snacks obfBoard
	if err := json.Unmarshal(files["boards/"+src.Pages[0].ID+".obf"], &home); err != nil {
		t.Fatalf("decode home: %v", err)
	}
	if err := json.Unmarshal(files["boards/"+src.Pages[1].ID+".obf"], &snacks); err != nil {
		t.Fatalf("decode snacks: %v", err)
	}

	byLabel := func(b obfBoard, label string) obfButton {
		for _, btn := range b.Buttons {
			if btn.Label == label {
				return btn
			}
		}
		t.Fatalf("board %s has no button %q", b.Name, label)
		return obfButton{}
	}

	hello := byLabel(home, "hello")
	if hello.Vocalization != "hello there" {
		t.Errorf("speak vocalization = %q", hello.Vocalization)
	}
	if hello.ImageID == "" {
		t.Error("hello should reference a pooled image")
	}

	nav := byLabel(home, "snacks")
	if nav.LoadBoard == nil || nav.LoadBoard.Path != "boards/"+src.Pages[1].ID+".obf" {
		t.Errorf("navigate load_board = %+v", nav.LoadBoard)
	}

	news := byLabel(home, "news")
	if news.URL != "https://example.com/news" {
		t.Errorf("open_url url = %q", news.URL)
	}

	back := byLabel(snacks, "back")
	if back.Action != ":back" {
		t.Errorf("back action = %q", back.Action)
	}

	song := byLabel(snacks, "song")
	if song.URL != "https://cdn.example.com/song.mp4" {
		t.Errorf("play_video url = %q", song.URL)
	}
}

func TestOpenBoard_ImagePoolFallback(t *testing.T) {
	files, in := packageOpenBoard(t, false)
	src := in.Board

	var home obfBoard
	if err := json.Unmarshal(files["boards/"+src.Pages[0].ID+".obf"], &home); err != nil {
		t.Fatalf("decode home: %v", err)
	}
	if len(home.Images) != 1 {
		t.Fatalf("images = %d, want 1", len(home.Images))
	}
	// The fixture symbol has no pooled URL, so the target library resolves it.
	if home.Images[0].URL != "yes.svg" {
		t.Errorf("image url = %q, want the library resource", home.Images[0].URL)
	}
}

func TestOpenBoardBeta_Extensions(t *testing.T) {
	files, in := packageOpenBoard(t, true)
	src := in.Board

	var manifest obzManifest
	if err := json.Unmarshal(files["manifest.json"], &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.Format != obfFormatBeta {
		t.Errorf("format = %q, want %q", manifest.Format, obfFormatBeta)
	}

	var snacks obfBoard
	if err := json.Unmarshal(files["boards/"+src.Pages[1].ID+".obf"], &snacks); err != nil {
		t.Fatalf("decode snacks: %v", err)
	}
	if snacks.ExtGenerator != "boardforge" {
		t.Error("beta boards should carry the generator extension")
	}
	for _, btn := range snacks.Buttons {
		if btn.Label != "song" {
			continue
		}
		if !btn.ExtSelfClosing {
			t.Error("self-closing flag should survive in the beta extension")
		}
		if btn.ExtVideoURL != "https://cdn.example.com/song.mp4" {
			t.Errorf("beta video extension = %q", btn.ExtVideoURL)
		}
		if btn.URL != "" {
			t.Error("beta moves the video url out of the url field")
		}
	}
}
