// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"testing"

	"github.com/jeranaias/boardforge/internal/board"
)

func packagePictoBoard(t *testing.T, beta bool) (map[string][]byte, *Input) {
	t.Helper()
	in := fixtureInput()
	p := &PictoBoardPackager{beta: beta}
	data, err := p.Package(in)
	if err != nil {
		t.Fatalf("Package failed: %v", err)
	}
	return readArchive(t, data), in
}

func TestPictoBoard_Index(t *testing.T) {
	files, in := packagePictoBoard(t, false)
	src := in.Board

	var index pictoIndex
	if err := json.Unmarshal(files["board.json"], &index); err != nil {
		t.Fatalf("decode board.json: %v", err)
	}
	if index.Name != "Core Words" || index.Rows != 2 || index.Cols != 2 {
		t.Errorf("index = %+v", index)
	}
	if len(index.Pages) != len(src.Pages) {
		t.Fatalf("index lists %d pages, want %d", len(index.Pages), len(src.Pages))
	}
	for _, file := range index.Pages {
		if _, ok := files[file]; !ok {
			t.Errorf("index references missing entry %s", file)
		}
	}
}

func TestPictoBoard_ZeroIndexedButtons(t *testing.T) {
	files, in := packagePictoBoard(t, false)
	src := in.Board

	var home pictoPage
	if err := json.Unmarshal(files["pages/"+src.Pages[0].ID+".json"], &home); err != nil {
		t.Fatalf("decode home page: %v", err)
	}
	if len(home.Buttons) != len(src.Pages[0].Buttons) {
		t.Fatalf("buttons = %d, want %d", len(home.Buttons), len(src.Pages[0].Buttons))
	}
	// The legacy path keeps the model's own 0-indexed coordinates.
	for i, btn := range home.Buttons {
		want := src.Pages[0].Buttons[i]
		if btn.Row != want.Row || btn.Col != want.Col {
			t.Errorf("%s at (%d,%d), want (%d,%d)", btn.Label, btn.Row, btn.Col, want.Row, want.Col)
		}
	}
}

func TestPictoBoard_ActionEnvelopesRoundTrip(t *testing.T) {
	files, in := packagePictoBoard(t, false)
	src := in.Board

	var snacks pictoPage
	if err := json.Unmarshal(files["pages/"+src.Pages[1].ID+".json"], &snacks); err != nil {
		t.Fatalf("decode snacks page: %v", err)
	}

	for _, btn := range snacks.Buttons {
		if btn.Action == nil {
			t.Errorf("%s lost its action", btn.Label)
			continue
		}
		act, err := board.UnmarshalAction(btn.Action)
		if err != nil {
			t.Errorf("%s action does not decode: %v", btn.Label, err)
			continue
		}
		switch btn.Label {
		case "back":
			if act.Kind() != board.KindBack {
				t.Errorf("back decoded as %s", act.Kind())
			}
		case "song":
			pv, ok := act.(board.PlayVideo)
			if !ok || pv.VideoID != "vid-song" {
				t.Errorf("song decoded as %#v", act)
			}
			if !btn.SelfClosing {
				t.Error("selfClosing flag lost")
			}
		}
	}
}

func TestPictoBoardBeta_MetaDescriptor(t *testing.T) {
	files, _ := packagePictoBoard(t, true)

	var meta pictoMeta
	if err := json.Unmarshal(files["meta.json"], &meta); err != nil {
		t.Fatalf("decode meta.json: %v", err)
	}
	if meta.Format != "pictoboard" || meta.Revision != "beta" {
		t.Errorf("meta = %+v", meta)
	}

	current, _ := packagePictoBoard(t, false)
	if _, ok := current["meta.json"]; ok {
		t.Error("current archive must not contain meta.json")
	}
}
