// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/boardforge/internal/canonical"
)

// =============================================================================
// SNAPCORE PACKAGER
// =============================================================================

// SnapCorePackager emits the JSON pageset format: a pageset.json index plus
// one pages/page_<n>.json per page. This target addresses cells by a flat
// position index, (row-1)*cols + (col-1), rather than row/col pairs.
//
// The beta revision bumps schemaVersion to 2 and attaches per-button style
// records.
type SnapCorePackager struct {
	beta bool
}

func (p *SnapCorePackager) Target() Target {
	if p.beta {
		return TargetSnapCoreBeta
	}
	return TargetSnapCore
}

func (p *SnapCorePackager) FileExtension() string { return ".spb" }

// =============================================================================
// JSON DOCUMENTS
// =============================================================================

type snapPageset struct {
	Title         string         `json:"title"`
	Locale        string         `json:"locale"`
	SchemaVersion int            `json:"schemaVersion"`
	GridRows      int            `json:"gridRows"`
	GridCols      int            `json:"gridCols"`
	Pages         []snapPageRef  `json:"pages"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
}

type snapPageRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}

type snapPage struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Cols    int          `json:"cols"`
	Buttons []snapButton `json:"buttons"`
}

type snapButton struct {
	ID       string        `json:"id"`
	Position int           `json:"position"`
	Span     *snapSpan     `json:"span,omitempty"`
	Label    string        `json:"label"`
	Message  string        `json:"message,omitempty"`
	Symbol   string        `json:"symbol,omitempty"`
	Commands []snapCommand `json:"commands,omitempty"`
	Style    *snapStyle    `json:"style,omitempty"`
}

type snapSpan struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type snapCommand struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Target string `json:"target,omitempty"`
	URL    string `json:"url,omitempty"`
}

type snapStyle struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	AutoClose       bool   `json:"autoClose,omitempty"`
}

// =============================================================================
// PACKAGING
// =============================================================================

func (p *SnapCorePackager) Package(in *Input) ([]byte, error) {
	if in == nil || in.Record == nil {
		return nil, packagingErrf(p.Target(), nil, "no canonical record")
	}
	rec := in.Record

	version := 1
	if p.beta {
		version = 2
	}

	a := newArchive(p.Target())
	pageset := snapPageset{
		Title:         rec.Meta.Title,
		Locale:        rec.Meta.Locale,
		SchemaVersion: version,
		GridRows:      rec.Boards[0].Layout.Rows,
		GridCols:      rec.Boards[0].Layout.Cols,
	}
	if in.Thumbnail != nil {
		pageset.Thumbnail = "thumbnail.png"
		a.add("thumbnail.png", in.Thumbnail)
	}

	for i, b := range rec.Boards {
		file := fmt.Sprintf("pages/page_%d.json", i+1)
		pageset.Pages = append(pageset.Pages, snapPageRef{ID: b.ID, Name: b.Name, File: file})

		page, err := p.buildPage(rec, b)
		if err != nil {
			return nil, err
		}
		p.addJSON(a, file, page)
	}

	p.addJSON(a, "pageset.json", pageset)
	return a.close()
}

func (p *SnapCorePackager) addJSON(a *archive, path string, doc any) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		if a.err == nil {
			a.err = packagingErrf(p.Target(), err, "encode %s", path)
		}
		return
	}
	a.add(path, data)
}

func (p *SnapCorePackager) buildPage(rec *canonical.Record, b canonical.Board) (snapPage, error) {
	page := snapPage{
		ID:   b.ID,
		Name: b.Name,
		Rows: b.Layout.Rows,
		Cols: b.Layout.Cols,
	}

	for _, cell := range b.Cells {
		btn := snapButton{
			ID:       cell.ID,
			Position: (cell.Row-1)*b.Layout.Cols + (cell.Col - 1),
			Label:    cell.Label,
			Message:  cell.Message,
		}
		if cell.RowSpan > 1 || cell.ColSpan > 1 {
			btn.Span = &snapSpan{Rows: max(cell.RowSpan, 1), Cols: max(cell.ColSpan, 1)}
		}
		if cell.SymbolID != "" {
			btn.Symbol = symbolFor(p.Target(), rec.Assets.Symbols[cell.SymbolID].Name)
		}
		if p.beta && (cell.Color != "" || cell.SelfClosing) {
			btn.Style = &snapStyle{BackgroundColor: cell.Color, AutoClose: cell.SelfClosing}
		}

		for _, act := range cell.Actions {
			cmd, err := p.buildCommand(rec, cell, act)
			if err != nil {
				return snapPage{}, err
			}
			btn.Commands = append(btn.Commands, cmd)
		}
		page.Buttons = append(page.Buttons, btn)
	}
	return page, nil
}

func (p *SnapCorePackager) buildCommand(rec *canonical.Record, cell canonical.Cell, act canonical.Action) (snapCommand, error) {
	switch act.Type {
	case "speak":
		return snapCommand{Type: "speak", Text: act.Text}, nil
	case "navigate":
		return snapCommand{Type: "goToPage", Target: act.Target}, nil
	case "link":
		return snapCommand{Type: "openPageset", Target: act.Target}, nil
	case "back":
		return snapCommand{Type: "goBack"}, nil
	case "bookmark":
		return snapCommand{Type: "setMarker"}, nil
	case "home":
		return snapCommand{Type: "goHome"}, nil
	case "play_video":
		return snapCommand{Type: "playVideo", URL: rec.Assets.Videos[act.Target].URL}, nil
	case "open_url":
		return snapCommand{Type: "openUrl", URL: act.URL}, nil
	default:
		return snapCommand{}, packagingErrf(p.Target(), nil, "cell %s: untranslatable action %q", cell.ID, act.Type)
	}
}
