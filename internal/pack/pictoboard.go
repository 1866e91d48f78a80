// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"fmt"

	"github.com/jeranaias/boardforge/internal/board"
)

// =============================================================================
// PICTOBOARD PACKAGER (LEGACY PATH)
// =============================================================================

// PictoBoardPackager is the one packager that predates the canonical record:
// it reads the board model directly from Input.Board and keeps the model's
// own 0-indexed coordinates and tagged action envelopes on the wire. It
// stays on the legacy path so archives remain byte-compatible with installs
// that consume them.
//
// The beta revision adds a meta.json descriptor.
type PictoBoardPackager struct {
	beta bool
}

func (p *PictoBoardPackager) Target() Target {
	if p.beta {
		return TargetPictoBoardBeta
	}
	return TargetPictoBoard
}

func (p *PictoBoardPackager) FileExtension() string { return ".pbz" }

// =============================================================================
// JSON DOCUMENTS
// =============================================================================

type pictoIndex struct {
	Name      string   `json:"name"`
	Rows      int      `json:"rows"`
	Cols      int      `json:"cols"`
	Pages     []string `json:"pages"`
	Cover     string   `json:"cover,omitempty"`
}

type pictoPage struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Rows    int           `json:"rows"`
	Cols    int           `json:"cols"`
	Buttons []pictoButton `json:"buttons"`
}

type pictoButton struct {
	ID          string          `json:"id"`
	Row         int             `json:"row"`
	Col         int             `json:"col"`
	Label       string          `json:"label"`
	SpokenText  string          `json:"spokenText,omitempty"`
	Color       string          `json:"color,omitempty"`
	Symbol      string          `json:"symbol,omitempty"`
	SelfClosing bool            `json:"selfClosing,omitempty"`
	Action      json.RawMessage `json:"action,omitempty"`
}

type pictoMeta struct {
	Format    string `json:"format"`
	Revision  string `json:"revision"`
	Generator string `json:"generator"`
}

// =============================================================================
// PACKAGING
// =============================================================================

func (p *PictoBoardPackager) Package(in *Input) ([]byte, error) {
	if in == nil || in.Board == nil {
		return nil, packagingErrf(p.Target(), nil, "no board")
	}
	b := in.Board

	a := newArchive(p.Target())
	index := pictoIndex{
		Name: b.Name,
		Rows: b.Grid.Rows,
		Cols: b.Grid.Cols,
	}
	if in.Thumbnail != nil {
		index.Cover = "cover.png"
		a.add("cover.png", in.Thumbnail)
	}

	for _, page := range b.Pages {
		file := fmt.Sprintf("pages/%s.json", page.ID)
		index.Pages = append(index.Pages, file)

		doc, err := p.buildPage(b, page)
		if err != nil {
			return nil, err
		}
		p.addJSON(a, file, doc)
	}

	p.addJSON(a, "board.json", index)

	if p.beta {
		p.addJSON(a, "meta.json", pictoMeta{
			Format:    "pictoboard",
			Revision:  "beta",
			Generator: "boardforge",
		})
	}

	return a.close()
}

func (p *PictoBoardPackager) addJSON(a *archive, path string, doc any) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		if a.err == nil {
			a.err = packagingErrf(p.Target(), err, "encode %s", path)
		}
		return
	}
	a.add(path, data)
}

func (p *PictoBoardPackager) buildPage(b *board.Board, page *board.Page) (pictoPage, error) {
	grid := page.EffectiveGrid(b)
	doc := pictoPage{
		ID:   page.ID,
		Name: page.Name,
		Rows: grid.Rows,
		Cols: grid.Cols,
	}

	for _, btn := range page.Buttons {
		pb := pictoButton{
			ID:          btn.ID,
			Row:         btn.Row,
			Col:         btn.Col,
			Label:       btn.Label,
			SpokenText:  btn.SpokenText,
			Color:       btn.Color,
			SelfClosing: btn.SelfClosing,
		}
		if btn.SymbolRef != "" {
			pb.Symbol = symbolFor(p.Target(), btn.SymbolRef)
		}
		if btn.Action != nil {
			raw, err := board.MarshalAction(btn.Action)
			if err != nil {
				return pictoPage{}, packagingErrf(p.Target(), err, "button %s: encode action", btn.ID)
			}
			pb.Action = raw
		}
		doc.Buttons = append(doc.Buttons, pb)
	}
	return doc, nil
}
