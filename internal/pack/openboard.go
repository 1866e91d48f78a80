// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jeranaias/boardforge/internal/canonical"
)

// =============================================================================
// OPENBOARD PACKAGER
// =============================================================================

// OpenBoardPackager emits the Open Board Format archive (.obz): a
// manifest.json plus one .obf JSON document per page, with the grid expressed
// as an id matrix (grid.order) and navigation as load_board references.
//
// The beta revision declares format open-board-0.2 and carries the editor's
// extension fields under ext_boardforge_* keys.
type OpenBoardPackager struct {
	beta bool
}

func (p *OpenBoardPackager) Target() Target {
	if p.beta {
		return TargetOpenBoardBeta
	}
	return TargetOpenBoard
}

func (p *OpenBoardPackager) FileExtension() string { return ".obz" }

const (
	obfFormatCurrent = "open-board-0.1"
	obfFormatBeta    = "open-board-0.2"
)

// =============================================================================
// JSON DOCUMENTS
// =============================================================================

type obzManifest struct {
	Format string            `json:"format"`
	Root   string            `json:"root"`
	Paths  obzManifestPaths  `json:"paths"`
}

type obzManifestPaths struct {
	Boards map[string]string `json:"boards"`
	Images map[string]string `json:"images,omitempty"`
}

type obfBoard struct {
	Format      string      `json:"format"`
	ID          string      `json:"id"`
	Locale      string      `json:"locale"`
	Name        string      `json:"name"`
	Grid        obfGrid     `json:"grid"`
	Buttons     []obfButton `json:"buttons"`
	Images      []obfImage  `json:"images,omitempty"`
	ExtGenerator string     `json:"ext_boardforge_generator,omitempty"`
}

type obfGrid struct {
	Rows    int         `json:"rows"`
	Columns int         `json:"columns"`
	Order   [][]*string `json:"order"`
}

type obfButton struct {
	ID              string        `json:"id"`
	Label           string        `json:"label"`
	Vocalization    string        `json:"vocalization,omitempty"`
	BackgroundColor string        `json:"background_color,omitempty"`
	ImageID         string        `json:"image_id,omitempty"`
	Action          string        `json:"action,omitempty"`
	URL             string        `json:"url,omitempty"`
	LoadBoard       *obfLoadBoard `json:"load_board,omitempty"`
	ExtSelfClosing  bool          `json:"ext_boardforge_self_closing,omitempty"`
	ExtVideoURL     string        `json:"ext_boardforge_video_url,omitempty"`
}

type obfLoadBoard struct {
	ID   string `json:"id"`
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

type obfImage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// =============================================================================
// PACKAGING
// =============================================================================

func (p *OpenBoardPackager) Package(in *Input) ([]byte, error) {
	if in == nil || in.Record == nil {
		return nil, packagingErrf(p.Target(), nil, "no canonical record")
	}
	rec := in.Record

	format := obfFormatCurrent
	if p.beta {
		format = obfFormatBeta
	}

	boardPaths := make(map[string]string, len(rec.Boards))
	for _, b := range rec.Boards {
		boardPaths[b.ID] = fmt.Sprintf("boards/%s.obf", b.ID)
	}

	a := newArchive(p.Target())
	manifest := obzManifest{
		Format: format,
		Root:   boardPaths[rec.Boards[0].ID],
		Paths:  obzManifestPaths{Boards: boardPaths},
	}

	if in.Thumbnail != nil {
		manifest.Paths.Images = map[string]string{"thumbnail": "images/thumbnail.png"}
		a.add("images/thumbnail.png", in.Thumbnail)
	}

	for _, b := range rec.Boards {
		doc, err := p.buildBoard(rec, b, format, boardPaths)
		if err != nil {
			return nil, err
		}
		p.addJSON(a, boardPaths[b.ID], doc)
	}

	p.addJSON(a, "manifest.json", manifest)
	return a.close()
}

func (p *OpenBoardPackager) addJSON(a *archive, path string, doc any) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		if a.err == nil {
			a.err = packagingErrf(p.Target(), err, "encode %s", path)
		}
		return
	}
	a.add(path, data)
}

func (p *OpenBoardPackager) buildBoard(rec *canonical.Record, b canonical.Board, format string, boardPaths map[string]string) (obfBoard, error) {
	doc := obfBoard{
		Format: format,
		ID:     b.ID,
		Locale: rec.Meta.Locale,
		Name:   b.Name,
		Grid: obfGrid{
			Rows:    b.Layout.Rows,
			Columns: b.Layout.Cols,
		},
	}
	if p.beta {
		doc.ExtGenerator = "boardforge"
	}

	// grid.order is a rows x cols matrix of button ids, null for empty cells.
	order := make([][]*string, b.Layout.Rows)
	for r := range order {
		order[r] = make([]*string, b.Layout.Cols)
	}

	imageIDs := make(map[string]bool)
	for _, cell := range b.Cells {
		btn, err := p.buildButton(rec, cell, boardPaths)
		if err != nil {
			return obfBoard{}, err
		}
		doc.Buttons = append(doc.Buttons, btn)
		if btn.ImageID != "" {
			imageIDs[btn.ImageID] = true
		}
		id := cell.ID
		order[cell.Row-1][cell.Col-1] = &id
	}
	doc.Grid.Order = order

	// Stable image pool ordering keeps repeated packaging byte-identical.
	ids := make([]string, 0, len(imageIDs))
	for id := range imageIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		asset := rec.Assets.Symbols[id]
		url := asset.URL
		if url == "" {
			url = symbolFor(p.Target(), asset.Name)
		}
		doc.Images = append(doc.Images, obfImage{ID: id, URL: url})
	}

	return doc, nil
}

func (p *OpenBoardPackager) buildButton(rec *canonical.Record, cell canonical.Cell, boardPaths map[string]string) (obfButton, error) {
	btn := obfButton{
		ID:              cell.ID,
		Label:           cell.Label,
		Vocalization:    cell.Message,
		BackgroundColor: cell.Color,
		ImageID:         cell.SymbolID,
	}
	if p.beta && cell.SelfClosing {
		btn.ExtSelfClosing = true
	}

	for _, act := range cell.Actions {
		switch act.Type {
		case "speak":
			btn.Vocalization = act.Text
		case "navigate":
			btn.LoadBoard = &obfLoadBoard{ID: act.Target, Path: boardPaths[act.Target]}
		case "link":
			btn.LoadBoard = &obfLoadBoard{ID: act.Target, URL: act.Target}
		case "back":
			btn.Action = ":back"
		case "bookmark":
			btn.Action = ":bookmark"
		case "home":
			btn.Action = ":home"
		case "play_video":
			if p.beta {
				btn.ExtVideoURL = rec.Assets.Videos[act.Target].URL
			} else {
				btn.URL = rec.Assets.Videos[act.Target].URL
			}
		case "open_url":
			btn.URL = act.URL
		default:
			return obfButton{}, packagingErrf(p.Target(), nil, "cell %s: untranslatable action %q", cell.ID, act.Type)
		}
	}
	return btn, nil
}
