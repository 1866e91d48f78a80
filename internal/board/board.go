// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Grid dimension limits. A board (or a page layout override) must keep both
// axes inside this range.
const (
	MinGridDim = 1
	MaxGridDim = 25
)

// =============================================================================
// BOARD TYPE
// =============================================================================

// Grid holds the row/column dimensions of a board or page.
type Grid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// InRange reports whether both dimensions lie inside [MinGridDim, MaxGridDim].
func (g Grid) InRange() bool {
	return g.Rows >= MinGridDim && g.Rows <= MaxGridDim &&
		g.Cols >= MinGridDim && g.Cols <= MaxGridDim
}

// Board is the root of the board IR.
type Board struct {
	Name       string  `json:"name"`
	Grid       Grid    `json:"grid"`
	Pages      []*Page `json:"pages"`
	Assets     Assets  `json:"assets,omitempty"`
	CoverImage string  `json:"cover_image,omitempty"`
}

// Page is one navigable page of buttons. Layout, when set, overrides the
// board-level grid dimensions for this page only.
type Page struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Buttons []*Button `json:"buttons"`
	Layout  *Grid     `json:"layout,omitempty"`
}

// =============================================================================
// ASSETS
// =============================================================================

// AssetRef is one pooled symbol/video/audio reference.
type AssetRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// Assets pools media references shared across a board's buttons.
type Assets struct {
	Symbols []AssetRef `json:"symbols,omitempty"`
	Videos  []AssetRef `json:"videos,omitempty"`
	Audio   []AssetRef `json:"audio,omitempty"`
}

// FindVideo returns the pooled video with the given id, or nil.
func (a Assets) FindVideo(id string) *AssetRef {
	for i := range a.Videos {
		if a.Videos[i].ID == id {
			return &a.Videos[i]
		}
	}
	return nil
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New creates a board with the given name and grid dimensions and a single
// empty first page.
func New(name string, rows, cols int) *Board {
	return &Board{
		Name:  name,
		Grid:  Grid{Rows: rows, Cols: cols},
		Pages: []*Page{NewPage("Page 1")},
	}
}

// NewPage creates an empty page with a generated id.
func NewPage(name string) *Page {
	return &Page{
		ID:      uuid.NewString(),
		Name:    name,
		Buttons: make([]*Button, 0),
	}
}

// =============================================================================
// LOOKUPS
// =============================================================================

// FindPage returns the page with the given id, or nil.
func (b *Board) FindPage(id string) *Page {
	for _, p := range b.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PageIndex returns the index of the page with the given id, or -1.
func (b *Board) PageIndex(id string) int {
	for i, p := range b.Pages {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// FindButton searches every page for the button with the given id.
// Returns the owning page and the button, or (nil, nil).
func (b *Board) FindButton(id string) (*Page, *Button) {
	for _, p := range b.Pages {
		if btn := p.FindButton(id); btn != nil {
			return p, btn
		}
	}
	return nil, nil
}

// EffectiveGrid returns the grid dimensions that apply to this page:
// the page layout override when present, otherwise the board grid.
func (p *Page) EffectiveGrid(b *Board) Grid {
	if p.Layout != nil {
		return *p.Layout
	}
	return b.Grid
}

// FindButton returns the button with the given id on this page, or nil.
func (p *Page) FindButton(id string) *Button {
	for _, btn := range p.Buttons {
		if btn.ID == id {
			return btn
		}
	}
	return nil
}

// ButtonAt returns the button occupying (row, col) on this page, or nil.
func (p *Page) ButtonAt(row, col int) *Button {
	for _, btn := range p.Buttons {
		if btn.Row == row && btn.Col == col {
			return btn
		}
	}
	return nil
}

// =============================================================================
// CLONING
// =============================================================================

// Clone returns a deep copy of the board. Workspace snapshots rely on clones
// never sharing mutable state with the original.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{
		Name:       b.Name,
		Grid:       b.Grid,
		CoverImage: b.CoverImage,
		Pages:      make([]*Page, len(b.Pages)),
		Assets: Assets{
			Symbols: append([]AssetRef(nil), b.Assets.Symbols...),
			Videos:  append([]AssetRef(nil), b.Assets.Videos...),
			Audio:   append([]AssetRef(nil), b.Assets.Audio...),
		},
	}
	for i, p := range b.Pages {
		out.Pages[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := &Page{
		ID:      p.ID,
		Name:    p.Name,
		Buttons: make([]*Button, len(p.Buttons)),
	}
	if p.Layout != nil {
		layout := *p.Layout
		out.Layout = &layout
	}
	for i, btn := range p.Buttons {
		out.Buttons[i] = btn.Clone()
	}
	return out
}

// =============================================================================
// SERIALIZATION
// =============================================================================

// Decode parses a JSON-encoded board.
func Decode(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	return &b, nil
}

// Encode serializes the board as indented JSON.
func (b *Board) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return data, nil
}
