// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canonical

import (
	"fmt"

	"github.com/jeranaias/boardforge/internal/board"
)

// DefaultTheme is carried into every layout; the IR has no per-board theme
// yet, and packagers need a stable value to emit.
const DefaultTheme = "default"

// =============================================================================
// CONVERTER
// =============================================================================

// Convert maps a board IR to the canonical interchange record. Pure: the
// input is never mutated, and converting the same board twice yields the
// same record (pool ids are assigned in first-use order).
//
// Callers are expected to have validated the board; Convert does not check
// invariants and will happily convert a structurally broken board into a
// structurally broken record (which CheckRecord then catches).
func Convert(b *board.Board) *Record {
	c := &converter{
		src: b,
		rec: &Record{
			Meta: Meta{
				Title:   b.Name,
				Locale:  DefaultLocale,
				Version: RecordVersion,
			},
			Boards: make([]Board, 0, len(b.Pages)),
			Assets: Assets{
				Symbols: make(map[string]Asset),
				Videos:  make(map[string]Asset),
				Audio:   make(map[string]Asset),
			},
		},
		symbolIDs: make(map[string]string),
		videoIDs:  make(map[string]string),
	}

	for _, p := range b.Pages {
		c.addPage(p)
	}
	c.addAudioPool()

	return c.rec
}

type converter struct {
	src *board.Board
	rec *Record

	// De-duplication indexes: source reference -> canonical pool id.
	symbolIDs map[string]string
	videoIDs  map[string]string
}

func (c *converter) addPage(p *board.Page) {
	grid := p.EffectiveGrid(c.src)
	cb := Board{
		ID:   p.ID,
		Name: p.Name,
		Layout: Layout{
			Rows:  grid.Rows,
			Cols:  grid.Cols,
			Theme: DefaultTheme,
		},
		Cells: make([]Cell, 0, len(p.Buttons)),
	}
	for _, btn := range p.Buttons {
		cb.Cells = append(cb.Cells, c.convertButton(btn))
	}
	c.rec.Boards = append(c.rec.Boards, cb)
}

func (c *converter) convertButton(btn *board.Button) Cell {
	cell := Cell{
		ID:          btn.ID,
		Row:         btn.Row + 1, // canonical convention is 1-indexed
		Col:         btn.Col + 1,
		Label:       btn.Label,
		Message:     btn.SpokenText,
		Color:       btn.Color,
		SelfClosing: btn.SelfClosing,
	}
	if btn.SymbolRef != "" {
		cell.SymbolID = c.poolSymbol(btn.SymbolRef)
	}
	if btn.Action != nil {
		cell.Actions = []Action{c.flattenAction(btn.Action)}
	}
	return cell
}

// flattenAction converts the sum type into the canonical tagged record.
// The switch is exhaustive over the sealed action set.
func (c *converter) flattenAction(a board.Action) Action {
	switch act := a.(type) {
	case board.Speak:
		return Action{Type: string(board.KindSpeak), Text: act.Text}
	case board.Navigate:
		return Action{Type: string(board.KindNavigate), Target: act.ToPageID}
	case board.Link:
		return Action{Type: string(board.KindLink), Target: act.ToBoardID}
	case board.Back:
		return Action{Type: string(board.KindBack)}
	case board.Bookmark:
		return Action{Type: string(board.KindBookmark)}
	case board.Home:
		return Action{Type: string(board.KindHome)}
	case board.PlayVideo:
		return Action{Type: string(board.KindPlayVideo), Target: c.poolVideo(act.VideoID)}
	case board.OpenURL:
		return Action{Type: string(board.KindOpenURL), URL: act.URL}
	default:
		// The sealed interface makes this unreachable; the tag survives so a
		// later CheckRecord flags it rather than silently dropping behavior.
		return Action{Type: string(a.Kind())}
	}
}

// poolSymbol returns the canonical id for a symbol reference, pooling it on
// first use. Buttons sharing a reference share one pooled asset.
func (c *converter) poolSymbol(ref string) string {
	if id, ok := c.symbolIDs[ref]; ok {
		return id
	}
	id := fmt.Sprintf("sym_%d", len(c.symbolIDs)+1)
	asset := Asset{ID: id, Name: ref}
	// The board-level pool may carry a resolvable URL for this reference.
	for _, s := range c.src.Assets.Symbols {
		if s.ID == ref || s.Name == ref {
			asset.Name = s.Name
			asset.URL = s.URL
			break
		}
	}
	c.symbolIDs[ref] = id
	c.rec.Assets.Symbols[id] = asset
	return id
}

// poolVideo returns the canonical id for a video reference, pooling it on
// first use.
func (c *converter) poolVideo(ref string) string {
	if id, ok := c.videoIDs[ref]; ok {
		return id
	}
	id := fmt.Sprintf("vid_%d", len(c.videoIDs)+1)
	asset := Asset{ID: id, Name: ref}
	if v := c.src.Assets.FindVideo(ref); v != nil {
		asset.Name = v.Name
		asset.URL = v.URL
	}
	c.videoIDs[ref] = id
	c.rec.Assets.Videos[id] = asset
	return id
}

// addAudioPool carries the board's pooled audio straight through; nothing in
// the cell model references audio yet, but targets may play page sounds.
func (c *converter) addAudioPool() {
	for i, a := range c.src.Assets.Audio {
		id := fmt.Sprintf("aud_%d", i+1)
		c.rec.Assets.Audio[id] = Asset{ID: id, Name: a.Name, URL: a.URL}
	}
}
