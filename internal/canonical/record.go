// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package canonical

// RecordVersion is the canonical schema revision stamped into Meta.Version.
const RecordVersion = "1.0"

// DefaultLocale is used when the source board carries no locale of its own.
const DefaultLocale = "en"

// =============================================================================
// RECORD TYPES
// =============================================================================

// Record is the canonical interchange form of one exported board.
type Record struct {
	Meta   Meta    `json:"meta"`
	Boards []Board `json:"boards"`
	Assets Assets  `json:"assets"`
}

// Meta carries document-level information.
type Meta struct {
	Title   string   `json:"title"`
	Locale  string   `json:"locale"`
	Version string   `json:"version"`
	Authors []string `json:"authors,omitempty"`
}

// Board is one canonical grid (one IR page).
type Board struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Layout Layout `json:"layout"`
	Cells  []Cell `json:"cells"`
}

// Layout holds the grid dimensions and theme for one canonical board.
type Layout struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Theme string `json:"theme,omitempty"`
}

// Cell is one occupied grid position. Row and Col are 1-indexed.
type Cell struct {
	ID          string   `json:"id"`
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	RowSpan     int      `json:"row_span,omitempty"`
	ColSpan     int      `json:"col_span,omitempty"`
	Label       string   `json:"label"`
	Message     string   `json:"message,omitempty"`
	Color       string   `json:"color,omitempty"`
	SymbolID    string   `json:"symbol_id,omitempty"`
	SelfClosing bool     `json:"self_closing,omitempty"`
	Actions     []Action `json:"actions,omitempty"`
}

// Action is the flattened, tagged form of a board IR action.
type Action struct {
	// Type is one of the board.ActionKind wire tags.
	Type string `json:"type"`
	// Text is set for speak actions.
	Text string `json:"text,omitempty"`
	// Target is the page id (navigate), board id (link), or pooled asset id
	// (play_video).
	Target string `json:"target,omitempty"`
	// URL is set for open_url actions.
	URL string `json:"url,omitempty"`
}

// Asset is one pooled media resource.
type Asset struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// Assets pools media resources keyed by canonical id.
type Assets struct {
	Symbols map[string]Asset `json:"symbols,omitempty"`
	Videos  map[string]Asset `json:"videos,omitempty"`
	Audio   map[string]Asset `json:"audio,omitempty"`
}
