// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package board

import (
	"encoding/json"

	"github.com/google/uuid"
)

// =============================================================================
// BUTTON TYPE
// =============================================================================

// Button is one grid cell on a page. Row and Col are 0-indexed and must lie
// inside the page's effective grid.
type Button struct {
	ID          string `json:"id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Label       string `json:"label"`
	SpokenText  string `json:"spoken_text,omitempty"`
	Color       string `json:"color,omitempty"`
	SymbolRef   string `json:"symbol_ref,omitempty"`
	SelfClosing bool   `json:"self_closing,omitempty"`

	// Action is nil for plain message buttons (the runtime then speaks the
	// label or SpokenText).
	Action Action `json:"-"`
}

// NewButton creates a button at (row, col) with a generated id.
func NewButton(label string, row, col int) *Button {
	return &Button{
		ID:    uuid.NewString(),
		Row:   row,
		Col:   col,
		Label: label,
	}
}

// Clone returns a copy of the button. Actions are value types, so the copy
// shares nothing mutable with the original.
func (b *Button) Clone() *Button {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

// =============================================================================
// JSON CODEC
// =============================================================================

// buttonJSON mirrors Button with the action as a raw tagged envelope.
type buttonJSON struct {
	ID          string          `json:"id"`
	Row         int             `json:"row"`
	Col         int             `json:"col"`
	Label       string          `json:"label"`
	SpokenText  string          `json:"spoken_text,omitempty"`
	Color       string          `json:"color,omitempty"`
	SymbolRef   string          `json:"symbol_ref,omitempty"`
	SelfClosing bool            `json:"self_closing,omitempty"`
	Action      json.RawMessage `json:"action,omitempty"`
}

// MarshalJSON encodes the button with its action as a tagged envelope.
func (b *Button) MarshalJSON() ([]byte, error) {
	out := buttonJSON{
		ID:          b.ID,
		Row:         b.Row,
		Col:         b.Col,
		Label:       b.Label,
		SpokenText:  b.SpokenText,
		Color:       b.Color,
		SymbolRef:   b.SymbolRef,
		SelfClosing: b.SelfClosing,
	}
	if b.Action != nil {
		raw, err := MarshalAction(b.Action)
		if err != nil {
			return nil, err
		}
		out.Action = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the button, rejecting unknown action type tags.
func (b *Button) UnmarshalJSON(data []byte) error {
	var in buttonJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	b.ID = in.ID
	b.Row = in.Row
	b.Col = in.Col
	b.Label = in.Label
	b.SpokenText = in.SpokenText
	b.Color = in.Color
	b.SymbolRef = in.SymbolRef
	b.SelfClosing = in.SelfClosing
	b.Action = nil
	if len(in.Action) > 0 && string(in.Action) != "null" {
		act, err := UnmarshalAction(in.Action)
		if err != nil {
			return err
		}
		b.Action = act
	}
	return nil
}
