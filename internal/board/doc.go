// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package board defines the canonical in-memory board model (the board IR)
// for boardforge.
//
// A Board is a named grid of communication pages. Each Page carries a set of
// Buttons placed at 0-indexed grid coordinates, and each Button may carry one
// Action describing what happens when the button is activated.
//
// # Key Types
//
//   - Board: Top-level board with grid dimensions, pages, and pooled assets
//   - Page: One navigable page of buttons
//   - Button: One grid cell with label, symbol, color, and optional action
//   - Action: Closed set of button behaviors (speak, navigate, link, ...)
//
// # Actions
//
// Action is a sealed sum type: the eight concrete kinds defined in this
// package are the only implementations, and the JSON codec rejects unknown
// type tags at decode time. Downstream consumers can therefore switch over
// ActionKind exhaustively without a runtime "unknown action" branch.
//
// # Serialization
//
// Boards round-trip through JSON. Actions are encoded as a tagged envelope:
//
//	{"type": "navigate", "to_page_id": "p2"}
//
// The package never reads or writes files itself; callers own I/O.
package board
