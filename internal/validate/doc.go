// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate checks a board IR against its structural invariants.
//
// Validate is a pure function: it never mutates its input and is safe to run
// repeatedly. Hard errors make a board unexportable; warnings are advisory
// and never block anything.
//
// # Hard Errors
//
//   - empty board name, zero pages, empty page name
//   - grid dimensions outside 1..25
//   - button missing id or label, row/col outside the page grid
//   - two buttons occupying the same cell on one page
//   - speak/navigate/link actions missing their required field
//   - navigate actions whose target page does not exist anywhere in the board
//
// # Warnings
//
//   - label longer than 50 characters
//   - spoken text longer than 200 characters
//   - color values that are not valid hex or named CSS colors
//   - pages with no buttons
package validate
