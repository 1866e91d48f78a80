// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package workspace implements the multi-board editing state machine.
//
// A Workspace owns an ordered list of managed boards, the active board, the
// current page and selected button, an edit/preview mode flag, a navigation
// history stack, and a single optional bookmark page.
//
// # Snapshot Semantics
//
// The Workspace is an immutable snapshot: every mutating operation returns a
// fresh *Workspace and never modifies the receiver. Callers thread the
// current snapshot through the call chain explicitly; there is no package
// singleton. This keeps operations trivially testable and leaves the door
// open for undo/redo by retaining prior snapshots.
//
// # Board Load States
//
// Each managed board carries an explicit load state (Idle, Loading, Ready,
// Error). Editing operations are rejected with ErrBoardLoading while a
// board's content is being fetched, closing the mutate-while-loading race
// instead of relying on callers to defer.
//
// # Validation Caching
//
// Every content mutation re-runs the board validator and caches the result
// on the managed board. Export gating reads the cached result; it never
// re-validates.
package workspace
