// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canonical defines the interchange record shared by every export
// packager, and the converter that produces it from the board IR.
//
// The Record is the single seam between the editor's internal model and the
// external formats: packagers consume Records and never read board IR fields
// directly (the one documented exception is the non-canonical legacy
// PictoBoard path in internal/pack). Adding a new export target means adding
// one new packager over this record, nothing else.
//
// # Conventions
//
//   - Cell coordinates are 1-indexed (board IR is 0-indexed)
//   - One canonical "board" per IR page; the IR board becomes the record
//   - Actions are flattened into tagged {type, text, target, url} records
//   - Media references are de-duplicated into a shared asset pool with
//     deterministic first-use ids (sym_1, vid_1, aud_1, ...)
//
// CheckRecord verifies a Record's own structural soundness. A failure there
// is a converter defect (SchemaError), never user-recoverable.
package canonical
