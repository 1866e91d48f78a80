// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package persist stores and retrieves boards.
//
// The editor treats persistence as an external collaborator behind the
// Service interface: create/read/update by id plus a metadata-only listing
// that feeds workspace hydration. Two implementations are provided:
//
//   - Client: HTTP access to a remote board service
//   - Store: a local SQLite database, so the CLI works offline
//
// # Usage
//
//	store, err := persist.OpenStore(path)
//	if err != nil { ... }
//	defer store.Close()
//	meta, err := store.ListMeta(ctx)
package persist
