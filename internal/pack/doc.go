// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pack builds downloadable archives for third-party AAC applications.
//
// Every packager is a pure function from the canonical interchange record
// (or, for the legacy PictoBoard path, the board model directly) to a zip
// archive in one target application's native file layout. Four target
// families are supported, each in a current and a beta schema revision.
//
// # Key Types
//
//   - Packager: the common packaging interface (Package, Target, FileExtension)
//   - Input: the material a packager consumes (canonical record, legacy board,
//     optional pre-fetched thumbnail bytes)
//   - Target: enumerated export targets, resolvable through New
//   - PackagingError / AssetError: the package's failure taxonomy
//
// # Usage
//
//	p, err := pack.New(pack.TargetOpenBoard)
//	if err != nil { ... }
//	data, err := p.Package(&pack.Input{Record: rec})
//
// Packagers assume structural soundness: callers must only package boards
// whose cached validation result is valid. No packager re-validates, and no
// packager ever returns a partial archive.
package pack
