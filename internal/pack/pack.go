// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"fmt"

	"github.com/jeranaias/boardforge/internal/board"
	"github.com/jeranaias/boardforge/internal/canonical"
)

// =============================================================================
// TARGETS
// =============================================================================

// Target identifies one export target: a third-party application family plus
// a schema revision.
type Target string

const (
	TargetGridset        Target = "gridset"
	TargetGridsetBeta    Target = "gridset-beta"
	TargetOpenBoard      Target = "openboard"
	TargetOpenBoardBeta  Target = "openboard-beta"
	TargetSnapCore       Target = "snapcore"
	TargetSnapCoreBeta   Target = "snapcore-beta"
	TargetPictoBoard     Target = "pictoboard"
	TargetPictoBoardBeta Target = "pictoboard-beta"
)

// Targets returns every supported export target in stable order.
func Targets() []Target {
	return []Target{
		TargetGridset,
		TargetGridsetBeta,
		TargetOpenBoard,
		TargetOpenBoardBeta,
		TargetSnapCore,
		TargetSnapCoreBeta,
		TargetPictoBoard,
		TargetPictoBoardBeta,
	}
}

// =============================================================================
// PACKAGER INTERFACE
// =============================================================================

// Input is the material a packager consumes. Record is required for every
// target except the legacy PictoBoard family, which reads Board directly.
// Thumbnail, when non-nil, holds pre-fetched cover image bytes that the
// packager embeds; a nil Thumbnail simply omits the cover.
type Input struct {
	Record    *canonical.Record
	Board     *board.Board
	Thumbnail []byte
}

// Packager converts an Input into a fully-formed zip archive for one target.
//
// Packagers are pure: they read the Input, never mutate it, and hold no state
// between calls, so packaging the same input twice yields identical bytes and
// concurrent calls for different targets are safe.
type Packager interface {
	// Package builds the archive. On any mid-build failure it returns a
	// *PackagingError and no bytes; partial archives are never returned.
	Package(in *Input) ([]byte, error)

	// Target reports which export target this packager emits.
	Target() Target

	// FileExtension returns the archive's file extension (e.g. ".obz").
	FileExtension() string
}

// New resolves a target name to its packager.
func New(t Target) (Packager, error) {
	switch t {
	case TargetGridset:
		return &GridsetPackager{}, nil
	case TargetGridsetBeta:
		return &GridsetPackager{beta: true}, nil
	case TargetOpenBoard:
		return &OpenBoardPackager{}, nil
	case TargetOpenBoardBeta:
		return &OpenBoardPackager{beta: true}, nil
	case TargetSnapCore:
		return &SnapCorePackager{}, nil
	case TargetSnapCoreBeta:
		return &SnapCorePackager{beta: true}, nil
	case TargetPictoBoard:
		return &PictoBoardPackager{}, nil
	case TargetPictoBoardBeta:
		return &PictoBoardPackager{beta: true}, nil
	default:
		return nil, fmt.Errorf("unknown export target %q", t)
	}
}
