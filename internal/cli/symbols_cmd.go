// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// symbols_cmd.go - Symbol overlay verification.
package cli

import (
	"fmt"

	"github.com/jeranaias/boardforge/internal/pack"
)

// HandleSymbols handles the "symbols" command: loads an overlay file so its
// syntax and target names are checked before it goes into the config.
func HandleSymbols(args Args) error {
	if args.File == "" {
		return &UsageError{Command: "symbols", Reason: "an overlay file is required"}
	}

	if err := pack.LoadSymbolOverlay(args.File); err != nil {
		return &CommandError{Command: "symbols", Action: "load", Reason: "invalid overlay", Err: err}
	}

	if !args.Quiet {
		fmt.Printf("%s overlay %s loaded\n", RenderStatus("ok"), args.File)
	}
	return nil
}
