// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/boardforge/internal/board"
)

// loadBoardFile reads and decodes a board JSON file.
func loadBoardFile(path string) (*board.Board, error) {
	if path == "" {
		return nil, &UsageError{Command: "boardforge", Reason: "a board file is required"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	b, err := board.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return b, nil
}
