// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Unified error handling for all CLI commands in boardforge.
//
// STANDARDIZED PATTERN:
//   - ALWAYS return errors (never just print and return nil)
//   - Let the caller decide how to display errors
//   - Use structured error types for better error handling
package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/boardforge/internal/persist"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitInvalidBoard indicates the board failed structural validation
	ExitInvalidBoard = 3
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 4
	// ExitNetworkError indicates network or connectivity error
	ExitNetworkError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "export", "boards")
	Action  string // Action being performed (e.g., "save", "delete")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError represents invalid command usage.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage: %s: %s", e.Command, e.Reason)
}

// InvalidBoardError signals that validation found hard errors; the count is
// enough for the exit path, the handler already printed the findings.
type InvalidBoardError struct {
	Errors int
}

func (e *InvalidBoardError) Error() string {
	if e.Errors == 1 {
		return "board has 1 validation error"
	}
	return fmt.Sprintf("board has %d validation errors", e.Errors)
}

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var invalidErr *InvalidBoardError
	if errors.As(err, &invalidErr) {
		return ExitInvalidBoard
	}

	if errors.Is(err, persist.ErrNotFound) {
		return ExitNotFoundError
	}

	return ExitGeneralError
}
