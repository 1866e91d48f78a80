// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements argument parsing and command handlers for the
// boardforge command line.
//
// Parsing is two-phase: global flags are stripped first, then the leading
// positional argument selects a command and the command's own parser consumes
// the rest. Every handler returns an error; main decides how to display it
// and which exit code to use.
package cli
