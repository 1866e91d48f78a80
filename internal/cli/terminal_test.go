// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestWrapTextShortLineUnchanged(t *testing.T) {
	got := WrapText("hello world", 40)
	if got != "hello world" {
		t.Errorf("WrapText changed a fitting line: %q", got)
	}
}

func TestWrapTextBreaksAtWords(t *testing.T) {
	got := WrapText("alpha beta gamma delta epsilon", 14)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 12 { // width minus margin
			t.Errorf("line too long: %q", line)
		}
	}
	if strings.Contains(got, "alpha beta gamma") {
		t.Errorf("expected wrapping, got %q", got)
	}
}

func TestWrapTextPreservesNewlines(t *testing.T) {
	got := WrapText("one\ntwo", 40)
	if got != "one\ntwo" {
		t.Errorf("existing newlines not preserved: %q", got)
	}
}

func TestGetExitCodeMapping(t *testing.T) {
	if got := GetExitCode(nil); got != ExitSuccess {
		t.Errorf("nil error exit = %d", got)
	}
	if got := GetExitCode(&UsageError{Command: "x", Reason: "y"}); got != ExitUsageError {
		t.Errorf("usage error exit = %d", got)
	}
	if got := GetExitCode(&InvalidBoardError{Errors: 2}); got != ExitInvalidBoard {
		t.Errorf("invalid board exit = %d", got)
	}
}
