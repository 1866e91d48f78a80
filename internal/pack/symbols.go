// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// SYMBOL LIBRARIES
// =============================================================================

// Each target application ships its own symbol library, so the same symbol
// name resolves to a different resource identifier per target. Lookups fall
// back to the target's generic placeholder; a missing symbol never fails an
// export.

// family strips the schema revision so current and beta variants share one
// symbol library.
func family(t Target) Target {
	return Target(strings.TrimSuffix(string(t), "-beta"))
}

// symbolPlaceholders holds the per-family fallback resource.
var symbolPlaceholders = map[Target]string{
	TargetGridset:    "[widgit]blank.wmf",
	TargetOpenBoard:  "placeholder.svg",
	TargetSnapCore:   "symbol://core/blank",
	TargetPictoBoard: "picto/blank.png",
}

var (
	symbolMu sync.RWMutex

	// symbolTable maps family -> lowercased symbol name -> target resource.
	// The built-in entries cover the core vocabulary common to AAC symbol
	// sets; LoadSymbolOverlay can extend or replace them.
	symbolTable = map[Target]map[string]string{
		TargetGridset: {
			"yes":   "[widgit]yes.wmf",
			"no":    "[widgit]no.wmf",
			"more":  "[widgit]more.wmf",
			"stop":  "[widgit]stop.wmf",
			"help":  "[widgit]help.wmf",
			"home":  "[widgit]home.wmf",
			"eat":   "[widgit]eat.wmf",
			"drink": "[widgit]drink.wmf",
		},
		TargetOpenBoard: {
			"yes":   "yes.svg",
			"no":    "no.svg",
			"more":  "more.svg",
			"stop":  "stop.svg",
			"help":  "help.svg",
			"home":  "home.svg",
			"eat":   "eat.svg",
			"drink": "drink.svg",
		},
		TargetSnapCore: {
			"yes":   "symbol://core/yes",
			"no":    "symbol://core/no",
			"more":  "symbol://core/more",
			"stop":  "symbol://core/stop",
			"help":  "symbol://core/help",
			"home":  "symbol://core/home",
			"eat":   "symbol://core/eat",
			"drink": "symbol://core/drink",
		},
		TargetPictoBoard: {
			"yes":   "picto/yes.png",
			"no":    "picto/no.png",
			"more":  "picto/more.png",
			"stop":  "picto/stop.png",
			"help":  "picto/help.png",
			"home":  "picto/home.png",
			"eat":   "picto/eat.png",
			"drink": "picto/drink.png",
		},
	}
)

// symbolFor resolves a symbol name to the target's resource identifier,
// falling back to the family placeholder when no mapping exists.
func symbolFor(t Target, name string) string {
	fam := family(t)
	symbolMu.RLock()
	defer symbolMu.RUnlock()
	if lib, ok := symbolTable[fam]; ok {
		if res, ok := lib[strings.ToLower(strings.TrimSpace(name))]; ok {
			return res
		}
	}
	return symbolPlaceholders[fam]
}

// =============================================================================
// OVERLAY LOADING
// =============================================================================

// overlayFile is the YAML shape of a symbol overlay: target family name to a
// symbol-name/resource map.
type overlayFile map[string]map[string]string

// LoadSymbolOverlay merges a YAML symbol library file over the built-in
// tables. Unknown target families are rejected so typos surface instead of
// silently loading into a library no packager reads.
func LoadSymbolOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read symbol overlay: %w", err)
	}
	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse symbol overlay %s: %w", path, err)
	}

	symbolMu.Lock()
	defer symbolMu.Unlock()

	// Check every target key before touching the tables so a rejected
	// overlay leaves no family partially overlaid.
	for target := range overlay {
		if _, ok := symbolTable[family(Target(target))]; !ok {
			return fmt.Errorf("symbol overlay %s: unknown target %q", path, target)
		}
	}

	for target, entries := range overlay {
		lib := symbolTable[family(Target(target))]
		for name, resource := range entries {
			lib[strings.ToLower(strings.TrimSpace(name))] = resource
		}
	}
	return nil
}
