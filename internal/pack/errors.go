// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import "fmt"

// =============================================================================
// ERROR TYPES
// =============================================================================

// PackagingError reports an archive construction failure. It is always fatal
// for the export that raised it: the archive is abandoned, nothing partial is
// returned.
type PackagingError struct {
	Target Target
	Op     string
	Err    error
}

func (e *PackagingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("packaging %s: %s: %v", e.Target, e.Op, e.Err)
	}
	return fmt.Sprintf("packaging %s: %s", e.Target, e.Op)
}

func (e *PackagingError) Unwrap() error { return e.Err }

// packagingErrf builds a *PackagingError with a formatted operation message.
func packagingErrf(t Target, err error, format string, args ...any) *PackagingError {
	return &PackagingError{Target: t, Op: fmt.Sprintf(format, args...), Err: err}
}

// AssetError reports a failure fetching or embedding one binary asset. For
// optional assets (cover thumbnails) it is logged and skipped; it becomes
// fatal only when a packager treats the asset as structurally required.
type AssetError struct {
	AssetID string
	URL     string
	Err     error
}

func (e *AssetError) Error() string {
	if e.AssetID != "" {
		return fmt.Sprintf("asset %s (%s): %v", e.AssetID, e.URL, e.Err)
	}
	return fmt.Sprintf("asset %s: %v", e.URL, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
