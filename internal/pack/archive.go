// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"archive/zip"
	"bytes"
	"time"
)

// =============================================================================
// DETERMINISTIC ARCHIVE BUILDER
// =============================================================================

// archiveEpoch is stamped on every zip entry so that packaging the same
// input twice yields byte-identical archives.
var archiveEpoch = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// archive accumulates zip entries in insertion order. The first error sticks:
// later adds become no-ops and close reports it, so builders can chain add
// calls without per-call checks.
type archive struct {
	target Target
	buf    bytes.Buffer
	zw     *zip.Writer
	err    error
}

func newArchive(target Target) *archive {
	a := &archive{target: target}
	a.zw = zip.NewWriter(&a.buf)
	return a
}

// add writes one file entry. Entry names use forward slashes.
func (a *archive) add(name string, data []byte) {
	if a.err != nil {
		return
	}
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	})
	if err != nil {
		a.err = packagingErrf(a.target, err, "create archive entry %s", name)
		return
	}
	if _, err := w.Write(data); err != nil {
		a.err = packagingErrf(a.target, err, "write archive entry %s", name)
	}
}

// close finalizes the archive and returns its bytes, or the first error that
// occurred during the build.
func (a *archive) close() ([]byte, error) {
	if a.err != nil {
		a.zw.Close()
		return nil, a.err
	}
	if err := a.zw.Close(); err != nil {
		return nil, packagingErrf(a.target, err, "finalize archive")
	}
	return a.buf.Bytes(), nil
}
