// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
)

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where archives are written.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the archive in the default application.
	OpenAfterExport bool

	// FetchThumbnail downloads the board's cover image for embedding. A
	// failed download is logged and skipped; the export still succeeds.
	FetchThumbnail bool

	// Fetcher downloads thumbnail bytes. Defaults to NewAssetFetcher.
	Fetcher *AssetFetcher
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:      ".",
		FetchThumbnail: true,
	}
}

// =============================================================================
// EXPORT ORCHESTRATION
// =============================================================================

// ExportToFile packages an input and writes the archive to disk, returning
// the output file path. The cover thumbnail is fetched here, ahead of the
// packager, so packagers stay pure and never touch the network.
func ExportToFile(ctx context.Context, in *Input, p Packager, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if opts.FetchThumbnail && in.Thumbnail == nil {
		if data := fetchThumbnail(ctx, in, opts.Fetcher); data != nil {
			// Work on a shallow copy so the caller's Input stays untouched.
			withThumb := *in
			withThumb.Thumbnail = data
			in = &withThumb
		}
	}

	content, err := p.Package(in)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s%s",
		sanitizeFilename(exportTitle(in)),
		p.Target(),
		timestamp,
		p.FileExtension(),
	)

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal - the archive was still written successfully
			log.Warn().Err(err).Str("path", outputPath).Msg("could not open exported archive")
		}
	}

	return outputPath, nil
}

// fetchThumbnail downloads the board's cover image. The thumbnail is an
// optional asset: any failure is logged and nil is returned so the export
// proceeds without it.
func fetchThumbnail(ctx context.Context, in *Input, fetcher *AssetFetcher) []byte {
	if in.Board == nil || in.Board.CoverImage == "" {
		return nil
	}
	if fetcher == nil {
		fetcher = NewAssetFetcher()
	}
	data, err := fetcher.Fetch(ctx, in.Board.CoverImage)
	if err != nil {
		log.Warn().Err(err).Str("url", in.Board.CoverImage).Msg("skipping cover thumbnail")
		return nil
	}
	return data
}

// exportTitle picks the display name used for the output filename.
func exportTitle(in *Input) string {
	if in.Record != nil && in.Record.Meta.Title != "" {
		return in.Record.Meta.Title
	}
	if in.Board != nil {
		return in.Board.Name
	}
	return ""
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename removes or replaces characters that are invalid in
// filenames. Every packager routes board names through this one function so
// archive entry names and output filenames stay consistent across targets.
func sanitizeFilename(s string) string {
	// Limit length
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	// Replace problematic characters (Windows and Unix)
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			// Replace control characters
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "board"
	}

	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
