// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export_cmd.go - Archive export command.
package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/boardforge/internal/board"
	"github.com/jeranaias/boardforge/internal/canonical"
	"github.com/jeranaias/boardforge/internal/config"
	"github.com/jeranaias/boardforge/internal/pack"
	"github.com/jeranaias/boardforge/internal/validate"
)

// HandleExport handles the "export" command.
func HandleExport(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b, err := loadBoardFile(args.File)
	if err != nil {
		return err
	}

	paths, err := exportBoard(context.Background(), cfg, args, b)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("export", map[string]any{"files": paths}).Print()
	}
	for _, p := range paths {
		fmt.Printf("%s %s\n", RenderStatus("ok"), p)
	}
	return nil
}

// exportBoard validates, converts, and packages a board for every requested
// target. Watch mode reuses it after each save.
func exportBoard(ctx context.Context, cfg *config.Config, args Args, b *board.Board) ([]string, error) {
	result := validate.Validate(b)
	if !result.IsValid {
		printValidation(args, b.Name, result)
		return nil, &InvalidBoardError{Errors: len(result.Errors)}
	}

	record := canonical.Convert(b)
	if err := canonical.CheckRecord(record); err != nil {
		return nil, fmt.Errorf("canonical form: %w", err)
	}

	targets, err := exportTargets(cfg, args)
	if err != nil {
		return nil, err
	}

	opts := exportOptions(cfg, args)
	in := &pack.Input{Record: record, Board: b}

	var paths []string
	for _, target := range targets {
		packager, err := pack.New(target)
		if err != nil {
			return nil, err
		}
		path, err := pack.ExportToFile(ctx, in, packager, opts)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// exportTargets resolves the target list: --all beats --target beats the
// configured default.
func exportTargets(cfg *config.Config, args Args) ([]pack.Target, error) {
	if args.Options["all"] == "true" {
		return pack.Targets(), nil
	}

	name := args.Target
	if name == "" {
		name = cfg.Export.DefaultTarget
	}

	target := pack.Target(name)
	if _, err := pack.New(target); err != nil {
		return nil, err
	}
	return []pack.Target{target}, nil
}

func exportOptions(cfg *config.Config, args Args) *pack.Options {
	opts := pack.DefaultOptions()
	opts.OutputDir = cfg.Export.OutputDir
	opts.OpenAfterExport = cfg.Export.OpenAfterExport
	opts.FetchThumbnail = cfg.Export.FetchThumbnails

	if args.Output != "" {
		opts.OutputDir = args.Output
	}
	if args.Options["open"] == "true" {
		opts.OpenAfterExport = true
	}
	if args.Options["no-thumbnail"] == "true" {
		opts.FetchThumbnail = false
	}
	return opts
}

// loadConfig loads configuration and applies the symbol overlay when one is
// configured.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &CommandError{Command: "config", Action: "load", Reason: "invalid configuration", Err: err}
	}
	if cfg.Symbols.OverlayPath != "" {
		if err := pack.LoadSymbolOverlay(cfg.Symbols.OverlayPath); err != nil {
			return nil, &CommandError{Command: "symbols", Action: "load", Reason: "invalid overlay", Err: err}
		}
	}
	return cfg, nil
}
