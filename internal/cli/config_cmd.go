// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Configuration inspection and bootstrap.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/boardforge/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "init":
		return configInit(args)
	default:
		return &UsageError{Command: "config", Reason: fmt.Sprintf("unknown subcommand %q", args.Subcommand)}
	}
}

func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return &CommandError{Command: "config", Action: "load", Reason: "invalid configuration", Err: err}
	}

	if args.JSON {
		return NewJSONResponse("config", cfg).Print()
	}

	fmt.Println(TitleStyle.Render("Configuration"))
	printSetting("Log level", cfg.LogLevel)
	printSetting("Output dir", cfg.Export.OutputDir)
	printSetting("Default target", cfg.Export.DefaultTarget)
	printSetting("Fetch thumbnails", fmt.Sprintf("%t", cfg.Export.FetchThumbnails))
	printSetting("Open after export", fmt.Sprintf("%t", cfg.Export.OpenAfterExport))
	printSetting("Service URL", orUnset(cfg.Service.BaseURL))
	printSetting("Store path", cfg.Service.StorePath)
	printSetting("Upload endpoint", orUnset(cfg.Upload.Endpoint))
	printSetting("Symbol overlay", orUnset(cfg.Symbols.OverlayPath))
	return nil
}

// configInit writes the current effective configuration to the TOML path,
// refusing to clobber an existing file.
func configInit(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return &CommandError{Command: "config", Action: "init", Reason: path + " already exists"}
	}

	cfg, err := config.Load()
	if err != nil {
		return &CommandError{Command: "config", Action: "load", Reason: "invalid configuration", Err: err}
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return &CommandError{Command: "config", Action: "init", Reason: "cannot write config", Err: err}
	}

	if !args.Quiet {
		fmt.Printf("%s wrote %s\n", RenderStatus("ok"), path)
	}
	return nil
}

func printSetting(label, value string) {
	fmt.Printf("%s %s\n", LabelStyle.Render(label), ValueStyle.Render(value))
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
