// boardforge - AAC board editing and export toolkit.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jeranaias/boardforge/internal/cli"
	"github.com/jeranaias/boardforge/internal/config"
	"github.com/jeranaias/boardforge/internal/logging"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	setupLogging()

	cmd, args := cli.Parse(os.Args[1:])

	var err error
	switch cmd {
	case cli.CmdValidate:
		err = cli.HandleValidate(args)
	case cli.CmdExport:
		err = cli.HandleExport(args)
	case cli.CmdTargets:
		err = cli.HandleTargets(args)
	case cli.CmdInspect:
		err = cli.HandleInspect(args)
	case cli.CmdWatch:
		err = cli.HandleWatch(args)
	case cli.CmdBoards:
		err = cli.HandleBoards(args)
	case cli.CmdPush:
		err = cli.HandlePush(args)
	case cli.CmdPull:
		err = cli.HandlePull(args)
	case cli.CmdUpload:
		err = cli.HandleUpload(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdSymbols:
		err = cli.HandleSymbols(args)
	case cli.CmdVersion:
		handleVersion(args)
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// setupLogging configures the logger from config when it loads cleanly;
// command handlers surface config errors themselves.
func setupLogging() {
	level := os.Getenv("BOARDFORGE_LOG_LEVEL")
	if cfg, err := config.Load(); err == nil {
		level = cfg.LogLevel
	}
	logging.Setup(level, nil)
}

func handleVersion(args cli.Args) {
	if args.JSON {
		data := cli.VersionData{
			Version:   cli.Version,
			GitCommit: cli.GitCommit,
			BuildDate: cli.BuildDate,
			GoVersion: runtime.Version(),
		}
		_ = cli.NewJSONResponse("version", data).Print()
		return
	}
	cli.PrintVersion()
}
