// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for boardforge.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdValidate Command = iota
	CmdExport
	CmdTargets
	CmdInspect
	CmdWatch
	CmdBoards
	CmdPush
	CmdPull
	CmdUpload
	CmdConfig
	CmdSymbols
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format

	// Command-specific
	File       string // Board file path
	Target     string // Packaging target name
	Output     string // Output directory or file
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --page, --type)
	Options map[string]string
}

const usageText = `boardforge - AAC board editing and export toolkit

Boardforge validates, previews, and packages communication boards.

It provides:
  - Structural validation with hard errors and soft warnings
  - Deterministic multi-format archive export
  - A local SQLite board library and remote sync
  - Live re-validation while a board file is edited

Usage:
  boardforge validate <board.json>      Validate a board file
  boardforge export <board.json>        Package a board for a target
  boardforge targets                    List packaging targets
  boardforge inspect <board.json>       Preview a board's grid
  boardforge watch <board.json>         Re-validate on every change
  boardforge boards [subcommand]        Local board library
  boardforge push <board.json>          Upload a board to the service
  boardforge pull <id>                  Download a board from the service
  boardforge upload <file>              Upload a media asset
  boardforge config [show|path|init]    Configuration
  boardforge symbols <overlay.yaml>     Check a symbol overlay file

Validate Commands:
  boardforge validate board.json        Print errors and warnings
    --json                              Machine-readable result
    --quiet                             Exit code only

Export Commands:
  boardforge export board.json          Package using the configured target
    --target NAME                       One of the targets listed by "targets"
    --output DIR                        Output directory (default: config)
    --all                               Package every target at once
    --open                              Open the archive when done
    --no-thumbnail                      Skip cover image download

Inspect Commands:
  boardforge inspect board.json         Render the first page's grid
    --page NAME                         Render a specific page

Watch Commands:
  boardforge watch board.json           Re-validate after each save
    --export                            Also re-export on valid saves
    --target NAME                       Target for --export

Board Library Commands:
  boardforge boards list                List boards in the local library
  boardforge boards save <board.json>   Save a board file to the library
  boardforge boards get <id>            Write a library board to stdout
  boardforge boards delete <id>         Remove a board from the library

Upload Commands:
  boardforge upload picture.png         Upload and print the hosted URL
    --type TYPE                         MIME type (default: from extension)

Global Flags:
  -q, --quiet       Suppress non-essential output
  -v, --verbose     Show additional detail
  --json            Output in JSON format
  -h, --help        Show this help
  --version         Show version information

Environment:
  BOARDFORGE_LOG_LEVEL, BOARDFORGE_OUTPUT_DIR, BOARDFORGE_TARGET,
  BOARDFORGE_SERVICE_URL, BOARDFORGE_API_KEY, BOARDFORGE_UPLOAD_ENDPOINT,
  BOARDFORGE_SYMBOL_OVERLAY override file configuration.

Examples:
  boardforge validate morning.json
  boardforge export morning.json --target gridset
  boardforge export morning.json --all --output ./out
  boardforge inspect morning.json --page Snacks
  boardforge watch morning.json --export --target openboard
`

// PrintUsage prints the full usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("boardforge %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// VersionData is the JSON payload for the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Parse parses os.Args style arguments (without the program name) into a
// command and its arguments.
func Parse(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, show help
	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "validate", "check":
		parseFileArgs(&parsedArgs, remaining)
		return CmdValidate, parsedArgs

	case "export", "pack":
		parseExportArgs(&parsedArgs, remaining)
		return CmdExport, parsedArgs

	case "targets", "formats":
		return CmdTargets, parsedArgs

	case "inspect", "preview", "show":
		parseInspectArgs(&parsedArgs, remaining)
		return CmdInspect, parsedArgs

	case "watch":
		parseWatchArgs(&parsedArgs, remaining)
		return CmdWatch, parsedArgs

	case "boards", "library":
		parseBoardsArgs(&parsedArgs, remaining)
		return CmdBoards, parsedArgs

	case "push":
		parseFileArgs(&parsedArgs, remaining)
		return CmdPush, parsedArgs

	case "pull":
		parsePullArgs(&parsedArgs, remaining)
		return CmdPull, parsedArgs

	case "upload":
		parseUploadArgs(&parsedArgs, remaining)
		return CmdUpload, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "symbols":
		parseFileArgs(&parsedArgs, remaining)
		return CmdSymbols, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: restore it so help can mention it
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsedArgs
}

// parseFileArgs captures the first positional argument as the board file.
func parseFileArgs(args *Args, remaining []string) {
	for _, arg := range remaining {
		if !strings.HasPrefix(arg, "-") && args.File == "" {
			args.File = arg
		}
	}
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-t", "--target":
			if i+1 < len(remaining) {
				i++
				args.Target = remaining[i]
			}
		case "-o", "--output":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		case "--all":
			args.Options["all"] = "true"
		case "--open":
			args.Options["open"] = "true"
		case "--no-thumbnail":
			args.Options["no-thumbnail"] = "true"
		default:
			switch {
			case strings.HasPrefix(arg, "--target="):
				args.Target = strings.TrimPrefix(arg, "--target=")
			case strings.HasPrefix(arg, "--output="):
				args.Output = strings.TrimPrefix(arg, "--output=")
			case !strings.HasPrefix(arg, "-") && args.File == "":
				args.File = arg
			}
		}
		i++
	}
}

// parseInspectArgs parses inspect command specific arguments.
func parseInspectArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch {
		case arg == "-p" || arg == "--page":
			if i+1 < len(remaining) {
				i++
				args.Options["page"] = remaining[i]
			}
		case strings.HasPrefix(arg, "--page="):
			args.Options["page"] = strings.TrimPrefix(arg, "--page=")
		case !strings.HasPrefix(arg, "-") && args.File == "":
			args.File = arg
		}
		i++
	}
}

// parseWatchArgs parses watch command specific arguments.
func parseWatchArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch {
		case arg == "--export":
			args.Options["export"] = "true"
		case arg == "-t" || arg == "--target":
			if i+1 < len(remaining) {
				i++
				args.Target = remaining[i]
			}
		case strings.HasPrefix(arg, "--target="):
			args.Target = strings.TrimPrefix(arg, "--target=")
		case !strings.HasPrefix(arg, "-") && args.File == "":
			args.File = arg
		}
		i++
	}
}

// parseBoardsArgs parses boards command specific arguments.
func parseBoardsArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		remaining = remaining[1:]
	}
	parseFileArgs(args, remaining)
}

// parsePullArgs parses pull command specific arguments. The positional
// argument is the remote board id, carried in ConfigKey.
func parsePullArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "-o" || arg == "--output":
			if i+1 < len(remaining) {
				i++
				args.Output = remaining[i]
			}
		case strings.HasPrefix(arg, "--output="):
			args.Output = strings.TrimPrefix(arg, "--output=")
		case !strings.HasPrefix(arg, "-") && args.ConfigKey == "":
			args.ConfigKey = arg
		}
	}
}

// parseUploadArgs parses upload command specific arguments.
func parseUploadArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]
		switch {
		case arg == "--type":
			if i+1 < len(remaining) {
				i++
				args.Options["type"] = remaining[i]
			}
		case strings.HasPrefix(arg, "--type="):
			args.Options["type"] = strings.TrimPrefix(arg, "--type=")
		case !strings.HasPrefix(arg, "-") && args.File == "":
			args.File = arg
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}
