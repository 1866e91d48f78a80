// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// upload_cmd.go - Media asset upload command.
package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/boardforge/internal/upload"
)

// HandleUpload handles the "upload" command.
func HandleUpload(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Upload.Endpoint == "" {
		return &CommandError{
			Command: "upload",
			Action:  "connect",
			Reason:  "no upload endpoint configured; set upload.endpoint or BOARDFORGE_UPLOAD_ENDPOINT",
		}
	}
	if args.File == "" {
		return &UsageError{Command: "upload", Reason: "a file is required"}
	}

	data, err := os.ReadFile(args.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.File, err)
	}

	fileType := args.Options["type"]
	if fileType == "" {
		fileType = mime.TypeByExtension(filepath.Ext(args.File))
	}
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := upload.NewClient(cfg.Upload.Endpoint, cfg.Upload.APIKey)
	url, err := client.Upload(ctx, filepath.Base(args.File), fileType, data)
	if err != nil {
		return &CommandError{Command: "upload", Action: "send", Reason: "upload failed", Err: err}
	}

	if args.JSON {
		return NewJSONResponse("upload", map[string]string{"url": url}).Print()
	}
	fmt.Println(url)
	return nil
}
