// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// remote_cmd.go - Push/pull against the remote board service.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/boardforge/internal/config"
	"github.com/jeranaias/boardforge/internal/persist"
)

const remoteTimeout = 60 * time.Second

// remoteClient builds a service client from config, erroring out when no
// service is configured.
func remoteClient(cfg *config.Config) (*persist.Client, error) {
	if cfg.Service.BaseURL == "" {
		return nil, &CommandError{
			Command: "service",
			Action:  "connect",
			Reason:  "no service configured; set service.base_url or BOARDFORGE_SERVICE_URL",
		}
	}
	return persist.NewClient(cfg.Service.BaseURL, cfg.Service.APIKey), nil
}

// HandlePush handles the "push" command.
func HandlePush(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := remoteClient(cfg)
	if err != nil {
		return err
	}

	b, err := loadBoardFile(args.File)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	id, err := client.Create(ctx, b)
	if err != nil {
		return &CommandError{Command: "push", Action: "create", Reason: "service rejected the board", Err: err}
	}

	if args.JSON {
		return NewJSONResponse("push", map[string]string{"id": id}).Print()
	}
	fmt.Printf("%s pushed %s as %s\n", RenderStatus("ok"), b.Name, id)
	return nil
}

// HandlePull handles the "pull" command.
func HandlePull(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := remoteClient(cfg)
	if err != nil {
		return err
	}

	id := args.ConfigKey
	if id == "" {
		return &UsageError{Command: "pull", Reason: "a board id is required"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), remoteTimeout)
	defer cancel()

	b, err := client.Get(ctx, id)
	if err != nil {
		return &CommandError{Command: "pull", Action: "get", Reason: "cannot fetch board", Err: err}
	}

	data, err := b.Encode()
	if err != nil {
		return err
	}

	out := args.Output
	if out == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("%s wrote %s\n", RenderStatus("ok"), out)
	}
	return nil
}
