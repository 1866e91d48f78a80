// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// boards_cmd.go - Local board library commands backed by SQLite.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/boardforge/internal/persist"
)

// HandleBoards handles the "boards" command.
func HandleBoards(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := persist.OpenStore(cfg.Service.StorePath)
	if err != nil {
		return &CommandError{Command: "boards", Action: "open", Reason: "cannot open board library", Err: err}
	}
	defer store.Close()

	ctx := context.Background()

	switch args.Subcommand {
	case "", "list", "ls":
		return boardsList(ctx, args, store)
	case "save", "add":
		return boardsSave(ctx, args, store)
	case "get", "export":
		return boardsGet(ctx, args, store)
	case "delete", "rm":
		return boardsDelete(ctx, args, store)
	default:
		return &UsageError{Command: "boards", Reason: fmt.Sprintf("unknown subcommand %q", args.Subcommand)}
	}
}

func boardsList(ctx context.Context, args Args, store *persist.Store) error {
	meta, err := store.ListMeta(ctx)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("boards", meta).Print()
	}

	if len(meta) == 0 {
		fmt.Println(DimStyle.Render("library is empty"))
		return nil
	}

	fmt.Println(TitleStyle.Render("Board Library"))
	for _, m := range meta {
		fmt.Printf("  %s  %-24s %dx%-3d %s\n",
			DimStyle.Render(m.ID),
			ValueStyle.Render(m.Name),
			m.Rows, m.Cols,
			DimStyle.Render(m.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return nil
}

func boardsSave(ctx context.Context, args Args, store *persist.Store) error {
	b, err := loadBoardFile(args.File)
	if err != nil {
		return err
	}

	id, err := store.Create(ctx, b)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("boards", map[string]string{"id": id}).Print()
	}
	fmt.Printf("%s saved %s as %s\n", RenderStatus("ok"), b.Name, id)
	return nil
}

func boardsGet(ctx context.Context, args Args, store *persist.Store) error {
	if args.File == "" {
		return &UsageError{Command: "boards get", Reason: "a board id is required"}
	}

	b, err := store.Get(ctx, args.File)
	if err != nil {
		return err
	}

	data, err := b.Encode()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

func boardsDelete(ctx context.Context, args Args, store *persist.Store) error {
	if args.File == "" {
		return &UsageError{Command: "boards delete", Reason: "a board id is required"}
	}

	if err := store.Delete(ctx, args.File); err != nil {
		return err
	}
	if !args.Quiet {
		fmt.Printf("%s deleted %s\n", RenderStatus("ok"), args.File)
	}
	return nil
}
