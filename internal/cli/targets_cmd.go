// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// targets_cmd.go - Packaging target listing.
package cli

import (
	"fmt"

	"github.com/jeranaias/boardforge/internal/pack"
)

// targetInfo carries one row of the targets listing.
type targetInfo struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

// HandleTargets handles the "targets" command.
func HandleTargets(args Args) error {
	var rows []targetInfo
	for _, target := range pack.Targets() {
		packager, err := pack.New(target)
		if err != nil {
			return err
		}
		rows = append(rows, targetInfo{
			Name:      string(packager.Target()),
			Extension: packager.FileExtension(),
		})
	}

	if args.JSON {
		return NewJSONResponse("targets", rows).Print()
	}

	fmt.Println(TitleStyle.Render("Packaging Targets"))
	for _, row := range rows {
		fmt.Printf("  %-18s %s\n", HighlightStyle.Render(row.Name), DimStyle.Render(row.Extension))
	}
	return nil
}
