// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// inspect_cmd.go - Grid preview command.
//
// Renders a page's button grid as a box-drawn table sized to the longest
// label. Cell widths are measured with go-runewidth so wide glyphs and
// symbols line up.
package cli

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/boardforge/internal/board"
)

const (
	minCellWidth = 4
	maxCellWidth = 16
)

// HandleInspect handles the "inspect" command.
func HandleInspect(args Args) error {
	b, err := loadBoardFile(args.File)
	if err != nil {
		return err
	}

	page, err := inspectPage(b, args.Options["page"])
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("inspect", map[string]any{
			"board":   b.Name,
			"page":    page.Name,
			"grid":    page.EffectiveGrid(b),
			"buttons": len(page.Buttons),
		}).Print()
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("%s / %s", b.Name, page.Name)))
	fmt.Print(renderGrid(b, page))

	grid := page.EffectiveGrid(b)
	fmt.Println(DimStyle.Render(fmt.Sprintf("%dx%d grid, %d buttons, %d pages total",
		grid.Rows, grid.Cols, len(page.Buttons), len(b.Pages))))
	return nil
}

// inspectPage picks the page to render: by name when --page is given,
// otherwise the first page.
func inspectPage(b *board.Board, name string) (*board.Page, error) {
	if name == "" {
		if len(b.Pages) == 0 {
			return nil, &CommandError{Command: "inspect", Action: "render", Reason: "board has no pages"}
		}
		return b.Pages[0], nil
	}
	for _, p := range b.Pages {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, &CommandError{Command: "inspect", Action: "render", Reason: fmt.Sprintf("no page named %q", name)}
}

// renderGrid draws the full cell matrix with box-drawing characters.
// Empty cells render blank; occupied cells show the truncated label.
func renderGrid(b *board.Board, page *board.Page) string {
	grid := page.EffectiveGrid(b)
	width := cellWidth(page)

	var sb strings.Builder
	sb.WriteString(gridRule("┌", "┬", "┐", grid.Cols, width))
	for row := 0; row < grid.Rows; row++ {
		if row > 0 {
			sb.WriteString(gridRule("├", "┼", "┤", grid.Cols, width))
		}
		sb.WriteString("│")
		for col := 0; col < grid.Cols; col++ {
			sb.WriteString(renderCell(page.ButtonAt(row, col), width))
			sb.WriteString("│")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(gridRule("└", "┴", "┘", grid.Cols, width))
	return sb.String()
}

// cellWidth sizes cells to the widest label on the page, clamped to keep
// large grids on screen.
func cellWidth(page *board.Page) int {
	width := minCellWidth
	for _, btn := range page.Buttons {
		if w := runewidth.StringWidth(btn.Label); w > width {
			width = w
		}
	}
	if width > maxCellWidth {
		width = maxCellWidth
	}
	return width + 2 // one space of padding each side
}

func gridRule(left, mid, right string, cols, width int) string {
	segment := strings.Repeat("─", width)
	parts := make([]string, cols)
	for i := range parts {
		parts[i] = segment
	}
	return left + strings.Join(parts, mid) + right + "\n"
}

func renderCell(btn *board.Button, width int) string {
	if btn == nil {
		return strings.Repeat(" ", width)
	}
	label := runewidth.Truncate(btn.Label, width-2, "…")
	cell := " " + runewidth.FillRight(label, width-2) + " "
	if btn.Action != nil && ColorsEnabled() {
		return HighlightStyle.Render(cell)
	}
	return cell
}
