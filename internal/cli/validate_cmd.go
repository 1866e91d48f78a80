// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// validate_cmd.go - Structural validation command.
package cli

import (
	"fmt"

	"github.com/jeranaias/boardforge/internal/validate"
)

// HandleValidate handles the "validate" command.
func HandleValidate(args Args) error {
	b, err := loadBoardFile(args.File)
	if err != nil {
		return err
	}

	result := validate.Validate(b)

	if args.JSON {
		if err := NewJSONResponse("validate", result).Print(); err != nil {
			return err
		}
		if !result.IsValid {
			return &InvalidBoardError{Errors: len(result.Errors)}
		}
		return nil
	}

	printValidation(args, b.Name, result)

	if !result.IsValid {
		return &InvalidBoardError{Errors: len(result.Errors)}
	}
	return nil
}

func printValidation(args Args, name string, result *validate.Result) {
	if !args.Quiet {
		fmt.Println(TitleStyle.Render("Validation: " + name))
	}

	for _, issue := range result.Errors {
		fmt.Printf("%s %s\n", RenderStatus("error"), formatIssue(issue))
	}
	for _, issue := range result.Warnings {
		fmt.Printf("%s %s\n", RenderStatus("warning"), formatIssue(issue))
	}

	if args.Quiet {
		return
	}

	if result.IsValid {
		summary := "board is valid"
		if n := len(result.Warnings); n > 0 {
			summary = fmt.Sprintf("board is valid (%d warnings)", n)
		}
		fmt.Printf("%s %s\n", RenderStatus("ok"), summary)
	} else {
		fmt.Printf("%s %d errors, %d warnings\n",
			RenderStatus("error"), len(result.Errors), len(result.Warnings))
	}
}

// formatIssue renders one finding with its location suffix.
func formatIssue(issue validate.Issue) string {
	msg := issue.Message
	switch {
	case issue.ButtonID != "":
		msg += DimStyle.Render(fmt.Sprintf("  (page %s, button %s)", issue.PageID, issue.ButtonID))
	case issue.PageID != "":
		msg += DimStyle.Render(fmt.Sprintf("  (page %s)", issue.PageID))
	}
	return msg
}
