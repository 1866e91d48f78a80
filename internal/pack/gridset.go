// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pack

import (
	"encoding/xml"
	"fmt"

	"github.com/jeranaias/boardforge/internal/canonical"
)

// =============================================================================
// GRIDSET PACKAGER
// =============================================================================

// GridsetPackager emits the XML grid-suite format: a zip holding FileMap.xml,
// a settings document, and one grid.xml per page. Cell coordinates in this
// format are 0-based, so the canonical 1-indexed positions shift back down.
//
// The beta revision stamps a SchemaVersion attribute on every grid and adds a
// Styles/styles.xml document.
type GridsetPackager struct {
	beta bool
}

func (p *GridsetPackager) Target() Target {
	if p.beta {
		return TargetGridsetBeta
	}
	return TargetGridset
}

func (p *GridsetPackager) FileExtension() string { return ".gridset" }

const gridsetBetaSchemaVersion = "2.0-beta"

// =============================================================================
// XML DOCUMENTS
// =============================================================================

type gridsetFileMap struct {
	XMLName xml.Name          `xml:"FileMap"`
	Entries []gridsetMapEntry `xml:"Entries>Entry"`
}

type gridsetMapEntry struct {
	StaticFile string `xml:"StaticFile,attr"`
}

type gridsetSettings struct {
	XMLName     xml.Name `xml:"GridSetSettings"`
	StartGrid   string   `xml:"StartGrid"`
	Title       string   `xml:"Title"`
	Locale      string   `xml:"Locale"`
	Description string   `xml:"Description,omitempty"`
	Thumbnail   string   `xml:"Thumbnail,omitempty"`
}

type gridsetGrid struct {
	XMLName       xml.Name     `xml:"Grid"`
	Name          string       `xml:"Name,attr"`
	SchemaVersion string       `xml:"SchemaVersion,attr,omitempty"`
	GridGuid      string       `xml:"GridGuid"`
	RowCount      int          `xml:"RowCount"`
	ColumnCount   int          `xml:"ColumnCount"`
	Cells         []gridsetCell `xml:"Cells>Cell"`
}

type gridsetCell struct {
	X       int                `xml:"X,attr"`
	Y       int                `xml:"Y,attr"`
	Content gridsetCellContent `xml:"Content"`
}

type gridsetCellContent struct {
	Commands []gridsetCommand `xml:"Commands>Command,omitempty"`
	Caption  string           `xml:"CaptionAndImage>Caption"`
	Image    string           `xml:"CaptionAndImage>Image,omitempty"`
	Style    *gridsetStyle    `xml:"Style,omitempty"`
}

type gridsetCommand struct {
	ID         string             `xml:"ID,attr"`
	Parameters []gridsetParameter `xml:"Parameter,omitempty"`
}

type gridsetParameter struct {
	Key   string `xml:"Key,attr"`
	Value string `xml:",chardata"`
}

type gridsetStyle struct {
	BackColour string `xml:"BackColour,omitempty"`
}

type gridsetStyles struct {
	XMLName xml.Name            `xml:"Styles"`
	Entries []gridsetStyleEntry `xml:"Style"`
}

type gridsetStyleEntry struct {
	Key        string `xml:"Key,attr"`
	BackColour string `xml:"BackColour,omitempty"`
}

// =============================================================================
// PACKAGING
// =============================================================================

func (p *GridsetPackager) Package(in *Input) ([]byte, error) {
	if in == nil || in.Record == nil {
		return nil, packagingErrf(p.Target(), nil, "no canonical record")
	}
	rec := in.Record

	// Grid folder names come from sanitized page names; Jump.To commands
	// reference grids by that name, so build the id lookup first.
	gridNames := gridFolderNames(rec.Boards)

	a := newArchive(p.Target())
	fileMap := gridsetFileMap{}

	settingsPath := "Settings0/settings.xml"
	settings := gridsetSettings{
		StartGrid: gridNames[rec.Boards[0].ID],
		Title:     rec.Meta.Title,
		Locale:    rec.Meta.Locale,
	}
	if in.Thumbnail != nil {
		settings.Thumbnail = "Settings0/thumbnail.png"
	}
	p.addXML(a, &fileMap, settingsPath, settings)

	if in.Thumbnail != nil {
		fileMap.Entries = append(fileMap.Entries, gridsetMapEntry{StaticFile: "Settings0/thumbnail.png"})
		a.add("Settings0/thumbnail.png", in.Thumbnail)
	}

	for _, b := range rec.Boards {
		grid, err := p.buildGrid(rec, b, gridNames)
		if err != nil {
			return nil, err
		}
		p.addXML(a, &fileMap, fmt.Sprintf("Grids/%s/grid.xml", gridNames[b.ID]), grid)
	}

	if p.beta {
		p.addXML(a, &fileMap, "Styles/styles.xml", p.buildStyles(rec))
	}

	data, err := xml.MarshalIndent(fileMap, "", "  ")
	if err != nil {
		return nil, packagingErrf(p.Target(), err, "encode FileMap.xml")
	}
	a.add("FileMap.xml", append([]byte(xml.Header), data...))

	return a.close()
}

// gridFolderNames maps every board id to a unique sanitized folder name.
// Pages may legally share a name, and sanitization can collapse distinct
// names onto one string; a colliding name gets a _2, _3, ... suffix so no
// archive entry shadows another.
func gridFolderNames(boards []canonical.Board) map[string]string {
	names := make(map[string]string, len(boards))
	taken := make(map[string]bool, len(boards))
	for _, b := range boards {
		name := sanitizeFilename(b.Name)
		if taken[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !taken[candidate] {
					name = candidate
					break
				}
			}
		}
		taken[name] = true
		names[b.ID] = name
	}
	return names
}

// addXML encodes a document, appends its archive entry, and records it in the
// file map.
func (p *GridsetPackager) addXML(a *archive, fm *gridsetFileMap, path string, doc any) {
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		if a.err == nil {
			a.err = packagingErrf(p.Target(), err, "encode %s", path)
		}
		return
	}
	a.add(path, append([]byte(xml.Header), data...))
	fm.Entries = append(fm.Entries, gridsetMapEntry{StaticFile: path})
}

func (p *GridsetPackager) buildGrid(rec *canonical.Record, b canonical.Board, gridNames map[string]string) (gridsetGrid, error) {
	grid := gridsetGrid{
		Name:        gridNames[b.ID],
		GridGuid:    b.ID,
		RowCount:    b.Layout.Rows,
		ColumnCount: b.Layout.Cols,
	}
	if p.beta {
		grid.SchemaVersion = gridsetBetaSchemaVersion
	}

	for _, cell := range b.Cells {
		commands, err := p.cellCommands(rec, cell, gridNames)
		if err != nil {
			return gridsetGrid{}, err
		}
		gc := gridsetCell{
			X: cell.Col - 1,
			Y: cell.Row - 1,
			Content: gridsetCellContent{
				Commands: commands,
				Caption:  cell.Label,
			},
		}
		if cell.SymbolID != "" {
			gc.Content.Image = symbolFor(p.Target(), rec.Assets.Symbols[cell.SymbolID].Name)
		}
		if cell.Color != "" {
			gc.Content.Style = &gridsetStyle{BackColour: cell.Color}
		}
		grid.Cells = append(grid.Cells, gc)
	}
	return grid, nil
}

// cellCommands translates canonical actions into the grid suite's command
// vocabulary. A self-closing cell gets a trailing Jump.Back so the device
// returns to the previous grid after the primary command runs.
func (p *GridsetPackager) cellCommands(rec *canonical.Record, cell canonical.Cell, gridNames map[string]string) ([]gridsetCommand, error) {
	var commands []gridsetCommand
	backAlready := false

	for _, act := range cell.Actions {
		switch act.Type {
		case "speak":
			commands = append(commands, gridsetCommand{
				ID:         "Speech.SpeakNow",
				Parameters: []gridsetParameter{{Key: "text", Value: act.Text}},
			})
		case "navigate":
			commands = append(commands, gridsetCommand{
				ID:         "Jump.To",
				Parameters: []gridsetParameter{{Key: "grid", Value: gridNames[act.Target]}},
			})
		case "link":
			commands = append(commands, gridsetCommand{
				ID:         "Jump.To",
				Parameters: []gridsetParameter{{Key: "gridset", Value: act.Target}},
			})
		case "back":
			commands = append(commands, gridsetCommand{ID: "Jump.Back"})
			backAlready = true
		case "bookmark":
			commands = append(commands, gridsetCommand{ID: "Jump.MarkPoint"})
		case "home":
			commands = append(commands, gridsetCommand{ID: "Jump.Home"})
		case "play_video":
			commands = append(commands, gridsetCommand{
				ID:         "Media.PlayVideo",
				Parameters: []gridsetParameter{{Key: "video", Value: rec.Assets.Videos[act.Target].URL}},
			})
		case "open_url":
			commands = append(commands, gridsetCommand{
				ID:         "Web.Browse",
				Parameters: []gridsetParameter{{Key: "url", Value: act.URL}},
			})
		default:
			return nil, packagingErrf(p.Target(), nil, "cell %s: untranslatable action %q", cell.ID, act.Type)
		}
	}

	if cell.SelfClosing && !backAlready {
		commands = append(commands, gridsetCommand{ID: "Jump.Back"})
	}
	return commands, nil
}

func (p *GridsetPackager) buildStyles(rec *canonical.Record) gridsetStyles {
	styles := gridsetStyles{}
	seen := make(map[string]bool)
	for _, b := range rec.Boards {
		for _, cell := range b.Cells {
			if cell.Color == "" || seen[cell.Color] {
				continue
			}
			seen[cell.Color] = true
			styles.Entries = append(styles.Entries, gridsetStyleEntry{
				Key:        cell.Color,
				BackColour: cell.Color,
			})
		}
	}
	return styles
}
