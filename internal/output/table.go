// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"golang.org/x/term"

	"github.com/staranto/easyconvert/internal/config"
)

// Colors are the table colors, configurable under colors.* in the config
// file.
type Colors struct {
	Title string
	Even  string
	Odd   string
}

// TableOptions control TableWriter.
type TableOptions struct {
	Color   bool
	Titles  bool
	Padding int
	Colors  Colors
}

// NewTableOptions reads padding and colors from the config file.
func NewTableOptions(cfg config.Type, color, titles bool) TableOptions {
	pad, _ := cfg.GetInt("padding", 2)
	return TableOptions{
		Color:   color,
		Titles:  titles,
		Padding: pad,
		Colors:  getColors(cfg, "colors"),
	}
}

// ColorEnabled is true only when color was requested and w is a terminal.
func ColorEnabled(requested bool, w io.Writer) bool {
	if !requested {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TableWriter renders rows in tabular form honoring color, titles and
// padding options.
func TableWriter(w io.Writer, headers []string, rows [][]string, opts TableOptions) error {
	if len(rows) == 0 {
		return nil
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerStyle = headerStyle.Foreground(lipgloss.Color(opts.Colors.Title))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(opts.Colors.Even))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(opts.Colors.Odd))
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(opts.Padding)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// getColors returns configured color values for table rendering.
func getColors(cfg config.Type, key string) Colors {
	var c Colors
	c.Title, _ = cfg.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	c.Even, _ = cfg.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	c.Odd, _ = cfg.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return c
}
