// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/ec2snap/internal/config"
	"github.com/tfctl/ec2snap/internal/snapper"
)

// Formats accepted by Spit.
var Formats = []string{"text", "json", "yaml"}

// Options controls how a report is rendered.
type Options struct {
	Format string
	Titles bool
	Color  bool
	Local  bool
	// Now anchors relative ages. Defaults to time.Now.
	Now func() time.Time
}

// Spit writes report to w in the requested format. If w is nil, os.Stdout is
// used.
func Spit(w io.Writer, report snapper.Report, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		TableWriter(w, report, opts)
		return nil
	default:
		return fmt.Errorf("unknown output format %q, must be one of %v", opts.Format, Formats)
	}
}

// Action labels the fate of every listed snapshot in a report.
func Action(report snapper.Report, id string) string {
	for _, d := range report.Deleted {
		if d == id {
			return "deleted"
		}
	}
	for _, e := range report.Plan.Expire {
		if e.ID == id {
			return "expire"
		}
	}
	return "keep"
}

// TableWriter renders the snapshots of a report as a table, followed by a
// one-line summary.
func TableWriter(w io.Writer, report snapper.Report, opts Options) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if len(report.Listed) > 0 {
		var rows [][]string
		for _, s := range report.Listed {
			date := s.Date.UTC()
			if opts.Local {
				date = s.Date.Local()
			}
			rows = append(rows, []string{
				s.ID,
				date.Format(time.RFC3339),
				humanize.RelTime(s.Date, now(), "ago", "from now"),
				Action(report, s.ID),
			})
		}

		pad, _ := config.GetInt("padding", 2)
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
					style = style.PaddingLeft(pad)
				}

				return style
			}).
			Headers().
			Rows(rows...)

		if opts.Titles {
			// https://github.com/charmbracelet/lipgloss/issues/261
			t = t.Headers("ID", "DATE", "AGE", "ACTION").BorderHeader(false)
		}
		fmt.Fprintln(w, t)
	}

	fmt.Fprintln(w, headerStyle.Render(Summary(report)))
}

// Summary describes the outcome of a report in one line.
func Summary(report snapper.Report) string {
	instance := report.Identity.InstanceID
	if report.Handle != "" {
		instance = fmt.Sprintf("%s (%s)", instance, report.Handle)
	}

	s := fmt.Sprintf("%s: %d on-demand snapshots, keeping %d", instance, len(report.Listed), report.Keep)
	if report.Triggered {
		s += fmt.Sprintf(", snapshot requested (%d task chains)", len(report.TaskChains))
	}
	switch {
	case len(report.Deleted) > 0:
		s += fmt.Sprintf(", deleted %d", len(report.Deleted))
	case report.DryRun && len(report.Plan.Expire) > 0:
		s += fmt.Sprintf(", would delete %d (dry run)", len(report.Plan.Expire))
	case len(report.Plan.Expire) > 0:
		s += fmt.Sprintf(", %d to expire", len(report.Plan.Expire))
	}
	return s
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background so that output stays readable on both
// light and dark themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config, otherwise pick a default
	// for the terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
