// Package report renders sweep results.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/huntsim/internal/sim"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

// Write renders rows in format.
func Write(w io.Writer, format Format, rows []sim.SweepRow) error {
	switch format {
	case FormatTable, "":
		return WriteTable(w, rows)
	case FormatYAML:
		return WriteYAML(w, rows)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

// WriteTable renders one line per weapon and one "hits / HP loss" column per
// proficiency level, weapons in first-seen order.
func WriteTable(w io.Writer, rows []sim.SweepRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}

	var weapons []string
	var levels []int
	names := map[string]string{}
	cells := map[string]map[int]sim.Result{}
	for _, r := range rows {
		if _, ok := cells[r.Weapon]; !ok {
			weapons = append(weapons, r.Weapon)
			names[r.Weapon] = r.Name
			cells[r.Weapon] = map[int]sim.Result{}
		}
		if !slices.Contains(levels, r.Level) {
			levels = append(levels, r.Level)
		}
		cells[r.Weapon][r.Level] = r.Result
	}
	slices.Sort(levels)

	if _, err := fmt.Fprintf(w, "%s simulations per cell, avg hits / avg HP loss per battle\n\n",
		humanize.Comma(int64(rows[0].Result.Simulations))); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"WEAPON"}
	for _, l := range levels {
		header = append(header, fmt.Sprintf("LV%d", l))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, id := range weapons {
		line := []string{names[id]}
		for _, l := range levels {
			res, ok := cells[id][l]
			if !ok {
				line = append(line, "-")
				continue
			}
			line = append(line, fmt.Sprintf("%.2f / %.2f", res.AvgHits, res.AvgHitPointLoss))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t"))
	}
	return tw.Flush()
}

// WriteYAML emits rows as a YAML sequence.
func WriteYAML(w io.Writer, rows []sim.SweepRow) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("report: encoding yaml: %w", err)
	}
	return enc.Close()
}
