/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/carverauto/hwinventory/pkg/inventory"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaOrange     = "#FFB86C"
	draculaPurple     = "#BD93F9"
	draculaComment    = "#6272A4"

	nullCell = "-"
)

var errUnknownFormat = errors.New("unknown output format")

type styles struct {
	title, header, cell, null, border lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Padding(0, 1),
		null: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)).
			Padding(0, 1),
		border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
	}
}

// Render writes snap to w in the given format.
func Render(w io.Writer, format string, snap *inventory.Snapshot) error {
	switch format {
	case inventory.FormatJSON:
		return RenderJSON(w, snap)
	case inventory.FormatTable:
		return RenderTable(w, snap)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// RenderJSON writes snap as indented JSON.
func RenderJSON(w io.Writer, snap *inventory.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return nil
}

// RenderTable writes a summary table followed by one table per collected class.
func RenderTable(w io.Writer, snap *inventory.Snapshot) error {
	st := newStyles()

	var b strings.Builder

	summary := [][]string{
		{"snapshot", snap.ID},
		{"host", strings.TrimSpace(snap.Hostname + " " + snap.HostID)},
		{"backend", snap.Backend},
		{"collected_at", snap.CollectedAt.Format(time.RFC3339)},
	}

	if len(snap.Skipped) > 0 {
		summary = append(summary, []string{"skipped", strings.Join(snap.Skipped, ", ")})
	}

	b.WriteString(newTable(st, nil, summary).String())
	b.WriteString("\n")

	for _, section := range snap.Sections() {
		headers, rows := tabulate(section.Items)

		b.WriteString("\n")
		b.WriteString(st.title.Render(fmt.Sprintf("%s (%s) %d", section.Name, section.WMIClass, section.Count)))
		b.WriteString("\n")

		if len(rows) == 0 {
			b.WriteString(st.null.Render("no instances"))
			b.WriteString("\n")

			continue
		}

		b.WriteString(newTable(st, headers, rows).String())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func newTable(st styles, headers []string, rows [][]string) *table.Table {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}

			if row >= 0 && row < len(rows) && col < len(rows[row]) && rows[row][col] == nullCell {
				return st.null
			}

			return st.cell
		})

	if len(headers) > 0 {
		t = t.Headers(headers...)
	}

	return t
}

type nullable interface {
	IsNull() bool
}

// tabulate turns a slice of entity structs into json-named columns and
// string rows. Absent values render as "-".
func tabulate(items any) ([]string, [][]string) {
	v := reflect.ValueOf(items)
	if v.Kind() != reflect.Slice {
		return nil, nil
	}

	elem := v.Type().Elem()
	if elem.Kind() != reflect.Struct {
		return nil, nil
	}

	headers := make([]string, 0, elem.NumField())
	fields := make([]int, 0, elem.NumField())

	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)

		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if !f.IsExported() || name == "-" {
			continue
		}

		if name == "" {
			name = f.Name
		}

		headers = append(headers, name)
		fields = append(fields, i)
	}

	rows := make([][]string, 0, v.Len())

	for r := 0; r < v.Len(); r++ {
		item := v.Index(r)
		row := make([]string, len(fields))

		for c, idx := range fields {
			row[c] = cellText(item.Field(idx).Interface())
		}

		rows = append(rows, row)
	}

	return headers, rows
}

func cellText(v any) string {
	if n, ok := v.(nullable); ok && n.IsNull() {
		return nullCell
	}

	return fmt.Sprint(v)
}
