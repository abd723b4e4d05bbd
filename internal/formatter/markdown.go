// Package formatter renders aligned markdown tables for console previews.
package formatter

import (
	"strconv"
	"strings"

	"metprep/internal/tally"

	"github.com/mattn/go-runewidth"
)

// Align is a column alignment.
type Align int

// Column alignments.
const (
	AlignLeft Align = iota
	AlignRight
)

// Column describes one table column.
type Column struct {
	Title string
	Align Align
}

// Table renders rows under columns as a markdown table padded by display
// width, so wide (e.g. CJK) characters line up. Rows may be ragged; missing
// cells render empty.
func Table(columns []Column, rows [][]string) string {
	colCount := len(columns)
	if colCount == 0 {
		return ""
	}

	// 1. Calculate max widths (using display width)
	colWidths := make([]int, colCount)

	for i, col := range columns {
		colWidths[i] = runewidth.StringWidth(col.Title)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < colCount; i++ {
			if width := runewidth.StringWidth(strings.TrimSpace(row[i])); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	// Ensure min width for separator (usually 3 dashes "---")
	for i := range colWidths {
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	// 2. Reconstruct lines
	titles := make([]string, colCount)
	for i, col := range columns {
		titles[i] = col.Title
	}

	lines := []string{renderRow(titles, columns, colWidths), renderSeparator(columns, colWidths)}
	for _, row := range rows {
		lines = append(lines, renderRow(row, columns, colWidths))
	}

	return strings.Join(lines, "\n")
}

// CountsTable renders the top n entries of c as a rank/name/count table.
func CountsTable(c *tally.Counts, n int) string {
	entries := c.Top(n)

	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{strconv.Itoa(i + 1), e.Key, strconv.Itoa(e.Count)}
	}

	return Table([]Column{
		{Title: "#", Align: AlignRight},
		{Title: "Country", Align: AlignLeft},
		{Title: "Count", Align: AlignRight},
	}, rows)
}

func renderRow(row []string, columns []Column, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j := range columns {
		content := ""
		if j < len(row) {
			content = strings.TrimSpace(row[j])
		}

		// Pad with spaces based on display width
		padding := strings.Repeat(" ", max(widths[j]-runewidth.StringWidth(content), 0))

		sb.WriteString(" ")

		if columns[j].Align == AlignRight {
			sb.WriteString(padding)
			sb.WriteString(content)
		} else {
			sb.WriteString(content)
			sb.WriteString(padding)
		}

		sb.WriteString(" |")
	}

	return sb.String()
}

func renderSeparator(columns []Column, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for j, col := range columns {
		sb.WriteString(" ")

		if col.Align == AlignRight {
			sb.WriteString(strings.Repeat("-", widths[j]-1))
			sb.WriteString(":")
		} else {
			sb.WriteString(strings.Repeat("-", widths[j]))
		}

		sb.WriteString(" |")
	}

	return sb.String()
}
