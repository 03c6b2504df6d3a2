package report

import (
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/gocompare/internal/compare"
)

// Table accumulates rows of cells and renders them as an aligned text
// table. Cells are padded by display width, so wide runes line up.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given header cells.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render returns the table as text: header, a dashed separator, then the
// rows, columns separated by two spaces.
func (t *Table) Render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(widths)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(pad(cell, width))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.headers)
	separator := make([]string, len(widths))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	writeRow(separator)
	for _, row := range t.rows {
		writeRow(row)
	}
	return b.String()
}

// pad right-pads a cell to the target display width.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderSummary returns the change type counts as a two-column table.
// Counts are colored by change type when colored is true.
func RenderSummary(summary compare.Summary, colored bool) string {
	table := NewTable("Change Type", "Count")
	table.AddRow(string(compare.Added), colorize(compare.Added, strconv.Itoa(summary.Added), colored))
	table.AddRow(string(compare.Removed), colorize(compare.Removed, strconv.Itoa(summary.Removed), colored))
	table.AddRow(string(compare.Modified), colorize(compare.Modified, strconv.Itoa(summary.Modified), colored))
	table.AddRow(string(compare.Unchanged), strconv.Itoa(summary.Unchanged))
	table.AddRow("Total", strconv.Itoa(summary.Total))
	return table.Render()
}

// RenderPreview returns the first limit report rows in the export layout.
// A limit of zero or less renders every row. The change type cell is
// colored when colored is true.
func RenderPreview(rpt *compare.Report, limit int, colored bool) string {
	if limit <= 0 || limit > len(rpt.Rows) {
		limit = len(rpt.Rows)
	}

	table := NewTable(Header(rpt.Columns)...)
	for _, row := range rpt.Rows[:limit] {
		record := Record(row, rpt.Columns)
		record[len(record)-1] = colorize(row.Change, string(row.Change), colored)
		table.AddRow(record...)
	}
	return table.Render()
}

// colorize wraps text in the ANSI color of its change type. Unchanged rows
// stay uncolored. Color is also subject to the package-global switch, so a
// --no-color run stays plain even when colored is true.
func colorize(change compare.ChangeType, s string, colored bool) string {
	if !colored {
		return s
	}
	switch change {
	case compare.Added:
		return color.Green.Sprint(s)
	case compare.Removed:
		return color.Red.Sprint(s)
	case compare.Modified:
		return color.Yellow.Sprint(s)
	default:
		return s
	}
}
