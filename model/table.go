package model

import (
	"strings"
)

// Table represents a table with a header row and data rows of cell text
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) Kind() BlockKind { return BlockTable }
func (t Table) GetText() string {
	var sb strings.Builder
	writeRow := func(row []string) {
		for j, cell := range row {
			sb.WriteString(cell)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// NewTable builds a table from a header and data rows. The second result is
// false when the table would be empty (no header cells or no data rows);
// such tables are not emitted.
func NewTable(header []string, rows [][]string) (Table, bool) {
	if len(header) == 0 || len(rows) == 0 {
		return Table{}, false
	}
	return Table{Header: header, Rows: rows}, true
}

// RowCount returns the number of data rows (excluding the header)
func (t Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns, defined by the header
func (t Table) ColCount() int {
	return len(t.Header)
}

// Cell returns the text at the given data row and column (0-indexed).
// Cells past the end of a short row are empty.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ToMarkdown converts the table back to pipe-table syntax
func (t Table) ToMarkdown() string {
	if len(t.Header) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for j := range t.Header {
			sb.WriteString("| ")
			if j < len(row) {
				sb.WriteString(strings.ReplaceAll(row[j], "|", "\\|"))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(t.Header)
	for range t.Header {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table, header first, to CSV format
func (t Table) ToCSV() string {
	var sb strings.Builder
	writeRow := func(row []string) {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	writeRow(t.Header)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}
