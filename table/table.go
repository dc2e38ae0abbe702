// Package table assembles flattened rows into a rectangular table: an
// ordered column list plus rows made total over those columns.
//
// Columns appear in first-seen order: rows are scanned in order, each row's
// paths in its own insertion order, and every not-yet-seen path is appended
// to the column list. Normalization then rebuilds each row so it carries a
// value for every column, Null where the row had no entry.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tsawler/flatxml/flatten"
)

// Table is a rectangular result: ordered columns and normalized rows.
// Every row holds a value for every column.
type Table struct {
	Columns []string
	Rows    flatten.RowGroup
}

// New builds a table from raw flattened rows: columns are collected in
// first-seen order and every row is normalized over them.
func New(rows flatten.RowGroup) *Table {
	columns := CollectColumns(rows)
	return &Table{
		Columns: columns,
		Rows:    NormalizeRows(rows, columns),
	}
}

// CollectColumns returns the ordered, de-duplicated union of all paths
// across rows, in first-seen order.
func CollectColumns(rows flatten.RowGroup) []string {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range rows {
		for _, path := range row.Paths() {
			if !seen[path] {
				seen[path] = true
				columns = append(columns, path)
			}
		}
	}
	return columns
}

// NormalizeRows rebuilds each row so it contains every column, in column
// order, filling missing paths with Null. Input rows are not modified and
// output order matches input order.
func NormalizeRows(rows flatten.RowGroup, columns []string) flatten.RowGroup {
	normalized := make(flatten.RowGroup, 0, len(rows))
	for _, row := range rows {
		n := flatten.NewRow()
		for _, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				v = flatten.Null
			}
			n.Set(col, v)
		}
		normalized = append(normalized, n)
	}
	return normalized
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return len(t.Columns)
}

// Cell returns the value at the given row index and column name. The
// second return is false when the row index is out of range or the column
// does not exist.
func (t *Table) Cell(row int, column string) (flatten.Value, bool) {
	if row < 0 || row >= len(t.Rows) {
		return flatten.Null, false
	}
	return t.Rows[row].Get(column)
}

// Truncate returns a view limited to the first maxRows rows and maxCols
// columns. Zero or negative limits mean no limit on that axis. Rows keep
// their full path set; only the column list shrinks, so renderers that
// iterate Columns see the truncation.
func (t *Table) Truncate(maxRows, maxCols int) *Table {
	rows := t.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	columns := t.Columns
	if maxCols > 0 && len(columns) > maxCols {
		columns = columns[:maxCols]
	}
	return &Table{Columns: columns, Rows: rows}
}

// WriteCSV writes the table as CSV: a header row of column names followed
// by one record per row. Null cells render as empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			v, _ := row.Get(col)
			record[j] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the table as CSV to the file at path.
func (t *Table) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ToMarkdown converts the table to markdown format.
func (t *Table) ToMarkdown() string {
	if len(t.Columns) == 0 {
		return ""
	}

	var sb strings.Builder

	for j, col := range t.Columns {
		sb.WriteString("| ")
		sb.WriteString(strings.ReplaceAll(col, "\n", " "))
		sb.WriteString(" ")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for j := range t.Columns {
		sb.WriteString("|---")
		if j == len(t.Columns)-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for j, col := range t.Columns {
			v, _ := row.Get(col)
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(v.String(), "\n", " "))
			sb.WriteString(" ")
			if j == len(t.Columns)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
