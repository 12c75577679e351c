package importer

import (
	"strings"
)

// Table is one input sheet: a header row plus data rows with blank rows removed.
type Table struct {
	Name    string
	Headers []string
	Rows    []Row
}

// Row holds one data row. Line is the 1-based row number in the source file,
// counting the header as line 1.
type Row struct {
	Line   int
	Values []string
}

func (r Row) Get(col int) string {
	if col < 0 || col >= len(r.Values) {
		return ""
	}
	return r.Values[col]
}

func (r Row) blank() bool {
	for _, value := range r.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// ColumnIndexes returns every header position matching any of names after
// header normalization, in header order.
func (t *Table) ColumnIndexes(names ...string) []int {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[NormalizeHeader(name)] = struct{}{}
	}

	indexes := make([]int, 0, 1)
	for i, header := range t.Headers {
		if _, ok := wanted[NormalizeHeader(header)]; ok {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// ColumnIndex returns the first header position matching any of names, or -1.
func (t *Table) ColumnIndex(names ...string) int {
	indexes := t.ColumnIndexes(names...)
	if len(indexes) == 0 {
		return -1
	}
	return indexes[0]
}

func newTable(name string, headers []string, rows []Row) *Table {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		cleaned[i] = strings.TrimSpace(header)
	}

	kept := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.blank() {
			continue
		}
		kept = append(kept, row)
	}
	return &Table{Name: name, Headers: cleaned, Rows: kept}
}

func padRow(row []string, width int) []string {
	values := make([]string, width)
	copy(values, row)
	return values
}

func NormalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
