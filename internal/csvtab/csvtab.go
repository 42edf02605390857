// Package csvtab parses the CSV tables the kaggle CLI prints. The
// parser is a small explicit state machine rather than encoding/csv
// because CLI output is not a clean CSV document: warning lines may
// precede the header and rows can be ragged. Columns are addressed by
// header name, never by position.
package csvtab

import (
	"fmt"
	"strings"
)

// Table holds parsed rows with header-name column lookup.
type Table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

// SplitLine splits one CSV line into fields. Quoted fields may contain
// commas and doubled double quotes ("" is a literal quote).
func SplitLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if inQuotes {
			if r == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					i++
					cur.WriteRune('"')
				} else {
					inQuotes = false
				}
			} else {
				cur.WriteRune(r)
			}
			continue
		}
		switch r {
		case '"':
			inQuotes = true
		case ',':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// Parse reads CLI output into a Table. The header row is located by
// searching for the first line containing every name in required;
// anything before it (warnings, blank lines) is skipped.
func Parse(text string, required ...string) (*Table, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headerAt := -1
	var header []string
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := SplitLine(line)
		if containsAll(fields, required) {
			headerAt = i
			header = fields
			break
		}
	}
	if headerAt < 0 {
		return nil, fmt.Errorf("no header row with columns %v", required)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	t := &Table{header: header, index: index}
	for _, line := range lines[headerAt+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t.rows = append(t.rows, SplitLine(line))
	}
	return t, nil
}

func containsAll(fields, required []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, want := range required {
		found := false
		for _, f := range fields {
			if strings.TrimSpace(f) == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Get returns the named column of row i, or "" when the row is too
// short or the column unknown.
func (t *Table) Get(i int, column string) string {
	col, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return ""
	}
	row := t.rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}
