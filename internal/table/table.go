package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Row holds one record keyed by column name
type Row map[string]string

// Table is an ordered-column view over a delimited file. Column order is part
// of the contract between pipeline steps, so it is tracked explicitly instead
// of relying on map iteration.
type Table struct {
	Columns []string
	Rows    []Row
}

// Read loads a comma- or tab-delimited file. Exports coming out of uStore show
// up in both flavors; a comma parse that yields a single tab-bearing header is
// reparsed as TSV.
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	t, err := parse(string(data), ',')
	if err == nil && len(t.Columns) == 1 && strings.Contains(t.Columns[0], "\t") {
		t, err = parse(string(data), '\t')
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

func parse(data string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	t := &Table{}
	for _, h := range records[0] {
		// Clean header names: trim whitespace and stray quotes
		clean := strings.TrimSpace(strings.ReplaceAll(h, `"`, ""))
		t.Columns = append(t.Columns, clean)
	}

	for _, rec := range records[1:] {
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write saves the table as comma-delimited UTF-8 using the declared column order.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// HasColumn reports whether the table declares the column
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// EnsureColumn declares a column (appended last) if it is not present yet
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// DropColumns removes columns and their values from every row
func (t *Table) DropColumns(names ...string) []string {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if t.HasColumn(n) {
			drop[n] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	var kept []string
	var removed []string
	for _, c := range t.Columns {
		if drop[c] {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	t.Columns = kept
	for _, row := range t.Rows {
		for n := range drop {
			delete(row, n)
		}
	}
	return removed
}

// Head truncates the table to at most n rows
func (t *Table) Head(n int) {
	if n >= 0 && len(t.Rows) > n {
		t.Rows = t.Rows[:n]
	}
}
