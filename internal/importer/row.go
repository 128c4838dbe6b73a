// Package importer turns heterogeneous spreadsheet rows into canonical
// lead-creation payloads: header alias resolution, phone extraction and
// dial formatting, and the bulk import pipeline.
package importer

import "strings"

// ImportRow is one data row of an uploaded sheet: the header list in sheet
// order plus a header→cell lookup. Column order matters: alias resolution
// ties break on column ordinal, and the company-name fallback reads the
// first column.
type ImportRow struct {
	Columns []string
	Cells   map[string]string
}

// NewImportRow builds a row from parallel header/cell slices. Headers are
// trimmed; cells beyond the header width are dropped, missing cells read
// as empty.
func NewImportRow(headers, cells []string) ImportRow {
	row := ImportRow{
		Columns: make([]string, 0, len(headers)),
		Cells:   make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		row.Columns = append(row.Columns, h)
		if i < len(cells) {
			row.Cells[h] = cells[i]
		} else {
			row.Cells[h] = ""
		}
	}
	return row
}

// Get returns the trimmed cell under the exact header, if present.
func (r ImportRow) Get(header string) (string, bool) {
	v, ok := r.Cells[header]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Empty reports whether every cell in the row is blank.
func (r ImportRow) Empty() bool {
	for _, h := range r.Columns {
		if strings.TrimSpace(r.Cells[h]) != "" {
			return false
		}
	}
	return true
}
