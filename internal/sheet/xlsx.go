// Package sheet decodes uploaded spreadsheets into header-ordered import
// rows. The binary formats are delegated to libraries; nothing here
// interprets cell contents beyond stringification.
package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leads-cli/internal/importer"
)

// Options configures sheet decoding.
type Options struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // extra non-header rows to skip after the header
}

// ReadXLSX decodes an XLSX file: the first row is the header, every later
// non-blank row becomes an ImportRow keyed by those headers.
func ReadXLSX(path string, opts Options) ([]importer.ImportRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("xlsx: sheet %q is empty", sheet.Name)
	}

	headers := rowStrings(sheet.Rows[0])
	if blankHeader(headers) {
		return nil, eris.New("xlsx: header row is blank")
	}

	var rows []importer.ImportRow
	for i, row := range sheet.Rows[1:] {
		if i < opts.SkipRows {
			continue
		}
		r := importer.NewImportRow(headers, rowStrings(row))
		if r.Empty() {
			continue
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func pickSheet(f *xlsx.File, opts Options) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}
	if opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.SheetIndex], nil
}

// rowStrings stringifies a row. Numeric cells keep their raw stored form
// so phone numbers and deal values never pick up display-format
// thousands separators.
func rowStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellString(cell)
	}
	return cells
}

func cellString(cell *xlsx.Cell) string {
	if raw := strings.TrimSpace(cell.Value); raw != "" && plainNumber(raw) {
		return raw
	}
	return cell.String()
}

func plainNumber(s string) bool {
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		case (r == '-' || r == '+') && i == 0:
		case r == 'e' || r == 'E':
			// Scientific notation from the sheet is display territory.
			return false
		default:
			return false
		}
	}
	return len(s) > 0
}

func blankHeader(headers []string) bool {
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			return false
		}
	}
	return true
}
