package sheet

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/leads-cli/internal/importer"
)

// CSVOptions configures CSV decoding.
type CSVOptions struct {
	Delimiter rune   // default ','
	Charset   string // IANA name; empty = UTF-8 as-is
}

// ReadCSV decodes a CSV export the same way ReadXLSX decodes a workbook:
// first record is the header, later non-blank records become ImportRows.
// Legacy CRM exports are frequently not UTF-8, so an explicit charset
// gets decoded via x/text before parsing.
func ReadCSV(path string, opts CSVOptions) ([]importer.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "csv: open file")
	}
	defer f.Close()
	return parseCSV(f, opts)
}

func parseCSV(r io.Reader, opts CSVOptions) ([]importer.ImportRow, error) {
	if opts.Charset != "" {
		enc, err := htmlindex.Get(opts.Charset)
		if err != nil {
			return nil, eris.Wrapf(err, "csv: unsupported charset %q", opts.Charset)
		}
		r = enc.NewDecoder().Reader(r)
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1 // exports routinely have ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: file is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	var rows []importer.ImportRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		row := importer.NewImportRow(header, record)
		if row.Empty() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
