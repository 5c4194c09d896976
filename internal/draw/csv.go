// Package draw parses participant spreadsheets and runs the raffle draw:
// a timed random-highlight animation plus the final winner selection.
package draw

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var (
	ErrEmptyFile   = errors.New("participant file is empty")
	ErrNoHeaderRow = errors.New("participant file has no header row")
)

// Row maps a column header to the trimmed cell value of one participant.
type Row map[string]string

// Table is the parsed participant sheet: the header row plus one Row per
// data line. Held in memory only for the lifetime of the draw.
type Table struct {
	Headers []string
	Rows    []Row
}

// DetectDelimiter counts occurrences of comma, semicolon and tab in the
// first line and picks the most frequent, comma winning ties.
func DetectDelimiter(firstLine string) rune {
	counts := []struct {
		sep rune
		n   int
	}{
		{',', strings.Count(firstLine, ",")},
		{';', strings.Count(firstLine, ";")},
		{'\t', strings.Count(firstLine, "\t")},
	}

	best := counts[0]
	for _, c := range counts[1:] {
		if c.n > best.n {
			best = c
		}
	}
	return best.sep
}

// Parse converts raw delimited text into a Table. A leading byte-order mark
// is stripped before delimiter detection; double-quoted fields (with doubled
// quotes as escapes) and CRLF/LF endings are honored; the first row is the
// header row and missing trailing cells default to "".
func Parse(raw string) (*Table, error) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyFile
	}

	firstLine := raw
	if i := strings.IndexAny(raw, "\r\n"); i >= 0 {
		firstLine = raw[:i]
	}

	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = DetectDelimiter(firstLine)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHeaderRow
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// ParseReader reads everything from r and parses it.
func ParseReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}
