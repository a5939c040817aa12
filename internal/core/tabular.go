package core

// tabular.go parses uploaded bytes into a TabularDocument.
//
// Validation rules, applied in order, each with a distinct fault kind:
//
//  1. The bytes must parse as delimited text with a consistent field count
//     under one of the supported delimiters (comma first), otherwise
//     FaultMalformedStructure.
//  2. The header row must exist and have at least one column, otherwise
//     FaultEmptyHeader.
//  3. The data row count must not exceed the ceiling, otherwise
//     FaultRowLimitExceeded (carrying the observed count and the limit).
//
// Email-column detection is advisory and never blocks: a file with emails in
// unexpected columns still processes across all columns.

import (
	"bytes"
	"encoding/csv"
	"regexp"
	"strings"
)

// delimiterCandidates are tried in order; comma is the primary format.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// emailCellPattern matches an email address anywhere inside a cell.
var emailCellPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// Parse validates and parses delimited bytes into a TabularDocument.
// maxRows caps the number of data rows (excluding the header).
// Malformed individual cells are passed through untouched; only structural
// problems fail the parse.
func Parse(data []byte, maxRows int) (*TabularDocument, error) {
	data = sanitizeUTF8(stripBOM(data))

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ValidationFault{Kind: FaultEmptyHeader, Message: "empty file: no header row found"}
	}

	records, delim, ok := detectAndParse(data)
	if !ok {
		return nil, &ValidationFault{
			Kind:    FaultMalformedStructure,
			Message: "not a valid delimited file: rows do not split to a consistent column count",
		}
	}

	header := records[0]
	if len(header) == 0 || isEmptyRow(header) {
		return nil, &ValidationFault{Kind: FaultEmptyHeader, Message: "file has no header columns"}
	}

	rows := records[1:]
	if len(rows) > maxRows {
		return nil, newRowLimitFault(len(rows), maxRows)
	}

	return &TabularDocument{
		Header:       header,
		Rows:         rows,
		Delimiter:    delim,
		EmailColumns: detectEmailColumns(header, rows),
	}, nil
}

// detectAndParse tries each candidate delimiter and returns the first that
// yields a consistent multi-column parse. A single-column comma parse is
// accepted as a last resort so one-column files still work.
func detectAndParse(data []byte) ([][]string, rune, bool) {
	var fallback [][]string
	haveFallback := false

	for _, delim := range delimiterCandidates {
		records, err := parseWith(data, delim)
		if err != nil || len(records) == 0 {
			continue
		}
		if len(records[0]) > 1 {
			return records, delim, true
		}
		if delim == ',' {
			fallback = records
			haveFallback = true
		}
	}

	if haveFallback {
		return fallback, ',', true
	}
	return nil, 0, false
}

// parseWith parses with a fixed delimiter, requiring every record to have the
// same field count as the header (csv.Reader enforces this when
// FieldsPerRecord is left at zero).
func parseWith(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.LazyQuotes = true
	return r.ReadAll()
}

// detectEmailColumns returns the indices of columns where a majority of
// non-empty cells contain an email address.
func detectEmailColumns(header []string, rows [][]string) []int {
	var cols []int
	for c := range header {
		nonEmpty, matched := 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[c])
			if cell == "" {
				continue
			}
			nonEmpty++
			if emailCellPattern.MatchString(cell) {
				matched++
			}
		}
		if nonEmpty > 0 && matched*2 > nonEmpty {
			cols = append(cols, c)
		}
	}
	return cols
}

// isEmptyRow reports whether every cell is empty or whitespace.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Serialize writes the document back using its original delimiter, preserving
// header, row order, and cell content exactly.
func Serialize(doc *TabularDocument) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = doc.Delimiter

	if err := w.Write(doc.Header); err != nil {
		return nil, err
	}
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
