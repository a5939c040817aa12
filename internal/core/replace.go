package core

// replace.go rewrites email domains across every cell of a document.
//
// Matching is deliberately stricter than substring search. A cell matches
// only where the old domain appears as the complete, trailing domain of an
// address: the byte before it must be '@' and the byte after it must be
// end-of-cell or a non-hostname byte. Without the trailing check, replacing
// "old.com" would silently corrupt "a@old.com.uk"; without the '@' check it
// would corrupt "b@sub.old.com". Only the domain portion is rewritten, so the
// local part's casing and any surrounding text survive byte-for-byte.

import (
	"strconv"
	"strings"
)

// ReplaceDomains transforms every cell of doc, returning a new document plus
// the number of cells changed and the total number of replacements.
// Row and column order is preserved exactly; unmatched cells are shared with
// the input, not copied.
func ReplaceDomains(doc *TabularDocument, pair DomainPair) (*TabularDocument, int, int) {
	out := &TabularDocument{
		Header:       doc.Header,
		Rows:         make([][]string, len(doc.Rows)),
		Delimiter:    doc.Delimiter,
		EmailColumns: doc.EmailColumns,
	}

	cellsChanged := 0
	totalReplacements := 0

	for i, row := range doc.Rows {
		newRow := row
		copied := false
		for j, cell := range row {
			replaced, n := replaceCell(cell, pair)
			if n == 0 {
				continue
			}
			if !copied {
				newRow = make([]string, len(row))
				copy(newRow, row)
				copied = true
			}
			newRow[j] = replaced
			cellsChanged++
			totalReplacements += n
		}
		out.Rows[i] = newRow
	}

	return out, cellsChanged, totalReplacements
}

// Preview reports what ReplaceDomains would do without transforming the
// document, returning up to sampleSize changed-cell samples.
func Preview(doc *TabularDocument, pair DomainPair, sampleSize int) *PreviewReport {
	report := &PreviewReport{
		TotalRows: len(doc.Rows),
		OldDomain: pair.Old,
		NewDomain: pair.New,
	}

	for i, row := range doc.Rows {
		for j, cell := range row {
			replaced, n := replaceCell(cell, pair)
			if n == 0 {
				continue
			}
			report.TotalMatches += n
			if len(report.Samples) < sampleSize {
				report.Samples = append(report.Samples, PreviewSample{
					Column:   columnName(doc.Header, j),
					Row:      i + 1, // 1-indexed, matching spreadsheet views
					Original: cell,
					Updated:  replaced,
				})
			}
		}
	}

	return report
}

// replaceCell rewrites every boundary-exact occurrence of "@"+pair.Old in a
// single cell, case-insensitively on the domain, and returns the rewritten
// cell with the replacement count. Cells without a match are returned as-is.
// The scan runs over the original bytes: lowering the whole cell first would
// shift offsets, since Unicode case mapping can change a rune's byte length.
func replaceCell(cell string, pair DomainPair) (string, int) {
	var b strings.Builder
	count := 0
	last := 0 // end of the last written segment

	for i := 0; i+1+len(pair.Old) <= len(cell); i++ {
		if cell[i] != '@' {
			continue
		}
		end := i + 1 + len(pair.Old)
		if !asciiFoldEqual(cell[i+1:end], pair.Old) {
			continue
		}
		if end < len(cell) && isHostnameByte(cell[end]) {
			// Longer domain continues past the candidate; not a match.
			continue
		}

		b.WriteString(cell[last : i+1]) // up to and including the '@'
		b.WriteString(pair.New)
		last = end
		count++
		i = end - 1
	}

	if count == 0 {
		return cell, 0
	}
	b.WriteString(cell[last:])
	return b.String(), count
}

// asciiFoldEqual reports whether s equals lower under ASCII case folding.
// NewDomainPair normalizes the stored domain to lowercase ASCII, so any
// non-ASCII byte in s can never fold into a match. Unicode folding (which
// would equate U+212A with 'k') is deliberately not applied.
func asciiFoldEqual(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}

// isHostnameByte reports whether c can appear inside a hostname. A domain
// followed by one of these bytes is part of a longer domain, not a match.
func isHostnameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.':
		return true
	}
	return false
}

func columnName(header []string, idx int) string {
	if idx < len(header) && strings.TrimSpace(header[idx]) != "" {
		return header[idx]
	}
	return "column " + strconv.Itoa(idx+1)
}
