package core

import (
	"errors"
	"strings"
	"testing"
)

const testMaxRows = 1000

func TestParse_Comma(t *testing.T) {
	data := []byte("name,email\nAlice,alice@old.com\nBob,bob@old.com\n")

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc.Delimiter != ',' {
		t.Errorf("Delimiter = %q, want ','", doc.Delimiter)
	}
	if len(doc.Header) != 2 {
		t.Errorf("len(Header) = %d, want 2", len(doc.Header))
	}
	if len(doc.Rows) != 2 {
		t.Errorf("len(Rows) = %d, want 2", len(doc.Rows))
	}
	if doc.Rows[0][1] != "alice@old.com" {
		t.Errorf("Rows[0][1] = %q, want %q", doc.Rows[0][1], "alice@old.com")
	}
}

func TestParse_AlternateDelimiters(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		delim rune
	}{
		{"semicolon", "name;email\nA;a@x.com\n", ';'},
		{"tab", "name\temail\nA\ta@x.com\n", '\t'},
		{"pipe", "name|email\nA|a@x.com\n", '|'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data), testMaxRows)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if doc.Delimiter != tt.delim {
				t.Errorf("Delimiter = %q, want %q", doc.Delimiter, tt.delim)
			}
			if len(doc.Header) != 2 {
				t.Errorf("len(Header) = %d, want 2", len(doc.Header))
			}
		})
	}
}

func TestParse_SingleColumnFallback(t *testing.T) {
	data := []byte("email\na@x.com\nb@y.com\n")

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Delimiter != ',' {
		t.Errorf("Delimiter = %q, want ','", doc.Delimiter)
	}
	if len(doc.Header) != 1 || len(doc.Rows) != 2 {
		t.Errorf("shape = %dx%d, want 1 column, 2 rows", len(doc.Header), len(doc.Rows))
	}
}

func TestParse_EmptyFile(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(""), []byte("   \n\n  ")} {
		_, err := Parse(data, testMaxRows)
		if err == nil {
			t.Fatalf("Parse(%q) error = nil, want empty-header fault", data)
		}

		var vf *ValidationFault
		if !errors.As(err, &vf) || vf.Kind != FaultEmptyHeader {
			t.Errorf("Parse(%q) error = %v, want FaultEmptyHeader", data, err)
		}
	}
}

func TestParse_InconsistentColumns(t *testing.T) {
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	_, err := Parse(data, testMaxRows)
	if err == nil {
		t.Fatal("Parse() error = nil, want malformed-structure fault")
	}

	var vf *ValidationFault
	if !errors.As(err, &vf) || vf.Kind != FaultMalformedStructure {
		t.Errorf("error = %v, want FaultMalformedStructure", err)
	}
}

func TestParse_RowLimit(t *testing.T) {
	build := func(rows int) []byte {
		var b strings.Builder
		b.WriteString("name,email\n")
		for i := 0; i < rows; i++ {
			b.WriteString("x,x@x.com\n")
		}
		return []byte(b.String())
	}

	// Exactly at the ceiling parses fine
	doc, err := Parse(build(testMaxRows), testMaxRows)
	if err != nil {
		t.Fatalf("Parse(at limit) error = %v", err)
	}
	if len(doc.Rows) != testMaxRows {
		t.Errorf("len(Rows) = %d, want %d", len(doc.Rows), testMaxRows)
	}

	// One over fails with the count and limit attached
	_, err = Parse(build(testMaxRows+1), testMaxRows)
	if err == nil {
		t.Fatal("Parse(over limit) error = nil, want row-limit fault")
	}

	var vf *ValidationFault
	if !errors.As(err, &vf) || vf.Kind != FaultRowLimitExceeded {
		t.Fatalf("error = %v, want FaultRowLimitExceeded", err)
	}
	if vf.Rows != testMaxRows+1 || vf.Limit != testMaxRows {
		t.Errorf("Rows/Limit = %d/%d, want %d/%d", vf.Rows, vf.Limit, testMaxRows+1, testMaxRows)
	}
}

func TestParse_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,email\nA,a@x.com\n")...)

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Header[0] != "name" {
		t.Errorf("Header[0] = %q, want %q (BOM should be stripped)", doc.Header[0], "name")
	}
}

func TestParse_QuotedCells(t *testing.T) {
	data := []byte("name,email\n\"Smith, Alice\",alice@old.com\n")

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Rows[0][0] != "Smith, Alice" {
		t.Errorf("Rows[0][0] = %q, want %q", doc.Rows[0][0], "Smith, Alice")
	}
}

func TestParse_EmailColumnDetection(t *testing.T) {
	data := []byte("name,email,notes\nAlice,alice@x.com,hello\nBob,bob@y.org,contact ted@z.com\n")

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !doc.HasEmailColumn() {
		t.Fatal("HasEmailColumn() = false, want true")
	}
	if len(doc.EmailColumns) != 1 || doc.EmailColumns[0] != 1 {
		t.Errorf("EmailColumns = %v, want [1]", doc.EmailColumns)
	}
}

func TestParse_NoEmailColumnIsNotAnError(t *testing.T) {
	data := []byte("a,b\n1,2\n3,4\n")

	doc, err := Parse(data, testMaxRows)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.HasEmailColumn() {
		t.Errorf("EmailColumns = %v, want none", doc.EmailColumns)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"comma", "name,email\nAlice,alice@old.com\n"},
		{"semicolon", "name;email\nAlice;alice@old.com\n"},
		{"quoted comma cell", "name,email\n\"Smith, Alice\",alice@old.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data), testMaxRows)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			out, err := Serialize(doc)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}

			again, err := Parse(out, testMaxRows)
			if err != nil {
				t.Fatalf("Parse(Serialize()) error = %v", err)
			}

			if len(again.Rows) != len(doc.Rows) {
				t.Fatalf("rows = %d, want %d", len(again.Rows), len(doc.Rows))
			}
			for i := range doc.Rows {
				for j := range doc.Rows[i] {
					if again.Rows[i][j] != doc.Rows[i][j] {
						t.Errorf("cell [%d][%d] = %q, want %q", i, j, again.Rows[i][j], doc.Rows[i][j])
					}
				}
			}
		})
	}
}
