package core

import (
	"errors"
	"testing"
)

func TestIsValidDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"example.com", true},
		{"sub.example.com", true},
		{"good-co.io", true},
		{"a.b", true},
		{"123.com", true},
		{"xn--bcher-kva.example", true},

		{"", false},
		{"nodots", false},
		{"-bad.com", false},
		{"bad-.com", false},
		{"bad..com", false},
		{".bad.com", false},
		{"bad.com.", false},
		{"exam ple.com", false},
		{"exa_mple.com", false},
		{"example.com/path", false},
	}

	for _, tt := range tests {
		if got := IsValidDomain(tt.domain); got != tt.want {
			t.Errorf("IsValidDomain(%q) = %v, want %v", tt.domain, got, tt.want)
		}
	}
}

func TestIsValidDomain_LengthLimits(t *testing.T) {
	label63 := make([]byte, 63)
	for i := range label63 {
		label63[i] = 'a'
	}
	ok := string(label63) + ".com"
	if !IsValidDomain(ok) {
		t.Errorf("IsValidDomain(63-char label) = false, want true")
	}

	tooLong := string(label63) + "a.com"
	if IsValidDomain(tooLong) {
		t.Errorf("IsValidDomain(64-char label) = true, want false")
	}

	// Total length over 253 bytes
	long := ""
	for len(long) < 260 {
		long += "abcdefgh."
	}
	long += "com"
	if IsValidDomain(long) {
		t.Errorf("IsValidDomain(%d bytes) = true, want false", len(long))
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Example.COM", "example.com"},
		{"  example.com  ", "example.com"},
		{"https://example.com", "example.com"},
		{"http://example.com/some/path", "example.com"},
		{"https://www.example.com?q=1", "example.com"},
		{"www.example.com", "example.com"},
		{"example.com", "example.com"},
	}

	for _, tt := range tests {
		if got := NormalizeDomain(tt.in); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCheckDomainPair(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     DomainCheck
	}{
		{
			name: "both valid and different",
			old:  "old.com", new: "new.com",
			want: DomainCheck{OldValid: true, NewValid: true, Differ: true},
		},
		{
			name: "identical after normalization",
			old:  "Example.com", new: "https://example.com",
			want: DomainCheck{OldValid: true, NewValid: true, Differ: false},
		},
		{
			name: "one field still empty keeps differ true",
			old:  "old.com", new: "",
			want: DomainCheck{OldValid: true, NewValid: false, Differ: true},
		},
		{
			name: "invalid old",
			old:  "-bad.com", new: "new.com",
			want: DomainCheck{OldValid: false, NewValid: true, Differ: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckDomainPair(tt.old, tt.new); got != tt.want {
				t.Errorf("CheckDomainPair(%q, %q) = %+v, want %+v", tt.old, tt.new, got, tt.want)
			}
		})
	}
}

func TestNewDomainPair(t *testing.T) {
	pair, err := NewDomainPair("  OLD.com ", "https://www.new.com")
	if err != nil {
		t.Fatalf("NewDomainPair() error = %v", err)
	}
	if pair.Old != "old.com" || pair.New != "new.com" {
		t.Errorf("pair = %+v, want old.com/new.com", pair)
	}
}

func TestNewDomainPair_Faults(t *testing.T) {
	tests := []struct {
		name      string
		old, new  string
		wantField string
	}{
		{"invalid old", "-bad.com", "new.com", "old_domain"},
		{"invalid new", "old.com", "no_dots", "new_domain"},
		{"identical", "same.com", "SAME.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDomainPair(tt.old, tt.new)
			if err == nil {
				t.Fatal("NewDomainPair() error = nil, want DomainFault")
			}

			var df *DomainFault
			if !errors.As(err, &df) {
				t.Fatalf("error = %T, want *DomainFault", err)
			}
			if df.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", df.Field, tt.wantField)
			}
		})
	}
}
