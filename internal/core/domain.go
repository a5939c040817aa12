package core

// domain.go validates domain inputs before any transformation begins.
//
// IsValidDomain is a pure function over hostname grammar; it is used both for
// interactive field-level feedback and as the gate in NewDomainPair.

import "strings"

const (
	maxDomainLength = 253
	maxLabelLength  = 63
)

// IsValidDomain reports whether s is a syntactically valid hostname:
// dot-separated labels of 1-63 characters from [A-Za-z0-9-], none starting or
// ending with a hyphen, total length at most 253, and at least one dot.
func IsValidDomain(s string) bool {
	if s == "" || len(s) > maxDomainLength {
		return false
	}
	if !strings.Contains(s, ".") {
		return false
	}

	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > maxLabelLength {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z':
			case c >= 'A' && c <= 'Z':
			case c >= '0' && c <= '9':
			case c == '-':
			default:
				return false
			}
		}
	}
	return true
}

// NormalizeDomain cleans up a user-typed domain: trims whitespace, lowercases,
// and strips scheme and www. prefixes that people paste from browsers.
func NormalizeDomain(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "www.")
	return s
}

// CheckDomainPair gives field-level feedback for interactive clients.
// Differ stays true while either field is empty so the UI does not flag an
// unfinished form.
func CheckDomainPair(old, new string) DomainCheck {
	old = NormalizeDomain(old)
	new = NormalizeDomain(new)

	check := DomainCheck{
		OldValid: IsValidDomain(old),
		NewValid: IsValidDomain(new),
		Differ:   true,
	}
	if old != "" && new != "" {
		check.Differ = old != new
	}
	return check
}

// NewDomainPair validates both domains and rejects an identical pair
// (case-insensitive) before any transformation begins.
func NewDomainPair(old, new string) (DomainPair, error) {
	old = NormalizeDomain(old)
	new = NormalizeDomain(new)

	if !IsValidDomain(old) {
		return DomainPair{}, &DomainFault{Field: "old_domain", Reason: "invalid domain format"}
	}
	if !IsValidDomain(new) {
		return DomainPair{}, &DomainFault{Field: "new_domain", Reason: "invalid domain format"}
	}
	if old == new {
		return DomainPair{}, &DomainFault{Reason: "old and new domains cannot be the same"}
	}

	return DomainPair{Old: old, New: new}, nil
}
