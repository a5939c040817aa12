package core

// faults.go defines the error taxonomy for the core package.
//
// Four families cross the core boundary:
//
//   - ValidationFault: malformed tabular input, user-correctable
//   - DomainFault: invalid or identical domain pair, field-level
//   - StorageFault: I/O failure; logged with detail, surfaced generically
//   - ErrNotFound: missing or expired artifacts
//
// Faults are returned as structured errors, never panics. The web layer maps
// them to user messages via MapError.

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an artifact does not exist, including when the
// retention janitor removed it between request and retrieval.
var ErrNotFound = errors.New("artifact not found or expired")

// FaultKind identifies which tabular validation rule failed.
type FaultKind int

const (
	// FaultMalformedStructure: the bytes do not parse as delimited text with a
	// consistent column count under any supported delimiter.
	FaultMalformedStructure FaultKind = iota

	// FaultEmptyHeader: the file has no header row or the header has no columns.
	FaultEmptyHeader

	// FaultRowLimitExceeded: more data rows than the configured ceiling.
	FaultRowLimitExceeded

	// FaultNoEmailColumn: no column looks like it holds email addresses.
	// Advisory; callers surface it as a warning and processing continues.
	FaultNoEmailColumn
)

// ValidationFault describes a structural problem with uploaded tabular data.
type ValidationFault struct {
	Kind    FaultKind
	Message string

	// Rows and Limit are set only for FaultRowLimitExceeded.
	Rows  int
	Limit int
}

func (f *ValidationFault) Error() string {
	return f.Message
}

// Is lets errors.Is match any ValidationFault against another by kind.
func (f *ValidationFault) Is(target error) bool {
	var vf *ValidationFault
	if errors.As(target, &vf) {
		return f.Kind == vf.Kind
	}
	return false
}

func newRowLimitFault(rows, limit int) *ValidationFault {
	return &ValidationFault{
		Kind:    FaultRowLimitExceeded,
		Message: fmt.Sprintf("row limit exceeded: file has %d data rows, the maximum is %d", rows, limit),
		Rows:    rows,
		Limit:   limit,
	}
}

// newNoEmailColumnFault is the advisory fault for files without a detectable
// email column. It is surfaced as a warning, never as a rejection.
func newNoEmailColumnFault() *ValidationFault {
	return &ValidationFault{
		Kind:    FaultNoEmailColumn,
		Message: "no email column detected; replacement still runs across all columns",
	}
}

// DomainFault reports an invalid or unusable domain input.
// Field names the offending input ("old_domain" or "new_domain"); an empty
// Field means the pair as a whole is unusable (identical domains).
type DomainFault struct {
	Field  string
	Reason string
}

func (f *DomainFault) Error() string {
	if f.Field != "" {
		return fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return f.Reason
}

// StorageFault wraps a filesystem error. Error() is deliberately generic so
// that paths and OS detail never reach users; the wrapped error is available
// via Unwrap for logging.
type StorageFault struct {
	Op  string // "put", "get", "delete", "list"
	Err error
}

func (f *StorageFault) Error() string {
	return fmt.Sprintf("storage failure during %s", f.Op)
}

func (f *StorageFault) Unwrap() error {
	return f.Err
}
