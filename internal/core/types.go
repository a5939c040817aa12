package core

import "time"

// Artifact describes a single stored file. The identifier is the only handle
// callers retain; it doubles as the filename inside the managed directory, so
// there is no sidecar metadata. OriginalName is known only to the request that
// created the artifact and is not recoverable from a directory listing.
type Artifact struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName,omitempty"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Age returns how long ago the artifact was created.
func (a Artifact) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}

// TabularDocument is the in-memory form of a parsed delimited file.
// Invariant: every row has exactly len(Header) cells.
type TabularDocument struct {
	Header    []string
	Rows      [][]string
	Delimiter rune

	// EmailColumns lists the indices of columns where a majority of non-empty
	// cells look like email addresses. Advisory only: replacement always runs
	// across all columns regardless.
	EmailColumns []int
}

// HasEmailColumn reports whether email-like content was detected anywhere.
func (d *TabularDocument) HasEmailColumn() bool {
	return len(d.EmailColumns) > 0
}

// DomainPair holds a validated old/new domain combination.
// Construct via NewDomainPair, which enforces syntax and old != new.
type DomainPair struct {
	Old string
	New string
}

// DomainCheck is the field-level feedback returned to interactive clients
// before they submit a transformation.
type DomainCheck struct {
	OldValid bool `json:"old_domain_valid"`
	NewValid bool `json:"new_domain_valid"`
	Differ   bool `json:"domains_different"`
}

// ReplacementResult summarizes one completed transformation.
// Immutable once produced. CellsChanged counts cells with at least one
// replacement; TotalReplacements counts every individual rewrite.
type ReplacementResult struct {
	RowsExamined      int           `json:"rowsExamined"`
	CellsChanged      int           `json:"cellsChanged"`
	TotalReplacements int           `json:"totalReplacements"`
	OutputID          string        `json:"outputId"`
	OutputName        string        `json:"outputName"`
	OldDomain         string        `json:"oldDomain"`
	NewDomain         string        `json:"newDomain"`
	GeneratedAt       time.Time     `json:"generatedAt"`
	Duration          time.Duration `json:"-"`
	Warnings          []string      `json:"warnings,omitempty"`
}

// PreviewSample shows one cell that would change, without transforming the file.
type PreviewSample struct {
	Column   string `json:"column"`
	Row      int    `json:"row"`
	Original string `json:"original"`
	Updated  string `json:"updated"`
}

// PreviewReport is the dry-run counterpart of ReplacementResult.
type PreviewReport struct {
	TotalMatches int             `json:"totalMatches"`
	TotalRows    int             `json:"totalRows"`
	Samples      []PreviewSample `json:"samples"`
	OldDomain    string          `json:"oldDomain"`
	NewDomain    string          `json:"newDomain"`
}

// RetentionSnapshot is a point-in-time view of the managed directory.
type RetentionSnapshot struct {
	TotalFiles   int   `json:"totalFiles"`
	TotalBytes   int64 `json:"totalBytes"`
	RecentFiles  int   `json:"recentFiles"`  // younger than one hour
	ExpiredFiles int   `json:"expiredFiles"` // older than the retention age
}

// CleanupReport summarizes one retention cycle. Per-file errors are recorded
// and skipped; they never abort the cycle.
type CleanupReport struct {
	DeletedCount int
	DeletedBytes int64
	Errors       []string
	Duration     time.Duration
}
