package core

// store.go implements secure flat-directory storage for uploaded and
// generated files.
//
// Identifiers are random UUIDs, generated independently of user-supplied
// filenames. The identifier IS the filename inside the managed directory, so
// directory traversal is impossible by construction: any identifier that does
// not parse as a UUID is rejected before the filesystem is touched.
//
// Writes go through a hidden temp file followed by an atomic rename, so a
// reader racing a concurrent delete sees either the full content or
// ErrNotFound, never a partial file. Size and creation time are read from
// filesystem attributes; there are no sidecar metadata files.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxFileSize is the upload size ceiling when none is configured (16MB).
const DefaultMaxFileSize int64 = 16 * 1024 * 1024

// Store persists artifacts in a single managed directory.
// All methods are safe for concurrent use; operations on distinct identifiers
// never block each other.
type Store struct {
	dir         string
	maxFileSize int64
	allowedExts map[string]bool
}

// NewStore creates the managed directory if needed and verifies it is
// writable. allowedExts holds extensions without the leading dot ("csv").
func NewStore(dir string, maxFileSize int64, allowedExts []string) (*Store, error) {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	exts := make(map[string]bool, len(allowedExts))
	for _, e := range allowedExts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts[e] = true
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageFault{Op: "init", Err: err}
	}

	// Probe write permissions up front so misconfiguration fails at startup,
	// not on the first upload.
	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0o644); err != nil {
		return nil, &StorageFault{Op: "init", Err: err}
	}
	_ = os.Remove(probe)

	return &Store{
		dir:         dir,
		maxFileSize: maxFileSize,
		allowedExts: exts,
	}, nil
}

// Dir returns the managed directory path. Intended for logging at startup.
func (s *Store) Dir() string {
	return s.dir
}

// MaxFileSize returns the configured byte ceiling.
func (s *Store) MaxFileSize() int64 {
	return s.maxFileSize
}

// AllowedFile reports whether the filename carries an accepted extension.
func (s *Store) AllowedFile(name string) bool {
	if len(s.allowedExts) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	return ext != "" && s.allowedExts[ext]
}

// Put persists content under a freshly generated identifier and returns the
// artifact metadata. The identifier never derives from originalName.
func (s *Store) Put(content []byte, originalName string) (Artifact, error) {
	if originalName == "" {
		return Artifact{}, fmt.Errorf("no file provided")
	}
	if !s.AllowedFile(originalName) {
		return Artifact{}, fmt.Errorf("file type not allowed: %q", filepath.Ext(originalName))
	}
	if int64(len(content)) > s.maxFileSize {
		return Artifact{}, fmt.Errorf("file too large: %d bytes exceeds the %d byte limit",
			len(content), s.maxFileSize)
	}

	id := uuid.NewString()
	tmp := filepath.Join(s.dir, "."+id+".tmp")
	final := filepath.Join(s.dir, id)

	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return Artifact{}, &StorageFault{Op: "put", Err: err}
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return Artifact{}, &StorageFault{Op: "put", Err: err}
	}

	// Creation time comes from the filesystem, the same source Info and List
	// read, so every path reports the identical timestamp for an artifact.
	createdAt := time.Now()
	if fi, err := os.Stat(final); err == nil {
		createdAt = fi.ModTime()
	}

	return Artifact{
		ID:           id,
		OriginalName: originalName,
		Size:         int64(len(content)),
		CreatedAt:    createdAt,
	}, nil
}

// Get returns the full content of an artifact, or ErrNotFound if it does not
// exist (including when retention removed it first).
func (s *Store) Get(id string) ([]byte, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &StorageFault{Op: "get", Err: err}
	}
	return data, nil
}

// Info returns artifact metadata from filesystem attributes.
func (s *Store) Info(id string) (Artifact, error) {
	path, err := s.path(id)
	if err != nil {
		return Artifact{}, err
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, &StorageFault{Op: "stat", Err: err}
	}
	return Artifact{ID: id, Size: fi.Size(), CreatedAt: fi.ModTime()}, nil
}

// Delete removes an artifact. It is idempotent: deleting a missing artifact
// returns (false, nil).
func (s *Store) Delete(id string) (bool, error) {
	path, err := s.path(id)
	if err != nil {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &StorageFault{Op: "delete", Err: err}
	}
	return true, nil
}

// List returns a snapshot of all artifacts, newest first. It is safe to call
// concurrently with Put and Delete; entries that vanish mid-listing are
// silently skipped.
func (s *Store) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &StorageFault{Op: "list", Err: err}
	}

	artifacts := make([]Artifact, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		artifacts = append(artifacts, Artifact{
			ID:        entry.Name(),
			Size:      fi.Size(),
			CreatedAt: fi.ModTime(),
		})
	}

	sort.Slice(artifacts, func(i, j int) bool {
		return artifacts[i].CreatedAt.After(artifacts[j].CreatedAt)
	})

	return artifacts, nil
}

// Stats returns directory-level statistics for the given retention age.
func (s *Store) Stats(maxAge time.Duration) (RetentionSnapshot, error) {
	artifacts, err := s.List()
	if err != nil {
		return RetentionSnapshot{}, err
	}

	now := time.Now()
	snap := RetentionSnapshot{TotalFiles: len(artifacts)}
	for _, a := range artifacts {
		snap.TotalBytes += a.Size
		age := a.Age(now)
		if age < time.Hour {
			snap.RecentFiles++
		}
		if age > maxAge {
			snap.ExpiredFiles++
		}
	}
	return snap, nil
}

// path maps an identifier to its location inside the managed directory.
// Anything that is not a UUID cannot name an artifact, which also blocks
// traversal attempts like "../etc/passwd" before any filesystem access.
func (s *Store) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, id), nil
}
