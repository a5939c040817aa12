package core

// service.go is the entry point callers use. It combines the store, the
// tabular parser, and the domain replacer into the upload and download
// operations, and owns the concurrency limiter that bounds parallel work.
//
// Faults are returned as values, never panics. An advisory condition (no
// email column detected, old domain absent from the file) produces a warning
// on the result instead of an error.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailmorph/mailmorph/internal/config"
	"github.com/mailmorph/mailmorph/internal/metrics"
)

// Service exposes the core operations to transport layers.
type Service struct {
	store   *Store
	cfg     *config.Config
	limiter *UploadLimiter
}

// NewService wires a service around an existing store.
func NewService(store *Store, cfg *config.Config) *Service {
	return &Service{
		store:   store,
		cfg:     cfg,
		limiter: NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
	}
}

// Store returns the underlying store, for wiring the retention janitor.
func (s *Service) Store() *Store {
	return s.store
}

// OutputFileName returns the public download name for an output generated at
// t. Deriving it from the artifact's creation time keeps the name
// reconstructible at download time without sidecar metadata.
func OutputFileName(t time.Time) string {
	return fmt.Sprintf("mailmorph_output_%s.csv", t.Format("20060102_150405"))
}

// HandleUpload is the single entry point for a transformation request: it
// persists the input, validates and parses it, rewrites matching domains,
// and persists the output. The input artifact is removed once processing
// finishes; only the output remains for download, subject to retention.
func (s *Service) HandleUpload(ctx context.Context, content []byte, filename, oldDomain, newDomain string) (*ReplacementResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	defer s.limiter.Release()

	start := time.Now()

	pair, err := NewDomainPair(oldDomain, newDomain)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	input, err := s.store.Put(content, filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	// The input is transient: retention would reap it eventually, but there is
	// no reason to keep raw uploads around once the output exists.
	defer func() {
		if _, err := s.store.Delete(input.ID); err != nil {
			slog.Warn("failed to remove input artifact", "artifact_id", input.ID, "error", err)
		}
	}()

	doc, err := Parse(content, s.cfg.Upload.MaxRows)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var warnings []string
	if !doc.HasEmailColumn() {
		warnings = append(warnings, newNoEmailColumnFault().Error())
	}

	transformed, cellsChanged, totalReplacements := ReplaceDomains(doc, pair)
	if cellsChanged == 0 {
		warnings = append(warnings,
			fmt.Sprintf("no occurrences of @%s were found in the file", pair.Old))
	}

	out, err := Serialize(transformed)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("serialize output: %w", err)
	}

	output, err := s.store.Put(out, OutputFileName(time.Now()))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	result := &ReplacementResult{
		RowsExamined:      len(doc.Rows),
		CellsChanged:      cellsChanged,
		TotalReplacements: totalReplacements,
		OutputID:          output.ID,
		OutputName:        OutputFileName(output.CreatedAt),
		OldDomain:         pair.Old,
		NewDomain:         pair.New,
		GeneratedAt:       output.CreatedAt,
		Duration:          time.Since(start),
		Warnings:          warnings,
	}

	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.CellsChangedTotal.Add(float64(cellsChanged))
	metrics.ReplacementsTotal.Add(float64(totalReplacements))

	slog.Info("replacement completed",
		"rows", result.RowsExamined,
		"cells_changed", result.CellsChanged,
		"replacements", result.TotalReplacements,
		"output_id", result.OutputID,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// HandlePreview reports what HandleUpload would change, without writing
// anything to the store.
func (s *Service) HandlePreview(ctx context.Context, content []byte, oldDomain, newDomain string) (*PreviewReport, error) {
	pair, err := NewDomainPair(oldDomain, newDomain)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(content, s.cfg.Upload.MaxRows)
	if err != nil {
		return nil, err
	}

	return Preview(doc, pair, s.cfg.Upload.PreviewSampleSize), nil
}

// HandleDownload returns an artifact's bytes and metadata, or ErrNotFound if
// it never existed or retention already removed it.
func (s *Service) HandleDownload(ctx context.Context, id string) ([]byte, Artifact, error) {
	data, err := s.store.Get(id)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues("not_found").Inc()
		return nil, Artifact{}, err
	}

	info, err := s.store.Info(id)
	if err != nil {
		// Deleted between read and stat; the bytes in hand are still complete.
		info = Artifact{ID: id, Size: int64(len(data)), CreatedAt: time.Now()}
	}

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	return data, info, nil
}

// ValidateDomainPair gives field-level feedback for interactive clients.
func (s *Service) ValidateDomainPair(old, new string) DomainCheck {
	return CheckDomainPair(old, new)
}

// DirectoryStats returns a point-in-time snapshot of the managed directory.
func (s *Service) DirectoryStats() (RetentionSnapshot, error) {
	return s.store.Stats(s.cfg.Retention.MaxFileAge)
}

// ActiveUploads returns the number of transformations currently in flight.
func (s *Service) ActiveUploads() int {
	return s.limiter.ActiveCount()
}

// WaitForUploads blocks until in-flight transformations finish or ctx is
// cancelled. Used during graceful shutdown.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
