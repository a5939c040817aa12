package core

// retention.go implements the background cleanup of expired artifacts.
//
// The Janitor loops forever until its context is cancelled. Each cycle lists
// the store, deletes every artifact older than the configured age, and logs a
// summary. The first cycle runs only after the first interval elapses, so a
// sweep never races files uploaded moments before startup. Cancellation is
// observed between files, never mid-file, which bounds Stop latency to one
// deletion.
//
// A failed deletion is recorded and skipped; no error in one cycle affects
// the next, and no janitor error is fatal to the process.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailmorph/mailmorph/internal/metrics"
)

// Janitor periodically deletes artifacts older than maxAge.
type Janitor struct {
	store    *Store
	maxAge   time.Duration
	interval time.Duration
}

// NewJanitor creates a janitor for the given store.
func NewJanitor(store *Store, maxAge, interval time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Run loops until ctx is cancelled. Call it in its own goroutine:
//
//	go janitor.Run(jobCtx)
func (j *Janitor) Run(ctx context.Context) {
	slog.Info("retention janitor started",
		"max_file_age", j.maxAge,
		"interval", j.interval,
	)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention janitor stopped")
			return
		case <-ticker.C:
			report := j.RunCycleNow(ctx)
			logCycle(report)
		}
	}
}

// RunCycleNow performs a single cleanup cycle immediately and returns its
// report. Exported for tests and operator-triggered sweeps.
func (j *Janitor) RunCycleNow(ctx context.Context) CleanupReport {
	start := time.Now()
	var report CleanupReport

	artifacts, err := j.store.List()
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("scan: %v", err))
		report.Duration = time.Since(start)
		return report
	}
	metrics.ArtifactsStored.Set(float64(len(artifacts)))

	now := time.Now()
	for _, a := range artifacts {
		// Stop between files, never mid-file.
		select {
		case <-ctx.Done():
			report.Duration = time.Since(start)
			return report
		default:
		}

		if a.Age(now) <= j.maxAge {
			continue
		}

		removed, err := j.store.Delete(a.ID)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("delete %s: %v", a.ID, err))
			metrics.CleanupErrorsTotal.Inc()
			continue
		}
		if removed {
			report.DeletedCount++
			report.DeletedBytes += a.Size
		}
	}

	report.Duration = time.Since(start)
	metrics.CleanupCyclesTotal.Inc()
	metrics.CleanupDeletedFilesTotal.Add(float64(report.DeletedCount))
	metrics.CleanupDeletedBytesTotal.Add(float64(report.DeletedBytes))
	return report
}

func logCycle(report CleanupReport) {
	if len(report.Errors) > 0 {
		slog.Warn("cleanup cycle completed with errors",
			"deleted_files", report.DeletedCount,
			"deleted_bytes", report.DeletedBytes,
			"errors", len(report.Errors),
			"duration_ms", report.Duration.Milliseconds(),
		)
		for _, e := range report.Errors {
			slog.Warn("cleanup error", "detail", e)
		}
		return
	}

	slog.Info("cleanup cycle completed",
		"deleted_files", report.DeletedCount,
		"deleted_bytes", report.DeletedBytes,
		"duration_ms", report.Duration.Milliseconds(),
	)
}
