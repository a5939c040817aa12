// Package metrics exposes Prometheus instrumentation for mailmorph.
//
// Collectors register on the default registry; the web layer serves them at
// /metrics via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal counts upload requests by outcome ("ok", "rejected", "failed").
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Name:      "uploads_total",
		Help:      "Upload requests processed, by outcome.",
	}, []string{"outcome"})

	// ReplacementsTotal counts individual domain rewrites across all uploads.
	ReplacementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Name:      "replacements_total",
		Help:      "Individual email domain replacements performed.",
	})

	// CellsChangedTotal counts cells modified across all uploads.
	CellsChangedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Name:      "cells_changed_total",
		Help:      "Cells modified by domain replacement.",
	})

	// DownloadsTotal counts artifact downloads by outcome ("ok", "not_found").
	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Name:      "downloads_total",
		Help:      "Artifact downloads, by outcome.",
	}, []string{"outcome"})

	// CleanupCyclesTotal counts retention sweeps.
	CleanupCyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Subsystem: "cleanup",
		Name:      "cycles_total",
		Help:      "Retention cleanup cycles completed.",
	})

	// CleanupDeletedFilesTotal counts artifacts removed by retention.
	CleanupDeletedFilesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Subsystem: "cleanup",
		Name:      "deleted_files_total",
		Help:      "Artifacts deleted by the retention janitor.",
	})

	// CleanupDeletedBytesTotal counts bytes reclaimed by retention.
	CleanupDeletedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Subsystem: "cleanup",
		Name:      "deleted_bytes_total",
		Help:      "Bytes reclaimed by the retention janitor.",
	})

	// CleanupErrorsTotal counts per-file deletion errors during retention.
	CleanupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mailmorph",
		Subsystem: "cleanup",
		Name:      "errors_total",
		Help:      "Per-file errors encountered during retention cleanup.",
	})

	// ArtifactsStored tracks the artifact count at the last directory scan.
	ArtifactsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mailmorph",
		Name:      "artifacts_stored",
		Help:      "Artifacts present at the last directory scan.",
	})
)
