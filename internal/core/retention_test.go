package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// putAged stores content and backdates its modification time.
func putAged(t *testing.T, store *Store, age time.Duration) Artifact {
	t.Helper()
	art, err := store.Put([]byte("name,email\nA,a@x.com\n"), "f.csv")
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(filepath.Join(store.Dir(), art.ID), when, when); err != nil {
		t.Fatal(err)
	}
	art.CreatedAt = when
	return art
}

func TestJanitor_DeletesOnlyExpired(t *testing.T) {
	store := newTestStore(t)

	expired := putAged(t, store, 2*time.Hour)
	alsoExpired := putAged(t, store, 61*time.Minute)
	fresh := putAged(t, store, 10*time.Minute)

	j := NewJanitor(store, time.Hour, time.Minute)
	report := j.RunCycleNow(context.Background())

	if report.DeletedCount != 2 {
		t.Errorf("DeletedCount = %d, want 2", report.DeletedCount)
	}
	if report.DeletedBytes != expired.Size+alsoExpired.Size {
		t.Errorf("DeletedBytes = %d, want %d", report.DeletedBytes, expired.Size+alsoExpired.Size)
	}
	if len(report.Errors) != 0 {
		t.Errorf("Errors = %v, want none", report.Errors)
	}

	for _, id := range []string{expired.ID, alsoExpired.ID} {
		if _, err := store.Get(id); err == nil {
			t.Errorf("expired artifact %s still present", id)
		}
	}
	if _, err := store.Get(fresh.ID); err != nil {
		t.Errorf("fresh artifact removed: %v", err)
	}
}

func TestJanitor_ExactlyAtBoundarySurvives(t *testing.T) {
	store := newTestStore(t)

	// Age well inside the window; only strictly-older files go.
	kept := putAged(t, store, 59*time.Minute)

	j := NewJanitor(store, time.Hour, time.Minute)
	report := j.RunCycleNow(context.Background())

	if report.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0", report.DeletedCount)
	}
	if _, err := store.Get(kept.ID); err != nil {
		t.Errorf("artifact inside the window removed: %v", err)
	}
}

func TestJanitor_EmptyDirectory(t *testing.T) {
	store := newTestStore(t)

	j := NewJanitor(store, time.Hour, time.Minute)
	report := j.RunCycleNow(context.Background())

	if report.DeletedCount != 0 || len(report.Errors) != 0 {
		t.Errorf("report = %+v, want empty cycle", report)
	}
}

func TestJanitor_StopsBetweenFiles(t *testing.T) {
	store := newTestStore(t)
	for i := 0; i < 5; i++ {
		putAged(t, store, 2*time.Hour)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	j := NewJanitor(store, time.Hour, time.Minute)
	report := j.RunCycleNow(ctx)

	// Cancelled before any file was considered.
	if report.DeletedCount != 0 {
		t.Errorf("DeletedCount = %d, want 0 after cancellation", report.DeletedCount)
	}

	artifacts, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 5 {
		t.Errorf("len(List()) = %d, want 5", len(artifacts))
	}
}

func TestJanitor_RunStopsOnCancel(t *testing.T) {
	store := newTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	j := NewJanitor(store, time.Hour, 10*time.Millisecond)
	go func() {
		j.Run(ctx)
		close(done)
	}()

	// Let at least one tick fire, then stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func TestJanitor_RunNoEagerFirstCycle(t *testing.T) {
	store := newTestStore(t)
	expired := putAged(t, store, 2*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A long interval means no tick fires during the test window.
	j := NewJanitor(store, time.Hour, time.Hour)
	go j.Run(ctx)

	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get(expired.ID); err != nil {
		t.Errorf("artifact deleted before the first interval elapsed: %v", err)
	}
}
