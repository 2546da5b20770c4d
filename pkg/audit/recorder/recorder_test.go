package recorder

import (
	"context"
	"testing"
	"time"

	"veridian-hq/minerva/pkg/audit"
	"veridian-hq/minerva/pkg/audit/storage"
	"veridian-hq/minerva/pkg/engine"
)

func testReport(valid bool) *engine.Report {
	report := &engine.Report{
		RunID:      "test-run-id",
		RecordType: "user",
		StartedAt:  time.Now(),
		Duration:   300 * time.Microsecond,
	}
	if !valid {
		report.Violations = []engine.Violation{
			{Field: "username", Rule: "required", Message: "is required."},
		}
	}
	return report
}

// waitForSize polls until the storage holds n records or the deadline passes.
func waitForSize(t *testing.T, s *storage.MemoryStorage, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Size() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("storage size = %d, want %d", s.Size(), n)
}

func TestRecorder_Record(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	r := NewRecorder(store, nil)
	defer r.Close()

	if err := r.Record(testReport(false), "user-42"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	waitForSize(t, store, 1)

	records, err := store.Query(context.Background(), &audit.Query{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	got := records[0]
	if got.ID == "" {
		t.Error("audit record has empty ID")
	}
	if got.RunID != "test-run-id" {
		t.Errorf("RunID = %s, want test-run-id", got.RunID)
	}
	if got.RecordType != "user" {
		t.Errorf("RecordType = %s, want user", got.RecordType)
	}
	if got.RecordID != "user-42" {
		t.Errorf("RecordID = %s, want user-42", got.RecordID)
	}
	if got.Valid {
		t.Error("Valid = true, want false")
	}
	if got.ViolationCount != 1 || got.Violations[0].Rule != "required" {
		t.Errorf("Violations = %+v, want one required violation", got.Violations)
	}
}

func TestRecorder_UniqueIDs(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	r := NewRecorder(store, nil)
	defer r.Close()

	for i := 0; i < 10; i++ {
		if err := r.Record(testReport(true), ""); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	// Distinct IDs mean distinct map keys, so all ten must land.
	waitForSize(t, store, 10)
}

func TestRecorder_Disabled(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	cfg := DefaultConfig()
	cfg.Enabled = false

	r := NewRecorder(store, cfg)
	defer r.Close()

	if err := r.Record(testReport(false), ""); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	if store.Size() != 0 {
		t.Errorf("storage size = %d, want 0 when disabled", store.Size())
	}
}

func TestRecorder_CloseDrains(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	r := NewRecorder(store, nil)

	for i := 0; i < 20; i++ {
		if err := r.Record(testReport(true), ""); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if store.Size() != 20 {
		t.Errorf("storage size after Close() = %d, want 20", store.Size())
	}
}
