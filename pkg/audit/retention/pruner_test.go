package retention

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"veridian-hq/minerva/pkg/audit"
	"veridian-hq/minerva/pkg/audit/storage"
)

func storeRecord(t *testing.T, s audit.Storage, id string, daysAgo int) {
	t.Helper()

	started := time.Now().AddDate(0, 0, -daysAgo)
	record := &audit.Record{
		ID:         id,
		RunID:      "run-" + id,
		RecordType: "user",
		StartedAt:  started,
		RecordedAt: started,
		Valid:      true,
	}
	if err := s.Store(context.Background(), record); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
}

func TestPruner_PruneByAge(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	storeRecord(t, store, "fresh", 1)
	storeRecord(t, store, "old", 100)
	storeRecord(t, store, "ancient", 400)

	pruner := NewPruner(store, &Config{RetentionDays: 90})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}

	if store.Size() != 1 {
		t.Errorf("storage size = %d, want 1", store.Size())
	}
	if store.GetByID("fresh") == nil {
		t.Error("fresh record was pruned")
	}
}

func TestPruner_PruneByCount(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	for i := 0; i < 10; i++ {
		storeRecord(t, store, fmt.Sprintf("r%d", i), 10-i)
	}

	pruner := NewPruner(store, &Config{MaxRecords: 4})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 6 {
		t.Errorf("Prune() = %d, want 6", deleted)
	}

	if store.Size() != 4 {
		t.Errorf("storage size = %d, want 4", store.Size())
	}

	// Newest records survive.
	for i := 6; i < 10; i++ {
		if store.GetByID(fmt.Sprintf("r%d", i)) == nil {
			t.Errorf("record r%d was pruned, want kept", i)
		}
	}
}

func TestPruner_PruneByCountTimestampTies(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	// All records share one StartedAt, so a timestamp cutoff would
	// match every one of them.
	started := time.Now().AddDate(0, 0, -5)
	for i := 0; i < 5; i++ {
		record := &audit.Record{
			ID:         fmt.Sprintf("tie%d", i),
			RunID:      fmt.Sprintf("run-tie%d", i),
			RecordType: "user",
			StartedAt:  started,
			RecordedAt: started,
			Valid:      true,
		}
		if err := store.Store(context.Background(), record); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}

	pruner := NewPruner(store, &Config{MaxRecords: 3})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() = %d, want 2", deleted)
	}
	if store.Size() != 3 {
		t.Errorf("storage size = %d, want 3", store.Size())
	}
}

func TestPruner_NothingToPrune(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	storeRecord(t, store, "fresh", 1)

	pruner := NewPruner(store, &Config{RetentionDays: 90, MaxRecords: 100})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
}

func TestPruner_ZeroConfigKeepsEverything(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	storeRecord(t, store, "ancient", 3000)

	pruner := NewPruner(store, &Config{RetentionDays: 0, MaxRecords: 0})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("Prune() = %d, want 0", deleted)
	}
	if store.Size() != 1 {
		t.Errorf("storage size = %d, want 1", store.Size())
	}
}

func TestPruner_ArchiveBeforeDelete(t *testing.T) {
	store := storage.NewMemoryStorage()
	defer store.Close()

	storeRecord(t, store, "old", 100)

	archiveDir := t.TempDir()
	pruner := NewPruner(store, &Config{
		RetentionDays:       90,
		ArchiveBeforeDelete: true,
		ArchivePath:         archiveDir,
	})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() = %d, want 1", deleted)
	}

	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("archive dir has %d files, want 1", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(archiveDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	var archived []*audit.Record
	if err := json.Unmarshal(data, &archived); err != nil {
		t.Fatalf("archive is not valid JSON: %v", err)
	}
	if len(archived) != 1 || archived[0].ID != "old" {
		t.Errorf("archive contents = %+v, want the pruned record", archived)
	}
}
