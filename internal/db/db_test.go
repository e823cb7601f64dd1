package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/bgeneto/costwatch/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return database
}

func TestNew_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "snapshots.db")
	database, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer func() {
		_ = database.Close()
	}()

	if database.Path() != path {
		t.Errorf("Path() = %q, want %q", database.Path(), path)
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	database := testDB(t)

	mtime := time.Now()
	records := []models.Record{
		{User: "a@x.com", Model: "gpt-4", TotalCost: 1.5, TotalTokens: 150},
		{User: "b@x.com", Model: "claude-3", TotalCost: 2.0, TotalTokens: 300},
	}
	recordErrs := []models.RecordError{
		{Kind: models.ErrMissingField, User: "c@x.com", Field: "total_cost"},
	}

	if err := database.SaveSnapshot("/data/costs-2026-8.json", mtime, records, recordErrs); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, gotErrs, hit, err := database.GetSnapshot("/data/costs-2026-8.json", mtime)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Positions preserve order
	if got[0] != records[0] || got[1] != records[1] {
		t.Errorf("records differ after round trip: %+v", got)
	}

	if len(gotErrs) != 1 || gotErrs[0] != recordErrs[0] {
		t.Errorf("record errors differ after round trip: %+v", gotErrs)
	}
}

func TestGetSnapshot_UnknownPath(t *testing.T) {
	database := testDB(t)

	_, _, hit, err := database.GetSnapshot("/data/never-saved.json", time.Now())
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if hit {
		t.Error("expected miss for unknown path")
	}
}

func TestGetSnapshot_StaleMtime(t *testing.T) {
	database := testDB(t)

	saved := time.Now()
	if err := database.SaveSnapshot("/data/costs-2026-8.json", saved, nil, nil); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	// A changed mtime invalidates the snapshot
	_, _, hit, err := database.GetSnapshot("/data/costs-2026-8.json", saved.Add(time.Second))
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if hit {
		t.Error("expected miss for stale mtime")
	}
}

func TestSaveSnapshot_Replaces(t *testing.T) {
	database := testDB(t)

	path := "/data/costs-2026-8.json"
	first := time.Now()
	if err := database.SaveSnapshot(path, first, []models.Record{
		{User: "old@x.com", Model: "gpt-4", TotalCost: 1, TotalTokens: 1},
	}, nil); err != nil {
		t.Fatalf("first SaveSnapshot failed: %v", err)
	}

	second := first.Add(time.Minute)
	if err := database.SaveSnapshot(path, second, []models.Record{
		{User: "new@x.com", Model: "claude-3", TotalCost: 2, TotalTokens: 2},
	}, nil); err != nil {
		t.Fatalf("second SaveSnapshot failed: %v", err)
	}

	records, _, hit, err := database.GetSnapshot(path, second)
	if err != nil || !hit {
		t.Fatalf("GetSnapshot after replace: hit=%v err=%v", hit, err)
	}
	if len(records) != 1 || records[0].User != "new@x.com" {
		t.Errorf("old snapshot rows survived the replace: %+v", records)
	}
}

func TestSaveSnapshot_EmptyRecords(t *testing.T) {
	database := testDB(t)

	mtime := time.Now()
	if err := database.SaveSnapshot("/data/costs-2026-2.json", mtime, nil, nil); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	records, recordErrs, hit, err := database.GetSnapshot("/data/costs-2026-2.json", mtime)
	if err != nil || !hit {
		t.Fatalf("GetSnapshot: hit=%v err=%v", hit, err)
	}
	if len(records) != 0 || len(recordErrs) != 0 {
		t.Errorf("expected empty snapshot, got %d records and %d errors", len(records), len(recordErrs))
	}
}
