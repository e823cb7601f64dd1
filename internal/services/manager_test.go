package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bgeneto/costwatch/internal/config"
	"github.com/bgeneto/costwatch/internal/services/usage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:     t.TempDir(),
		CacheDBPath: filepath.Join(t.TempDir(), "snapshots.db"),
		Year:        2026,
		// Alerts stay off so tests never touch the desktop notifier
		CostAlertThreshold: 0,
		WatchEnabled:       false,
	}
}

func newTestManager(t *testing.T, cfg *config.Config) *Manager {
	t.Helper()
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() {
		_ = m.Close()
	})
	return m
}

func writeMonth(t *testing.T, cfg *config.Config, month int, content string) string {
	t.Helper()
	path := filepath.Join(cfg.DataDir, fmt.Sprintf("costs-%d-%d.json", cfg.Year, month))
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestNewManager(t *testing.T) {
	cfg := testConfig(t)
	m := newTestManager(t, cfg)

	if m.Database() == nil {
		t.Error("expected snapshot cache to be available")
	}
	if m.Year() != 2026 {
		t.Errorf("Year() = %d, want 2026", m.Year())
	}
	if m.Month() != 0 {
		t.Errorf("fresh manager should have no selection, got %d", m.Month())
	}
}

func TestManager_LoadMonth(t *testing.T) {
	cfg := testConfig(t)
	writeMonth(t, cfg, 8, `{
		"a@x.com": [{"model": "gpt-4", "total_cost": 1.5, "input_tokens": 10, "output_tokens": 5}]
	}`)
	m := newTestManager(t, cfg)

	data, err := m.LoadMonth(8)
	if err != nil {
		t.Fatalf("LoadMonth failed: %v", err)
	}
	if len(data.Records) != 1 {
		t.Errorf("expected 1 record, got %d", len(data.Records))
	}
	if m.Month() != 8 {
		t.Errorf("selection not updated: %d", m.Month())
	}
	if m.Current() != data {
		t.Error("Current() should return the loaded data")
	}
}

func TestManager_LoadMonth_FileAbsent(t *testing.T) {
	cfg := testConfig(t)
	m := newTestManager(t, cfg)

	_, err := m.LoadMonth(4)
	var absent *usage.FileAbsentError
	if !errors.As(err, &absent) {
		t.Fatalf("expected *usage.FileAbsentError, got %v", err)
	}
	if absent.Path != m.PathFor(4) {
		t.Errorf("error path = %q, want %q", absent.Path, m.PathFor(4))
	}
}

func TestManager_ClearSelection(t *testing.T) {
	cfg := testConfig(t)
	writeMonth(t, cfg, 8, `{}`)
	m := newTestManager(t, cfg)

	if _, err := m.LoadMonth(8); err != nil {
		t.Fatalf("LoadMonth failed: %v", err)
	}

	m.ClearSelection()
	if m.Month() != 0 || m.Current() != nil {
		t.Error("ClearSelection did not reset the selection")
	}
}

func TestManager_SubscribeUnsubscribe(t *testing.T) {
	cfg := testConfig(t)
	m := newTestManager(t, cfg)

	ch := m.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe returned nil channel")
	}

	m.Unsubscribe(ch)

	// An unsubscribed channel is closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected closed channel after Unsubscribe")
		}
	case <-time.After(time.Second):
		t.Error("channel not closed after Unsubscribe")
	}
}

func TestManager_BrokenCacheDisablesCaching(t *testing.T) {
	cfg := testConfig(t)
	// A directory path cannot be opened as a database file
	cfg.CacheDBPath = t.TempDir()

	m := newTestManager(t, cfg)
	if m.Database() != nil {
		t.Error("expected nil cache for an unusable path")
	}

	// Loading still works without the cache
	writeMonth(t, cfg, 8, `{}`)
	if _, err := m.LoadMonth(8); err != nil {
		t.Errorf("LoadMonth without cache failed: %v", err)
	}
}

func TestManager_Close(t *testing.T) {
	cfg := testConfig(t)
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	ch := m.Subscribe()

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("subscriber channel should be closed on Close")
		}
	case <-time.After(time.Second):
		t.Error("subscriber channel not closed on Close")
	}
}
