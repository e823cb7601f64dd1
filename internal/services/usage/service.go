// Package usage loads monthly costs files and keeps the active month's
// data fresh by watching the data directory for external changes.
package usage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bgeneto/costwatch/internal/aggregate"
	"github.com/bgeneto/costwatch/internal/db"
	"github.com/bgeneto/costwatch/internal/loader"
	"github.com/bgeneto/costwatch/internal/logger"
	"github.com/bgeneto/costwatch/internal/models"
)

// EventType identifies the kind of a service event.
type EventType int

const (
	// EventMonthLoaded is emitted after a watcher-triggered reload succeeds.
	EventMonthLoaded EventType = iota
	// EventError is emitted when a watcher-triggered reload fails.
	EventError
)

// Event is sent on the service's event channel.
type Event struct {
	Type  EventType
	Data  *models.MonthData
	Error error
}

// FileAbsentError reports that no costs file exists for the selected
// month. It is informational rather than a hard failure: the caller shows
// a message and skips aggregation.
type FileAbsentError struct {
	Path  string
	Month int
}

// Error implements the error interface.
func (e *FileAbsentError) Error() string {
	return fmt.Sprintf("file %s does not exist", e.Path)
}

// Service loads and caches monthly usage data.
type Service struct {
	mu      sync.RWMutex
	dataDir string
	year    int
	cache   *db.DB // nil when the snapshot cache is unavailable

	month   int // 0 = no selection
	current *models.MonthData

	watcher       *fsnotify.Watcher
	debounceTimer *time.Timer
	events        chan Event
	stopChan      chan struct{}
	closeOnce     sync.Once
}

// New creates a usage service. When watch is true the data directory is
// watched so that external changes to the active month's file trigger a
// reload; watch failures only disable the watcher.
func New(dataDir string, year int, cache *db.DB, watch bool) *Service {
	s := &Service{
		dataDir:  dataDir,
		year:     year,
		cache:    cache,
		events:   make(chan Event, 16),
		stopChan: make(chan struct{}),
	}

	if watch {
		if err := s.startWatcher(); err != nil {
			logger.Warn("data directory watch disabled", "dir", dataDir, "error", err)
		}
	}

	return s
}

// Events returns the channel of watcher-driven events.
func (s *Service) Events() <-chan Event {
	return s.events
}

// Year returns the calendar year the service resolves files for.
func (s *Service) Year() int {
	return s.year
}

// Month returns the currently selected month, 0 when none.
func (s *Service) Month() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.month
}

// Current returns the most recently loaded month data, nil when none.
func (s *Service) Current() *models.MonthData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PathFor resolves the costs file path for a month.
func (s *Service) PathFor(month int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("costs-%d-%d.json", s.year, month))
}

// Clear drops the current selection.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.month = 0
	s.current = nil
}

// LoadMonth loads, normalizes and summarizes the costs file for month and
// makes it the active selection. A missing file returns *FileAbsentError;
// a malformed file returns the loader's typed error. Every load recomputes
// from scratch unless the snapshot cache holds an entry with a matching
// mtime.
func (s *Service) LoadMonth(month int) (*models.MonthData, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range (1-12)", month)
	}

	path := s.PathFor(month)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Remember the selection so the watcher picks the file up if it
		// appears later.
		s.mu.Lock()
		s.month = month
		s.current = nil
		s.mu.Unlock()
		return nil, &FileAbsentError{Path: path, Month: month}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := s.load(path, month, info.ModTime())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.month = month
	s.current = data
	s.mu.Unlock()

	return data, nil
}

func (s *Service) load(path string, month int, mtime time.Time) (*models.MonthData, error) {
	if records, recordErrs, hit := s.cachedSnapshot(path, mtime); hit {
		return s.buildMonthData(path, month, records, recordErrs, true), nil
	}

	doc, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	records, recordErrs := aggregate.Normalize(doc)

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(path, mtime, records, recordErrs); err != nil {
			logger.Warn("failed to save snapshot", "path", path, "error", err)
		}
	}

	return s.buildMonthData(path, month, records, recordErrs, false), nil
}

func (s *Service) cachedSnapshot(path string, mtime time.Time) ([]models.Record, []models.RecordError, bool) {
	if s.cache == nil {
		return nil, nil, false
	}
	records, recordErrs, hit, err := s.cache.GetSnapshot(path, mtime)
	if err != nil {
		logger.Warn("snapshot lookup failed", "path", path, "error", err)
		return nil, nil, false
	}
	return records, recordErrs, hit
}

func (s *Service) buildMonthData(path string, month int, records []models.Record, recordErrs []models.RecordError, fromCache bool) *models.MonthData {
	return &models.MonthData{
		Year:      s.year,
		Month:     month,
		Path:      path,
		Records:   records,
		Errors:    recordErrs,
		Summary:   aggregate.Summarize(records),
		LoadedAt:  time.Now(),
		FromCache: fromCache,
	}
}

// startWatcher starts the file system watcher on the data directory.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(s.dataDir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	s.watcher = watcher
	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about the active month's file
			s.mu.RLock()
			month := s.month
			s.mu.RUnlock()
			if month == 0 || filepath.Base(event.Name) != filepath.Base(s.PathFor(month)) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce rapid changes
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, func() {
					s.handleFileChange(month)
				})
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the active month after an external change.
func (s *Service) handleFileChange(month int) {
	data, err := s.LoadMonth(month)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	s.sendEvent(Event{Type: EventMonthLoaded, Data: data})
}

func (s *Service) sendEvent(event Event) {
	select {
	case s.events <- event:
	default:
		// Channel full, drop
	}
}

// Close stops the watcher and releases resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
