// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/bgeneto/costwatch/internal/config"
	"github.com/bgeneto/costwatch/internal/db"
	"github.com/bgeneto/costwatch/internal/logger"
	"github.com/bgeneto/costwatch/internal/models"
	"github.com/bgeneto/costwatch/internal/services/usage"
)

type (
	// MonthLoadedEvent is emitted when month data is (re)loaded outside a
	// direct UI request, e.g. after a file change on disk.
	MonthLoadedEvent struct {
		Data *models.MonthData
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (MonthLoadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()       {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	usage       *usage.Service
	database    *db.DB
	subscribers []chan<- ServiceEvent
	stopChan    chan struct{}

	alertedMonths map[int]bool
}

// NewManager creates a new service manager. A broken snapshot cache only
// disables caching; it never prevents startup.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:           cfg,
		stopChan:      make(chan struct{}),
		alertedMonths: make(map[int]bool),
	}

	database, err := db.New(cfg.CacheDBPath)
	if err != nil {
		logger.Warn("snapshot cache disabled", "path", cfg.CacheDBPath, "error", err)
		database = nil
	}
	m.database = database

	m.usage = usage.New(cfg.DataDir, cfg.Year, database, cfg.WatchEnabled)

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.usage.Events():
			m.handleUsageEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleUsageEvent(event usage.Event) {
	switch event.Type {
	case usage.EventMonthLoaded:
		m.checkCostAlert(event.Data)
		m.broadcast(MonthLoadedEvent{Data: event.Data})

	case usage.EventError:
		m.broadcast(ErrorEvent{
			Service: "usage",
			Error:   event.Error,
		})
	}
}

// LoadMonth loads the given month and makes it the active selection.
func (m *Manager) LoadMonth(month int) (*models.MonthData, error) {
	data, err := m.usage.LoadMonth(month)
	if err != nil {
		return nil, err
	}
	m.checkCostAlert(data)
	return data, nil
}

// ClearSelection drops the active month selection.
func (m *Manager) ClearSelection() {
	m.usage.Clear()
}

// Current returns the most recently loaded month data, nil when none.
func (m *Manager) Current() *models.MonthData {
	return m.usage.Current()
}

// Month returns the currently selected month, 0 when none.
func (m *Manager) Month() int {
	return m.usage.Month()
}

// Year returns the calendar year the manager resolves files for.
func (m *Manager) Year() int {
	return m.usage.Year()
}

// PathFor resolves the costs file path for a month.
func (m *Manager) PathFor(month int) string {
	return m.usage.PathFor(month)
}

// checkCostAlert fires a desktop notification the first time a month's
// grand-total cost crosses the configured threshold.
func (m *Manager) checkCostAlert(data *models.MonthData) {
	threshold := m.cfg.CostAlertThreshold
	if threshold <= 0 || data == nil {
		return
	}

	cost, _ := data.Summary.GrandTotals()
	if cost < threshold {
		return
	}

	m.mu.Lock()
	alerted := m.alertedMonths[data.Month]
	m.alertedMonths[data.Month] = true
	m.mu.Unlock()
	if alerted {
		return
	}

	title := fmt.Sprintf("Cost alert: %d-%d", data.Year, data.Month)
	body := fmt.Sprintf("Monthly cost $%.2f exceeds the $%.2f threshold", cost, threshold)
	_ = beeep.Notify(title, body, "")
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
func (m *Manager) Subscribe() chan ServiceEvent {
	ch := make(chan ServiceEvent, 16)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Database returns the snapshot cache, nil when disabled.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.usage.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
