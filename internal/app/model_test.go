package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bgeneto/costwatch/internal/models"
)

func TestTabID_String(t *testing.T) {
	cases := map[TabID]string{
		TabDashboard: "Dashboard",
		TabTables:    "Tables",
		TabInfo:      "Info",
		TabID(42):    "Unknown",
	}
	for id, want := range cases {
		if got := id.String(); got != want {
			t.Errorf("TabID(%d).String() = %q, want %q", id, got, want)
		}
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil)
	if m == nil {
		t.Fatal("NewModel returned nil")
	}
	if m.GetActiveTab() != TabDashboard {
		t.Errorf("initial tab = %v, want dashboard", m.GetActiveTab())
	}
	if m.GetState() == nil {
		t.Error("model has no state")
	}
}

func TestModel_Init(t *testing.T) {
	m := NewModel(nil)
	if m.Init() == nil {
		t.Error("Init returned nil command")
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := NewModel(nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(*Model)

	if model.width != 120 || model.height != 40 {
		t.Errorf("size not applied: %dx%d", model.width, model.height)
	}
	if !model.ready {
		t.Error("model should be ready after the first resize")
	}
}

func TestModel_TabSwitching(t *testing.T) {
	m := NewModel(nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if m.GetActiveTab() != TabTables {
		t.Errorf("expected tables tab, got %v", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.GetActiveTab() != TabInfo {
		t.Errorf("tab key should advance to info, got %v", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.GetActiveTab() != TabDashboard {
		t.Errorf("tab cycling should wrap to dashboard, got %v", m.GetActiveTab())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.GetActiveTab() != TabInfo {
		t.Errorf("shift+tab should wrap backwards to info, got %v", m.GetActiveTab())
	}
}

func TestModel_HelpToggle(t *testing.T) {
	m := NewModel(nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.showHelp {
		t.Error("? should open help")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Error("esc should close help")
	}
}

func TestModel_MonthLoaded(t *testing.T) {
	m := NewModel(nil)

	data := &models.MonthData{
		Year:  2026,
		Month: 8,
		Path:  "/data/costs-2026-8.json",
		Records: []models.Record{
			{User: "a@x.com", Model: "gpt-4", TotalCost: 1, TotalTokens: 10},
		},
	}

	m.Update(MonthLoadedMsg{Data: data})

	if m.GetState().GetData() != data {
		t.Error("month data not stored in state")
	}
	if m.GetState().GetMonth() != 8 {
		t.Errorf("month = %d, want 8", m.GetState().GetMonth())
	}
	if m.GetState().IsLoading() {
		t.Error("loading flag should clear on load")
	}
}

func TestModel_MonthLoaded_NoData(t *testing.T) {
	m := NewModel(nil)

	_, cmd := m.Update(MonthLoadedMsg{Data: &models.MonthData{Year: 2026, Month: 2}})
	if cmd == nil {
		t.Fatal("expected a notification command for an empty month")
	}
}

func TestModel_FileAbsent(t *testing.T) {
	m := NewModel(nil)

	m.Update(FileAbsentMsg{Month: 9, Path: "/data/costs-2026-9.json"})

	if m.GetState().GetMonth() != 9 {
		t.Errorf("month = %d, want 9", m.GetState().GetMonth())
	}
	if m.GetState().GetAbsentPath() != "/data/costs-2026-9.json" {
		t.Errorf("absent path = %q", m.GetState().GetAbsentPath())
	}
}

func TestModel_Notifications(t *testing.T) {
	m := NewModel(nil)

	_, cmd := m.Update(AddNotificationMsg{
		Type:     NotificationSuccess,
		Message:  "saved",
		Duration: DefaultNotificationDuration,
	})
	if cmd == nil {
		t.Error("timed notification should schedule its removal")
	}

	notifications := m.GetState().GetNotifications()
	if len(notifications) != 1 || notifications[0].Message != "saved" {
		t.Fatalf("unexpected notifications: %+v", notifications)
	}

	m.Update(RemoveNotificationMsg{ID: notifications[0].ID})
	if len(m.GetState().GetNotifications()) != 0 {
		t.Error("notification not removed")
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(nil)

	// Before the first resize the view shows a loading line
	if m.View() == "" {
		t.Error("View returned empty string")
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	if !strings.Contains(view, "Dashboard") {
		t.Error("navbar should name the dashboard tab")
	}
	if !strings.Contains(view, "no month") {
		t.Error("navbar should show the empty month badge")
	}
}

func TestModel_ViewHelpOverlay(t *testing.T) {
	m := NewModel(nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("help overlay not rendered")
	}
}

func TestDefaultKeyMap(t *testing.T) {
	k := DefaultKeyMap()

	if len(k.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	if len(k.FullHelp()) == 0 {
		t.Error("FullHelp is empty")
	}
}
