package app

import (
	"testing"
	"time"

	"github.com/bgeneto/costwatch/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.GetMonth() != 0 {
		t.Errorf("fresh state should have no month, got %d", s.GetMonth())
	}
	if s.GetData() != nil {
		t.Error("fresh state should have no data")
	}
}

func TestState_Loading(t *testing.T) {
	s := NewState()

	s.SetLoading(true)
	if !s.IsLoading() {
		t.Error("expected loading state")
	}

	s.SetLoading(false)
	if s.IsLoading() {
		t.Error("expected loading cleared")
	}
}

func TestState_SetData(t *testing.T) {
	s := NewState()

	data := &models.MonthData{Year: 2026, Month: 8}
	s.SetData(data)

	if s.GetData() != data {
		t.Error("GetData should return what was set")
	}
	if s.GetMonth() != 8 {
		t.Errorf("SetData should adopt the data's month, got %d", s.GetMonth())
	}
	if s.GetAbsentPath() != "" {
		t.Error("SetData should clear the absent path")
	}
	if s.TimeSinceUpdate() > time.Minute {
		t.Error("LastUpdated not refreshed")
	}
}

func TestState_SetFileAbsent(t *testing.T) {
	s := NewState()
	s.SetData(&models.MonthData{Year: 2026, Month: 8})

	s.SetFileAbsent(9, "/data/costs-2026-9.json")

	if s.GetMonth() != 9 {
		t.Errorf("month = %d, want 9", s.GetMonth())
	}
	if s.GetData() != nil {
		t.Error("data should be dropped when the file is absent")
	}
	if s.GetAbsentPath() != "/data/costs-2026-9.json" {
		t.Errorf("absent path = %q", s.GetAbsentPath())
	}
}

func TestState_ClearSelection(t *testing.T) {
	s := NewState()
	s.SetData(&models.MonthData{Year: 2026, Month: 8})

	s.ClearSelection()

	if s.GetMonth() != 0 || s.GetData() != nil || s.GetAbsentPath() != "" {
		t.Error("ClearSelection did not reset the state")
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationSuccess, "done", time.Minute)
	if id == "" {
		t.Fatal("AddNotification returned empty ID")
	}

	notifications := s.GetNotifications()
	if len(notifications) != 1 || notifications[0].Message != "done" {
		t.Fatalf("unexpected notifications: %+v", notifications)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("notification not removed")
	}
}

func TestState_NotificationExpiry(t *testing.T) {
	s := NewState()

	s.AddNotification(NotificationInfo, "fleeting", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification still visible")
	}

	s.ClearExpiredNotifications()
	s.AddNotification(NotificationInfo, "sticky", 0)
	if len(s.GetNotifications()) != 1 {
		t.Error("zero-duration notification should never expire")
	}
}

func TestState_NotificationCap(t *testing.T) {
	s := NewState()

	for i := 0; i < 15; i++ {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}

	if got := len(s.GetNotifications()); got > 10 {
		t.Errorf("notification list should cap at 10, got %d", got)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifications := s.GetNotifications()
	if len(notifications) != 1 {
		t.Fatalf("expected a single loading notification, got %d", len(notifications))
	}
	if notifications[0].Message != "Still loading..." {
		t.Errorf("message not updated in place: %q", notifications[0].Message)
	}
	if notifications[0].ID != LoadingNotificationID {
		t.Errorf("wrong loading notification ID: %q", notifications[0].ID)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification not cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	cases := map[NotificationType]string{
		NotificationSuccess: "success",
		NotificationError:   "error",
		NotificationWarning: "warning",
		NotificationInfo:    "info",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
