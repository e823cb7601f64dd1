package app

import (
	"time"

	"github.com/bgeneto/costwatch/internal/models"
	"github.com/bgeneto/costwatch/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a month load has started.
type StartLoadingMsg struct{}

// MonthLoadedMsg contains the data of a successfully loaded month.
type MonthLoadedMsg struct {
	Data *models.MonthData
}

// FileAbsentMsg signals that the selected month has no costs file.
type FileAbsentMsg struct {
	Month int
	Path  string
}

// SelectionClearedMsg signals that the month selection was cleared.
type SelectionClearedMsg struct{}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}
