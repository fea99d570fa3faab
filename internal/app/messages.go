package app

import (
	"time"

	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// AnalysisLoadedMsg carries a completed dataset analysis.
type AnalysisLoadedMsg struct {
	Analysis *services.Analysis
	Initial  bool
}

// HistoryLoadedMsg carries recent analysis runs and the billed token trend.
type HistoryLoadedMsg struct {
	Runs  []models.AnalysisRun
	Trend []float64
}

// RefreshMsg requests a dataset reload and re-analysis.
type RefreshMsg struct{}

// RefreshStartedMsg signals that a refresh is in flight.
type RefreshStartedMsg struct{}

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

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// QuitMsg requests the application to quit.
type QuitMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
