package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-maier/finetune-prep-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadAnalysisCmd returns a command that loads the latest analysis, if any.
func loadAnalysisCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		analysis := mgr.LatestAnalysis()
		if analysis == nil {
			return nil
		}
		return AnalysisLoadedMsg{Analysis: analysis, Initial: true}
	}
}

// loadHistoryCmd returns a command that loads recent runs and the billed trend.
func loadHistoryCmd(mgr *services.Manager, limit int) tea.Cmd {
	return func() tea.Msg {
		runs, err := mgr.GetRecentRuns(limit)
		if err != nil {
			return ErrorMsg{Error: err, Context: "history"}
		}
		trend, err := mgr.GetBilledTrend(limit)
		if err != nil {
			return ErrorMsg{Error: err, Context: "history"}
		}
		return HistoryLoadedMsg{Runs: runs, Trend: trend}
	}
}

// refreshCmd returns a command that forces a dataset reload.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		if err := mgr.Refresh(); err != nil {
			return ErrorMsg{Error: err, Context: "refresh"}
		}
		return RefreshStartedMsg{}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// WaitForServiceEvent is the public version for use in tab models.
func WaitForServiceEvent(ch <-chan services.ServiceEvent) tea.Cmd {
	return services.WaitForEvent(ch)
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationSuccess,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: QuickNotificationDuration,
		}
	}
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// Tick returns a tick command with the specified interval.
func (c *Commands) Tick(interval time.Duration) tea.Cmd {
	return tickCmd(interval)
}

// LoadAnalysis returns a command that loads the latest analysis.
func (c *Commands) LoadAnalysis() tea.Cmd {
	return loadAnalysisCmd(c.manager)
}

// LoadHistory returns a command that loads run history.
func (c *Commands) LoadHistory(limit int) tea.Cmd {
	return loadHistoryCmd(c.manager, limit)
}

// Refresh returns a command that forces a dataset reload.
func (c *Commands) Refresh() tea.Cmd {
	return refreshCmd(c.manager)
}

// SubscribeToServices returns a command that subscribes to service events.
func (c *Commands) SubscribeToServices() tea.Cmd {
	return subscribeToServicesCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}

// ClearNotification returns a command that removes a notification after a delay.
func (c *Commands) ClearNotification(id string, delay time.Duration) tea.Cmd {
	return clearNotificationCmd(id, delay)
}
