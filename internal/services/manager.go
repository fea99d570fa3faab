// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/r-maier/finetune-prep-tui/internal/config"
	"github.com/r-maier/finetune-prep-tui/internal/db"
	"github.com/r-maier/finetune-prep-tui/internal/logger"
	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services/dataset"
	"github.com/r-maier/finetune-prep-tui/internal/tokens"
	"github.com/r-maier/finetune-prep-tui/internal/validate"
)

// Analysis bundles the results of one full dataset pass.
type Analysis struct {
	DatasetPath string
	Report      *models.Report
	Issues      []models.Issue
	Run         models.AnalysisRun
}

type (
	// AnalysisEvent is emitted when a dataset analysis completes.
	AnalysisEvent struct {
		Analysis *Analysis
		Initial  bool
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

func (AnalysisEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()    {}

// Manager orchestrates the dataset service, validation, token accounting,
// and run history persistence.
type Manager struct {
	mu             sync.RWMutex
	dataset        *dataset.Service
	database       *db.DB
	accountant     *tokens.Accountant
	cfg            *config.Config
	latest         *Analysis
	previousIssues int
	seenAnalysis   bool
	eventChan      chan ServiceEvent
	stopChan       chan struct{}
	subscribers    []chan<- ServiceEvent
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}

	var err error
	m.dataset, err = dataset.New(cfg.DatasetPath, cfg.WatchDebounce)
	if err != nil {
		return nil, err
	}

	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		_ = m.dataset.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.accountant = tokens.New(nil, cfg.Limits)

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from the dataset service to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.dataset.Events():
			m.handleDatasetEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleDatasetEvent(event dataset.Event) {
	switch event.Type {
	case dataset.EventDatasetLoaded:
		m.runAnalysis(true)

	case dataset.EventDatasetChanged:
		m.runAnalysis(false)

	case dataset.EventError:
		m.broadcast(ErrorEvent{
			Service: "dataset",
			Error:   event.Error,
		})
	}
}

// runAnalysis validates and accounts the current dataset, records the run,
// and broadcasts the result.
func (m *Manager) runAnalysis(initial bool) {
	examples := m.dataset.Examples()

	issues := validate.Dataset(examples)

	report, err := m.accountant.Account(examples)
	if err != nil {
		m.broadcast(ErrorEvent{Service: "tokens", Error: err})
		return
	}

	run := models.AnalysisRun{
		DatasetPath:  m.dataset.Path(),
		NumExamples:  report.NumExamples,
		NumIssues:    len(issues),
		Truncated:    report.Truncated,
		Epochs:       report.Cost.Epochs,
		BilledTokens: report.Cost.BilledTokens,
	}
	for _, stats := range report.PerExample {
		run.TotalTokens += stats.Total
		run.AssistantTokens += stats.Assistant
	}

	if err := m.database.InsertRun(&run); err != nil {
		logger.Error("failed to record analysis run", "error", err)
	}

	analysis := &Analysis{
		DatasetPath: m.dataset.Path(),
		Report:      report,
		Issues:      issues,
		Run:         run,
	}

	m.mu.Lock()
	m.latest = analysis
	previous := m.previousIssues
	seen := m.seenAnalysis
	m.previousIssues = len(issues)
	m.seenAnalysis = true
	m.mu.Unlock()

	if !initial && seen {
		m.checkNotifications(previous, len(issues))
	}

	logger.Info("dataset analyzed",
		"examples", report.NumExamples,
		"issues", len(issues),
		"billed_tokens", run.BilledTokens)

	m.broadcast(AnalysisEvent{Analysis: analysis, Initial: initial})
}

// checkNotifications sends a desktop notification when a reload introduces
// new validation issues or clears all of them.
func (m *Manager) checkNotifications(oldIssues, newIssues int) {
	name := filepath.Base(m.cfg.DatasetPath)

	if newIssues > oldIssues {
		title := fmt.Sprintf("Dataset Issues: %s", name)
		body := fmt.Sprintf("%d validation issues found (%d new)", newIssues, newIssues-oldIssues)
		_ = beeep.Notify(title, body, "")
		return
	}

	if newIssues == 0 && oldIssues > 0 {
		title := fmt.Sprintf("Dataset Clean: %s", name)
		body := "All validation issues resolved."
		_ = beeep.Notify(title, body, "")
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	// Send to subscribers
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
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
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

// LatestAnalysis returns the most recent analysis, or nil before the first
// pass completes.
func (m *Manager) LatestAnalysis() *Analysis {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Refresh forces a dataset reload and re-analysis.
func (m *Manager) Refresh() error {
	return m.dataset.Reload()
}

// GetRecentRuns returns the most recent analysis runs.
func (m *Manager) GetRecentRuns(limit int) ([]models.AnalysisRun, error) {
	return m.database.GetRecentRuns(limit)
}

// GetBilledTrend returns billed token totals for recent runs of the
// configured dataset, oldest first.
func (m *Manager) GetBilledTrend(limit int) ([]float64, error) {
	return m.database.GetBilledTrend(m.cfg.DatasetPath, limit)
}

// Dataset returns the dataset service.
func (m *Manager) Dataset() *dataset.Service {
	return m.dataset
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Config returns the manager's configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
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

	if err := m.dataset.Close(); err != nil {
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
