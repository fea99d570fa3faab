package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/r-maier/finetune-prep-tui/internal/config"
)

const sampleJSONL = `{"messages":[{"role":"system","content":"You are helpful."},{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello!"}]}
{"messages":[{"role":"user","content":"Bye"},{"role":"assistant","content":"Goodbye!"}]}
`

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	tmpDir := t.TempDir()
	datasetPath := filepath.Join(tmpDir, "train.jsonl")
	if err := os.WriteFile(datasetPath, []byte(sampleJSONL), 0o600); err != nil {
		t.Fatalf("failed to write dataset file: %v", err)
	}

	cfg := &config.Config{
		DatasetPath:   datasetPath,
		DatabasePath:  filepath.Join(tmpDir, "test.db"),
		WatchDebounce: 20 * time.Millisecond,
		Limits:        config.DefaultLimits(),
	}

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	t.Cleanup(func() {
		_ = mgr.Close()
	})

	return mgr
}

// waitForAnalysis polls until the first analysis pass completes.
func waitForAnalysis(t *testing.T, mgr *Manager) *Analysis {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if analysis := mgr.LatestAnalysis(); analysis != nil {
			return analysis
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timeout waiting for initial analysis")
	return nil
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t)

	if mgr.Dataset() == nil {
		t.Error("Dataset service should be initialized")
	}
	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if mgr.Config() == nil {
		t.Error("Config should be available")
	}
}

func TestManager_InitialAnalysis(t *testing.T) {
	mgr := newTestManager(t)

	analysis := waitForAnalysis(t, mgr)

	if analysis.Report == nil {
		t.Fatal("analysis should include a report")
	}
	if analysis.Report.NumExamples != 2 {
		t.Errorf("NumExamples = %d, want 2", analysis.Report.NumExamples)
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("valid dataset should produce no issues, got %v", analysis.Issues)
	}
	if analysis.Run.ID == 0 {
		t.Error("analysis run should be recorded in the database")
	}
}

func TestManager_RecordsRunHistory(t *testing.T) {
	mgr := newTestManager(t)

	waitForAnalysis(t, mgr)

	runs, err := mgr.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].NumExamples != 2 {
		t.Errorf("NumExamples = %d, want 2", runs[0].NumExamples)
	}

	trend, err := mgr.GetBilledTrend(10)
	if err != nil {
		t.Fatalf("GetBilledTrend() failed: %v", err)
	}
	if len(trend) != 1 {
		t.Errorf("got %d trend points, want 1", len(trend))
	}
}

func TestManager_Refresh(t *testing.T) {
	mgr := newTestManager(t)

	first := waitForAnalysis(t, mgr)

	if err := mgr.Refresh(); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		runs, err := mgr.GetRecentRuns(10)
		if err != nil {
			t.Fatalf("GetRecentRuns() failed: %v", err)
		}
		if len(runs) >= 2 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("refresh did not record a second run (first run ID %d)", first.Run.ID)
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("channel should be closed after Unsubscribe")
		}
	default:
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr := newTestManager(t)

	ch, _ := mgr.Subscribe()
	defer mgr.Unsubscribe(ch)

	event := ErrorEvent{Service: "test"}
	mgr.broadcast(event)

	timeout := time.After(time.Second)
	for {
		select {
		case e := <-ch:
			if errEvent, ok := e.(ErrorEvent); ok && errEvent.Service == "test" {
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for broadcast")
		}
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{}

	cmd := WaitForEvent(ch)
	msg := cmd()
	if msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}
}

func TestServiceEvent_Interface(t *testing.T) {
	var _ ServiceEvent = AnalysisEvent{}
	var _ ServiceEvent = ErrorEvent{}
}
