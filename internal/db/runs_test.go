package db

import (
	"testing"
	"time"

	"github.com/r-maier/finetune-prep-tui/internal/models"
)

func TestInsertRun(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	run := &models.AnalysisRun{
		DatasetPath:     "train.jsonl",
		NumExamples:     120,
		NumIssues:       3,
		TotalTokens:     45000,
		AssistantTokens: 9000,
		Truncated:       2,
		Epochs:          3,
		BilledTokens:    135000,
	}

	if err := db.InsertRun(run); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if run.ID == 0 {
		t.Error("InsertRun() should set ID")
	}
}

func TestInsertRun_WithTimestamp(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	ts := time.Now().Add(-2 * time.Hour)
	run := &models.AnalysisRun{
		DatasetPath: "train.jsonl",
		Timestamp:   ts,
	}

	if err := db.InsertRun(run); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if !run.Timestamp.Equal(ts) {
		t.Errorf("Timestamp changed, got %v, want %v", run.Timestamp, ts)
	}
}

func TestGetRecentRuns(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now()
	for i, examples := range []int{10, 20, 30} {
		run := &models.AnalysisRun{
			DatasetPath: "train.jsonl",
			NumExamples: examples,
			Timestamp:   now.Add(time.Duration(i-3) * time.Hour),
		}
		if err := db.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	runs, err := db.GetRecentRuns(2)
	if err != nil {
		t.Fatalf("GetRecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("GetRecentRuns() returned %d runs, want 2", len(runs))
	}
	// Newest first
	if runs[0].NumExamples != 30 || runs[1].NumExamples != 20 {
		t.Errorf("Runs out of order: %d, %d", runs[0].NumExamples, runs[1].NumExamples)
	}
}

func TestGetRecentRuns_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	runs, err := db.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("GetRecentRuns() = %v, want empty", runs)
	}
}

func TestGetBilledTrend(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now()
	billed := []int{1000, 2000, 1500}
	for i, b := range billed {
		run := &models.AnalysisRun{
			DatasetPath:  "train.jsonl",
			BilledTokens: b,
			Timestamp:    now.Add(time.Duration(i-3) * time.Hour),
		}
		if err := db.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}
	// A different dataset should not leak into the trend.
	other := &models.AnalysisRun{DatasetPath: "other.jsonl", BilledTokens: 99999, Timestamp: now}
	if err := db.InsertRun(other); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	trend, err := db.GetBilledTrend("train.jsonl", 10)
	if err != nil {
		t.Fatalf("GetBilledTrend() failed: %v", err)
	}
	want := []float64{1000, 2000, 1500}
	if len(trend) != len(want) {
		t.Fatalf("GetBilledTrend() returned %d points, want %d", len(trend), len(want))
	}
	for i := range want {
		if trend[i] != want[i] {
			t.Errorf("trend[%d] = %f, want %f", i, trend[i], want[i])
		}
	}
}

func TestPruneRuns(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	old := &models.AnalysisRun{
		DatasetPath: "train.jsonl",
		Timestamp:   time.Now().Add(-60 * 24 * time.Hour),
	}
	recent := &models.AnalysisRun{
		DatasetPath: "train.jsonl",
		Timestamp:   time.Now(),
	}
	for _, run := range []*models.AnalysisRun{old, recent} {
		if err := db.InsertRun(run); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	deleted, err := db.PruneRuns(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneRuns() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("PruneRuns() deleted %d rows, want 1", deleted)
	}

	runs, err := db.GetRecentRuns(10)
	if err != nil {
		t.Fatalf("GetRecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("%d runs remain, want 1", len(runs))
	}
}
