package report

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/r-maier/finetune-prep-tui/internal/app"
	"github.com/r-maier/finetune-prep-tui/internal/config"
	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services"
)

func sampleReport() *models.Report {
	perExample := []models.TokenStats{
		{Total: 120, Assistant: 40},
		{Total: 250, Assistant: 90},
		{Total: 80, Assistant: 25},
	}

	report := &models.Report{
		NumExamples: len(perExample),
		PerExample:  perExample,
		Cost: models.CostEstimate{
			Epochs:         25,
			BillableTokens: 450,
			BilledTokens:   11250,
		},
	}
	report.Total = models.Describe(report.TotalValues())
	report.Assistant = models.Describe(report.AssistantValues())
	return report
}

func newTestModel(report *models.Report, issues []models.Issue) *Model {
	state := app.NewState()
	if report != nil {
		state.SetAnalysis(&services.Analysis{
			DatasetPath: "/data/train.jsonl",
			Report:      report,
			Issues:      issues,
		})
	}

	m := New(state, config.DefaultLimits())
	m.SetSize(100, 40)
	return m
}

func TestView_Empty(t *testing.T) {
	m := newTestModel(nil, nil)

	if !strings.Contains(m.View(), "No analysis available yet") {
		t.Error("view should show the placeholder before an analysis exists")
	}
}

func TestView_Summary(t *testing.T) {
	m := newTestModel(sampleReport(), nil)
	view := m.View()

	if !strings.Contains(view, "Token Report") {
		t.Error("view should contain the tab title")
	}
	if !strings.Contains(view, "Dataset Summary") {
		t.Error("view should contain the summary card")
	}
	if !strings.Contains(view, "train.jsonl") {
		t.Error("view should show the dataset path")
	}
}

func TestView_Distributions(t *testing.T) {
	m := newTestModel(sampleReport(), nil)
	view := m.View()

	if !strings.Contains(view, "Total Tokens") {
		t.Error("view should contain the total token card")
	}
	if !strings.Contains(view, "Assistant Tokens") {
		t.Error("view should contain the assistant token card")
	}
	if !strings.Contains(view, "min 80") {
		t.Errorf("view should show the minimum total count, got:\n%s", view)
	}
}

func TestView_CostCard(t *testing.T) {
	m := newTestModel(sampleReport(), nil)
	view := m.View()

	if !strings.Contains(view, "Training Cost Estimate") {
		t.Error("view should contain the cost card")
	}
	if !strings.Contains(view, "11250") {
		t.Error("view should show the billed token total")
	}
}

func TestView_TruncationWarning(t *testing.T) {
	report := sampleReport()
	report.Truncated = 2

	m := newTestModel(report, nil)
	view := m.View()

	if !strings.Contains(view, "truncated during training") {
		t.Error("view should warn about truncated examples")
	}
}

func TestUpdate_RefreshKey(t *testing.T) {
	m := newTestModel(sampleReport(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("refresh key should return a command")
	}

	if _, ok := cmd().(app.RefreshMsg); !ok {
		t.Error("refresh key should emit RefreshMsg")
	}
}
