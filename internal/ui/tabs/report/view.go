package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/services"
	"github.com/r-maier/finetune-prep-tui/internal/ui/components"
	"github.com/r-maier/finetune-prep-tui/internal/ui/styles"
)

// View renders the report tab.
func (m *Model) View() string {
	analysis := m.state.GetAnalysis()
	if analysis == nil {
		return m.renderEmpty()
	}

	var sections []string
	sections = append(sections,
		m.renderHeader(analysis.DatasetPath),
		m.renderSummaryCard(analysis),
		m.renderDistributionCard("Total Tokens", analysis.Report.Total, analysis.Report.TotalValues()),
		m.renderDistributionCard("Assistant Tokens", analysis.Report.Assistant, analysis.Report.AssistantValues()),
		m.renderCostCard(analysis.Report),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Token Report"),
		"",
		styles.HelpStyle.Render("No analysis available yet."),
		styles.HelpStyle.Render("The report appears after the dataset is loaded."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(datasetPath string) string {
	if len(datasetPath) > 60 {
		datasetPath = "..." + datasetPath[len(datasetPath)-57:]
	}

	title := styles.TitleStyle.Render("Token Report")
	subtitle := styles.HelpStyle.Render(datasetPath)

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderSummaryCard(analysis *services.Analysis) string {
	report := analysis.Report

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Dataset Summary"), "")

	rows = append(rows, m.renderRow("Examples", fmt.Sprintf("%d", report.NumExamples)))

	issueText := fmt.Sprintf("%d", len(analysis.Issues))
	if len(analysis.Issues) > 0 {
		issueText = styles.ErrorTextStyle.Render(issueText)
	} else {
		issueText = styles.SuccessTextStyle.Render(issueText)
	}
	rows = append(rows, m.renderRow("Validation issues", issueText))

	rows = append(rows, m.renderRow("Missing system msg", fmt.Sprintf("%d", report.MissingSystem)))
	rows = append(rows, m.renderRow("Missing user msg", fmt.Sprintf("%d", report.MissingUser)))

	truncText := fmt.Sprintf("%d", report.Truncated)
	if report.Truncated > 0 {
		truncText = styles.WarningTextStyle.Render(truncText)
	}
	rows = append(rows, m.renderRow("Over context limit", truncText))

	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func (m *Model) renderDistributionCard(title string, dist models.Distribution, values []int) string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render(title), "")

	if dist.Count == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No examples"))
	} else {
		rows = append(rows, fmt.Sprintf("  min %d / mean %.1f / max %d",
			dist.Min, dist.Mean, dist.Max))
		rows = append(rows, fmt.Sprintf("  p10 %.0f  median %.0f  p90 %.0f",
			dist.Quantiles[1], dist.Quantiles[2], dist.Quantiles[3]))
		rows = append(rows, "")

		hist := components.RenderHistogram(values, 6, m.cardWidth()-8)
		for _, line := range strings.Split(hist, "\n") {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderCostCard(report *models.Report) string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Training Cost Estimate"), "")

	cost := report.Cost
	rows = append(rows, m.renderRow("Epochs", fmt.Sprintf("%d", cost.Epochs)))
	rows = append(rows, m.renderRow("Billable tokens/epoch", fmt.Sprintf("%d", cost.BillableTokens)))
	rows = append(rows, m.renderRow("Billed tokens total", fmt.Sprintf("%d", cost.BilledTokens)))

	if report.Truncated > 0 {
		rows = append(rows, "")
		rows = append(rows, styles.WarningTextStyle.Render(fmt.Sprintf(
			"  %d example(s) exceed %d tokens and will be truncated during training",
			report.Truncated, m.limits.MaxContextLength)))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(24).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return "  " + labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
