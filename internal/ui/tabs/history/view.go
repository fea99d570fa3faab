package history

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/r-maier/finetune-prep-tui/internal/models"
	"github.com/r-maier/finetune-prep-tui/internal/ui/components"
	"github.com/r-maier/finetune-prep-tui/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.loading {
		return m.renderLoading()
	}
	if m.errorMsg != "" {
		return m.renderError()
	}
	if len(m.runs) == 0 {
		return m.renderEmpty()
	}

	var sections []string
	sections = append(sections,
		m.renderHeader(),
		m.renderTrendChart(),
		m.renderRunTable(),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderLoading() string {
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(styles.HelpStyle.Render("Loading run history..."))
}

func (m *Model) renderError() string {
	content := fmt.Sprintf("%s %s",
		styles.ErrorTextStyle.Render("Error:"),
		m.errorMsg,
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Run History"),
		"",
		styles.HelpStyle.Render("No analysis runs recorded yet."),
		styles.HelpStyle.Render("Each dataset analysis is stored here as it completes."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("Run History")

	limitStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	limitIndicator := limitStyle.Render(fmt.Sprintf("[t] last %d runs", m.limit()))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", limitIndicator)

	var subtitle string
	if len(m.runs) > 0 {
		oldest := m.runs[len(m.runs)-1].Timestamp
		newest := m.runs[0].Timestamp
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("Runs: %s → %s (%d recorded)",
			oldest.Format("Jan 2 15:04"),
			newest.Format("Jan 2 15:04"),
			len(m.runs),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderTrendChart() string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Billed Tokens per Run"), "")

	if len(m.trend) < 2 {
		rows = append(rows, styles.HelpStyle.Render("  Not enough runs for a trend yet"))
	} else {
		chartWidth := max(cardWidth-12, 30)
		chartHeight := 8

		chart := components.RenderLineChart(m.trend, chartWidth, chartHeight,
			fmt.Sprintf("Last %d runs, oldest to newest", len(m.trend)))

		for line := range strings.SplitSeq(chart, "\n") {
			rows = append(rows, "  "+line)
		}
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRunTable() string {
	cardWidth := max(m.width-6, 40)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Recent Runs"), "")

	header := fmt.Sprintf("  %-16s %9s %7s %11s %7s %12s",
		"When", "Examples", "Issues", "Tokens", "Epochs", "Billed")
	rows = append(rows, styles.TableHeaderStyle.Render(header))

	for _, run := range m.runs {
		rows = append(rows, "  "+m.renderRunRow(run))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(cardWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRunRow(run models.AnalysisRun) string {
	issueText := fmt.Sprintf("%7d", run.NumIssues)
	if run.NumIssues > 0 {
		issueText = styles.ErrorTextStyle.Render(issueText)
	} else {
		issueText = styles.SuccessTextStyle.Render(issueText)
	}

	return fmt.Sprintf("%-16s %9d %s %11d %7d %12d",
		run.Timestamp.Format("Jan 2 15:04:05"),
		run.NumExamples,
		issueText,
		run.TotalTokens,
		run.Epochs,
		run.BilledTokens,
	)
}
