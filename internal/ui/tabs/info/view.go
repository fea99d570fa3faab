package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/r-maier/finetune-prep-tui/internal/ui/styles"
	"github.com/r-maier/finetune-prep-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderLimitsCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 50 {
		w = 50
	}
	if w > 80 {
		w = 80
	}
	return w
}

// renderConfigCard renders the configured paths and watch settings.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, "")

	if m.config != nil {
		rows = append(rows, m.renderRow("Dataset", m.config.DatasetPath))
		rows = append(rows, m.renderRow("Database", m.config.DatabasePath))
		rows = append(rows, m.renderRow("Watch Debounce", m.config.WatchDebounce.String()))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderLimitsCard renders the token accounting constants.
func (m *Model) renderLimitsCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Accounting Limits"))
	rows = append(rows, "")

	if m.config != nil {
		limits := m.config.Limits
		rows = append(rows, m.renderRow("Max Context", fmt.Sprintf("%d tokens", limits.MaxContextLength)))
		rows = append(rows, m.renderRow("Target Epochs", fmt.Sprintf("%d", limits.TargetEpochs)))
		rows = append(rows, m.renderRow("Example Range", fmt.Sprintf("%d - %d",
			limits.MinTargetExamples, limits.MaxTargetExamples)))
		rows = append(rows, m.renderRow("Epoch Range", fmt.Sprintf("%d - %d",
			limits.MinDefaultEpochs, limits.MaxDefaultEpochs)))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	}

	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About Finetune Prep TUI"))
	rows = append(rows, "")

	rows = append(rows, m.renderRow("Version", version.Short()))
	rows = append(rows, m.renderRow("Go Version", runtime.Version()))
	rows = append(rows, m.renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))
	rows = append(rows, "")

	if analysis := m.state.GetAnalysis(); analysis != nil {
		rows = append(rows, fmt.Sprintf("Examples loaded: %s",
			styles.InfoTextStyle.Render(fmt.Sprintf("%d", analysis.Report.NumExamples))))
	} else {
		rows = append(rows, styles.HelpStyle.Render("No dataset analyzed yet"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
