package issues

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/r-maier/finetune-prep-tui/internal/ui/styles"
)

// View renders the issues tab.
func (m *Model) View() string {
	issues := m.issues()

	var sections []string
	sections = append(sections, m.renderHeader(len(issues)))

	if len(issues) == 0 {
		sections = append(sections, m.renderClean())
	} else {
		sections = append(sections, m.renderBreakdown())
		sections = append(sections, m.renderList())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader(count int) string {
	title := styles.TitleStyle.Render("Validation Issues")

	var badge string
	if count == 0 {
		badge = styles.SuccessTextStyle.Render("all checks passed")
	} else {
		badge = styles.ErrorTextStyle.Render(fmt.Sprintf("%d issue(s)", count))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, badge, "")
}

func (m *Model) renderClean() string {
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.SuccessTextStyle.Render("No format errors found."),
			"",
			styles.HelpStyle.Render("Every example has a valid messages list, recognized"),
			styles.HelpStyle.Render("roles and keys, and at least one assistant message."),
		),
	)
}

// renderBreakdown shows issue counts grouped by field.
func (m *Model) renderBreakdown() string {
	counts := make(map[string]int)
	for _, issue := range m.issues() {
		counts[issue.Field]++
	}

	fields := make([]string, 0, len(counts))
	for f := range counts {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("By Field"), "")
	for _, f := range fields {
		label := lipgloss.NewStyle().Width(24).Foreground(styles.TextMuted).Render(f)
		rows = append(rows, fmt.Sprintf("  %s %d", label, counts[f]))
	}
	rows = append(rows, "")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderList() string {
	issues := m.issues()
	visible := m.visibleRows()

	end := min(m.offset+visible, len(issues))

	var rows []string
	for i := m.offset; i < end; i++ {
		line := issues[i].String()
		if len(line) > m.cardWidth()-6 {
			line = line[:m.cardWidth()-9] + "..."
		}

		if i == m.selected {
			rows = append(rows, styles.SelectedListItemStyle.Render(line))
		} else {
			rows = append(rows, styles.ListItemStyle.Render(line))
		}
	}

	if len(issues) > visible {
		rows = append(rows, "", styles.HelpStyle.Render(
			fmt.Sprintf("  %d-%d of %d", m.offset+1, end, len(issues))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}
