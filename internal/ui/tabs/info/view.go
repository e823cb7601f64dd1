package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgeneto/costwatch/internal/ui/styles"
	"github.com/bgeneto/costwatch/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderSelectionCard())
	sections = append(sections, m.renderConfigCard())
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
	subtitle := styles.HelpStyle.Render("Configuration and build details")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderSelectionCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Current Selection"))

	month := m.state.GetMonth()
	data := m.state.GetData()

	switch {
	case month == 0:
		rows = append(rows, styles.HelpStyle.Render("No month selected"))
	case m.state.GetAbsentPath() != "":
		rows = append(rows, fmt.Sprintf("Month: %d", month))
		rows = append(rows, styles.WarningTextStyle.Render(
			fmt.Sprintf("File %s does not exist.", m.state.GetAbsentPath())))
	case data != nil:
		rows = append(rows, fmt.Sprintf("Month: %d-%d", data.Year, data.Month))
		rows = append(rows, fmt.Sprintf("File: %s", data.Path))
		rows = append(rows, fmt.Sprintf("Records: %d    Dropped: %d",
			len(data.Records), len(data.Errors)))
	default:
		rows = append(rows, fmt.Sprintf("Month: %d (loading)", month))
	}

	return m.card(rows)
}

func (m *Model) renderConfigCard() string {
	cacheState := "disabled"
	if m.cacheEnabled {
		cacheState = "enabled"
	}

	watchState := "off"
	if m.cfg.WatchEnabled {
		watchState = "on"
	}

	threshold := "disabled"
	if m.cfg.CostAlertThreshold > 0 {
		threshold = fmt.Sprintf("$%.2f", m.cfg.CostAlertThreshold)
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuration"))
	rows = append(rows, fmt.Sprintf("Data directory:  %s", m.cfg.DataDir))
	rows = append(rows, fmt.Sprintf("Year:            %d", m.cfg.Year))
	rows = append(rows, fmt.Sprintf("Snapshot cache:  %s (%s)", cacheState, m.cfg.CacheDBPath))
	rows = append(rows, fmt.Sprintf("File watching:   %s", watchState))
	rows = append(rows, fmt.Sprintf("Cost alert:      %s", threshold))

	return m.card(rows)
}

func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("About"))
	rows = append(rows, fmt.Sprintf("Version:  %s", version.GetVersion()))
	rows = append(rows, fmt.Sprintf("Commit:   %s", version.GetCommit()))
	rows = append(rows, fmt.Sprintf("Built:    %s", version.GetDate()))
	rows = append(rows, fmt.Sprintf("Runtime:  %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Reads costs-<year>-<month>.json files and charts usage per model and user."))

	return m.card(rows)
}

func (m *Model) card(rows []string) string {
	return styles.CardStyle.Width(max(m.width-6, 40)).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
