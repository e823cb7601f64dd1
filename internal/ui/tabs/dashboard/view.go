package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgeneto/costwatch/internal/models"
	"github.com/bgeneto/costwatch/internal/ui/components"
	"github.com/bgeneto/costwatch/internal/ui/styles"
)

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsLoading() {
		return m.renderLoading()
	}

	var sections []string

	sections = append(sections, m.renderTitle())

	data := m.state.GetData()

	switch {
	case m.state.GetMonth() == 0:
		sections = append(sections, m.renderMonthPrompt())
	case m.state.GetAbsentPath() != "":
		sections = append(sections, m.renderFileAbsent())
	case !data.HasData():
		sections = append(sections, m.renderNoData())
	default:
		sections = append(sections, m.renderSummaryCard(data))
		sections = append(sections, m.renderTokenChart(data))
		sections = append(sections, m.renderCostChart(data))
		sections = append(sections, m.renderUserChart(data))
		sections = append(sections, m.renderDistribution(data))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
}

// renderTitle renders the dashboard title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("API Cost Dashboard")
	subtitle := styles.HelpStyle.Render("Monthly token usage and cost per model and user")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderMonthPrompt() string {
	var rows []string

	rows = append(rows, styles.CardTitleStyle.Render("No month selected"))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("Pick a month to load its costs file."))
	rows = append(rows, "")
	rows = append(rows, styles.InfoTextStyle.Render("  n/p  cycle through months 1-12"))
	rows = append(rows, styles.InfoTextStyle.Render("  0    clear the selection"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderFileAbsent() string {
	var rows []string

	rows = append(rows, styles.CardTitleStyle.Render(fmt.Sprintf("Month %d", m.state.GetMonth())))
	rows = append(rows, "")
	rows = append(rows, styles.WarningTextStyle.Render(
		fmt.Sprintf("File %s does not exist.", m.state.GetAbsentPath())))
	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("The dashboard reloads automatically when the file appears."))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderNoData() string {
	var rows []string

	rows = append(rows, styles.CardTitleStyle.Render(fmt.Sprintf("Month %d", m.state.GetMonth())))
	rows = append(rows, "")
	rows = append(rows, styles.WarningTextStyle.Render("No valid data found to process."))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderSummaryCard(data *models.MonthData) string {
	cost, tokens := data.Summary.GrandTotals()

	users := 0
	for _, u := range data.Summary.UserTotals {
		if !u.IsTotalRow() {
			users++
		}
	}

	source := "disk"
	if data.FromCache {
		source = "cache"
	}

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render(
		fmt.Sprintf("Month %d-%d", data.Year, data.Month)))
	rows = append(rows, fmt.Sprintf("Records: %d    Users: %d    Models: %d",
		len(data.Records), users, data.DistinctModels()))
	rows = append(rows, fmt.Sprintf("Total cost: %s    Total tokens: %d",
		components.FormatCost(cost), tokens))

	if n := len(data.Errors); n > 0 {
		rows = append(rows, styles.WarningTextStyle.Render(
			fmt.Sprintf("Dropped records: %d", n)))
	}

	rows = append(rows, styles.HelpStyle.Render(
		fmt.Sprintf("Loaded from %s at %s", source, data.LoadedAt.Format("15:04:05"))))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m *Model) renderTokenChart(data *models.MonthData) string {
	values := make([]float64, 0, len(data.Summary.TopModelsByTokens))
	labels := make([]string, 0, len(data.Summary.TopModelsByTokens))
	for _, t := range data.Summary.TopModelsByTokens {
		values = append(values, t.Value)
		labels = append(labels, t.Model)
	}

	return m.renderChartCard("Top 10 Total Tokens Used by Model",
		values, labels, components.FormatCount)
}

func (m *Model) renderCostChart(data *models.MonthData) string {
	values := make([]float64, 0, len(data.Summary.TopModelsByCost))
	labels := make([]string, 0, len(data.Summary.TopModelsByCost))
	for _, t := range data.Summary.TopModelsByCost {
		values = append(values, t.Value)
		labels = append(labels, t.Model)
	}

	return m.renderChartCard("Top 10 Total Cost by Model",
		values, labels, components.FormatCost)
}

// renderUserChart charts per-user cost. The synthetic Total row stays out
// of the chart; it only appears in the tables tab.
func (m *Model) renderUserChart(data *models.MonthData) string {
	var values []float64
	var labels []string
	for _, u := range data.Summary.UserTotals {
		if u.IsTotalRow() {
			continue
		}
		values = append(values, u.TotalCost)
		labels = append(labels, u.User)
	}

	return m.renderChartCard("Total Cost by User",
		values, labels, components.FormatCost)
}

func (m *Model) renderChartCard(title string, values []float64, labels []string, format components.ValueFormatter) string {
	chart := components.RenderBarChart(values, labels, m.cardWidth()-6, format)

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render(title),
			chart,
		),
	)
}

// renderDistribution plots per-user costs sorted descending, a quick read
// on how skewed spending is across users.
func (m *Model) renderDistribution(data *models.MonthData) string {
	var series []float64
	for _, u := range data.Summary.UserTotals {
		if !u.IsTotalRow() {
			series = append(series, u.TotalCost)
		}
	}

	plot := components.RenderDistribution(series, m.cardWidth()-12, 8, "users, most to least expensive")

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			styles.CardTitleStyle.Render("Cost Distribution"),
			plot,
		),
	)
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}
