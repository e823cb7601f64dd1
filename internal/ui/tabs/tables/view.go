package tables

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/bgeneto/costwatch/internal/models"
	"github.com/bgeneto/costwatch/internal/ui/components"
	"github.com/bgeneto/costwatch/internal/ui/styles"
)

// View renders the tables tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())

	data := m.state.GetData()

	switch {
	case m.state.GetMonth() == 0:
		sections = append(sections, styles.HelpStyle.Render("No month selected."))
	case m.state.GetAbsentPath() != "":
		sections = append(sections, styles.WarningTextStyle.Render(
			fmt.Sprintf("File %s does not exist.", m.state.GetAbsentPath())))
	case data == nil:
		sections = append(sections, styles.HelpStyle.Render("Loading..."))
	default:
		for s := sectionID(0); s < sectionCount; s++ {
			sections = append(sections, m.renderSection(s, data))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Data Tables")
	subtitle := styles.HelpStyle.Render("Per-record and aggregated views of the loaded month")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderSection(s sectionID, data *models.MonthData) string {
	var lines []string

	lines = append(lines, m.renderSectionHeader(s, data))

	if m.expanded[s] {
		lines = append(lines, "")
		lines = append(lines, m.renderSectionBody(s, data))
	}

	return styles.CardStyle.Width(max(m.width-6, 40)).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}

func (m *Model) renderSectionHeader(s sectionID, data *models.MonthData) string {
	marker := "▸"
	if m.expanded[s] {
		marker = "▾"
	}

	header := fmt.Sprintf("%s %s (%d)", marker, s.title(), m.sectionSize(s, data))
	if s == m.selected {
		return styles.FocusedStyle.Render(header)
	}
	if s == sectionErrors && len(data.Errors) > 0 {
		return styles.ErrorTextStyle.Render(header)
	}
	return styles.CardTitleStyle.Render(header)
}

func (m *Model) sectionSize(s sectionID, data *models.MonthData) int {
	switch s {
	case sectionRecords:
		return len(data.Records)
	case sectionModelTokens:
		return len(data.Summary.TopModelsByTokens)
	case sectionModelCost:
		return len(data.Summary.TopModelsByCost)
	case sectionUserTotals:
		return len(data.Summary.UserTotals)
	case sectionErrors:
		return len(data.Errors)
	default:
		return 0
	}
}

func (m *Model) renderSectionBody(s sectionID, data *models.MonthData) string {
	switch s {
	case sectionRecords:
		return renderRecordsTable(data.Records)
	case sectionModelTokens:
		return renderModelTable(data.Summary.TopModelsByTokens, "Tokens", components.FormatCount)
	case sectionModelCost:
		return renderModelTable(data.Summary.TopModelsByCost, "Cost", components.FormatCost)
	case sectionUserTotals:
		return renderUserTable(data.Summary.UserTotals)
	case sectionErrors:
		return renderErrorsTable(data.Errors)
	default:
		return ""
	}
}

func renderRecordsTable(records []models.Record) string {
	rows := make([]components.TableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, components.TableRow{Cells: []string{
			r.User,
			r.Model,
			components.FormatCost(r.TotalCost),
			strconv.FormatInt(r.TotalTokens, 10),
		}})
	}

	return components.RenderTable([]string{"User", "Model", "Total Cost", "Total Tokens"}, rows)
}

func renderModelTable(totals []models.ModelTotal, valueHeader string, format components.ValueFormatter) string {
	rows := make([]components.TableRow, 0, len(totals))
	for i, t := range totals {
		rows = append(rows, components.TableRow{Cells: []string{
			strconv.Itoa(i + 1),
			t.Model,
			format(t.Value),
		}})
	}

	return components.RenderTable([]string{"#", "Model", valueHeader}, rows)
}

func renderUserTable(totals []models.UserTotal) string {
	rows := make([]components.TableRow, 0, len(totals))
	for _, u := range totals {
		rows = append(rows, components.TableRow{
			Cells: []string{
				u.User,
				components.FormatCost(u.TotalCost),
				strconv.FormatInt(u.TotalTokens, 10),
			},
			Highlight: u.IsTotalRow(),
		})
	}

	return components.RenderTable([]string{"User", "Total Cost", "Total Tokens"}, rows)
}

func renderErrorsTable(errs []models.RecordError) string {
	rows := make([]components.TableRow, 0, len(errs))
	for _, e := range errs {
		rows = append(rows, components.TableRow{Cells: []string{
			e.Kind.String(),
			e.User,
			e.Field,
			e.Detail,
		}})
	}

	return components.RenderTable([]string{"Kind", "User", "Field", "Detail"}, rows)
}
