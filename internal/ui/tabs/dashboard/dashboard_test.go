package dashboard

import (
	"strings"
	"testing"

	"github.com/bgeneto/costwatch/internal/app"
	"github.com/bgeneto/costwatch/internal/models"
)

func monthData() *models.MonthData {
	records := []models.Record{
		{User: "alice@example.com", Model: "gpt-4", TotalCost: 3.0, TotalTokens: 300},
		{User: "bob@example.com", Model: "claude-3", TotalCost: 1.0, TotalTokens: 100},
		{User: "carol@example.com", Model: "gpt-4", TotalCost: 2.0, TotalTokens: 200},
	}
	return &models.MonthData{
		Year:    2026,
		Month:   8,
		Path:    "/data/costs-2026-8.json",
		Records: records,
		Summary: models.Summary{
			TopModelsByTokens: []models.ModelTotal{
				{Model: "gpt-4", Value: 500},
				{Model: "claude-3", Value: 100},
			},
			TopModelsByCost: []models.ModelTotal{
				{Model: "gpt-4", Value: 5.0},
				{Model: "claude-3", Value: 1.0},
			},
			UserTotals: []models.UserTotal{
				{User: "alice@example.com", TotalCost: 3.0, TotalTokens: 300},
				{User: "carol@example.com", TotalCost: 2.0, TotalTokens: 200},
				{User: "bob@example.com", TotalCost: 1.0, TotalTokens: 100},
				{User: models.TotalRowUser, TotalCost: 6.0, TotalTokens: 600},
			},
		},
	}
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m == nil {
		t.Fatal("New returned nil")
	}
	if m.Init() == nil {
		t.Error("Init returned nil command")
	}
}

func TestView_NoMonthSelected(t *testing.T) {
	state := app.NewState()
	m := New(state)
	m.SetSize(200, 50)

	view := m.View()
	if !strings.Contains(view, "No month selected") {
		t.Error("expected the month prompt")
	}
}

func TestView_FileAbsent(t *testing.T) {
	state := app.NewState()
	state.SetFileAbsent(9, "/data/costs-2026-9.json")
	m := New(state)
	m.SetSize(200, 50)

	view := m.View()
	if !strings.Contains(view, "does not exist") {
		t.Error("expected the missing-file message")
	}
	if !strings.Contains(view, "/data/costs-2026-9.json") {
		t.Error("expected the missing file path")
	}
}

func TestView_NoValidData(t *testing.T) {
	state := app.NewState()
	state.SetData(&models.MonthData{Year: 2026, Month: 2, Summary: models.Summary{
		UserTotals: []models.UserTotal{{User: models.TotalRowUser}},
	}})
	m := New(state)
	m.SetSize(200, 50)

	view := m.View()
	if !strings.Contains(view, "No valid data found to process.") {
		t.Error("expected the empty-month warning")
	}
}

func TestView_Charts(t *testing.T) {
	state := app.NewState()
	state.SetData(monthData())
	m := New(state)
	m.SetSize(200, 60)

	view := m.View()

	for _, title := range []string{
		"Top 10 Total Tokens Used by Model",
		"Top 10 Total Cost by Model",
		"Total Cost by User",
	} {
		if !strings.Contains(view, title) {
			t.Errorf("view missing chart title %q", title)
		}
	}

	if !strings.Contains(view, "gpt-4") {
		t.Error("model labels missing from charts")
	}
	if !strings.Contains(view, "alice@example.com") {
		t.Error("user labels missing from the user chart")
	}

	// The synthetic Total row never appears in the user chart
	if strings.Contains(view, "Total Cost by User") {
		userSection := view[strings.Index(view, "Total Cost by User"):]
		if idx := strings.Index(userSection, "Cost Distribution"); idx > 0 {
			userSection = userSection[:idx]
		}
		for _, line := range strings.Split(userSection, "\n") {
			if strings.Contains(line, "│") && strings.Contains(line, "Total ") {
				t.Errorf("Total row leaked into the user chart: %q", line)
			}
		}
	}
}

func TestView_SummaryCard(t *testing.T) {
	state := app.NewState()
	state.SetData(monthData())
	m := New(state)
	m.SetSize(200, 60)

	view := m.View()
	if !strings.Contains(view, "$6.00") {
		t.Error("grand total cost missing from summary")
	}
	if !strings.Contains(view, "Records: 3") {
		t.Error("record count missing from summary")
	}
}

func TestView_Loading(t *testing.T) {
	state := app.NewState()
	state.SetLoading(true)
	m := New(state)
	m.SetSize(200, 50)

	if m.View() == "" {
		t.Error("loading view is empty")
	}
}

func TestHelp(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
	if len(m.FullHelp()) == 0 {
		t.Error("FullHelp is empty")
	}
}
