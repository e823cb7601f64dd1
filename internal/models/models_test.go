package models

import (
	"strings"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want string
	}{
		{ErrMissingField, "missing field"},
		{ErrInvalidNumeric, "invalid numeric"},
		{ErrUnexpected, "unexpected"},
		{ErrorKind(99), "unknown"},
	}

	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestRecordError_Error(t *testing.T) {
	e := RecordError{Kind: ErrMissingField, User: "a@x.com", Field: "total_cost"}
	if msg := e.Error(); !strings.Contains(msg, "a@x.com") || !strings.Contains(msg, "total_cost") {
		t.Errorf("unexpected message: %q", msg)
	}

	e = RecordError{Kind: ErrUnexpected, User: "b@x.com", Detail: "no usage entries"}
	if msg := e.Error(); !strings.Contains(msg, "no usage entries") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestUserTotal_IsTotalRow(t *testing.T) {
	if (UserTotal{User: "a@x.com"}).IsTotalRow() {
		t.Error("regular user flagged as Total row")
	}
	if !(UserTotal{User: TotalRowUser}).IsTotalRow() {
		t.Error("Total row not recognized")
	}
}

func TestSummary_GrandTotals(t *testing.T) {
	s := Summary{
		UserTotals: []UserTotal{
			{User: "a@x.com", TotalCost: 1.0, TotalTokens: 10},
			{User: TotalRowUser, TotalCost: 3.5, TotalTokens: 42},
		},
	}

	cost, tokens := s.GrandTotals()
	if cost != 3.5 || tokens != 42 {
		t.Errorf("GrandTotals = (%f, %d), want (3.5, 42)", cost, tokens)
	}

	cost, tokens = Summary{}.GrandTotals()
	if cost != 0 || tokens != 0 {
		t.Errorf("empty summary should report zero totals, got (%f, %d)", cost, tokens)
	}
}

func TestMonthData_HasData(t *testing.T) {
	var nilData *MonthData
	if nilData.HasData() {
		t.Error("nil MonthData reports data")
	}

	empty := &MonthData{}
	if empty.HasData() {
		t.Error("empty MonthData reports data")
	}

	full := &MonthData{Records: []Record{{User: "a@x.com"}}}
	if !full.HasData() {
		t.Error("MonthData with records reports no data")
	}
}

func TestMonthData_DistinctModels(t *testing.T) {
	d := &MonthData{Records: []Record{
		{Model: "gpt-4"},
		{Model: "claude-3"},
		{Model: "gpt-4"},
	}}

	if got := d.DistinctModels(); got != 2 {
		t.Errorf("DistinctModels = %d, want 2", got)
	}

	var nilData *MonthData
	if nilData.DistinctModels() != 0 {
		t.Error("nil MonthData should report zero models")
	}
}
