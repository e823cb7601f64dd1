package models

import "time"

// TotalRowUser is the user label of the synthetic grand-total row appended
// to the user totals table. The row is shown in tables but excluded from
// the per-user chart.
const TotalRowUser = "Total"

// ModelTotal is one row of a per-model aggregate table: the summed value
// (tokens or cost) for a single model.
type ModelTotal struct {
	Model string
	Value float64
}

// UserTotal is one row of the per-user aggregate table.
type UserTotal struct {
	User        string
	TotalCost   float64
	TotalTokens int64
}

// IsTotalRow reports whether this row is the synthetic grand-total row.
func (u UserTotal) IsTotalRow() bool {
	return u.User == TotalRowUser
}

// Summary holds the three aggregate views derived from a record set.
type Summary struct {
	// TopModelsByTokens and TopModelsByCost are sorted descending by value
	// and truncated to the ten largest groups.
	TopModelsByTokens []ModelTotal
	TopModelsByCost   []ModelTotal

	// UserTotals is sorted descending by cost and always ends with the
	// synthetic Total row, even for an empty record set.
	UserTotals []UserTotal
}

// GrandTotals returns the grand cost and token sums from the Total row.
func (s Summary) GrandTotals() (cost float64, tokens int64) {
	for _, u := range s.UserTotals {
		if u.IsTotalRow() {
			return u.TotalCost, u.TotalTokens
		}
	}
	return 0, 0
}

// MonthData bundles everything produced by one load of a monthly file.
type MonthData struct {
	Year  int
	Month int
	Path  string

	Records []Record
	Errors  []RecordError
	Summary Summary

	LoadedAt  time.Time
	FromCache bool
}

// HasData reports whether normalization produced at least one record.
func (d *MonthData) HasData() bool {
	return d != nil && len(d.Records) > 0
}

// DistinctModels returns the number of distinct models across records.
func (d *MonthData) DistinctModels() int {
	if d == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(d.Records))
	for _, r := range d.Records {
		seen[r.Model] = struct{}{}
	}
	return len(seen)
}
