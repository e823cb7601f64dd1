package aggregate

import (
	"sort"

	"github.com/bgeneto/costwatch/internal/models"
)

// TopModelCount is the number of model groups kept after the descending
// sort; smaller tables are returned whole.
const TopModelCount = 10

// Summarize computes the three aggregate views over a record set. It is a
// pure function of records: deterministic given stable input order and
// safe to call with zero rows, in which case the model tables are empty
// and the user table contains only a zero-valued Total row.
func Summarize(records []models.Record) models.Summary {
	return models.Summary{
		TopModelsByTokens: topModels(records, func(r models.Record) float64 { return float64(r.TotalTokens) }),
		TopModelsByCost:   topModels(records, func(r models.Record) float64 { return r.TotalCost }),
		UserTotals:        userTotals(records),
	}
}

// topModels groups records by model in first-encounter order, sums the
// derived value, stable-sorts descending and truncates. The stable sort
// means ties keep their grouping order; no secondary key is applied.
func topModels(records []models.Record, value func(models.Record) float64) []models.ModelTotal {
	index := make(map[string]int, len(records))
	totals := make([]models.ModelTotal, 0, len(records))

	for _, r := range records {
		i, seen := index[r.Model]
		if !seen {
			i = len(totals)
			index[r.Model] = i
			totals = append(totals, models.ModelTotal{Model: r.Model})
		}
		totals[i].Value += value(r)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Value > totals[j].Value
	})

	if len(totals) > TopModelCount {
		totals = totals[:TopModelCount]
	}
	return totals
}

// userTotals groups by user, sums cost and tokens, sorts descending by
// cost and appends the synthetic Total row. The grouping sums rather than
// assuming one record per user, and the table is never truncated.
func userTotals(records []models.Record) []models.UserTotal {
	index := make(map[string]int, len(records))
	totals := make([]models.UserTotal, 0, len(records)+1)

	for _, r := range records {
		i, seen := index[r.User]
		if !seen {
			i = len(totals)
			index[r.User] = i
			totals = append(totals, models.UserTotal{User: r.User})
		}
		totals[i].TotalCost += r.TotalCost
		totals[i].TotalTokens += r.TotalTokens
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].TotalCost > totals[j].TotalCost
	})

	var grandCost float64
	var grandTokens int64
	for _, u := range totals {
		grandCost += u.TotalCost
		grandTokens += u.TotalTokens
	}

	return append(totals, models.UserTotal{
		User:        models.TotalRowUser,
		TotalCost:   grandCost,
		TotalTokens: grandTokens,
	})
}
