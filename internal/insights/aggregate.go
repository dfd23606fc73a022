// Package insights computes expense aggregations, spending recommendations
// and offers from a user's transaction set.
package insights

import (
	"sort"

	"fluxo/internal/models"
)

// CategoryTotal is the total outbound spend for one category, in cents.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Aggregate sums outbound spend per category, largest first. Transactions
// without a category are folded into Outros so the totals always account
// for every outbound transaction. Ties keep first-encounter order.
func Aggregate(txs []models.Transaction) []CategoryTotal {
	totals := make(map[string]int64)
	var order []string

	for _, tx := range txs {
		if tx.Type != models.TransactionTypeOut {
			continue
		}

		category := models.CategoryOthers
		if tx.Category != nil && *tx.Category != "" {
			category = *tx.Category
		}

		if _, seen := totals[category]; !seen {
			order = append(order, category)
		}

		amount := tx.Amount
		if amount < 0 {
			amount = -amount
		}
		totals[category] += amount
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		result = append(result, CategoryTotal{Name: name, Value: totals[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Value > result[j].Value
	})
	return result
}
