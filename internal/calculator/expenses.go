// Package calculator implements the recommendation engine: it turns a profile
// and a list of expenses into savings plans and investment suggestions.
//
// Every function here is pure. SelectAdvertisement is the only one that
// involves randomness, and it takes its random source as a parameter.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/models"
)

// SummarizeExpenses returns the sum of all usable expense amounts.
// Items without a valid amount are skipped. An empty list sums to zero;
// whether a zero total is acceptable is up to the caller.
func SummarizeExpenses(items []models.ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if !item.Amount.Valid {
			continue
		}
		total = total.Add(item.Amount.Decimal)
	}
	return total
}

// ComputeRemaining returns salary - totalExpenses. The result is not clamped
// and may be zero or negative.
func ComputeRemaining(salary, totalExpenses decimal.Decimal) decimal.Decimal {
	return salary.Sub(totalExpenses)
}
