package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/models"
)

// ClassifySavings projects the remaining balance over each horizon and
// assigns the projected total to a tier.
//
// Tiers are checked in order and the first one whose inclusive upper bound
// covers the total wins, so a total sitting exactly on a boundary lands in
// the lower tier. Zero and negative totals fall into the first tier.
// If no tier matches (a table without an unbounded last tier) the last tier
// is used.
func ClassifySavings(remaining decimal.Decimal, horizons []int, tiers []catalog.Tier) []models.SavingsPlan {
	plans := make([]models.SavingsPlan, 0, len(horizons))
	for _, h := range horizons {
		total := remaining.Mul(decimal.NewFromInt(int64(h)))
		tier := classify(total, tiers)
		plans = append(plans, models.SavingsPlan{
			Horizon:  h,
			Total:    total,
			Tier:     tier.Name,
			Products: tier.Products,
		})
	}
	return plans
}

func classify(total decimal.Decimal, tiers []catalog.Tier) catalog.Tier {
	if len(tiers) == 0 {
		return catalog.Tier{}
	}
	for _, t := range tiers {
		if t.Contains(total) {
			return t
		}
	}
	return tiers[len(tiers)-1]
}
