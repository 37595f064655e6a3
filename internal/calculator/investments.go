package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/models"
)

// BuildInvestmentRecommendations suggests remaining × fraction for every
// category, in catalog order. Nothing is suggested when remaining <= 0.
//
// The fraction is applied to each category on its own; the suggestions are
// alternatives and may add up to more than the remaining balance.
func BuildInvestmentRecommendations(remaining decimal.Decimal, categories []models.InvestmentCategory, fraction decimal.Decimal) []models.InvestmentRecommendation {
	if !remaining.IsPositive() {
		return []models.InvestmentRecommendation{}
	}

	suggested := remaining.Mul(fraction)
	recs := make([]models.InvestmentRecommendation, len(categories))
	for i, cat := range categories {
		recs[i] = models.InvestmentRecommendation{
			Category:        cat,
			SuggestedAmount: suggested,
		}
	}
	return recs
}
