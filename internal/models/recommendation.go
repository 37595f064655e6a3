package models

import "github.com/shopspring/decimal"

// SavingsTier names a savings bucket from the catalog (small, medium, large).
type SavingsTier string

const (
	TierSmall  SavingsTier = "small"
	TierMedium SavingsTier = "medium"
	TierLarge  SavingsTier = "large"
)

// SavingsPlan is the projected savings for one horizon.
type SavingsPlan struct {
	// Horizon is the number of months projected over.
	Horizon int

	// Total is remaining balance × Horizon. Negative when the user overspends.
	Total decimal.Decimal

	Tier SavingsTier

	// Products is the tier's product list, shared with the catalog.
	// Callers must not modify it.
	Products []string
}

// InvestmentCategory is one entry of the investment catalog.
type InvestmentCategory struct {
	// Key is the stable identifier (e.g., "loans", "sic").
	Key         string
	Title       string
	Description string

	// Link points at an external page with more information. May be empty.
	Link string

	// Ads are short promotional lines shown alongside the category.
	Ads []string
}

// InvestmentRecommendation suggests a monthly contribution for one category.
type InvestmentRecommendation struct {
	Category InvestmentCategory

	// SuggestedAmount is computed independently per category. Amounts of
	// different recommendations are alternatives, not shares of one budget.
	SuggestedAmount decimal.Decimal
}

// Advertisement is one promotional line picked from a recommendation.
type Advertisement struct {
	CategoryKey string
	Text        string
}

// RecommendationResult is the output of the recommendation engine.
type RecommendationResult struct {
	Profile       Profile
	TotalExpenses decimal.Decimal

	// Remaining is MonthlySalary - TotalExpenses. May be zero or negative.
	Remaining decimal.Decimal

	// Investments is empty when Remaining <= 0, otherwise one entry per
	// catalog category in catalog order.
	Investments []InvestmentRecommendation

	// SavingsPlans holds one plan per horizon, ordered as the horizons were given.
	SavingsPlans []SavingsPlan
}

// Plan returns the savings plan for the given horizon.
func (r RecommendationResult) Plan(horizon int) (SavingsPlan, bool) {
	for _, p := range r.SavingsPlans {
		if p.Horizon == horizon {
			return p, true
		}
	}
	return SavingsPlan{}, false
}

// SavedRecommendation records a recommendation the user chose to keep.
type SavedRecommendation struct {
	// ID is the unique identifier for the saved recommendation (UUID format).
	ID        string
	SessionID string

	// Remaining is the remaining balance at the time of saving.
	Remaining       decimal.Decimal
	CategoryKey     string
	SuggestedAmount decimal.Decimal

	// CreatedAt is the Unix timestamp when the recommendation was saved.
	CreatedAt int64
}
