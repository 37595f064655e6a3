package service

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/calculator"
	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/models"
	planner "github.com/mmynk/finplanner/pkg/planner"
)

// Evaluate validates a profile and expense lists and runs the engine without
// touching storage. It applies the same rules as AcceptProfile followed by
// AcceptExpenses and ComputeRecommendations.
func Evaluate(profile planner.Profile, accurate, approximate []planner.ExpenseItem, cat *catalog.Catalog, picker calculator.Picker) (*planner.ComputeRecommendationsResponse, error) {
	p, err := parseProfile(profile)
	if err != nil {
		return nil, err
	}
	items, _, err := acceptableExpenses(accurate, approximate)
	if err != nil {
		return nil, err
	}

	result := calculator.Recommend(p, items, cat)
	resp := RecommendationsResponse(result)
	resp.FeaturedAd = featuredAd(result, picker)
	return resp, nil
}

// acceptableExpenses parses both lists and rejects a submission that adds up
// to nothing.
func acceptableExpenses(accurate, approximate []planner.ExpenseItem) ([]models.ExpenseItem, decimal.Decimal, error) {
	if len(accurate) == 0 && len(approximate) == 0 {
		return nil, decimal.Zero, models.NewValidationError("", "no expenses provided")
	}
	items, err := parseExpenses(accurate, approximate)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := calculator.SummarizeExpenses(items)
	if total.IsZero() {
		return nil, decimal.Zero, models.NewValidationError("", "no expenses provided")
	}
	return items, total, nil
}

// featuredAd picks one advertisement, or nil when there is nothing to advertise.
func featuredAd(result models.RecommendationResult, picker calculator.Picker) *planner.Advertisement {
	if len(result.Investments) == 0 {
		return nil
	}
	ad, err := calculator.SelectAdvertisement(result.Investments, picker)
	if err != nil {
		// Catalog entries without ads just mean no featured ad
		slog.Debug("No featured advertisement", "error", err)
		return nil
	}
	return &planner.Advertisement{Type: ad.CategoryKey, Text: ad.Text}
}
