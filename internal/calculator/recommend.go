package calculator

import (
	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/models"
)

// Recommend runs the full engine for one profile and expense list.
func Recommend(profile models.Profile, items []models.ExpenseItem, cat *catalog.Catalog) models.RecommendationResult {
	totalExpenses := SummarizeExpenses(items)
	remaining := ComputeRemaining(profile.MonthlySalary, totalExpenses)

	return models.RecommendationResult{
		Profile:       profile,
		TotalExpenses: totalExpenses,
		Remaining:     remaining,
		Investments:   BuildInvestmentRecommendations(remaining, cat.Categories(), cat.ContributionFraction()),
		SavingsPlans:  ClassifySavings(remaining, cat.Horizons(), cat.Tiers()),
	}
}
