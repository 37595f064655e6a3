package service

import (
	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/models"
	planner "github.com/mmynk/finplanner/pkg/planner"
)

// RecommendationsResponse converts an engine result into its wire form. The
// featured advertisement is left unset.
func RecommendationsResponse(result models.RecommendationResult) *planner.ComputeRecommendationsResponse {
	investments := make([]planner.Investment, len(result.Investments))
	for i, rec := range result.Investments {
		investments[i] = planner.Investment{
			Type:            rec.Category.Key,
			Title:           rec.Category.Title,
			Description:     rec.Category.Description,
			Link:            rec.Category.Link,
			SuggestedAmount: rec.SuggestedAmount.String(),
			Ads:             rec.Category.Ads,
		}
	}

	plans := make(map[int32]planner.SavingsPlan, len(result.SavingsPlans))
	for _, p := range result.SavingsPlans {
		plans[int32(p.Horizon)] = planner.SavingsPlan{
			Total:    p.Total.String(),
			Category: string(p.Tier),
			Products: p.Products,
		}
	}

	return &planner.ComputeRecommendationsResponse{
		User: planner.UserSummary{
			Name:          result.Profile.Name,
			Age:           int32(result.Profile.Age),
			MonthlySalary: result.Profile.MonthlySalary.String(),
			TotalExpenses: result.TotalExpenses.String(),
		},
		RemainingSalary: result.Remaining.String(),
		Investments:     investments,
		SavingsPlans:    plans,
	}
}

func toSavedRecommendation(rec models.SavedRecommendation) planner.SavedRecommendation {
	return planner.SavedRecommendation{
		ID:              rec.ID,
		RemainingSalary: rec.Remaining.String(),
		InvestmentType:  rec.CategoryKey,
		AmountSuggested: rec.SuggestedAmount.String(),
		CreatedAt:       rec.CreatedAt,
	}
}

// CatalogResponse converts a catalog into its wire form.
func CatalogResponse(c *catalog.Catalog) *planner.GetCatalogResponse {
	resp := &planner.GetCatalogResponse{
		Currency:             c.Currency(),
		ContributionFraction: c.ContributionFraction().String(),
	}
	for _, h := range c.Horizons() {
		resp.Horizons = append(resp.Horizons, int32(h))
	}
	for _, t := range c.Tiers() {
		tier := planner.Tier{
			Name:     string(t.Name),
			Range:    t.Range,
			Products: t.Products,
		}
		if t.MaxTotal.Valid {
			tier.MaxTotal = t.MaxTotal.Decimal.String()
		}
		resp.Tiers = append(resp.Tiers, tier)
	}
	for _, cat := range c.Categories() {
		resp.Categories = append(resp.Categories, planner.Category{
			Type:        cat.Key,
			Title:       cat.Title,
			Description: cat.Description,
			Link:        cat.Link,
			Ads:         cat.Ads,
		})
	}
	return resp
}
