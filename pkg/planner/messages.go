// Package planner defines the wire messages of the finplanner.v1 API.
//
// Messages are plain Go structs encoded as JSON by Codec. Money amounts travel
// as decimal strings (e.g. "12000.50") so no precision is lost.
package planner

// Profile is the basic-details step of the planner.
type Profile struct {
	Name string `json:"name"`

	// Age and MonthlySalary are strings so that malformed input reaches the
	// server and is reported as a validation error on the right field.
	Age           string `json:"age"`
	MonthlySalary string `json:"monthly_salary"`
}

// ExpenseItem is one labelled expense. A blank or non-numeric amount is ignored.
type ExpenseItem struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
}

type AcceptProfileRequest struct {
	Profile
}

type AcceptProfileResponse struct {
	// Handle must be sent as "Authorization: Bearer <handle>" on later calls.
	Handle    string `json:"handle"`
	SessionID string `json:"session_id"`
}

type AcceptExpensesRequest struct {
	Accurate    []ExpenseItem `json:"accurate"`
	Approximate []ExpenseItem `json:"approximate"`
}

type AcceptExpensesResponse struct {
	TotalExpenses   string `json:"total_expenses"`
	RemainingSalary string `json:"remaining_salary"`
}

type ComputeRecommendationsRequest struct{}

type UserSummary struct {
	Name          string `json:"name"`
	Age           int32  `json:"age"`
	MonthlySalary string `json:"monthly_salary"`
	TotalExpenses string `json:"total_expenses"`
}

type Investment struct {
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Link            string   `json:"link,omitempty"`
	SuggestedAmount string   `json:"suggested_amount"`
	Ads             []string `json:"ads"`
}

type SavingsPlan struct {
	Total    string   `json:"total"`
	Category string   `json:"category"`
	Products []string `json:"products"`
}

type Advertisement struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ComputeRecommendationsResponse struct {
	User            UserSummary  `json:"user"`
	RemainingSalary string       `json:"remaining_salary"`
	Investments     []Investment `json:"investments"`

	// SavingsPlans is keyed by horizon in months.
	SavingsPlans map[int32]SavingsPlan `json:"savings_plans"`

	// FeaturedAd is set whenever Investments is non-empty.
	FeaturedAd *Advertisement `json:"featured_ad,omitempty"`
}

type SaveRecommendationRequest struct {
	InvestmentType  string `json:"investment_type"`
	AmountSuggested string `json:"amount_suggested"`
}

type SaveRecommendationResponse struct {
	RecommendationID string `json:"recommendation_id"`
}

type ListSavedRecommendationsRequest struct{}

type SavedRecommendation struct {
	ID              string `json:"id"`
	RemainingSalary string `json:"remaining_salary"`
	InvestmentType  string `json:"investment_type"`
	AmountSuggested string `json:"amount_suggested"`
	CreatedAt       int64  `json:"created_at"`
}

type ListSavedRecommendationsResponse struct {
	Recommendations []SavedRecommendation `json:"recommendations"`
}

type GetCatalogRequest struct{}

type Tier struct {
	Name  string `json:"name"`
	Range string `json:"range"`

	// MaxTotal is empty for the unbounded top tier.
	MaxTotal string   `json:"max_total,omitempty"`
	Products []string `json:"products"`
}

type Category struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Link        string   `json:"link,omitempty"`
	Ads         []string `json:"ads"`
}

type GetCatalogResponse struct {
	Currency             string     `json:"currency"`
	Horizons             []int32    `json:"horizons"`
	ContributionFraction string     `json:"contribution_fraction"`
	Tiers                []Tier     `json:"tiers"`
	Categories           []Category `json:"categories"`
}
