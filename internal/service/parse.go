package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/finplanner/internal/models"
	planner "github.com/mmynk/finplanner/pkg/planner"
)

const (
	maxAge = 150

	// Money amounts keep at most ten decimal places and stay at or below
	// maxAmount in magnitude.
	minAmountExponent = -10
	maxAmountExponent = 15
)

var (
	maxAmount = decimal.New(1, maxAmountExponent)

	amountRangeMessage = fmt.Sprintf("must be at most %s with no more than %d decimal places",
		maxAmount.String(), -minAmountExponent)
	errAmountRange = errors.New(amountRangeMessage)
)

// parseAmount parses a money amount. numeric is false when text is not a
// number at all, and err is set when it is a number outside the supported
// range. The exponent is checked before any comparison so an input like
// "1e99999999" is never expanded.
func parseAmount(text string) (amount decimal.Decimal, numeric bool, err error) {
	amount, err = decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, false, nil
	}
	if amount.IsZero() {
		return decimal.Zero, true, nil
	}
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Decimal{}, true, errAmountRange
	}
	if amount.Abs().GreaterThan(maxAmount) {
		return decimal.Decimal{}, true, errAmountRange
	}
	return amount, true, nil
}

// parseProfile validates the basic-details step.
func parseProfile(p planner.Profile) (models.Profile, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return models.Profile{}, models.NewValidationError("name", "is required")
	}

	ageText := strings.TrimSpace(p.Age)
	if ageText == "" {
		return models.Profile{}, models.NewValidationError("age", "is required")
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		return models.Profile{}, models.NewValidationError("age", "must be a whole number, got %q", p.Age)
	}
	if age <= 0 {
		return models.Profile{}, models.NewValidationError("age", "must be positive, got %d", age)
	}
	if age > maxAge {
		return models.Profile{}, models.NewValidationError("age", "must be at most %d, got %d", maxAge, age)
	}

	salaryText := strings.TrimSpace(p.MonthlySalary)
	if salaryText == "" {
		return models.Profile{}, models.NewValidationError("monthly_salary", "is required")
	}
	salary, numeric, err := parseAmount(salaryText)
	if !numeric {
		return models.Profile{}, models.NewValidationError("monthly_salary", "must be a number, got %q", p.MonthlySalary)
	}
	if err != nil {
		return models.Profile{}, models.NewValidationError("monthly_salary", "%s", amountRangeMessage)
	}
	if salary.IsNegative() {
		return models.Profile{}, models.NewValidationError("monthly_salary", "must not be negative")
	}

	return models.Profile{Name: name, Age: age, MonthlySalary: salary}, nil
}

// parseExpenses converts both expense lists, keeping accurate items first.
// Items with a blank or non-numeric amount are kept without an amount so
// they add nothing to the total. Negative and out-of-range amounts are
// rejected.
func parseExpenses(accurate, approximate []planner.ExpenseItem) ([]models.ExpenseItem, error) {
	items := make([]models.ExpenseItem, 0, len(accurate)+len(approximate))
	groups := []struct {
		group models.ExpenseGroup
		items []planner.ExpenseItem
	}{
		{models.ExpenseAccurate, accurate},
		{models.ExpenseApproximate, approximate},
	}

	for _, g := range groups {
		for i, in := range g.items {
			item := models.ExpenseItem{Group: g.group, Label: strings.TrimSpace(in.Type)}
			amount, numeric, err := parseAmount(in.Amount)
			if err != nil {
				return nil, models.NewValidationError(
					string(g.group), "item %d (%q) amount %s", i+1, in.Type, amountRangeMessage)
			}
			if numeric {
				if amount.IsNegative() {
					return nil, models.NewValidationError(
						string(g.group), "item %d (%q) has a negative amount", i+1, in.Type)
				}
				item.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
			}
			items = append(items, item)
		}
	}
	return items, nil
}
