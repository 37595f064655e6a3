package models

import "github.com/shopspring/decimal"

// Profile holds the basic details entered in the first step.
type Profile struct {
	Name string

	// Age in whole years. Always positive once accepted.
	Age int

	// MonthlySalary is the take-home salary. Never negative once accepted.
	MonthlySalary decimal.Decimal
}

// ExpenseGroup is the tab an expense was entered under.
type ExpenseGroup string

const (
	ExpenseAccurate    ExpenseGroup = "accurate"
	ExpenseApproximate ExpenseGroup = "approximate"
)

// ExpenseItem represents a single monthly expense line.
type ExpenseItem struct {
	Group ExpenseGroup

	// Label is the free-form expense type (e.g., "Rent", "Groceries").
	Label string

	// Amount is invalid when the user left it blank or typed something
	// that is not a number. Such items contribute nothing to totals.
	Amount decimal.NullDecimal
}

// NewExpenseItem returns an item with a usable amount.
func NewExpenseItem(group ExpenseGroup, label string, amount decimal.Decimal) ExpenseItem {
	return ExpenseItem{
		Group:  group,
		Label:  label,
		Amount: decimal.NullDecimal{Decimal: amount, Valid: true},
	}
}

// Session is the server-side record of one pass through the planner.
// Every request names its session explicitly.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	Profile Profile

	// Expenses are the most recently submitted expenses, in submission order.
	Expenses []ExpenseItem

	// ExpensesAccepted is set once expenses have been submitted at least once.
	// Recommendations are only available after that.
	ExpensesAccepted bool

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}
