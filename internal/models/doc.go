// Package models defines the core domain models for finplanner.
//
// # Models
//
//   - Profile: the person being planned for (name, age, monthly salary)
//   - ExpenseItem: one labelled monthly expense, grouped as accurate or approximate
//   - Session: a profile plus its submitted expenses, addressed by handle
//   - SavingsPlan: projected savings for one horizon and the tier it falls into
//   - InvestmentRecommendation: a catalog category with a suggested monthly amount
//   - RecommendationResult: everything computed for one submission
//
// # Design Principles
//
// 1. **Value objects**: results carry no identity and are recomputed on every request
// 2. **Exact money**: amounts are decimal.Decimal, never float64
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
//
// Accurate and approximate expenses are kept apart only so they can be shown
// back to the user; every calculation sums them together.
package models
