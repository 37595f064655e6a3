package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/finplanner/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func testProfile() models.Profile {
	return models.Profile{
		Name:          "Asha",
		Age:           29,
		MonthlySalary: decimal.RequireFromString("50000.50"),
	}
}

func TestSQLiteStore_Sessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSession generates ID and timestamps", func(t *testing.T) {
		session := &models.Session{Profile: testProfile()}
		require.NoError(t, store.CreateSession(ctx, session))

		assert.NotEmpty(t, session.ID)
		assert.NotZero(t, session.CreatedAt)
		assert.Equal(t, session.CreatedAt, session.UpdatedAt)
		assert.False(t, session.ExpensesAccepted)
	})

	t.Run("GetSession retrieves profile", func(t *testing.T) {
		original := &models.Session{Profile: testProfile()}
		require.NoError(t, store.CreateSession(ctx, original))

		retrieved, err := store.GetSession(ctx, original.ID)
		require.NoError(t, err)

		assert.Equal(t, original.ID, retrieved.ID)
		assert.Equal(t, "Asha", retrieved.Profile.Name)
		assert.Equal(t, 29, retrieved.Profile.Age)
		assert.True(t, retrieved.Profile.MonthlySalary.Equal(decimal.RequireFromString("50000.50")))
		assert.False(t, retrieved.ExpensesAccepted)
		assert.Empty(t, retrieved.Expenses)
	})

	t.Run("GetSession returns ErrNotFound for nonexistent session", func(t *testing.T) {
		_, err := store.GetSession(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestSQLiteStore_ReplaceExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &models.Session{Profile: testProfile()}
	require.NoError(t, store.CreateSession(ctx, session))

	first := []models.ExpenseItem{
		models.NewExpenseItem(models.ExpenseAccurate, "Rent", decimal.NewFromInt(12000)),
		{Group: models.ExpenseAccurate, Label: "Blank"},
		models.NewExpenseItem(models.ExpenseApproximate, "Food", decimal.RequireFromString("8000.25")),
	}
	require.NoError(t, store.ReplaceExpenses(ctx, session.ID, first))

	retrieved, err := store.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.ExpensesAccepted)
	require.Len(t, retrieved.Expenses, 3)

	assert.Equal(t, "Rent", retrieved.Expenses[0].Label)
	assert.Equal(t, models.ExpenseAccurate, retrieved.Expenses[0].Group)
	assert.True(t, retrieved.Expenses[0].Amount.Valid)
	assert.True(t, retrieved.Expenses[0].Amount.Decimal.Equal(decimal.NewFromInt(12000)))

	assert.Equal(t, "Blank", retrieved.Expenses[1].Label)
	assert.False(t, retrieved.Expenses[1].Amount.Valid)

	assert.Equal(t, models.ExpenseApproximate, retrieved.Expenses[2].Group)
	assert.True(t, retrieved.Expenses[2].Amount.Decimal.Equal(decimal.RequireFromString("8000.25")))

	t.Run("second submission replaces the first", func(t *testing.T) {
		second := []models.ExpenseItem{
			models.NewExpenseItem(models.ExpenseApproximate, "Travel", decimal.NewFromInt(500)),
		}
		require.NoError(t, store.ReplaceExpenses(ctx, session.ID, second))

		retrieved, err := store.GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, retrieved.Expenses, 1)
		assert.Equal(t, "Travel", retrieved.Expenses[0].Label)
	})

	t.Run("unknown session", func(t *testing.T) {
		err := store.ReplaceExpenses(ctx, "nonexistent-id", first)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestSQLiteStore_SessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := &models.Session{Profile: testProfile()}
	b := &models.Session{Profile: models.Profile{Name: "Ravi", Age: 41, MonthlySalary: decimal.NewFromInt(20000)}}
	require.NoError(t, store.CreateSession(ctx, a))
	require.NoError(t, store.CreateSession(ctx, b))

	require.NoError(t, store.ReplaceExpenses(ctx, a.ID, []models.ExpenseItem{
		models.NewExpenseItem(models.ExpenseAccurate, "Rent", decimal.NewFromInt(1)),
	}))

	got, err := store.GetSession(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", got.Profile.Name)
	assert.False(t, got.ExpensesAccepted)
	assert.Empty(t, got.Expenses)
}

func TestSQLiteStore_Recommendations(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := &models.Session{Profile: testProfile()}
	require.NoError(t, store.CreateSession(ctx, session))

	for _, key := range []string{"gold", "sic"} {
		rec := &models.SavedRecommendation{
			SessionID:       session.ID,
			Remaining:       decimal.NewFromInt(30000),
			CategoryKey:     key,
			SuggestedAmount: decimal.NewFromInt(7500),
			CreatedAt:       1700000000,
		}
		require.NoError(t, store.SaveRecommendation(ctx, rec))
		assert.NotEmpty(t, rec.ID)
	}

	recs, err := store.ListRecommendations(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "gold", recs[0].CategoryKey)
	assert.Equal(t, "sic", recs[1].CategoryKey)
	assert.True(t, recs[0].SuggestedAmount.Equal(decimal.NewFromInt(7500)))
	assert.True(t, recs[0].Remaining.Equal(decimal.NewFromInt(30000)))

	t.Run("unknown session", func(t *testing.T) {
		err := store.SaveRecommendation(ctx, &models.SavedRecommendation{
			SessionID:       "nonexistent-id",
			Remaining:       decimal.Zero,
			CategoryKey:     "gold",
			SuggestedAmount: decimal.Zero,
		})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("empty list", func(t *testing.T) {
		other := &models.Session{Profile: testProfile()}
		require.NoError(t, store.CreateSession(ctx, other))

		recs, err := store.ListRecommendations(ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
