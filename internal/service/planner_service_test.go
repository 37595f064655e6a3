package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/finplanner/internal/auth"
	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/middleware"
	"github.com/mmynk/finplanner/internal/storage/sqlite"
	planner "github.com/mmynk/finplanner/pkg/planner"
	"github.com/mmynk/finplanner/pkg/planner/plannerconnect"
)

// firstPicker always picks index 0.
type firstPicker struct{}

func (firstPicker) IntN(int) int { return 0 }

// lastPicker always picks the last index.
type lastPicker struct{}

func (lastPicker) IntN(n int) int { return n - 1 }

type testEnv struct {
	client  plannerconnect.PlannerServiceClient
	handles *auth.HandleManager
}

// setupTestServer starts the planner service behind the session interceptor
// on an httptest server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")

	handles := auth.NewHandleManager("test-secret", time.Hour)
	svc := NewPlannerService(store, catalog.Default(), handles, opts...)

	path, handler := plannerconnect.NewPlannerServiceHandler(svc,
		connect.WithInterceptors(middleware.RequireSession(handles, PublicProcedures()...)),
	)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		client:  plannerconnect.NewPlannerServiceClient(http.DefaultClient, server.URL),
		handles: handles,
	}
}

func withHandle[T any](msg *T, handle string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+handle)
	return req
}

func (e *testEnv) startSession(t *testing.T, salary string) string {
	t.Helper()
	resp, err := e.client.AcceptProfile(context.Background(), connect.NewRequest(&planner.AcceptProfileRequest{
		Profile: planner.Profile{Name: "Asha", Age: "30", MonthlySalary: salary},
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Handle)
	return resp.Msg.Handle
}

func (e *testEnv) submitExpenses(t *testing.T, handle string, amounts ...string) *planner.AcceptExpensesResponse {
	t.Helper()
	req := &planner.AcceptExpensesRequest{}
	for _, a := range amounts {
		req.Accurate = append(req.Accurate, planner.ExpenseItem{Type: "Rent", Amount: a})
	}
	resp, err := e.client.AcceptExpenses(context.Background(), withHandle(req, handle))
	require.NoError(t, err)
	return resp.Msg
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}

func TestAcceptProfile(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.AcceptProfile(context.Background(), connect.NewRequest(&planner.AcceptProfileRequest{
		Profile: planner.Profile{Name: "  Asha  ", Age: "30", MonthlySalary: "50000"},
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Msg.SessionID)

	sessionID, err := env.handles.Validate(resp.Msg.Handle)
	require.NoError(t, err)
	assert.Equal(t, resp.Msg.SessionID, sessionID)
}

func TestAcceptProfile_Validation(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name    string
		profile planner.Profile
	}{
		{"missing name", planner.Profile{Name: "", Age: "30", MonthlySalary: "50000"}},
		{"blank name", planner.Profile{Name: "   ", Age: "30", MonthlySalary: "50000"}},
		{"missing age", planner.Profile{Name: "Asha", MonthlySalary: "50000"}},
		{"non-numeric age", planner.Profile{Name: "Asha", Age: "thirty", MonthlySalary: "50000"}},
		{"zero age", planner.Profile{Name: "Asha", Age: "0", MonthlySalary: "50000"}},
		{"negative age", planner.Profile{Name: "Asha", Age: "-4", MonthlySalary: "50000"}},
		{"missing salary", planner.Profile{Name: "Asha", Age: "30"}},
		{"non-numeric salary", planner.Profile{Name: "Asha", Age: "30", MonthlySalary: "lots"}},
		{"negative salary", planner.Profile{Name: "Asha", Age: "30", MonthlySalary: "-1"}},
		{"age over limit", planner.Profile{Name: "Asha", Age: "151", MonthlySalary: "50000"}},
		{"age wider than int32", planner.Profile{Name: "Asha", Age: "4294967297", MonthlySalary: "50000"}},
		{"huge salary exponent", planner.Profile{Name: "Asha", Age: "30", MonthlySalary: "1e99999999"}},
		{"salary too large", planner.Profile{Name: "Asha", Age: "30", MonthlySalary: "1000000000000001"}},
		{"salary too precise", planner.Profile{Name: "Asha", Age: "30", MonthlySalary: "1e-11"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.AcceptProfile(context.Background(), connect.NewRequest(&planner.AcceptProfileRequest{
				Profile: tt.profile,
			}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestAcceptProfile_ZeroSalary(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "0")

	got := env.submitExpenses(t, handle, "100")
	assert.Equal(t, "100", got.TotalExpenses)
	assert.Equal(t, "-100", got.RemainingSalary)
}

func TestAcceptExpenses(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "50000")

	resp, err := env.client.AcceptExpenses(context.Background(), withHandle(&planner.AcceptExpensesRequest{
		Accurate: []planner.ExpenseItem{
			{Type: "Rent", Amount: "12000"},
			{Type: "EMI", Amount: ""},
		},
		Approximate: []planner.ExpenseItem{
			{Type: "Food", Amount: "8000"},
			{Type: "Misc", Amount: "n/a"},
		},
	}, handle))
	require.NoError(t, err)
	assert.Equal(t, "20000", resp.Msg.TotalExpenses)
	assert.Equal(t, "30000", resp.Msg.RemainingSalary)
}

func TestAcceptExpenses_Validation(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "50000")

	tests := []struct {
		name string
		req  *planner.AcceptExpensesRequest
	}{
		{"no items", &planner.AcceptExpensesRequest{}},
		{"all blank", &planner.AcceptExpensesRequest{
			Accurate: []planner.ExpenseItem{{Type: "Rent", Amount: ""}},
		}},
		{"zero total", &planner.AcceptExpensesRequest{
			Accurate:    []planner.ExpenseItem{{Type: "Rent", Amount: "0"}},
			Approximate: []planner.ExpenseItem{{Type: "Food", Amount: "0.00"}},
		}},
		{"negative amount", &planner.AcceptExpensesRequest{
			Approximate: []planner.ExpenseItem{{Type: "Refund", Amount: "-50"}},
		}},
		{"huge exponent", &planner.AcceptExpensesRequest{
			Accurate: []planner.ExpenseItem{{Type: "Rent", Amount: "1e99999999"}, {Type: "Food", Amount: "1"}},
		}},
		{"tiny exponent", &planner.AcceptExpensesRequest{
			Approximate: []planner.ExpenseItem{{Type: "Food", Amount: "1e-99999999"}},
		}},
		{"amount too large", &planner.AcceptExpensesRequest{
			Accurate: []planner.ExpenseItem{{Type: "Rent", Amount: "-1000000000000001"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.AcceptExpenses(context.Background(), withHandle(tt.req, handle))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestAcceptExpenses_ReplacesPreviousSubmission(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "50000")

	env.submitExpenses(t, handle, "12000", "8000")
	got := env.submitExpenses(t, handle, "1000")
	assert.Equal(t, "1000", got.TotalExpenses)
	assert.Equal(t, "49000", got.RemainingSalary)

	resp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	require.NoError(t, err)
	assert.Equal(t, "1000", resp.Msg.User.TotalExpenses)
	assert.Equal(t, "49000", resp.Msg.RemainingSalary)
}

func TestSessionRequired(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.client.AcceptExpenses(ctx, connect.NewRequest(&planner.AcceptExpensesRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.client.ComputeRecommendations(ctx, withHandle(&planner.ComputeRecommendationsRequest{}, "garbage"))
	assertCode(t, err, connect.CodeUnauthenticated)

	other := auth.NewHandleManager("another-secret", time.Hour)
	forged, err := other.Issue("some-session")
	require.NoError(t, err)
	_, err = env.client.ListSavedRecommendations(ctx, withHandle(&planner.ListSavedRecommendationsRequest{}, forged))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestUnknownSession(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	// A well-signed handle for a session that was never created
	handle, err := env.handles.Issue("no-such-session")
	require.NoError(t, err)

	_, err = env.client.AcceptExpenses(ctx, withHandle(&planner.AcceptExpensesRequest{
		Accurate: []planner.ExpenseItem{{Type: "Rent", Amount: "100"}},
	}, handle))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.client.ComputeRecommendations(ctx, withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.client.ListSavedRecommendations(ctx, withHandle(&planner.ListSavedRecommendationsRequest{}, handle))
	assertCode(t, err, connect.CodeNotFound)
}

func TestComputeRecommendations_RequiresExpenses(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "50000")

	_, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	assertCode(t, err, connect.CodeFailedPrecondition)

	_, err = env.client.SaveRecommendation(context.Background(), withHandle(&planner.SaveRecommendationRequest{
		InvestmentType:  "gold",
		AmountSuggested: "7500",
	}, handle))
	assertCode(t, err, connect.CodeFailedPrecondition)
}

func TestComputeRecommendations_PositiveBalance(t *testing.T) {
	env := setupTestServer(t, WithPicker(firstPicker{}))
	handle := env.startSession(t, "50000")
	env.submitExpenses(t, handle, "12000", "8000")

	resp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	require.NoError(t, err)
	msg := resp.Msg

	assert.Equal(t, "Asha", msg.User.Name)
	assert.Equal(t, int32(30), msg.User.Age)
	assert.Equal(t, "50000", msg.User.MonthlySalary)
	assert.Equal(t, "20000", msg.User.TotalExpenses)
	assert.Equal(t, "30000", msg.RemainingSalary)

	wantTotals := map[int32]string{3: "90000", 5: "150000", 12: "360000"}
	require.Len(t, msg.SavingsPlans, len(wantTotals))
	for horizon, total := range wantTotals {
		plan, ok := msg.SavingsPlans[horizon]
		require.True(t, ok, "missing plan for %d months", horizon)
		assert.Equal(t, total, plan.Total)
		assert.Equal(t, "large", plan.Category)
		assert.NotEmpty(t, plan.Products)
	}

	require.Len(t, msg.Investments, 4)
	wantTypes := []string{"loans", "sic", "gold", "silver"}
	for i, inv := range msg.Investments {
		assert.Equal(t, wantTypes[i], inv.Type)
		assert.Equal(t, "7500", inv.SuggestedAmount)
		assert.NotEmpty(t, inv.Title)
		assert.NotEmpty(t, inv.Ads)
	}

	require.NotNil(t, msg.FeaturedAd)
	assert.Equal(t, "loans", msg.FeaturedAd.Type)
	assert.Equal(t, msg.Investments[0].Ads[0], msg.FeaturedAd.Text)
}

func TestComputeRecommendations_FeaturedAdUsesPicker(t *testing.T) {
	env := setupTestServer(t, WithPicker(lastPicker{}))
	handle := env.startSession(t, "50000")
	env.submitExpenses(t, handle, "10000")

	resp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	require.NoError(t, err)

	last := resp.Msg.Investments[len(resp.Msg.Investments)-1]
	require.NotNil(t, resp.Msg.FeaturedAd)
	assert.Equal(t, last.Type, resp.Msg.FeaturedAd.Type)
	assert.Equal(t, last.Ads[len(last.Ads)-1], resp.Msg.FeaturedAd.Text)
}

func TestComputeRecommendations_NegativeBalance(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "20000")

	got := env.submitExpenses(t, handle, "25000")
	assert.Equal(t, "-5000", got.RemainingSalary)

	resp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, handle))
	require.NoError(t, err)
	msg := resp.Msg

	assert.Equal(t, "-5000", msg.RemainingSalary)
	assert.Empty(t, msg.Investments)
	assert.Nil(t, msg.FeaturedAd)

	wantTotals := map[int32]string{3: "-15000", 5: "-25000", 12: "-60000"}
	for horizon, total := range wantTotals {
		plan := msg.SavingsPlans[horizon]
		assert.Equal(t, total, plan.Total)
		assert.Equal(t, "small", plan.Category)
	}
}

func TestComputeRecommendations_Idempotent(t *testing.T) {
	env := setupTestServer(t, WithPicker(firstPicker{}))
	handle := env.startSession(t, "42000")
	env.submitExpenses(t, handle, "17000.50")

	req := func() *planner.ComputeRecommendationsResponse {
		resp, err := env.client.ComputeRecommendations(context.Background(),
			withHandle(&planner.ComputeRecommendationsRequest{}, handle))
		require.NoError(t, err)
		return resp.Msg
	}
	assert.Equal(t, req(), req())
}

func TestSessionsAreIsolated(t *testing.T) {
	env := setupTestServer(t)

	rich := env.startSession(t, "90000")
	poor := env.startSession(t, "10000")

	submit := func(handle, amount string) error {
		_, err := env.client.AcceptExpenses(context.Background(), withHandle(&planner.AcceptExpensesRequest{
			Accurate: []planner.ExpenseItem{{Type: "Rent", Amount: amount}},
		}, handle))
		return err
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = submit(rich, "10000")
	}()
	go func() {
		defer wg.Done()
		errs[1] = submit(poor, "15000")
	}()
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	richResp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, rich))
	require.NoError(t, err)
	poorResp, err := env.client.ComputeRecommendations(context.Background(),
		withHandle(&planner.ComputeRecommendationsRequest{}, poor))
	require.NoError(t, err)

	assert.Equal(t, "80000", richResp.Msg.RemainingSalary)
	assert.Len(t, richResp.Msg.Investments, 4)
	assert.Equal(t, "-5000", poorResp.Msg.RemainingSalary)
	assert.Empty(t, poorResp.Msg.Investments)
}

func TestSaveAndListRecommendations(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	handle := env.startSession(t, "50000")
	env.submitExpenses(t, handle, "20000")

	for _, key := range []string{"gold", "sic"} {
		resp, err := env.client.SaveRecommendation(ctx, withHandle(&planner.SaveRecommendationRequest{
			InvestmentType:  key,
			AmountSuggested: "7500",
		}, handle))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Msg.RecommendationID)
	}

	list, err := env.client.ListSavedRecommendations(ctx, withHandle(&planner.ListSavedRecommendationsRequest{}, handle))
	require.NoError(t, err)
	require.Len(t, list.Msg.Recommendations, 2)
	assert.Equal(t, "gold", list.Msg.Recommendations[0].InvestmentType)
	assert.Equal(t, "sic", list.Msg.Recommendations[1].InvestmentType)
	for _, rec := range list.Msg.Recommendations {
		assert.Equal(t, "30000", rec.RemainingSalary)
		assert.Equal(t, "7500", rec.AmountSuggested)
		assert.NotZero(t, rec.CreatedAt)
	}

	// Another session sees none of them
	other := env.startSession(t, "50000")
	otherList, err := env.client.ListSavedRecommendations(ctx, withHandle(&planner.ListSavedRecommendationsRequest{}, other))
	require.NoError(t, err)
	assert.Empty(t, otherList.Msg.Recommendations)
}

func TestSaveRecommendation_Validation(t *testing.T) {
	env := setupTestServer(t)
	handle := env.startSession(t, "50000")
	env.submitExpenses(t, handle, "20000")

	tests := []struct {
		name string
		req  *planner.SaveRecommendationRequest
	}{
		{"unknown type", &planner.SaveRecommendationRequest{InvestmentType: "crypto", AmountSuggested: "10"}},
		{"missing type", &planner.SaveRecommendationRequest{AmountSuggested: "10"}},
		{"bad amount", &planner.SaveRecommendationRequest{InvestmentType: "gold", AmountSuggested: "ten"}},
		{"huge amount", &planner.SaveRecommendationRequest{InvestmentType: "gold", AmountSuggested: "1e99999999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.SaveRecommendation(context.Background(), withHandle(tt.req, handle))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGetCatalog(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.client.GetCatalog(context.Background(), connect.NewRequest(&planner.GetCatalogRequest{}))
	require.NoError(t, err)
	msg := resp.Msg

	assert.Equal(t, "₹", msg.Currency)
	assert.Equal(t, []int32{3, 5, 12}, msg.Horizons)
	assert.Equal(t, "0.25", msg.ContributionFraction)

	require.Len(t, msg.Tiers, 3)
	assert.Equal(t, "small", msg.Tiers[0].Name)
	assert.Equal(t, "15000", msg.Tiers[0].MaxTotal)
	assert.Equal(t, "large", msg.Tiers[2].Name)
	assert.Empty(t, msg.Tiers[2].MaxTotal)

	require.Len(t, msg.Categories, 4)
	assert.Equal(t, "loans", msg.Categories[0].Type)
}
