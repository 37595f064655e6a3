package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/finplanner/internal/auth"
	"github.com/mmynk/finplanner/internal/calculator"
	"github.com/mmynk/finplanner/internal/catalog"
	"github.com/mmynk/finplanner/internal/middleware"
	"github.com/mmynk/finplanner/internal/models"
	"github.com/mmynk/finplanner/internal/storage"
	planner "github.com/mmynk/finplanner/pkg/planner"
	"github.com/mmynk/finplanner/pkg/planner/plannerconnect"
)

// PlannerService implements the Connect PlannerService.
//
// Calls must follow the order profile → expenses → recommendations. The
// session for each call comes from the handle validated by
// middleware.RequireSession; the service itself holds no per-user state.
type PlannerService struct {
	plannerconnect.UnimplementedPlannerServiceHandler
	store   storage.Store
	catalog *catalog.Catalog
	handles *auth.HandleManager
	picker  calculator.Picker
}

// Option configures a PlannerService.
type Option func(*PlannerService)

// WithPicker sets the random source used to choose the featured advertisement.
func WithPicker(p calculator.Picker) Option {
	return func(s *PlannerService) { s.picker = p }
}

// NewPlannerService creates a new PlannerService with the given storage backend.
func NewPlannerService(store storage.Store, cat *catalog.Catalog, handles *auth.HandleManager, opts ...Option) *PlannerService {
	s := &PlannerService{
		store:   store,
		catalog: cat,
		handles: handles,
		picker:  calculator.RandomPicker{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PublicProcedures lists the procedures callable without a session handle.
func PublicProcedures() []string {
	return []string{
		plannerconnect.PlannerServiceAcceptProfileProcedure,
		plannerconnect.PlannerServiceGetCatalogProcedure,
	}
}

// AcceptProfile validates the basic details and starts a new session.
func (s *PlannerService) AcceptProfile(ctx context.Context, req *connect.Request[planner.AcceptProfileRequest]) (*connect.Response[planner.AcceptProfileResponse], error) {
	profile, err := parseProfile(req.Msg.Profile)
	if err != nil {
		return nil, toConnectError(err)
	}

	session := &models.Session{Profile: profile}
	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("AcceptProfile failed to create session", "error", err)
		return nil, toConnectError(err)
	}

	handle, err := s.handles.Issue(session.ID)
	if err != nil {
		slog.Error("Failed to issue session handle", "session_id", session.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Profile accepted", "session_id", session.ID, "age", profile.Age)
	return connect.NewResponse(&planner.AcceptProfileResponse{
		Handle:    handle,
		SessionID: session.ID,
	}), nil
}

// AcceptExpenses stores the session's expenses, replacing any earlier submission.
func (s *PlannerService) AcceptExpenses(ctx context.Context, req *connect.Request[planner.AcceptExpensesRequest]) (*connect.Response[planner.AcceptExpensesResponse], error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	items, total, err := acceptableExpenses(req.Msg.Accurate, req.Msg.Approximate)
	if err != nil {
		return nil, toConnectError(err)
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, s.logStoreError("AcceptExpenses", sessionID, err)
	}
	if err := s.store.ReplaceExpenses(ctx, sessionID, items); err != nil {
		return nil, s.logStoreError("AcceptExpenses", sessionID, err)
	}

	remaining := calculator.ComputeRemaining(session.Profile.MonthlySalary, total)
	slog.Debug("Expenses accepted",
		"session_id", sessionID,
		"items", len(items),
		"total_expenses", total.String(),
		"remaining", remaining.String(),
	)

	return connect.NewResponse(&planner.AcceptExpensesResponse{
		TotalExpenses:   total.String(),
		RemainingSalary: remaining.String(),
	}), nil
}

// ComputeRecommendations runs the recommendation engine for the session.
func (s *PlannerService) ComputeRecommendations(ctx context.Context, req *connect.Request[planner.ComputeRecommendationsRequest]) (*connect.Response[planner.ComputeRecommendationsResponse], error) {
	session, err := s.readySession(ctx, "ComputeRecommendations")
	if err != nil {
		return nil, err
	}

	result := calculator.Recommend(session.Profile, session.Expenses, s.catalog)
	resp := RecommendationsResponse(result)
	resp.FeaturedAd = featuredAd(result, s.picker)

	slog.Info("Recommendations computed",
		"session_id", session.ID,
		"remaining", result.Remaining.String(),
		"investments", len(result.Investments),
	)
	return connect.NewResponse(resp), nil
}

// SaveRecommendation records one investment suggestion the user wants to keep.
func (s *PlannerService) SaveRecommendation(ctx context.Context, req *connect.Request[planner.SaveRecommendationRequest]) (*connect.Response[planner.SaveRecommendationResponse], error) {
	key := strings.TrimSpace(req.Msg.InvestmentType)
	if _, ok := s.catalog.Category(key); !ok {
		return nil, toConnectError(models.NewValidationError("investment_type", "unknown investment type %q", req.Msg.InvestmentType))
	}
	amount, numeric, err := parseAmount(req.Msg.AmountSuggested)
	if !numeric {
		return nil, toConnectError(models.NewValidationError("amount_suggested", "must be a number, got %q", req.Msg.AmountSuggested))
	}
	if err != nil {
		return nil, toConnectError(models.NewValidationError("amount_suggested", "%s", amountRangeMessage))
	}

	session, err := s.readySession(ctx, "SaveRecommendation")
	if err != nil {
		return nil, err
	}

	total := calculator.SummarizeExpenses(session.Expenses)
	rec := &models.SavedRecommendation{
		SessionID:       session.ID,
		Remaining:       calculator.ComputeRemaining(session.Profile.MonthlySalary, total),
		CategoryKey:     key,
		SuggestedAmount: amount,
	}
	if err := s.store.SaveRecommendation(ctx, rec); err != nil {
		return nil, s.logStoreError("SaveRecommendation", session.ID, err)
	}

	slog.Info("Recommendation saved", "session_id", session.ID, "recommendation_id", rec.ID, "type", key)
	return connect.NewResponse(&planner.SaveRecommendationResponse{RecommendationID: rec.ID}), nil
}

// ListSavedRecommendations returns the session's saved recommendations, oldest first.
func (s *PlannerService) ListSavedRecommendations(ctx context.Context, req *connect.Request[planner.ListSavedRecommendationsRequest]) (*connect.Response[planner.ListSavedRecommendationsResponse], error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		return nil, s.logStoreError("ListSavedRecommendations", sessionID, err)
	}

	recs, err := s.store.ListRecommendations(ctx, sessionID)
	if err != nil {
		return nil, s.logStoreError("ListSavedRecommendations", sessionID, err)
	}

	resp := &planner.ListSavedRecommendationsResponse{
		Recommendations: make([]planner.SavedRecommendation, len(recs)),
	}
	for i, rec := range recs {
		resp.Recommendations[i] = toSavedRecommendation(rec)
	}
	return connect.NewResponse(resp), nil
}

// GetCatalog returns the active catalog for presentation layers.
func (s *PlannerService) GetCatalog(ctx context.Context, req *connect.Request[planner.GetCatalogRequest]) (*connect.Response[planner.GetCatalogResponse], error) {
	return connect.NewResponse(CatalogResponse(s.catalog)), nil
}

// readySession loads the caller's session and checks that expenses were submitted.
func (s *PlannerService) readySession(ctx context.Context, op string) (*models.Session, error) {
	sessionID, err := sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, s.logStoreError(op, sessionID, err)
	}
	if !session.ExpensesAccepted {
		return nil, toConnectError(fmt.Errorf("expenses have not been submitted: %w", models.ErrInvalidState))
	}
	return session, nil
}

func (s *PlannerService) logStoreError(op, sessionID string, err error) *connect.Error {
	connectErr := toConnectError(err)
	if connectErr.Code() == connect.CodeInternal {
		slog.Error(op+" failed", "session_id", sessionID, "error", err)
	}
	return connectErr
}

func sessionFromContext(ctx context.Context) (string, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingHandle)
	}
	return sessionID, nil
}
