// Package plannerconnect binds the finplanner.v1.PlannerService API to
// connect handlers and clients.
package plannerconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	planner "github.com/mmynk/finplanner/pkg/planner"
)

const (
	// PlannerServiceName is the fully-qualified name of the PlannerService service.
	PlannerServiceName = "finplanner.v1.PlannerService"
)

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	PlannerServiceAcceptProfileProcedure            = "/finplanner.v1.PlannerService/AcceptProfile"
	PlannerServiceAcceptExpensesProcedure           = "/finplanner.v1.PlannerService/AcceptExpenses"
	PlannerServiceComputeRecommendationsProcedure   = "/finplanner.v1.PlannerService/ComputeRecommendations"
	PlannerServiceSaveRecommendationProcedure       = "/finplanner.v1.PlannerService/SaveRecommendation"
	PlannerServiceListSavedRecommendationsProcedure = "/finplanner.v1.PlannerService/ListSavedRecommendations"
	PlannerServiceGetCatalogProcedure               = "/finplanner.v1.PlannerService/GetCatalog"
)

// PlannerServiceClient is a client for the finplanner.v1.PlannerService service.
type PlannerServiceClient interface {
	AcceptProfile(context.Context, *connect.Request[planner.AcceptProfileRequest]) (*connect.Response[planner.AcceptProfileResponse], error)
	AcceptExpenses(context.Context, *connect.Request[planner.AcceptExpensesRequest]) (*connect.Response[planner.AcceptExpensesResponse], error)
	ComputeRecommendations(context.Context, *connect.Request[planner.ComputeRecommendationsRequest]) (*connect.Response[planner.ComputeRecommendationsResponse], error)
	SaveRecommendation(context.Context, *connect.Request[planner.SaveRecommendationRequest]) (*connect.Response[planner.SaveRecommendationResponse], error)
	ListSavedRecommendations(context.Context, *connect.Request[planner.ListSavedRecommendationsRequest]) (*connect.Response[planner.ListSavedRecommendationsResponse], error)
	GetCatalog(context.Context, *connect.Request[planner.GetCatalogRequest]) (*connect.Response[planner.GetCatalogResponse], error)
}

// NewPlannerServiceClient constructs a client for the finplanner.v1.PlannerService service.
// Requests use the JSON codec; callers may append further options.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewPlannerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PlannerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{name: "json"})}, opts...)
	return &plannerServiceClient{
		acceptProfile: connect.NewClient[planner.AcceptProfileRequest, planner.AcceptProfileResponse](
			httpClient, baseURL+PlannerServiceAcceptProfileProcedure, opts...),
		acceptExpenses: connect.NewClient[planner.AcceptExpensesRequest, planner.AcceptExpensesResponse](
			httpClient, baseURL+PlannerServiceAcceptExpensesProcedure, opts...),
		computeRecommendations: connect.NewClient[planner.ComputeRecommendationsRequest, planner.ComputeRecommendationsResponse](
			httpClient, baseURL+PlannerServiceComputeRecommendationsProcedure, opts...),
		saveRecommendation: connect.NewClient[planner.SaveRecommendationRequest, planner.SaveRecommendationResponse](
			httpClient, baseURL+PlannerServiceSaveRecommendationProcedure, opts...),
		listSavedRecommendations: connect.NewClient[planner.ListSavedRecommendationsRequest, planner.ListSavedRecommendationsResponse](
			httpClient, baseURL+PlannerServiceListSavedRecommendationsProcedure, opts...),
		getCatalog: connect.NewClient[planner.GetCatalogRequest, planner.GetCatalogResponse](
			httpClient, baseURL+PlannerServiceGetCatalogProcedure, opts...),
	}
}

type plannerServiceClient struct {
	acceptProfile            *connect.Client[planner.AcceptProfileRequest, planner.AcceptProfileResponse]
	acceptExpenses           *connect.Client[planner.AcceptExpensesRequest, planner.AcceptExpensesResponse]
	computeRecommendations   *connect.Client[planner.ComputeRecommendationsRequest, planner.ComputeRecommendationsResponse]
	saveRecommendation       *connect.Client[planner.SaveRecommendationRequest, planner.SaveRecommendationResponse]
	listSavedRecommendations *connect.Client[planner.ListSavedRecommendationsRequest, planner.ListSavedRecommendationsResponse]
	getCatalog               *connect.Client[planner.GetCatalogRequest, planner.GetCatalogResponse]
}

func (c *plannerServiceClient) AcceptProfile(ctx context.Context, req *connect.Request[planner.AcceptProfileRequest]) (*connect.Response[planner.AcceptProfileResponse], error) {
	return c.acceptProfile.CallUnary(ctx, req)
}

func (c *plannerServiceClient) AcceptExpenses(ctx context.Context, req *connect.Request[planner.AcceptExpensesRequest]) (*connect.Response[planner.AcceptExpensesResponse], error) {
	return c.acceptExpenses.CallUnary(ctx, req)
}

func (c *plannerServiceClient) ComputeRecommendations(ctx context.Context, req *connect.Request[planner.ComputeRecommendationsRequest]) (*connect.Response[planner.ComputeRecommendationsResponse], error) {
	return c.computeRecommendations.CallUnary(ctx, req)
}

func (c *plannerServiceClient) SaveRecommendation(ctx context.Context, req *connect.Request[planner.SaveRecommendationRequest]) (*connect.Response[planner.SaveRecommendationResponse], error) {
	return c.saveRecommendation.CallUnary(ctx, req)
}

func (c *plannerServiceClient) ListSavedRecommendations(ctx context.Context, req *connect.Request[planner.ListSavedRecommendationsRequest]) (*connect.Response[planner.ListSavedRecommendationsResponse], error) {
	return c.listSavedRecommendations.CallUnary(ctx, req)
}

func (c *plannerServiceClient) GetCatalog(ctx context.Context, req *connect.Request[planner.GetCatalogRequest]) (*connect.Response[planner.GetCatalogResponse], error) {
	return c.getCatalog.CallUnary(ctx, req)
}

// PlannerServiceHandler is an implementation of the finplanner.v1.PlannerService service.
type PlannerServiceHandler interface {
	AcceptProfile(context.Context, *connect.Request[planner.AcceptProfileRequest]) (*connect.Response[planner.AcceptProfileResponse], error)
	AcceptExpenses(context.Context, *connect.Request[planner.AcceptExpensesRequest]) (*connect.Response[planner.AcceptExpensesResponse], error)
	ComputeRecommendations(context.Context, *connect.Request[planner.ComputeRecommendationsRequest]) (*connect.Response[planner.ComputeRecommendationsResponse], error)
	SaveRecommendation(context.Context, *connect.Request[planner.SaveRecommendationRequest]) (*connect.Response[planner.SaveRecommendationResponse], error)
	ListSavedRecommendations(context.Context, *connect.Request[planner.ListSavedRecommendationsRequest]) (*connect.Response[planner.ListSavedRecommendationsResponse], error)
	GetCatalog(context.Context, *connect.Request[planner.GetCatalogRequest]) (*connect.Response[planner.GetCatalogResponse], error)
}

// NewPlannerServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// The handler accepts JSON bodies ("application/json"); binary protobuf is not supported.
func NewPlannerServiceHandler(svc PlannerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{name: "json"}),
		connect.WithCodec(jsonCodec{name: "json; charset=utf-8"}),
	}, opts...)

	acceptProfileHandler := connect.NewUnaryHandler(
		PlannerServiceAcceptProfileProcedure, svc.AcceptProfile, opts...)
	acceptExpensesHandler := connect.NewUnaryHandler(
		PlannerServiceAcceptExpensesProcedure, svc.AcceptExpenses, opts...)
	computeRecommendationsHandler := connect.NewUnaryHandler(
		PlannerServiceComputeRecommendationsProcedure, svc.ComputeRecommendations, opts...)
	saveRecommendationHandler := connect.NewUnaryHandler(
		PlannerServiceSaveRecommendationProcedure, svc.SaveRecommendation, opts...)
	listSavedRecommendationsHandler := connect.NewUnaryHandler(
		PlannerServiceListSavedRecommendationsProcedure, svc.ListSavedRecommendations, opts...)
	getCatalogHandler := connect.NewUnaryHandler(
		PlannerServiceGetCatalogProcedure, svc.GetCatalog, opts...)

	return "/finplanner.v1.PlannerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PlannerServiceAcceptProfileProcedure:
			acceptProfileHandler.ServeHTTP(w, r)
		case PlannerServiceAcceptExpensesProcedure:
			acceptExpensesHandler.ServeHTTP(w, r)
		case PlannerServiceComputeRecommendationsProcedure:
			computeRecommendationsHandler.ServeHTTP(w, r)
		case PlannerServiceSaveRecommendationProcedure:
			saveRecommendationHandler.ServeHTTP(w, r)
		case PlannerServiceListSavedRecommendationsProcedure:
			listSavedRecommendationsHandler.ServeHTTP(w, r)
		case PlannerServiceGetCatalogProcedure:
			getCatalogHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedPlannerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPlannerServiceHandler struct{}

func (UnimplementedPlannerServiceHandler) AcceptProfile(context.Context, *connect.Request[planner.AcceptProfileRequest]) (*connect.Response[planner.AcceptProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.AcceptProfile is not implemented"))
}

func (UnimplementedPlannerServiceHandler) AcceptExpenses(context.Context, *connect.Request[planner.AcceptExpensesRequest]) (*connect.Response[planner.AcceptExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.AcceptExpenses is not implemented"))
}

func (UnimplementedPlannerServiceHandler) ComputeRecommendations(context.Context, *connect.Request[planner.ComputeRecommendationsRequest]) (*connect.Response[planner.ComputeRecommendationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.ComputeRecommendations is not implemented"))
}

func (UnimplementedPlannerServiceHandler) SaveRecommendation(context.Context, *connect.Request[planner.SaveRecommendationRequest]) (*connect.Response[planner.SaveRecommendationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.SaveRecommendation is not implemented"))
}

func (UnimplementedPlannerServiceHandler) ListSavedRecommendations(context.Context, *connect.Request[planner.ListSavedRecommendationsRequest]) (*connect.Response[planner.ListSavedRecommendationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.ListSavedRecommendations is not implemented"))
}

func (UnimplementedPlannerServiceHandler) GetCatalog(context.Context, *connect.Request[planner.GetCatalogRequest]) (*connect.Response[planner.GetCatalogResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("finplanner.v1.PlannerService.GetCatalog is not implemented"))
}
