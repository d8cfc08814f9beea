package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// SettlementServiceName is the fully-qualified name of the settlement service.
const SettlementServiceName = "settleup.v1.SettlementService"

// Procedure paths, used for routing and in interceptors.
const (
	ComputeBalancesProcedure    = "/settleup.v1.SettlementService/ComputeBalances"
	ComputeSettlementsProcedure = "/settleup.v1.SettlementService/ComputeSettlements"
	SettleBalancesProcedure     = "/settleup.v1.SettlementService/SettleBalances"
	GetPlanProcedure            = "/settleup.v1.SettlementService/GetPlan"
	ListPlansProcedure          = "/settleup.v1.SettlementService/ListPlans"
	DeletePlanProcedure         = "/settleup.v1.SettlementService/DeletePlan"
	SummarizeProcedure          = "/settleup.v1.SettlementService/Summarize"
)

// SettlementServiceHandler is implemented by SettlementService.
type SettlementServiceHandler interface {
	ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error)
	ComputeSettlements(context.Context, *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error)
	SettleBalances(context.Context, *connect.Request[SettleBalancesRequest]) (*connect.Response[SettleBalancesResponse], error)
	GetPlan(context.Context, *connect.Request[GetPlanRequest]) (*connect.Response[GetPlanResponse], error)
	ListPlans(context.Context, *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error)
	DeletePlan(context.Context, *connect.Request[DeletePlanRequest]) (*connect.Response[DeletePlanResponse], error)
	Summarize(context.Context, *connect.Request[SummarizeRequest]) (*connect.Response[SummarizeResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	handlers := map[string]http.Handler{
		ComputeBalancesProcedure:    connect.NewUnaryHandler(ComputeBalancesProcedure, svc.ComputeBalances, opts...),
		ComputeSettlementsProcedure: connect.NewUnaryHandler(ComputeSettlementsProcedure, svc.ComputeSettlements, opts...),
		SettleBalancesProcedure:     connect.NewUnaryHandler(SettleBalancesProcedure, svc.SettleBalances, opts...),
		GetPlanProcedure:            connect.NewUnaryHandler(GetPlanProcedure, svc.GetPlan, opts...),
		ListPlansProcedure:          connect.NewUnaryHandler(ListPlansProcedure, svc.ListPlans, opts...),
		DeletePlanProcedure:         connect.NewUnaryHandler(DeletePlanProcedure, svc.DeletePlan, opts...),
		SummarizeProcedure:          connect.NewUnaryHandler(SummarizeProcedure, svc.Summarize, opts...),
	}

	return "/" + SettlementServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// SettlementServiceClient calls the settlement service over Connect with JSON bodies.
type SettlementServiceClient struct {
	computeBalances    *connect.Client[ComputeBalancesRequest, ComputeBalancesResponse]
	computeSettlements *connect.Client[ComputeSettlementsRequest, ComputeSettlementsResponse]
	settleBalances     *connect.Client[SettleBalancesRequest, SettleBalancesResponse]
	getPlan            *connect.Client[GetPlanRequest, GetPlanResponse]
	listPlans          *connect.Client[ListPlansRequest, ListPlansResponse]
	deletePlan         *connect.Client[DeletePlanRequest, DeletePlanResponse]
	summarize          *connect.Client[SummarizeRequest, SummarizeResponse]
}

// NewSettlementServiceClient constructs a client for the service at baseURL
// (e.g. http://localhost:8080).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &SettlementServiceClient{
		computeBalances:    connect.NewClient[ComputeBalancesRequest, ComputeBalancesResponse](httpClient, baseURL+ComputeBalancesProcedure, opts...),
		computeSettlements: connect.NewClient[ComputeSettlementsRequest, ComputeSettlementsResponse](httpClient, baseURL+ComputeSettlementsProcedure, opts...),
		settleBalances:     connect.NewClient[SettleBalancesRequest, SettleBalancesResponse](httpClient, baseURL+SettleBalancesProcedure, opts...),
		getPlan:            connect.NewClient[GetPlanRequest, GetPlanResponse](httpClient, baseURL+GetPlanProcedure, opts...),
		listPlans:          connect.NewClient[ListPlansRequest, ListPlansResponse](httpClient, baseURL+ListPlansProcedure, opts...),
		deletePlan:         connect.NewClient[DeletePlanRequest, DeletePlanResponse](httpClient, baseURL+DeletePlanProcedure, opts...),
		summarize:          connect.NewClient[SummarizeRequest, SummarizeResponse](httpClient, baseURL+SummarizeProcedure, opts...),
	}
}

func (c *SettlementServiceClient) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	return c.computeBalances.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ComputeSettlements(ctx context.Context, req *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error) {
	return c.computeSettlements.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) SettleBalances(ctx context.Context, req *connect.Request[SettleBalancesRequest]) (*connect.Response[SettleBalancesResponse], error) {
	return c.settleBalances.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) GetPlan(ctx context.Context, req *connect.Request[GetPlanRequest]) (*connect.Response[GetPlanResponse], error) {
	return c.getPlan.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) ListPlans(ctx context.Context, req *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error) {
	return c.listPlans.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) DeletePlan(ctx context.Context, req *connect.Request[DeletePlanRequest]) (*connect.Response[DeletePlanResponse], error) {
	return c.deletePlan.CallUnary(ctx, req)
}

func (c *SettlementServiceClient) Summarize(ctx context.Context, req *connect.Request[SummarizeRequest]) (*connect.Response[SummarizeResponse], error) {
	return c.summarize.CallUnary(ctx, req)
}
