package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/export"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/internal/summary"
)

const (
	// DefaultListLimit is used when ListPlans is called without a limit.
	DefaultListLimit = 20

	defaultSummaryTimeout = 30 * time.Second
)

// ErrSummariesDisabled is returned by Summarize when no summarizer is configured.
var ErrSummariesDisabled = errors.New("summaries are disabled: no OpenAI API key configured")

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	store          storage.Store
	summarizer     summary.Summarizer
	summaryTimeout time.Duration
	metrics        *middleware.Metrics
	validate       *validator.Validate
}

// Option configures a SettlementService.
type Option func(*SettlementService)

// WithSummarizer enables the Summarize procedure. Each call is bounded by timeout.
func WithSummarizer(s summary.Summarizer, timeout time.Duration) Option {
	return func(svc *SettlementService) {
		svc.summarizer = s
		if timeout > 0 {
			svc.summaryTimeout = timeout
		}
	}
}

// WithMetrics records emitted settlements on m.
func WithMetrics(m *middleware.Metrics) Option {
	return func(svc *SettlementService) {
		svc.metrics = m
	}
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store, opts ...Option) *SettlementService {
	svc := &SettlementService{
		store:          store,
		summaryTimeout: defaultSummaryTimeout,
		validate:       newValidator(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ComputeBalances returns every person's net balance in first-appearance order.
func (s *SettlementService) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	balances := calculator.ComputeBalances(toCalculatorExpenses(req.Msg.Expenses))
	slog.Debug("Balances computed", "expenses", len(req.Msg.Expenses), "people", balances.Len())

	return connect.NewResponse(&ComputeBalancesResponse{
		Balances: balancesToModels(balances),
	}), nil
}

// ComputeSettlements computes balances and the payments that clear them,
// optionally saving the result as a plan.
func (s *SettlementService) ComputeSettlements(ctx context.Context, req *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	balances, settlements := calculator.Settle(toCalculatorExpenses(req.Msg.Expenses))
	s.metrics.ObserveSettlements(len(settlements))

	plan := &models.Plan{
		Note:             req.Msg.Note,
		Balances:         balancesToModels(balances),
		Settlements:      settlementsToModels(settlements),
		TotalTransferred: calculator.TotalTransferred(settlements),
	}

	slog.Info("Settlements computed",
		"expenses", len(req.Msg.Expenses),
		"people", balances.Len(),
		"settlements", len(settlements),
		"total_transferred", plan.TotalTransferred.StringFixed(2),
	)

	resp := &ComputeSettlementsResponse{
		Balances:         plan.Balances,
		Settlements:      plan.Settlements,
		Text:             export.RenderText(plan.Settlements),
		TotalTransferred: models.Money(plan.TotalTransferred),
	}

	if req.Msg.Save {
		if err := s.store.CreatePlan(ctx, plan); err != nil {
			slog.Error("Failed to save plan", "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		slog.Info("Plan saved", "plan_id", plan.ID)
		resp.PlanID = plan.ID
	}

	return connect.NewResponse(resp), nil
}

// SettleBalances runs the matcher on caller-supplied balances.
func (s *SettlementService) SettleBalances(ctx context.Context, req *connect.Request[SettleBalancesRequest]) (*connect.Response[SettleBalancesResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	balances := calculator.NewBalances()
	for _, b := range req.Msg.Balances {
		balances.Add(b.Person, b.Balance)
	}
	if sum := balances.Sum(); sum.Abs().GreaterThan(calculator.Tolerance) {
		slog.Warn("Balances do not net to zero", "sum", sum.String())
	}

	computed := calculator.ComputeSettlements(balances)
	s.metrics.ObserveSettlements(len(computed))

	settlements := settlementsToModels(computed)
	return connect.NewResponse(&SettleBalancesResponse{
		Settlements:      settlements,
		Text:             export.RenderText(settlements),
		TotalTransferred: models.Money(calculator.TotalTransferred(computed)),
	}), nil
}

// GetPlan retrieves a saved plan.
func (s *SettlementService) GetPlan(ctx context.Context, req *connect.Request[GetPlanRequest]) (*connect.Response[GetPlanResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	plan, err := s.store.GetPlan(ctx, req.Msg.PlanID)
	if err != nil {
		return nil, storeError("GetPlan", req.Msg.PlanID, err)
	}

	return connect.NewResponse(&GetPlanResponse{Plan: planToWire(plan)}), nil
}

// ListPlans returns the most recent plans first.
func (s *SettlementService) ListPlans(ctx context.Context, req *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}

	plans, err := s.store.ListPlans(ctx, limit)
	if err != nil {
		slog.Error("Failed to list plans", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&ListPlansResponse{Plans: nonNil(summariesToWire(plans))}), nil
}

// DeletePlan removes a saved plan.
func (s *SettlementService) DeletePlan(ctx context.Context, req *connect.Request[DeletePlanRequest]) (*connect.Response[DeletePlanResponse], error) {
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	if err := s.store.DeletePlan(ctx, req.Msg.PlanID); err != nil {
		return nil, storeError("DeletePlan", req.Msg.PlanID, err)
	}
	slog.Info("Plan deleted", "plan_id", req.Msg.PlanID)

	return connect.NewResponse(&DeletePlanResponse{}), nil
}

// Summarize asks the configured summarizer to describe a settlement.
func (s *SettlementService) Summarize(ctx context.Context, req *connect.Request[SummarizeRequest]) (*connect.Response[SummarizeResponse], error) {
	if s.summarizer == nil {
		return nil, connect.NewError(connect.CodeUnavailable, ErrSummariesDisabled)
	}
	if err := s.check(req.Msg); err != nil {
		return nil, err
	}

	text := req.Msg.Settlements
	if text == "" && len(req.Msg.Expenses) > 0 {
		_, settlements := calculator.Settle(toCalculatorExpenses(req.Msg.Expenses))
		text = export.RenderText(settlementsToModels(settlements))
	}

	ctx, cancel := context.WithTimeout(ctx, s.summaryTimeout)
	defer cancel()

	result, err := s.summarizer.Summarize(ctx, summary.Request{
		Settlements: text,
		Expenses:    req.Msg.Expenses,
	})
	switch {
	case errors.Is(err, summary.ErrEmptyInput):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("Summary timed out", "timeout", s.summaryTimeout)
		return nil, connect.NewError(connect.CodeDeadlineExceeded, err)
	case err != nil:
		slog.Error("Summary failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, errors.New("failed to get summary"))
	}

	return connect.NewResponse(&SummarizeResponse{
		Summary:  result.Summary,
		Insights: nonNil(result.Insights),
	}), nil
}

// check validates a request message and maps failures to InvalidArgument.
func (s *SettlementService) check(msg any) error {
	if err := s.validate.Struct(msg); err != nil {
		err = describeValidation(err)
		slog.Debug("Request rejected", "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return nil
}

// storeError maps storage errors to Connect codes.
func storeError(op, planID string, err error) error {
	if errors.Is(err, storage.ErrPlanNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "plan_id", planID, "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

func toCalculatorExpenses(expenses []models.Expense) []calculator.Expense {
	return lo.Map(expenses, func(e models.Expense, _ int) calculator.Expense {
		return calculator.Expense{
			Payer:        e.Payer,
			Amount:       e.Amount,
			Participants: e.Participants,
		}
	})
}

func balancesToModels(b *calculator.Balances) []models.Balance {
	out := make([]models.Balance, 0, b.Len())
	for person, amount := range b.All() {
		out = append(out, models.Balance{Person: person, Balance: amount})
	}
	return out
}

func settlementsToModels(settlements []calculator.Settlement) []models.Settlement {
	return lo.Map(settlements, func(s calculator.Settlement, _ int) models.Settlement {
		return models.Settlement{From: s.From, To: s.To, Amount: s.Amount}
	})
}
