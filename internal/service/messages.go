package service

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/export"
	"github.com/mmynk/settleup/internal/models"
)

// ComputeBalancesRequest carries the expenses to reduce to balances.
type ComputeBalancesRequest struct {
	Expenses []models.Expense `json:"expenses" validate:"dive"`
}

// ComputeBalancesResponse lists balances in first-appearance order.
type ComputeBalancesResponse struct {
	Balances []models.Balance `json:"balances"`
}

// ComputeSettlementsRequest carries the expenses to settle.
type ComputeSettlementsRequest struct {
	Expenses []models.Expense `json:"expenses" validate:"dive"`

	// Save persists the computed plan and returns its ID.
	Save bool   `json:"save,omitempty"`
	Note string `json:"note,omitempty" validate:"max=200"`
}

// ComputeSettlementsResponse holds balances, payments and their text rendering.
type ComputeSettlementsResponse struct {
	Balances         []models.Balance    `json:"balances"`
	Settlements      []models.Settlement `json:"settlements"`
	Text             string              `json:"text"`
	TotalTransferred json.Number         `json:"total_transferred"`
	PlanID           string              `json:"plan_id,omitempty"`
}

// SettleBalancesRequest carries precomputed balances to match.
type SettleBalancesRequest struct {
	Balances []models.Balance `json:"balances" validate:"dive"`
}

// SettleBalancesResponse holds the payments that clear the given balances.
type SettleBalancesResponse struct {
	Settlements      []models.Settlement `json:"settlements"`
	Text             string              `json:"text"`
	TotalTransferred json.Number         `json:"total_transferred"`
}

// GetPlanRequest identifies a saved plan.
type GetPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required,notblank"`
}

// GetPlanResponse returns a saved plan.
type GetPlanResponse struct {
	Plan *Plan `json:"plan"`
}

// ListPlansRequest pages through saved plans, newest first.
type ListPlansRequest struct {
	// Limit caps the number of plans; zero means DefaultListLimit.
	Limit int `json:"limit,omitempty" validate:"gte=0,lte=100"`
}

// ListPlansResponse lists saved plans, newest first.
type ListPlansResponse struct {
	Plans []PlanSummary `json:"plans"`
}

// DeletePlanRequest identifies the plan to delete.
type DeletePlanRequest struct {
	PlanID string `json:"plan_id" validate:"required,notblank"`
}

// DeletePlanResponse is empty.
type DeletePlanResponse struct{}

// SummarizeRequest carries the settlement to describe.
type SummarizeRequest struct {
	// Settlements is rendered settlement text. When empty it is computed
	// from Expenses.
	Settlements string           `json:"settlements,omitempty"`
	Expenses    []models.Expense `json:"expenses" validate:"dive"`
}

// SummarizeResponse is the generated summary with optional insights.
type SummarizeResponse struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

// Plan is the wire form of a stored plan.
type Plan struct {
	ID               string              `json:"id"`
	Note             string              `json:"note,omitempty"`
	Balances         []models.Balance    `json:"balances"`
	Settlements      []models.Settlement `json:"settlements"`
	Text             string              `json:"text"`
	TotalTransferred json.Number         `json:"total_transferred"`
	CreatedAt        int64               `json:"created_at"`
}

// PlanSummary is the wire form of a plan listing entry.
type PlanSummary struct {
	ID               string      `json:"id"`
	Note             string      `json:"note,omitempty"`
	TotalTransferred json.Number `json:"total_transferred"`
	SettlementCount  int         `json:"settlement_count"`
	CreatedAt        int64       `json:"created_at"`
}

func planToWire(p *models.Plan) *Plan {
	return &Plan{
		ID:               p.ID,
		Note:             p.Note,
		Balances:         nonNil(p.Balances),
		Settlements:      nonNil(p.Settlements),
		Text:             export.RenderText(p.Settlements),
		TotalTransferred: models.Money(p.TotalTransferred),
		CreatedAt:        p.CreatedAt,
	}
}

func summariesToWire(plans []*models.PlanSummary) []PlanSummary {
	return lo.Map(plans, func(p *models.PlanSummary, _ int) PlanSummary {
		return PlanSummary{
			ID:               p.ID,
			Note:             p.Note,
			TotalTransferred: models.Money(p.TotalTransferred),
			SettlementCount:  p.SettlementCount,
			CreatedAt:        p.CreatedAt,
		}
	})
}

// nonNil keeps empty lists as [] on the wire.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
