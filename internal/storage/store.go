// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrPlanNotFound is returned when a plan ID does not exist.
var ErrPlanNotFound = errors.New("plan not found")

// Store defines the interface for settlement plan storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreatePlan persists a computed plan.
	// The plan.ID and plan.CreatedAt fields are populated by the store when empty.
	CreatePlan(ctx context.Context, plan *models.Plan) error

	// GetPlan retrieves a plan with its balances and settlements.
	// Returns an error wrapping ErrPlanNotFound if the plan does not exist.
	GetPlan(ctx context.Context, planID string) (*models.Plan, error)

	// ListPlans returns the most recent plans first, at most limit of them.
	ListPlans(ctx context.Context, limit int) ([]*models.PlanSummary, error)

	// DeletePlan removes a plan.
	// Returns an error wrapping ErrPlanNotFound if the plan does not exist.
	DeletePlan(ctx context.Context, planID string) error

	// Close releases any resources held by the store.
	Close() error
}
