package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// CreatePlan persists a plan with its balances and settlements in one transaction.
func (s *SQLiteStore) CreatePlan(ctx context.Context, plan *models.Plan) error {
	// Generate ID if not set
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO plans (id, note, total_transferred, created_at) VALUES (?, ?, ?, ?)",
		plan.ID, plan.Note, plan.TotalTransferred.String(), plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	for i, b := range plan.Balances {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO plan_balances (plan_id, position, person, balance) VALUES (?, ?, ?, ?)",
			plan.ID, i, b.Person, b.Balance.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert balance: %w", err)
		}
	}

	for i, st := range plan.Settlements {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plan_settlements (plan_id, position, from_person, to_person, amount)
			 VALUES (?, ?, ?, ?, ?)`,
			plan.ID, i, st.From, st.To, st.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPlan retrieves a plan by ID, including balances and settlements in their original order.
func (s *SQLiteStore) GetPlan(ctx context.Context, planID string) (*models.Plan, error) {
	plan := &models.Plan{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, note, total_transferred, created_at FROM plans WHERE id = ?",
		planID,
	).Scan(&plan.ID, &plan.Note, &plan.TotalTransferred, &plan.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrPlanNotFound, planID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	// Get balances
	rows, err := s.db.QueryContext(ctx,
		"SELECT person, balance FROM plan_balances WHERE plan_id = ? ORDER BY position",
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Balance
		if err := rows.Scan(&b.Person, &b.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		plan.Balances = append(plan.Balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balances: %w", err)
	}

	// Get settlements
	settlementRows, err := s.db.QueryContext(ctx,
		`SELECT from_person, to_person, amount FROM plan_settlements
		 WHERE plan_id = ? ORDER BY position`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get settlements: %w", err)
	}
	defer settlementRows.Close()

	for settlementRows.Next() {
		var st models.Settlement
		if err := settlementRows.Scan(&st.From, &st.To, &st.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		plan.Settlements = append(plan.Settlements, st)
	}
	if err := settlementRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return plan, nil
}

// ListPlans retrieves plan summaries, newest first.
func (s *SQLiteStore) ListPlans(ctx context.Context, limit int) ([]*models.PlanSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.note, p.total_transferred, p.created_at,
		        (SELECT COUNT(*) FROM plan_settlements ps WHERE ps.plan_id = p.id)
		 FROM plans p ORDER BY p.created_at DESC, p.rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.PlanSummary
	for rows.Next() {
		p := &models.PlanSummary{}
		if err := rows.Scan(&p.ID, &p.Note, &p.TotalTransferred, &p.CreatedAt, &p.SettlementCount); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}

	return plans, nil
}

// DeletePlan removes a plan by ID. Balances and settlements go with it.
func (s *SQLiteStore) DeletePlan(ctx context.Context, planID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", planID)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrPlanNotFound, planID)
	}

	return nil
}
