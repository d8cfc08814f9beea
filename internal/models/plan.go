package models

import "github.com/shopspring/decimal"

// Plan is the outcome of one settlement computation.
// Plans are what gets persisted; the expenses they came from are not.
type Plan struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string

	// Note is an optional free-form label (e.g., "Goa trip").
	Note string

	// Balances are the net balances in first-appearance order.
	Balances []Balance

	// Settlements are the payments in the order they were produced.
	Settlements []Settlement

	// TotalTransferred is the sum of all settlement amounts.
	TotalTransferred decimal.Decimal

	// CreatedAt is the Unix timestamp when the plan was computed.
	CreatedAt int64
}

// PlanSummary is the listing view of a plan.
type PlanSummary struct {
	ID               string
	Note             string
	TotalTransferred decimal.Decimal
	SettlementCount  int
	CreatedAt        int64
}
