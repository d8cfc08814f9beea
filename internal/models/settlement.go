package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment that clears part of a debt.
type Settlement struct {
	// From is the person who pays (debtor).
	From string `json:"from"`

	// To is the person who receives (creditor).
	To string `json:"to"`

	// Amount is the payment amount, always positive.
	Amount decimal.Decimal `json:"amount"`
}

// Balance is one person's net position.
// Positive means the person is owed money, negative means they owe.
type Balance struct {
	Person  string          `json:"person" validate:"required,notblank"`
	Balance decimal.Decimal `json:"balance"`
}

// MarshalJSON writes the amount as a number with two decimals.
func (s Settlement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		From   string      `json:"from"`
		To     string      `json:"to"`
		Amount json.Number `json:"amount"`
	}{s.From, s.To, Money(s.Amount)})
}

// MarshalJSON writes the balance as a number with two decimals.
func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Person  string      `json:"person"`
		Balance json.Number `json:"balance"`
	}{b.Person, Money(b.Balance)})
}

// Money formats d as a JSON number with two fractional digits.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
