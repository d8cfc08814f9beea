package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Expense represents one payment shared among participants.
type Expense struct {
	// Payer is the person who paid.
	Payer string `json:"payer" validate:"required,notblank"`

	// Amount is the total paid. Must be positive.
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`

	// Participants is the set of people sharing the expense; repeated names
	// count once. Empty means everyone who appears in the expense list.
	Participants []string `json:"participants" validate:"dive,required,notblank"`
}

// MarshalJSON writes the amount as a JSON number and participants as an array.
func (e Expense) MarshalJSON() ([]byte, error) {
	participants := e.Participants
	if participants == nil {
		participants = []string{}
	}
	return json.Marshal(struct {
		Payer        string      `json:"payer"`
		Amount       json.Number `json:"amount"`
		Participants []string    `json:"participants"`
	}{e.Payer, json.Number(e.Amount.String()), participants})
}
