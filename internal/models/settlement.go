package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between participants to clear debts.
// Settlements are derived from balances on every query and never persisted.
type Settlement struct {
	// From is the participant who pays (debtor settling up).
	From string `json:"from"`

	// To is the participant who receives payment (creditor being paid).
	To string `json:"to"`

	// Amount is the payment amount, strictly positive and rounded to two places.
	Amount decimal.Decimal `json:"amount"`
}
