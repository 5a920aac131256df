package models

import "github.com/shopspring/decimal"

// Expense is something one participant paid for on behalf of several.
// Expenses are immutable once created; they can only be removed.
type Expense struct {
	// ID is an opaque identifier, unique within the bill.
	ID string `json:"id"`

	// Description is the non-empty label entered by the user (e.g., "Dinner").
	Description string `json:"description"`

	// Amount is the positive total of the expense.
	Amount decimal.Decimal `json:"amount"`

	// PaidBy is the payer's participant id.
	// An empty string means the expense has no payer assigned yet.
	PaidBy string `json:"paidBy"`

	// Splits are the shares of Amount, in selection order.
	// Their rounded sum equals the rounded Amount.
	Splits []ExpenseSplit `json:"splits"`
}

// ExpenseSplit is one participant's share of one expense.
type ExpenseSplit struct {
	ParticipantID string          `json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`

	// IsEqual records whether the share came from an equal split or was entered
	// manually. It is display-only.
	IsEqual bool `json:"isEqual"`
}

// References reports whether id is the payer or a split member of e.
func (e Expense) References(id string) bool {
	if e.PaidBy == id {
		return true
	}
	for _, s := range e.Splits {
		if s.ParticipantID == id {
			return true
		}
	}
	return false
}

// SplitTotal sums the split amounts.
func (e Expense) SplitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Splits {
		total = total.Add(s.Amount)
	}
	return total
}

// Clone returns a copy of e that shares no slices with it.
func (e Expense) Clone() Expense {
	out := e
	out.Splits = make([]ExpenseSplit, len(e.Splits))
	copy(out.Splits, e.Splits)
	return out
}
