package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Share is one participant's slice of the bill total.
type Share struct {
	ParticipantID string
	Name          string
	Amount        decimal.Decimal
	Percent       decimal.Decimal // of the bill total, one decimal place
}

// TotalExpenses sums the amounts of all expenses.
func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// PaidBy returns how much each participant paid, for participants who paid
// anything, in participant order.
func PaidBy(participants []models.Participant, expenses []models.Expense) []Share {
	paid := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.PaidBy == "" {
			continue
		}
		paid[e.PaidBy] = paid[e.PaidBy].Add(e.Amount)
	}
	return shares(participants, paid, TotalExpenses(expenses))
}

// OwedBy returns the sum of each participant's split shares, for participants
// with a non-zero share, in participant order.
func OwedBy(participants []models.Participant, expenses []models.Expense) []Share {
	owed := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		for _, s := range e.Splits {
			owed[s.ParticipantID] = owed[s.ParticipantID].Add(s.Amount)
		}
	}
	return shares(participants, owed, TotalExpenses(expenses))
}

func shares(participants []models.Participant, amounts map[string]decimal.Decimal, total decimal.Decimal) []Share {
	out := []Share{}
	for _, p := range participants {
		amount, ok := amounts[p.ID]
		if !ok || !amount.IsPositive() {
			continue
		}
		percent := decimal.Zero
		if total.IsPositive() {
			percent = amount.Mul(hundred).DivRound(total, 1)
		}
		out = append(out, Share{
			ParticipantID: p.ID,
			Name:          p.Name,
			Amount:        amount,
			Percent:       percent,
		})
	}
	return out
}
