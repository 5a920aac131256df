package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/money"
)

// EqualSplits divides amount evenly among participantIDs without losing or
// gaining a cent.
//
// Algorithm:
//   - base = round(amount / count, 2)
//   - residual = (amount - base × count) in whole cents
//   - the first residual participants, in the given order, get base + 0.01
//
// When base was rounded up the residual is negative; the base then drops by one
// cent and the residual becomes count + residual, so the split still sums to
// round(amount, 2) exactly and earlier participants still hold the larger share.
//
// An empty participant list yields an empty slice; callers must reject that
// before building an expense.
func EqualSplits(amount decimal.Decimal, participantIDs []string) []models.ExpenseSplit {
	if len(participantIDs) == 0 {
		return []models.ExpenseSplit{}
	}

	total := money.Round(amount)
	count := int64(len(participantIDs))
	base := total.DivRound(decimal.NewFromInt(count), money.Places)
	residual := money.Cents(total.Sub(base.Mul(decimal.NewFromInt(count))))
	if residual < 0 {
		base = base.Sub(money.Cent)
		residual += count
	}

	splits := make([]models.ExpenseSplit, len(participantIDs))
	for i, id := range participantIDs {
		share := base
		if int64(i) < residual {
			share = share.Add(money.Cent)
		}
		splits[i] = models.ExpenseSplit{
			ParticipantID: id,
			Amount:        share,
			IsEqual:       true,
		}
	}
	return splits
}
