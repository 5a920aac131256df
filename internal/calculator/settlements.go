package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/money"
)

// position is a creditor or debtor with their outstanding balance.
type position struct {
	participantID string
	balance       decimal.Decimal
}

// CalculateSettlements computes balances and the payments that clear them.
func CalculateSettlements(participants []models.Participant, expenses []models.Expense) ([]models.Settlement, error) {
	sheet, err := CalculateBalances(participants, expenses)
	if err != nil {
		return nil, err
	}
	return PlanSettlements(sheet), nil
}

// PlanSettlements matches debtors with creditors greedily.
//
// Algorithm:
//   - balances within a cent of zero are already settled and skipped
//   - creditors are sorted by balance descending, debtors ascending (most
//     negative first); both sorts are stable, so ties keep sheet order
//   - the head creditor and head debtor settle min(credit, |debt|), rounded to
//     two places; whoever drops below a cent leaves their list, the other stays
//     at the head with the reduced balance and the lists are never re-sorted
//
// The plan is not guaranteed to use the fewest payments possible.
func PlanSettlements(sheet *BalanceSheet) []models.Settlement {
	var creditors []position
	var debtors []position
	for _, b := range sheet.balances {
		if money.IsSettled(b.NetBalance) {
			continue
		}
		if b.NetBalance.IsPositive() {
			creditors = append(creditors, position{participantID: b.ParticipantID, balance: b.NetBalance})
		} else {
			debtors = append(debtors, position{participantID: b.ParticipantID, balance: b.NetBalance})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].balance.GreaterThan(creditors[j].balance)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].balance.LessThan(debtors[j].balance)
	})

	settlements := []models.Settlement{}
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := money.Round(decimal.Min(creditor.balance, debtor.balance.Neg()))
		if amount.IsPositive() {
			settlements = append(settlements, models.Settlement{
				From:   debtor.participantID,
				To:     creditor.participantID,
				Amount: amount,
			})
		}

		creditor.balance = creditor.balance.Sub(amount)
		debtor.balance = debtor.balance.Add(amount)

		if money.IsSettled(creditor.balance) {
			i++
		}
		if money.IsSettled(debtor.balance) {
			j++
		}
	}

	return settlements
}
