package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

// ErrUnknownParticipant is returned when an expense or settlement references a
// participant id that is not part of the bill.
var ErrUnknownParticipant = errors.New("unknown participant")

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	ParticipantID string
	NetBalance    decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid     decimal.Decimal // Total amount paid across all expenses
	TotalOwed     decimal.Decimal // Total of this participant's shares
}

// BalanceSheet holds one MemberBalance per participant, in participant order.
// A sheet is never modified after it is returned.
type BalanceSheet struct {
	balances []MemberBalance
	index    map[string]int
}

func newBalanceSheet(participants []models.Participant) *BalanceSheet {
	sheet := &BalanceSheet{
		balances: make([]MemberBalance, 0, len(participants)),
		index:    make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		if _, exists := sheet.index[p.ID]; exists {
			continue
		}
		sheet.index[p.ID] = len(sheet.balances)
		sheet.balances = append(sheet.balances, MemberBalance{
			ParticipantID: p.ID,
			NetBalance:    decimal.Zero,
			TotalPaid:     decimal.Zero,
			TotalOwed:     decimal.Zero,
		})
	}
	return sheet
}

func (s *BalanceSheet) member(id string) (*MemberBalance, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.balances[i], true
}

func (s *BalanceSheet) settle() {
	for i := range s.balances {
		s.balances[i].NetBalance = s.balances[i].TotalPaid.Sub(s.balances[i].TotalOwed)
	}
}

func (s *BalanceSheet) clone() *BalanceSheet {
	out := &BalanceSheet{
		balances: make([]MemberBalance, len(s.balances)),
		index:    make(map[string]int, len(s.index)),
	}
	copy(out.balances, s.balances)
	for id, i := range s.index {
		out.index[id] = i
	}
	return out
}

// Get returns the net balance of id, or zero for an id not on the sheet.
func (s *BalanceSheet) Get(id string) decimal.Decimal {
	if m, ok := s.member(id); ok {
		return m.NetBalance
	}
	return decimal.Zero
}

// Member returns the full balance record of id.
func (s *BalanceSheet) Member(id string) (MemberBalance, bool) {
	if m, ok := s.member(id); ok {
		return *m, true
	}
	return MemberBalance{}, false
}

// Entries returns a copy of all balances in participant order.
func (s *BalanceSheet) Entries() []MemberBalance {
	out := make([]MemberBalance, len(s.balances))
	copy(out, s.balances)
	return out
}

// Len returns the number of participants on the sheet.
func (s *BalanceSheet) Len() int {
	return len(s.balances)
}

// Total sums all net balances. It is zero whenever every expense has a payer.
func (s *BalanceSheet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.balances {
		total = total.Add(b.NetBalance)
	}
	return total
}

// Map returns net balances keyed by participant id.
func (s *BalanceSheet) Map() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.balances))
	for _, b := range s.balances {
		out[b.ParticipantID] = b.NetBalance
	}
	return out
}

// Apply returns a new sheet with settlements recorded as payments:
// the payer's balance improves, the receiver's balance decreases.
func (s *BalanceSheet) Apply(settlements []models.Settlement) (*BalanceSheet, error) {
	out := s.clone()
	for _, st := range settlements {
		from, ok := out.member(st.From)
		if !ok {
			return nil, fmt.Errorf("%w: settlement from %s", ErrUnknownParticipant, st.From)
		}
		to, ok := out.member(st.To)
		if !ok {
			return nil, fmt.Errorf("%w: settlement to %s", ErrUnknownParticipant, st.To)
		}
		from.TotalPaid = from.TotalPaid.Add(st.Amount)
		to.TotalOwed = to.TotalOwed.Add(st.Amount)
	}
	out.settle()
	return out, nil
}

// CalculateBalances computes every participant's net position across expenses.
//
// Algorithm:
//   - every participant starts at zero, including those with no activity
//   - for each expense the payer is credited the full amount; an expense with
//     an empty PaidBy credits nobody
//   - each split debits its participant by the split amount
//   - net_balance = total_paid - total_owed
//
// Unassigned expenses leave the sheet's Total negative until a payer is set.
// A non-empty payer or split participant that is not in participants is a data
// integrity fault and fails with ErrUnknownParticipant.
func CalculateBalances(participants []models.Participant, expenses []models.Expense) (*BalanceSheet, error) {
	sheet := newBalanceSheet(participants)

	for _, expense := range expenses {
		if expense.PaidBy != "" {
			payer, ok := sheet.member(expense.PaidBy)
			if !ok {
				return nil, fmt.Errorf("%w: expense %s paid by %s", ErrUnknownParticipant, expense.ID, expense.PaidBy)
			}
			payer.TotalPaid = payer.TotalPaid.Add(expense.Amount)
		}

		for _, split := range expense.Splits {
			member, ok := sheet.member(split.ParticipantID)
			if !ok {
				return nil, fmt.Errorf("%w: expense %s split for %s", ErrUnknownParticipant, expense.ID, split.ParticipantID)
			}
			member.TotalOwed = member.TotalOwed.Add(split.Amount)
		}
	}

	sheet.settle()
	return sheet, nil
}
