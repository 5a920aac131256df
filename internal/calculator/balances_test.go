package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

func people(ids ...string) []models.Participant {
	out := make([]models.Participant, len(ids))
	for i, id := range ids {
		out[i] = models.Participant{ID: id, Name: "Name " + id}
	}
	return out
}

func equalExpense(id, amount, paidBy string, among ...string) models.Expense {
	return models.Expense{
		ID:          id,
		Description: "Expense " + id,
		Amount:      dec(amount),
		PaidBy:      paidBy,
		Splits:      EqualSplits(dec(amount), among),
	}
}

func customExpense(id, amount, paidBy string, shares map[string]string, order ...string) models.Expense {
	splits := make([]models.ExpenseSplit, len(order))
	for i, pid := range order {
		splits[i] = models.ExpenseSplit{ParticipantID: pid, Amount: dec(shares[pid])}
	}
	return models.Expense{ID: id, Description: "Expense " + id, Amount: dec(amount), PaidBy: paidBy, Splits: splits}
}

func assertBalances(t *testing.T, sheet *BalanceSheet, want map[string]string) {
	t.Helper()
	if sheet.Len() != len(want) {
		t.Errorf("sheet has %d entries, want %d", sheet.Len(), len(want))
	}
	for id, amount := range want {
		if got := sheet.Get(id); !got.Equal(dec(amount)) {
			t.Errorf("balance[%s] = %s, want %s", id, got, amount)
		}
	}
}

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		want         map[string]string
		wantTotal    string
	}{
		{
			name:         "one expense split equally between two",
			participants: people("A", "B"),
			expenses:     []models.Expense{equalExpense("e1", "100", "A", "A", "B")},
			want:         map[string]string{"A": "50", "B": "-50"},
			wantTotal:    "0",
		},
		{
			name:         "participant with no activity is present at zero",
			participants: people("A", "B", "C"),
			expenses:     []models.Expense{equalExpense("e1", "10", "A", "A", "B")},
			want:         map[string]string{"A": "5", "B": "-5", "C": "0"},
			wantTotal:    "0",
		},
		{
			name:         "custom shares across two expenses",
			participants: people("A", "B", "C"),
			expenses: []models.Expense{
				customExpense("e1", "40", "A", map[string]string{"B": "10", "C": "20", "A": "10"}, "A", "B", "C"),
				customExpense("e2", "20", "A", map[string]string{"A": "20"}, "A"),
			},
			want:      map[string]string{"A": "30", "B": "-10", "C": "-20"},
			wantTotal: "0",
		},
		{
			name:         "unassigned payer debits splits only",
			participants: people("A", "B"),
			expenses:     []models.Expense{equalExpense("e1", "30", "", "A", "B")},
			want:         map[string]string{"A": "-15", "B": "-15"},
			wantTotal:    "-30",
		},
		{
			name:         "no expenses",
			participants: people("A", "B"),
			expenses:     nil,
			want:         map[string]string{"A": "0", "B": "0"},
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := CalculateBalances(tt.participants, tt.expenses)
			if err != nil {
				t.Fatalf("CalculateBalances() error = %v", err)
			}
			assertBalances(t, sheet, tt.want)
			if got := sheet.Total(); !got.Equal(dec(tt.wantTotal)) {
				t.Errorf("Total() = %s, want %s", got, tt.wantTotal)
			}
		})
	}
}

func TestCalculateBalances_PaidAndOwed(t *testing.T) {
	sheet, err := CalculateBalances(people("A", "B"), []models.Expense{
		equalExpense("e1", "100", "A", "A", "B"),
		equalExpense("e2", "30", "B", "A", "B"),
	})
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}

	a, ok := sheet.Member("A")
	if !ok {
		t.Fatal("expected A on the sheet")
	}
	if !a.TotalPaid.Equal(dec("100")) || !a.TotalOwed.Equal(dec("65")) || !a.NetBalance.Equal(dec("35")) {
		t.Errorf("A = paid %s owed %s net %s, want 100/65/35", a.TotalPaid, a.TotalOwed, a.NetBalance)
	}

	entries := sheet.Entries()
	if len(entries) != 2 || entries[0].ParticipantID != "A" || entries[1].ParticipantID != "B" {
		t.Errorf("Entries() not in participant order: %+v", entries)
	}
}

func TestCalculateBalances_UnknownParticipant(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
	}{
		{name: "unknown payer", expense: equalExpense("e1", "10", "X", "A")},
		{name: "unknown split member", expense: equalExpense("e1", "10", "A", "A", "X")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateBalances(people("A"), []models.Expense{tt.expense})
			if !errors.Is(err, ErrUnknownParticipant) {
				t.Errorf("error = %v, want ErrUnknownParticipant", err)
			}
		})
	}
}

func TestCalculateBalances_DoesNotMutateInput(t *testing.T) {
	participants := people("A", "B")
	expenses := []models.Expense{equalExpense("e1", "10", "A", "A", "B")}

	first, err := CalculateBalances(participants, expenses)
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}
	second, err := CalculateBalances(participants, expenses)
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}

	for id, v := range first.Map() {
		if !second.Get(id).Equal(v) {
			t.Errorf("balance[%s] differs between calls: %s vs %s", id, v, second.Get(id))
		}
	}
	if !expenses[0].Amount.Equal(dec("10")) || len(expenses[0].Splits) != 2 {
		t.Error("input expense was modified")
	}
}

func TestBalanceSheet_SumsToZero(t *testing.T) {
	participants := people("A", "B", "C", "D")
	expenses := []models.Expense{
		equalExpense("e1", "10", "A", "A", "B", "C"),
		equalExpense("e2", "99.99", "B", "A", "B", "C", "D"),
		equalExpense("e3", "0.05", "C", "D", "A", "B"),
		equalExpense("e4", "1234.56", "D", "B", "D"),
	}

	sheet, err := CalculateBalances(participants, expenses)
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}
	if total := sheet.Total(); total.Abs().GreaterThanOrEqual(dec("0.01")) {
		t.Errorf("balances sum to %s, want 0", total)
	}
}

func TestBalanceSheet_Apply(t *testing.T) {
	sheet, err := CalculateBalances(people("A", "B"), []models.Expense{equalExpense("e1", "100", "A", "A", "B")})
	if err != nil {
		t.Fatalf("CalculateBalances() error = %v", err)
	}

	settled, err := sheet.Apply([]models.Settlement{{From: "B", To: "A", Amount: dec("50")}})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assertBalances(t, settled, map[string]string{"A": "0", "B": "0"})

	// original sheet is untouched
	assertBalances(t, sheet, map[string]string{"A": "50", "B": "-50"})

	if _, err := sheet.Apply([]models.Settlement{{From: "X", To: "A", Amount: decimal.NewFromInt(1)}}); !errors.Is(err, ErrUnknownParticipant) {
		t.Errorf("Apply() with unknown payer error = %v, want ErrUnknownParticipant", err)
	}
}
