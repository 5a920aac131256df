package bill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/money"
)

// ExpenseInput is the raw content of the add-expense form.
type ExpenseInput struct {
	Description string
	Amount      string
	PaidBy      string // empty leaves the expense unassigned

	SplitEqually   bool
	ParticipantIDs []string // selection order is kept in the splits

	// CustomAmounts holds the entered share per selected participant when
	// SplitEqually is false. Missing entries count as zero.
	CustomAmounts map[string]string
}

// RemainingAmount returns how much of amount is not yet allocated by the
// custom shares entered so far. Unparsable input counts as zero.
func RemainingAmount(amount string, shares map[string]string) decimal.Decimal {
	total, err := money.Parse(amount)
	if err != nil {
		return decimal.Zero
	}
	allocated := decimal.Zero
	for _, s := range shares {
		if v, err := money.Parse(s); err == nil {
			allocated = allocated.Add(v)
		}
	}
	return money.Round(total.Sub(allocated))
}

// buildExpense validates in against data and returns the expense to append.
func buildExpense(data *models.BillData, id string, in ExpenseInput) (models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return models.Expense{}, ErrEmptyDescription
	}

	amount, err := money.Parse(in.Amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("%w: %q", ErrInvalidAmount, in.Amount)
	}
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return models.Expense{}, fmt.Errorf("%w: %q", ErrInvalidAmount, in.Amount)
	}

	if len(in.ParticipantIDs) == 0 {
		return models.Expense{}, ErrNoParticipantsSelected
	}
	seen := make(map[string]bool, len(in.ParticipantIDs))
	for _, pid := range in.ParticipantIDs {
		if _, ok := data.Participant(pid); !ok {
			return models.Expense{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, pid)
		}
		if seen[pid] {
			return models.Expense{}, fmt.Errorf("%w: %s", ErrDuplicateSelection, data.ParticipantName(pid))
		}
		seen[pid] = true
	}

	if in.PaidBy != "" {
		if _, ok := data.Participant(in.PaidBy); !ok {
			return models.Expense{}, fmt.Errorf("%w: %s", ErrUnknownPayer, in.PaidBy)
		}
	}

	var splits []models.ExpenseSplit
	if in.SplitEqually {
		splits = calculator.EqualSplits(amount, in.ParticipantIDs)
	} else {
		splits, err = customSplits(data, amount, in)
		if err != nil {
			return models.Expense{}, err
		}
	}

	return models.Expense{
		ID:          id,
		Description: description,
		Amount:      amount,
		PaidBy:      in.PaidBy,
		Splits:      splits,
	}, nil
}

func customSplits(data *models.BillData, amount decimal.Decimal, in ExpenseInput) ([]models.ExpenseSplit, error) {
	splits := make([]models.ExpenseSplit, 0, len(in.ParticipantIDs))
	total := decimal.Zero
	for _, pid := range in.ParticipantIDs {
		share := decimal.Zero
		if raw, ok := in.CustomAmounts[pid]; ok && strings.TrimSpace(raw) != "" {
			v, err := money.Parse(raw)
			if err != nil || v.IsNegative() {
				return nil, fmt.Errorf("%w for %s", ErrInvalidShare, data.ParticipantName(pid))
			}
			share = money.Round(v)
		}
		total = total.Add(share)
		splits = append(splits, models.ExpenseSplit{
			ParticipantID: pid,
			Amount:        share,
			IsEqual:       false,
		})
	}

	// Shares are compared after rounding so the stored splits sum to the amount.
	if !total.Equal(amount) {
		return nil, fmt.Errorf("%w: custom amounts sum to %s, expense total is %s",
			ErrSplitMismatch, money.Format(total), money.Format(amount))
	}
	return splits, nil
}
