package storage

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/models"
)

func TestEncodeDecodeBill(t *testing.T) {
	original := &models.BillData{
		Title:        "Weekend",
		Date:         "2024-06-01",
		Participants: []models.Participant{{ID: "a", Name: "Alice"}, {ID: "b", Name: "Bob"}},
		Expenses: []models.Expense{{
			ID:          "e1",
			Description: "Groceries",
			Amount:      decimal.RequireFromString("10"),
			PaidBy:      "a",
			Splits: []models.ExpenseSplit{
				{ParticipantID: "a", Amount: decimal.RequireFromString("3.34"), IsEqual: true},
				{ParticipantID: "b", Amount: decimal.RequireFromString("6.66")},
			},
		}},
	}

	data, err := EncodeBill(original)
	if err != nil {
		t.Fatalf("EncodeBill failed: %v", err)
	}
	decoded, err := DecodeBill(data)
	if err != nil {
		t.Fatalf("DecodeBill failed: %v", err)
	}

	if decoded.Title != original.Title || decoded.Date != original.Date {
		t.Errorf("header mismatch: got %q/%q", decoded.Title, decoded.Date)
	}
	if len(decoded.Participants) != 2 || decoded.Participants[1].Name != "Bob" {
		t.Errorf("participants mismatch: %+v", decoded.Participants)
	}
	split := decoded.Expenses[0].Splits[0]
	if split.ParticipantID != "a" || !split.Amount.Equal(decimal.RequireFromString("3.34")) || !split.IsEqual {
		t.Errorf("split mismatch: %+v", split)
	}
}

func TestDecodeBill_NumericAmounts(t *testing.T) {
	data := []byte(`{
		"title": "New Bill",
		"date": "2024-01-31",
		"participants": [{"id": "k3j2h1", "name": "Alice"}],
		"expenses": [{
			"id": "x9",
			"description": "Taxi",
			"amount": 12.5,
			"paidBy": "k3j2h1",
			"splits": [{"participantId": "k3j2h1", "amount": 12.5, "isEqual": true}]
		}]
	}`)

	bill, err := DecodeBill(data)
	if err != nil {
		t.Fatalf("DecodeBill failed: %v", err)
	}
	if !bill.Expenses[0].Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("amount = %s, want 12.5", bill.Expenses[0].Amount)
	}
	if err := bill.Validate(); err != nil {
		t.Errorf("decoded bill should be valid: %v", err)
	}
}

func TestDecodeBill_Malformed(t *testing.T) {
	inputs := []string{
		`not json`,
		`{"title": 5}`,
		`{"expenses": [{"amount": "lots"}]}`,
	}
	for _, in := range inputs {
		if _, err := DecodeBill([]byte(in)); !errors.Is(err, ErrMalformedBill) {
			t.Errorf("DecodeBill(%q) error = %v, want ErrMalformedBill", in, err)
		}
	}
}

func TestDecodeBill_MissingLists(t *testing.T) {
	bill, err := DecodeBill([]byte(`{"title": "Empty", "date": "2024-01-01"}`))
	if err != nil {
		t.Fatalf("DecodeBill failed: %v", err)
	}
	if bill.Participants == nil || bill.Expenses == nil {
		t.Error("expected empty, non-nil lists")
	}
}
