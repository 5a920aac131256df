package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleBill() *BillData {
	return &BillData{
		Title: "Trip",
		Date:  "2024-05-01",
		Participants: []Participant{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
			{ID: "c", Name: "Charlie"},
		},
		Expenses: []Expense{
			{
				ID:          "e1",
				Description: "Dinner",
				Amount:      dec("100"),
				PaidBy:      "a",
				Splits: []ExpenseSplit{
					{ParticipantID: "a", Amount: dec("50"), IsEqual: true},
					{ParticipantID: "b", Amount: dec("50"), IsEqual: true},
				},
			},
		},
	}
}

func TestNewBillData(t *testing.T) {
	now := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	b := NewBillData(now)

	if b.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", b.Title, DefaultTitle)
	}
	if b.Date != "2024-03-09" {
		t.Errorf("Date = %q, want 2024-03-09", b.Date)
	}
	if !b.IsEmpty() {
		t.Error("expected new bill to be empty")
	}
}

func TestBillData_Lookups(t *testing.T) {
	b := sampleBill()

	if got := b.ParticipantName("b"); got != "Bob" {
		t.Errorf("ParticipantName(b) = %q, want Bob", got)
	}
	if got := b.ParticipantName("zzz"); got != UnknownName {
		t.Errorf("ParticipantName(zzz) = %q, want %q", got, UnknownName)
	}
	if !b.IsReferenced("a") {
		t.Error("payer a should be referenced")
	}
	if !b.IsReferenced("b") {
		t.Error("split member b should be referenced")
	}
	if b.IsReferenced("c") {
		t.Error("c takes part in no expense")
	}
}

func TestBillData_Clone(t *testing.T) {
	b := sampleBill()
	c := b.Clone()

	c.Participants[0].Name = "Changed"
	c.Expenses[0].Splits[0].Amount = dec("1")

	if b.Participants[0].Name != "Alice" {
		t.Error("Clone shares participants with original")
	}
	if !b.Expenses[0].Splits[0].Amount.Equal(dec("50")) {
		t.Error("Clone shares splits with original")
	}
}

func TestBillData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *BillData)
		wantErr bool
	}{
		{name: "valid", mutate: func(b *BillData) {}},
		{name: "unassigned payer is valid", mutate: func(b *BillData) { b.Expenses[0].PaidBy = "" }},
		{name: "duplicate participant id", mutate: func(b *BillData) { b.Participants[1].ID = "a" }, wantErr: true},
		{name: "empty participant name", mutate: func(b *BillData) { b.Participants[2].Name = " " }, wantErr: true},
		{name: "unknown payer", mutate: func(b *BillData) { b.Expenses[0].PaidBy = "x" }, wantErr: true},
		{name: "unknown split member", mutate: func(b *BillData) { b.Expenses[0].Splits[1].ParticipantID = "x" }, wantErr: true},
		{name: "split sum mismatch", mutate: func(b *BillData) { b.Expenses[0].Splits[1].Amount = dec("49.99") }, wantErr: true},
		{name: "non-positive amount", mutate: func(b *BillData) { b.Expenses[0].Amount = decimal.Zero }, wantErr: true},
		{name: "no splits", mutate: func(b *BillData) { b.Expenses[0].Splits = nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBill()
			tt.mutate(b)
			err := b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBill) {
				t.Errorf("Validate() error = %v, want ErrInvalidBill", err)
			}
		})
	}
}
