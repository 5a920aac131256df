package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmynk/billsplitter/internal/models"
)

// ErrMalformedBill is returned by DecodeBill for data that is not a bill snapshot.
var ErrMalformedBill = errors.New("malformed bill snapshot")

// EncodeBill serializes a snapshot as JSON with the same shape as BillData.
func EncodeBill(bill *models.BillData) ([]byte, error) {
	data, err := json.Marshal(bill)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bill: %w", err)
	}
	return data, nil
}

// DecodeBill parses a snapshot produced by EncodeBill.
// Missing lists decode as empty lists.
func DecodeBill(data []byte) (*models.BillData, error) {
	var bill models.BillData
	if err := json.Unmarshal(data, &bill); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBill, err)
	}
	if bill.Participants == nil {
		bill.Participants = []models.Participant{}
	}
	if bill.Expenses == nil {
		bill.Expenses = []models.Expense{}
	}
	return &bill, nil
}
