package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/billsplitter/internal/money"
)

const (
	// DefaultTitle is the title of a freshly created bill.
	DefaultTitle = "New Bill"

	// DateLayout is the ISO date format used for BillData.Date.
	DateLayout = "2006-01-02"

	// UnknownName is shown for ids that do not resolve to a participant.
	UnknownName = "Unknown"
)

// ErrInvalidBill is wrapped by every BillData.Validate failure.
var ErrInvalidBill = errors.New("invalid bill")

// Participant is a person sharing the bill.
type Participant struct {
	// ID is an opaque identifier, unique within the bill.
	ID string `json:"id"`

	// Name is the display name, unique case-insensitively within the bill.
	Name string `json:"name"`
}

// BillData is the complete persisted state of one bill.
type BillData struct {
	Title        string        `json:"title"`
	Date         string        `json:"date"`
	Participants []Participant `json:"participants"`
	Expenses     []Expense     `json:"expenses"`
}

// NewBillData returns an empty bill dated on now.
func NewBillData(now time.Time) *BillData {
	return &BillData{
		Title:        DefaultTitle,
		Date:         now.Format(DateLayout),
		Participants: []Participant{},
		Expenses:     []Expense{},
	}
}

// Participant looks up a participant by id.
func (b *BillData) Participant(id string) (Participant, bool) {
	for _, p := range b.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// ParticipantName returns the name for id, or UnknownName.
func (b *BillData) ParticipantName(id string) string {
	if p, ok := b.Participant(id); ok {
		return p.Name
	}
	return UnknownName
}

// IsReferenced reports whether any expense names id as payer or split member.
func (b *BillData) IsReferenced(id string) bool {
	for _, e := range b.Expenses {
		if e.References(id) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the bill has neither participants nor expenses.
func (b *BillData) IsEmpty() bool {
	return len(b.Participants) == 0 && len(b.Expenses) == 0
}

// Clone returns a deep copy of b.
func (b *BillData) Clone() *BillData {
	out := &BillData{
		Title:        b.Title,
		Date:         b.Date,
		Participants: make([]Participant, len(b.Participants)),
		Expenses:     make([]Expense, len(b.Expenses)),
	}
	copy(out.Participants, b.Participants)
	for i, e := range b.Expenses {
		out.Expenses[i] = e.Clone()
	}
	return out
}

// Validate checks the integrity of a snapshot restored from storage.
// Every reference must resolve and every expense must satisfy its split invariant.
func (b *BillData) Validate() error {
	ids := make(map[string]bool, len(b.Participants))
	for i, p := range b.Participants {
		if p.ID == "" {
			return fmt.Errorf("%w: participant %d has no id", ErrInvalidBill, i)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: participant %s has no name", ErrInvalidBill, p.ID)
		}
		if ids[p.ID] {
			return fmt.Errorf("%w: duplicate participant id %s", ErrInvalidBill, p.ID)
		}
		ids[p.ID] = true
	}

	for _, e := range b.Expenses {
		if e.ID == "" {
			return fmt.Errorf("%w: expense %q has no id", ErrInvalidBill, e.Description)
		}
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%w: expense %s amount must be positive", ErrInvalidBill, e.ID)
		}
		if e.PaidBy != "" && !ids[e.PaidBy] {
			return fmt.Errorf("%w: expense %s paid by unknown participant %s", ErrInvalidBill, e.ID, e.PaidBy)
		}
		if len(e.Splits) == 0 {
			return fmt.Errorf("%w: expense %s has no splits", ErrInvalidBill, e.ID)
		}
		for _, s := range e.Splits {
			if !ids[s.ParticipantID] {
				return fmt.Errorf("%w: expense %s split references unknown participant %s", ErrInvalidBill, e.ID, s.ParticipantID)
			}
		}
		if !money.Round(e.SplitTotal()).Equal(money.Round(e.Amount)) {
			return fmt.Errorf("%w: expense %s splits sum to %s, want %s", ErrInvalidBill, e.ID, e.SplitTotal(), e.Amount)
		}
	}
	return nil
}
