// Package bill owns the mutable state of one bill. A Session validates form
// input, generates ids and autosaves every accepted change.
package bill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

// MaxNameLength is the longest accepted participant name, in characters.
const MaxNameLength = 50

// Session holds one bill and persists it after every successful mutation.
// The store is written before the in-memory state changes, so a rejected or
// failed operation leaves the bill untouched. Safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	data  *models.BillData
	store storage.Store
	key   string

	newID  IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithIDGenerator replaces ShortID as the id supplier.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Session) { s.newID = gen }
}

// WithClock sets the clock used to date fresh bills.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// Results is the computed outcome of the current bill.
type Results struct {
	Total       decimal.Decimal
	Balances    *calculator.BalanceSheet
	Settlements []models.Settlement
}

// NewSession loads the bill saved under key, or starts a fresh one when nothing
// usable is stored. Only a storage failure is returned as an error.
func NewSession(ctx context.Context, store storage.Store, key string, opts ...Option) (*Session, error) {
	s := &Session{
		store:  store,
		key:    key,
		newID:  ShortID,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	saved, err := store.LoadBill(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load bill: %w", err)
	}

	switch {
	case saved == nil:
		s.logger.Info("No saved bill, starting fresh", "bill_key", key)
		s.data = models.NewBillData(s.now())
	default:
		if err := saved.Validate(); err != nil {
			s.logger.Warn("Discarding saved bill", "bill_key", key, "error", err)
			s.data = models.NewBillData(s.now())
			break
		}
		s.logger.Info("Loaded saved bill", "bill_key", key,
			"participants", len(saved.Participants),
			"expenses", len(saved.Expenses),
		)
		s.data = saved
	}

	return s, nil
}

// Key returns the storage key of the bill.
func (s *Session) Key() string {
	return s.key
}

// Snapshot returns a deep copy of the current bill.
func (s *Session) Snapshot() *models.BillData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// errUnchanged tells update that fn made no change and nothing needs saving.
var errUnchanged = errors.New("unchanged")

// update applies fn to a copy of the bill, saves the copy and only then makes
// it current.
func (s *Session) update(ctx context.Context, fn func(next *models.BillData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := s.store.SaveBill(ctx, s.key, next); err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}
	s.data = next
	return nil
}

// SetTitle renames the bill. A blank title falls back to the default title.
func (s *Session) SetTitle(ctx context.Context, title string) error {
	return s.UpdateDetails(ctx, &title, nil)
}

// SetDate changes the bill date. date must be YYYY-MM-DD.
func (s *Session) SetDate(ctx context.Context, date string) error {
	return s.UpdateDetails(ctx, nil, &date)
}

// UpdateDetails changes the title and the date in one save. A nil field is
// left as is. Nothing is changed when the date is invalid.
func (s *Session) UpdateDetails(ctx context.Context, title, date *string) error {
	var newTitle, newDate string
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		if newTitle == "" {
			newTitle = models.DefaultTitle
		}
	}
	if date != nil {
		newDate = strings.TrimSpace(*date)
		if _, err := time.Parse(models.DateLayout, newDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, newDate)
		}
	}

	return s.update(ctx, func(next *models.BillData) error {
		if title == nil && date == nil {
			return errUnchanged
		}
		if title != nil {
			next.Title = newTitle
		}
		if date != nil {
			next.Date = newDate
		}
		return nil
	})
}

// AddParticipant appends a participant with a trimmed, unique name.
func (s *Session) AddParticipant(ctx context.Context, name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return models.Participant{}, fmt.Errorf("%w: at most %d characters", ErrNameTooLong, MaxNameLength)
	}

	var added models.Participant
	err := s.update(ctx, func(next *models.BillData) error {
		for _, p := range next.Participants {
			if strings.EqualFold(p.Name, name) {
				return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
			}
		}
		added = models.Participant{ID: s.newID(), Name: name}
		next.Participants = append(next.Participants, added)
		return nil
	})
	if err != nil {
		return models.Participant{}, err
	}

	s.logger.Info("Added participant", "bill_key", s.key, "participant_id", added.ID, "name", added.Name)
	return added, nil
}

// RemoveParticipant deletes a participant that no expense references.
func (s *Session) RemoveParticipant(ctx context.Context, id string) error {
	err := s.update(ctx, func(next *models.BillData) error {
		idx := -1
		for i, p := range next.Participants {
			if p.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
		}
		if next.IsReferenced(id) {
			return fmt.Errorf("%w: %s", ErrParticipantInUse, next.Participants[idx].Name)
		}
		next.Participants = append(next.Participants[:idx], next.Participants[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Removed participant", "bill_key", s.key, "participant_id", id)
	return nil
}

// AddExpense validates the form input and appends the resulting expense.
func (s *Session) AddExpense(ctx context.Context, in ExpenseInput) (models.Expense, error) {
	var added models.Expense
	err := s.update(ctx, func(next *models.BillData) error {
		expense, err := buildExpense(next, s.newID(), in)
		if err != nil {
			return err
		}
		added = expense
		next.Expenses = append(next.Expenses, expense)
		return nil
	})
	if err != nil {
		return models.Expense{}, err
	}

	s.logger.Info("Added expense", "bill_key", s.key,
		"expense_id", added.ID,
		"amount", added.Amount.String(),
		"paid_by", added.PaidBy,
		"splits", len(added.Splits),
	)
	return added, nil
}

// RemoveExpense deletes an expense by id.
func (s *Session) RemoveExpense(ctx context.Context, id string) error {
	err := s.update(ctx, func(next *models.BillData) error {
		for i, e := range next.Expenses {
			if e.ID == id {
				next.Expenses = append(next.Expenses[:i], next.Expenses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Removed expense", "bill_key", s.key, "expense_id", id)
	return nil
}

// Reset replaces the bill with a fresh one. It reports false without touching
// anything when the bill has no participants and no expenses.
func (s *Session) Reset(ctx context.Context) (bool, error) {
	reset := false
	err := s.update(ctx, func(next *models.BillData) error {
		if next.IsEmpty() {
			return errUnchanged
		}
		*next = *models.NewBillData(s.now())
		reset = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if reset {
		s.logger.Info("Bill reset", "bill_key", s.key)
	}
	return reset, nil
}

// Results computes balances and the settlement plan of the current bill.
func (s *Session) Results() (*Results, error) {
	data := s.Snapshot()

	sheet, err := calculator.CalculateBalances(data.Participants, data.Expenses)
	if err != nil {
		return nil, err
	}
	return &Results{
		Total:       calculator.TotalExpenses(data.Expenses),
		Balances:    sheet,
		Settlements: calculator.PlanSettlements(sheet),
	}, nil
}
