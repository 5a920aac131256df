// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// errMalformedRow marks stored rows that cannot be turned back into a snapshot.
var errMalformedRow = errors.New("malformed row")

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveBill replaces the snapshot stored under key in a single transaction.
func (s *SQLiteStore) SaveBill(ctx context.Context, key string, bill *models.BillData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteBill(ctx, tx, key); err != nil {
		return err
	}

	// Insert bill
	_, err = tx.ExecContext(ctx,
		"INSERT INTO bills (name, title, date, updated_at) VALUES (?, ?, ?, ?)",
		key, bill.Title, bill.Date, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}

	// Insert participants
	for i, p := range bill.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO participants (bill_name, position, id, name) VALUES (?, ?, ?, ?)",
			key, i, p.ID, p.Name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	// Insert expenses and their splits
	for i, expense := range bill.Expenses {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expenses (bill_name, position, id, description, amount, paid_by) VALUES (?, ?, ?, ?, ?, ?)",
			key, i, expense.ID, expense.Description, expense.Amount.String(), expense.PaidBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, split := range expense.Splits {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_splits (bill_name, expense_id, position, participant_id, amount, is_equal) VALUES (?, ?, ?, ?, ?, ?)",
				key, expense.ID, j, split.ParticipantID, split.Amount.String(), split.IsEqual,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense split: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LoadBill retrieves the snapshot stored under key, including participants,
// expenses and splits in their saved order.
// Returns nil and no error if nothing is stored or a stored amount cannot be parsed.
func (s *SQLiteStore) LoadBill(ctx context.Context, key string) (*models.BillData, error) {
	bill, err := s.loadBill(ctx, key)
	if errors.Is(err, errMalformedRow) {
		slog.Warn("Ignoring malformed bill snapshot", "bill_key", key, "error", err)
		return nil, nil
	}
	return bill, err
}

func (s *SQLiteStore) loadBill(ctx context.Context, key string) (*models.BillData, error) {
	bill := &models.BillData{
		Participants: []models.Participant{},
		Expenses:     []models.Expense{},
	}
	err := s.db.QueryRowContext(ctx,
		"SELECT title, date FROM bills WHERE name = ?",
		key,
	).Scan(&bill.Title, &bill.Date)
	if err == sql.ErrNoRows {
		return nil, nil // Nothing saved yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	// Get participants
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM participants WHERE bill_name = ? ORDER BY position",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		bill.Participants = append(bill.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	splits, err := s.loadSplits(ctx, key)
	if err != nil {
		return nil, err
	}

	// Get expenses
	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, amount, paid_by FROM expenses WHERE bill_name = ? ORDER BY position",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var expense models.Expense
		var amount string
		if err := expenseRows.Scan(&expense.ID, &expense.Description, &amount, &expense.PaidBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: expense %s amount %q", errMalformedRow, expense.ID, amount)
		}
		expense.Splits = splits[expense.ID]
		if expense.Splits == nil {
			expense.Splits = []models.ExpenseSplit{}
		}
		bill.Expenses = append(bill.Expenses, expense)
	}
	if err := expenseRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return bill, nil
}

// loadSplits returns every split of the bill grouped by expense id.
func (s *SQLiteStore) loadSplits(ctx context.Context, key string) (map[string][]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, participant_id, amount, is_equal FROM expense_splits WHERE bill_name = ? ORDER BY expense_id, position",
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	splits := make(map[string][]models.ExpenseSplit)
	for rows.Next() {
		var expenseID, amount string
		var split models.ExpenseSplit
		if err := rows.Scan(&expenseID, &split.ParticipantID, &amount, &split.IsEqual); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: split of expense %s amount %q", errMalformedRow, expenseID, amount)
		}
		splits[expenseID] = append(splits[expenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return splits, nil
}

// DeleteBill removes the snapshot stored under key.
func (s *SQLiteStore) DeleteBill(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteBill(ctx, tx, key); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// deleteBill removes all rows of a snapshot, children first.
func deleteBill(ctx context.Context, tx *sql.Tx, key string) error {
	for _, table := range []string{"expense_splits", "expenses", "participants"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE bill_name = ?", key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM bills WHERE name = ?", key); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}
