// Package storage provides abstractions for persisting bill snapshots.
package storage

import (
	"context"

	"github.com/mmynk/billsplitter/internal/models"
)

// DefaultKey is the name the application saves its bill under.
const DefaultKey = "billData"

// Store defines the interface for bill snapshot persistence.
// This abstraction allows swapping storage backends (SQLite, Redis, etc.)
// without changing the session layer.
type Store interface {
	// SaveBill replaces the snapshot stored under key.
	SaveBill(ctx context.Context, key string, bill *models.BillData) error

	// LoadBill retrieves the snapshot stored under key.
	// Returns nil and no error when nothing is stored or the stored data is
	// malformed; callers treat both as "no saved bill".
	LoadBill(ctx context.Context, key string) (*models.BillData, error)

	// DeleteBill removes the snapshot stored under key. Deleting a missing key
	// is not an error.
	DeleteBill(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
