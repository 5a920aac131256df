// Package redis provides a Redis-backed implementation of the storage.Store interface.
// Each bill is stored as one JSON value so other clients can read it directly.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

const keyPrefix = "billsplitter:"

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using a Redis client.
type Store struct {
	client *redis.Client
}

// Options configures a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	return NewFromClient(client), nil
}

// NewFromClient wraps an existing client. The store owns the client and
// closes it on Close.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// SaveBill replaces the snapshot stored under key.
func (s *Store) SaveBill(ctx context.Context, key string, bill *models.BillData) error {
	data, err := storage.EncodeBill(bill)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// LoadBill retrieves the snapshot stored under key.
// Returns nil, nil when the key does not exist or holds malformed data.
func (s *Store) LoadBill(ctx context.Context, key string) (*models.BillData, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	bill, err := storage.DecodeBill(data)
	if err != nil {
		slog.Warn("Ignoring malformed bill snapshot", "bill_key", key, "error", err)
		return nil, nil
	}
	return bill, nil
}

// DeleteBill removes the snapshot stored under key.
func (s *Store) DeleteBill(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
