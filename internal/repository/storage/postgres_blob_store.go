package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createLedgerBlobsTable = `
CREATE TABLE IF NOT EXISTS ledger_blobs (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// pgxQuerier is the subset of *pgxpool.Pool the store uses
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBlobStore persists blobs in a PostgreSQL table
type PostgresBlobStore struct {
	db pgxQuerier
}

var _ domain.BlobStore = (*PostgresBlobStore)(nil)

// NewPostgresBlobStore creates the store and makes sure its table exists
func NewPostgresBlobStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresBlobStore, error) {
	return newPostgresBlobStore(ctx, pool)
}

func newPostgresBlobStore(ctx context.Context, db pgxQuerier) (*PostgresBlobStore, error) {
	if _, err := db.Exec(ctx, createLedgerBlobsTable); err != nil {
		return nil, fmt.Errorf("failed to create ledger_blobs table: %w", err)
	}
	return &PostgresBlobStore{db: db}, nil
}

// Get returns the blob stored under key
func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM ledger_blobs WHERE key = $1`, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return blob, true, nil
}

// Set upserts the blob stored under key
func (s *PostgresBlobStore) Set(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ledger_blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, blob)
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}
