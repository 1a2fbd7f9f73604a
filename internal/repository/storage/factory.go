package storage

import (
	"context"
	"fmt"

	"github.com/dafibh/gigledger/ledger-backend/internal/config"
	"github.com/dafibh/gigledger/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// NewBlobStore builds the store selected by cfg.StorageBackend.
// The returned cleanup func releases the store's resources and is never nil.
func NewBlobStore(ctx context.Context, cfg *config.Config) (domain.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn().Msg("Using in-memory ledger storage; saved data will not survive a restart")
		return NewMemoryBlobStore(), noop, nil

	case config.StorageSQLite:
		store, err := NewSQLiteBlobStore(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close SQLite blob store")
			}
		}, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		store, err := NewPostgresBlobStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Msg("Connected to database")
		return store, pool.Close, nil

	case config.StorageS3:
		store, err := NewS3BlobStore(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Str("prefix", cfg.S3.Prefix).Msg("S3 blob store ready")
		return store, noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
