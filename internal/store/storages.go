package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-todo-offline/internal/config"
	"github.com/MKhiriev/go-todo-offline/internal/logger"
)

// Storages groups the repositories backing the outbox and the cache store.
type Storages struct {
	// Outbox is the durable queue of mutations pending delivery.
	Outbox OutboxRepository

	// Cache holds response snapshots grouped into generations.
	Cache CacheRepository

	db *DB
}

// NewStorages opens the database described by cfg.DB, runs pending
// migrations and wires the repositories. When cfg.HotCache.Size is positive
// the cache repository is fronted by an in-process LRU.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnect(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cache := NewCacheRepository(db, logger)
	if cfg.HotCache.Size > 0 {
		cache, err = NewHotCacheRepository(cache, cfg.HotCache.Size)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("hot cache: %w", err)
		}
	}

	return &Storages{
		Outbox: NewOutboxRepository(db, logger),
		Cache:  cache,
		db:     db,
	}, nil
}

// Close releases the database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
