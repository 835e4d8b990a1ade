package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

const (
	cacheGenerationsTable = "cache_generations"
	cacheEntriesTable     = "cache_entries"
)

type cacheRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewCacheRepository(db *DB, logger *logger.Logger) CacheRepository {
	return &cacheRepository{
		db:     db,
		logger: logger,
	}
}

func (c *cacheRepository) Match(ctx context.Context, generation, key string) (models.Response, error) {
	query, args, err := c.db.builder().
		Select("status", "header", "body").
		From(cacheEntriesTable).
		Where(sq.Eq{"generation": generation, "request_key": key}).
		ToSql()
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		resp   models.Response
		header string
	)
	err = c.db.QueryRowContext(ctx, query, args...).Scan(&resp.Status, &header, &resp.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Response{}, ErrCacheMiss
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cacheRepository.Match").
			Str("generation", generation).
			Msg("failed to query cached snapshot")
		return models.Response{}, fmt.Errorf("%w: %w", ErrExecutingQuery, c.db.classify(err))
	}

	resp.Header = make(http.Header)
	if err = json.Unmarshal([]byte(header), &resp.Header); err != nil {
		return models.Response{}, fmt.Errorf("%w: %w", ErrDecodingSnapshot, err)
	}

	return resp, nil
}

func (c *cacheRepository) Put(ctx context.Context, generation string, entries ...models.CacheEntry) (err error) {
	log := logger.FromContext(ctx)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, c.db.classify(err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args, err := c.db.builder().
		Insert(cacheGenerationsTable).
		Columns("name", "created_at").
		Values(generation, time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "cacheRepository.Put").
			Str("generation", generation).
			Msg("failed to create cache generation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, c.db.classify(err))
	}

	for _, entry := range entries {
		header, marshalErr := json.Marshal(entry.Response.Header)
		if marshalErr != nil {
			err = fmt.Errorf("encode snapshot header: %w", marshalErr)
			return err
		}

		body := entry.Response.Body
		if body == nil {
			body = []byte{}
		}

		query, args, err = c.db.builder().
			Insert(cacheEntriesTable).
			Columns("generation", "request_key", "method", "url", "status", "header", "body", "stored_at").
			Values(generation, entry.Key, entry.Method, entry.URL, entry.Response.Status, string(header), body, entry.StoredAt.UTC()).
			Suffix("ON CONFLICT (generation, request_key) DO UPDATE SET " +
				"method = excluded.method, url = excluded.url, status = excluded.status, " +
				"header = excluded.header, body = excluded.body, stored_at = excluded.stored_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "cacheRepository.Put").
				Str("generation", generation).
				Str("url", entry.URL).
				Msg("failed to store cached snapshot")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, c.db.classify(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, c.db.classify(err))
	}

	return nil
}

func (c *cacheRepository) Generations(ctx context.Context) ([]string, error) {
	query, args, err := c.db.builder().
		Select("name").
		From(cacheGenerationsTable).
		OrderBy("created_at ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cacheRepository.Generations").
			Msg("failed to list cache generations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, c.db.classify(err))
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return names, nil
}

func (c *cacheRepository) DeleteGeneration(ctx context.Context, name string) (err error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, c.db.classify(err))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deletes := []sq.DeleteBuilder{
		c.db.builder().Delete(cacheEntriesTable).Where(sq.Eq{"generation": name}),
		c.db.builder().Delete(cacheGenerationsTable).Where(sq.Eq{"name": name}),
	}
	for _, del := range deletes {
		query, args, buildErr := del.ToSql()
		if buildErr != nil {
			err = fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
			return err
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			logger.FromContext(ctx).Err(err).
				Str("func", "cacheRepository.DeleteGeneration").
				Str("generation", name).
				Msg("failed to delete cache generation")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, c.db.classify(err))
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, c.db.classify(err))
	}

	return nil
}
