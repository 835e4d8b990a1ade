package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-todo-offline/internal/logger"
	"github.com/MKhiriev/go-todo-offline/models"
)

const outboxTable = "outbox"

type outboxRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewOutboxRepository(db *DB, logger *logger.Logger) OutboxRepository {
	return &outboxRepository{
		db:     db,
		logger: logger,
	}
}

func (o *outboxRepository) Enqueue(ctx context.Context, mutation models.QueuedMutation) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := o.db.builder().
		Insert(outboxTable).
		Columns("target_url", "method", "body", "enqueued_at").
		Values(mutation.TargetURL, mutation.Method, []byte(mutation.Body), mutation.EnqueuedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = o.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Enqueue").
			Str("target_url", mutation.TargetURL).
			Msg("failed to insert queued mutation")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, o.db.classify(err))
	}

	return id, nil
}

func (o *outboxRepository) ListAll(ctx context.Context) ([]models.QueuedMutation, error) {
	log := logger.FromContext(ctx)

	query, args, err := o.db.builder().
		Select("id", "target_url", "method", "body", "enqueued_at").
		From(outboxTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := o.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "outboxRepository.ListAll").
			Msg("failed to query queued mutations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, o.db.classify(err))
	}
	defer rows.Close()

	items := make([]models.QueuedMutation, 0)
	for rows.Next() {
		var (
			item models.QueuedMutation
			body []byte
		)
		if err = rows.Scan(&item.ID, &item.TargetURL, &item.Method, &body, &item.EnqueuedAt); err != nil {
			log.Err(err).
				Str("func", "outboxRepository.ListAll").
				Msg("failed to scan queued mutation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		item.Body = body
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.ListAll").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return items, nil
}

func (o *outboxRepository) Remove(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := o.db.builder().
		Delete(outboxTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = o.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "outboxRepository.Remove").
			Int64("id", id).
			Msg("failed to delete queued mutation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, o.db.classify(err))
	}

	return nil
}
