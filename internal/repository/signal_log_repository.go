package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"otc-signal-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SignalLogRepository keeps a history of every generated signal batch.
type SignalLogRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSignalLogRepository(pool PgxPool, tracer trace.Tracer) *SignalLogRepository {
	return &SignalLogRepository{pool: pool, tracer: tracer}
}

func (r *SignalLogRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "signal-log-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS signal_batches (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			strategy TEXT NOT NULL,
			assets TEXT[] NOT NULL,
			entries JSONB NOT NULL,
			message TEXT NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_signal_batches_generated_at
			ON signal_batches (generated_at DESC);
	`)
	return err
}

func (r *SignalLogRepository) InsertBatch(ctx context.Context, batch *domain.SignalBatch) (int64, error) {
	_, span := r.tracer.Start(ctx, "signal-log-repo.insert-batch")
	defer span.End()

	entries, err := json.Marshal(batch.Entries)
	if err != nil {
		return 0, fmt.Errorf("encode entries: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO signal_batches (user_id, strategy, assets, entries, message, generated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		batch.UserID,
		batch.Strategy,
		batch.Assets,
		entries,
		batch.Message,
		batch.GeneratedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SignalLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.SignalBatch, error) {
	_, span := r.tracer.Start(ctx, "signal-log-repo.list-recent")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, strategy, assets, entries, message, generated_at
		 FROM signal_batches
		 ORDER BY generated_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]domain.SignalBatch, 0, limit)
	for rows.Next() {
		var b domain.SignalBatch
		var entries []byte
		if err := rows.Scan(&b.ID, &b.UserID, &b.Strategy, &b.Assets, &entries, &b.Message, &b.GeneratedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(entries, &b.Entries); err != nil {
			return nil, fmt.Errorf("decode entries for batch %d: %w", b.ID, err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
