package relaylog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/repositories"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
)

type PgxRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, logger logger.Logger) *PgxRepository {
	return &PgxRepository{
		pool:   pool,
		logger: logger.WithComponent("RelayLogRepo"),
	}
}

var _ Repository = (*PgxRepository)(nil)

func (r *PgxRepository) Create(ctx context.Context, entry domain.RelayLog) error {
	query, args, err := repositories.SqBuilder.
		Insert("relay_logs").
		Columns("chat_id", "user_name", "media_kind", "taken_at", "delivered_at").
		Values(entry.ChatID, entry.UserName, entry.MediaKind, entry.TakenAt, time.Now()).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to insert relay log", "username", entry.UserName, "error", err)
		return ErrCannotCreate
	}
	return nil
}

func (r *PgxRepository) CountByChat(ctx context.Context, chatID int64) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Select("COUNT(*)").
		From("relay_logs").
		Where(sq.Eq{"chat_id": chatID}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count relay logs: %w", err)
	}
	return count, nil
}

func (r *PgxRepository) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)

	query, args, err := repositories.SqBuilder.
		Delete("relay_logs").
		Where(sq.Lt{"delivered_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up relay logs: %w", err)
	}
	return result.RowsAffected(), nil
}
