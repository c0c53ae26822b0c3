package relaylog

import (
	"context"
	"errors"
	"time"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
)

var ErrCannotCreate = errors.New("error create relay log")

//go:generate go run go.uber.org/mock/mockgen -source=relaylog.go -destination=mocks/mock.go

// Repository records every delivered media item. Rows are informational
// only; the pipeline never reads them on the hot path.
type Repository interface {
	Create(ctx context.Context, entry domain.RelayLog) error
	CountByChat(ctx context.Context, chatID int64) (int64, error)
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
