package relay

import (
	"context"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=relay.go -destination=mocks/mock.go

// Client runs the retrieval-and-relay flows. Each call services exactly one
// chat request and cleans up after itself on every exit path.
type Client interface {
	SendProfilePicture(ctx context.Context, chatID int64, username string) error
	SendStories(ctx context.Context, chatID int64, username string) (domain.DeliveryReport, error)
	SendHighlightList(ctx context.Context, chatID int64, username string, page int) error
	SendHighlightItems(ctx context.Context, chatID int64, username, reelID string) (domain.DeliveryReport, error)
	SendProfileInfo(ctx context.Context, chatID int64, username string) error
}
