package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/relay"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/repositories/relaylog"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/retry"
	"go.uber.org/fx"
)

const (
	noticeLoginRequired    = "🔑 No Instagram session. Use /login <username> <password> first."
	noticePrivateProfile   = "🔒 Private profile - You are not following this account."
	noticeStoriesForbidden = "🔒 Private profile - Bot cannot access stories."
	noticeProfileNotFound  = "❌ Profile not found."
	noticeNoStories        = "📭 No stories available."
	noticeNoHighlights     = "🌟 No highlights available."
)

type Opts struct {
	fx.In

	Instagram    instagram.Client
	Telegram     telegram.Client
	Credentials  credentials.Store
	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config
}

type RelayImpl struct {
	Instagram    instagram.Client
	Telegram     telegram.Client
	Credentials  credentials.Store
	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config

	location    *time.Location
	maxFileSize int64
	itemDelay   time.Duration
	sendDelay   time.Duration
}

func New(opts Opts) *RelayImpl {
	loc, err := time.LoadLocation(opts.Config.Relay.Timezone)
	if err != nil {
		loc = time.Local
		opts.Logger.Warn("Failed to load display timezone, using local timezone",
			"timezone", opts.Config.Relay.Timezone, "error", err)
	}

	return &RelayImpl{
		Instagram:    opts.Instagram,
		Telegram:     opts.Telegram,
		Credentials:  opts.Credentials,
		RelayLogRepo: opts.RelayLogRepo,
		Logger:       opts.Logger.WithComponent("Relay"),
		Config:       opts.Config,
		location:     loc,
		maxFileSize:  opts.Config.Relay.MaxFileSizeMB * 1024 * 1024,
		itemDelay:    time.Duration(opts.Config.Relay.ItemDelaySeconds) * time.Second,
		sendDelay:    time.Duration(opts.Config.Relay.SendDelaySeconds) * time.Second,
	}
}

var _ relay.Client = (*RelayImpl)(nil)

// session resolves a short-lived upstream session for one request from the
// stored credentials.
func (r *RelayImpl) session() (instagram.Session, error) {
	creds, err := r.Credentials.Load()
	if err != nil {
		return nil, err
	}
	return r.Instagram.Resume(creds)
}

// fetchProfile retries transient upstream failures; business outcomes pass
// through unretried.
func (r *RelayImpl) fetchProfile(ctx context.Context, sess instagram.Session, username string) (*domain.Profile, error) {
	var profile *domain.Profile
	op := func() error {
		p, err := sess.Profile(ctx, username)
		if err != nil {
			if errors.Is(err, instagram.ErrProfileNotFound) || errors.Is(err, instagram.ErrPrivateAccount) {
				return backoff.Permanent(err)
			}
			return err
		}
		profile = p
		return nil
	}
	if err := retry.Do(ctx, r.Logger, "FetchProfile", op, retry.DefaultConfig()); err != nil {
		return nil, err
	}
	return profile, nil
}

// failFlow is the flow boundary for unexpected errors: log with full
// context, show the user one generic flow-specific notice, never the
// internal detail.
func (r *RelayImpl) failFlow(chatID int64, flow, username, notice string, err error) {
	r.Logger.Error("Relay flow failed",
		"flow", flow,
		"username", username,
		"chatID", chatID,
		"error", err)
	if _, sendErr := r.Telegram.SendMessage(chatID, notice); sendErr != nil {
		r.Logger.Error("Failed to send failure notice", "chatID", chatID, "error", sendErr)
	}
}

func (r *RelayImpl) notify(chatID int64, text string) {
	if _, err := r.Telegram.SendMessage(chatID, text); err != nil {
		r.Logger.Error("Failed to send notice", "chatID", chatID, "error", err)
	}
}

// pause waits for the given delay without blocking other requests' tasks.
func (r *RelayImpl) pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func (r *RelayImpl) localTimestamp(t time.Time) string {
	return t.In(r.location).Format("02-01-2006 15:04")
}

func (r *RelayImpl) caption(file *domain.MediaFile) string {
	icon := "📸"
	if file.Kind == domain.MediaKindVideo {
		icon = "📹"
	}
	return fmt.Sprintf("%s %s", icon, r.localTimestamp(file.TakenAt))
}
