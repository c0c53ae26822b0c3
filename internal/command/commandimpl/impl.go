package commandimpl

import (
	"time"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/command"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/ratelimit"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/relay"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/repositories/relaylog"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Instagram    instagram.Client
	Telegram     telegram.Client
	Relay        relay.Client
	Credentials  credentials.Store
	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config
}

type CommandImpl struct {
	Instagram    instagram.Client
	Telegram     telegram.Client
	Relay        relay.Client
	Credentials  credentials.Store
	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config
	Limiter      ratelimit.Limiter
}

func New(opts Opts) *CommandImpl {
	return &CommandImpl{
		Instagram:    opts.Instagram,
		Telegram:     opts.Telegram,
		Relay:        opts.Relay,
		Credentials:  opts.Credentials,
		RelayLogRepo: opts.RelayLogRepo,
		Logger:       opts.Logger.WithComponent("Command"),
		Config:       opts.Config,
		Limiter:      ratelimit.NewInMemoryLimiter(1, 3*time.Second, 3),
	}
}

var _ command.Client = (*CommandImpl)(nil)
