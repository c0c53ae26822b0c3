package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/command"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/command/commandimpl"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram/instagramimpl"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/janitor"
	_ "github.com/orgball2608/insta-relay-telegram-bot/internal/migrations"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/pgx"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/relay"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/relay/relayimpl"
	repositories "github.com/orgball2608/insta-relay-telegram-bot/internal/repositories/fx"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
)

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		pgx.New,
	),
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		), fx.Annotate(
			instagramimpl.New,
			fx.As(new(instagram.Client)),
		), fx.Annotate(
			relayimpl.New,
			fx.As(new(relay.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		janitor.New,
	),
	credentials.Module,
	repositories.Module,
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(c *config.Config) error {
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	db, err := sql.Open("postgres", c.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	return goose.Up(db, filepath.Join(wd, "internal", "migrations"))
}

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, cmdClient command.Client, j *janitor.Janitor) {
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			if err := j.Start(runCtx); err != nil {
				return err
			}

			go func() {
				if err := cmdClient.HandleCommand(runCtx); err != nil && runCtx.Err() == nil {
					log.Error("Command handler stopped", "error", err)
				}
			}()

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return j.Stop()
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
