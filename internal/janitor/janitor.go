package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/repositories/relaylog"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/workdir"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config
}

// Janitor runs the daily housekeeping job: relay-log retention cleanup
// and removal of stale working areas left behind by crashed runs.
type Janitor struct {
	RelayLogRepo relaylog.Repository
	Logger       logger.Logger
	Config       *config.Config

	scheduler gocron.Scheduler
}

func New(opts Opts) *Janitor {
	return &Janitor{
		RelayLogRepo: opts.RelayLogRepo,
		Logger:       opts.Logger.WithComponent("Janitor"),
		Config:       opts.Config,
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	loc, err := time.LoadLocation(j.Config.Relay.Timezone)
	if err != nil {
		loc = time.Local
		j.Logger.Warn("Failed to load timezone, using local timezone",
			"timezone", j.Config.Relay.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}

			taskCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()

			j.sweep(taskCtx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule housekeeping job: %w", err)
	}

	scheduler.Start()
	j.scheduler = scheduler
	j.Logger.Info("Housekeeping job scheduled", "at", "03:00", "timezone", loc.String())
	return nil
}

func (j *Janitor) Stop() error {
	if j.scheduler == nil {
		return nil
	}
	return j.scheduler.Shutdown()
}

func (j *Janitor) sweep(ctx context.Context) {
	retention := time.Duration(j.Config.Relay.LogRetentionDays) * 24 * time.Hour

	removed, err := j.RelayLogRepo.CleanupOldRecords(ctx, retention)
	if err != nil {
		j.Logger.Error("Failed to clean up old relay logs", "error", err)
	} else {
		j.Logger.Info("Relay log cleanup finished", "removed", removed)
	}

	swept, err := workdir.SweepStale(j.Config.Relay.TempDir, 24*time.Hour)
	if err != nil {
		j.Logger.Error("Failed to sweep stale working areas", "error", err)
	} else if swept > 0 {
		j.Logger.Info("Stale working areas removed", "count", swept)
	}
}
