package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/workdir"
)

// relayItems runs the shared multi-item path: one working area for the
// whole run, then per item materialize -> gate -> send, skipping failed
// items without aborting the run. The working area is torn down on every
// exit path.
func (r *RelayImpl) relayItems(ctx context.Context, sess instagram.Session, chatID int64, items []domain.StoryItem) (domain.DeliveryReport, error) {
	report := domain.DeliveryReport{Attempted: len(items)}

	area, err := workdir.New(r.Config.Relay.TempDir)
	if err != nil {
		return report, fmt.Errorf("failed to create working area: %w", err)
	}
	defer func() {
		if err := area.Cleanup(); err != nil {
			r.Logger.Error("Failed to clean up working area", "path", area.Path(), "error", err)
		}
	}()

	for _, item := range items {
		if sent := r.relayOne(ctx, sess, chatID, item, area.Path()); sent {
			report.Sent++
			r.pause(ctx, r.sendDelay)
		}
		if ctx.Err() != nil {
			break
		}
	}

	return report, nil
}

// relayOne handles a single item and reports whether it was delivered.
// Per-item failures are logged and swallowed; they must never abort the
// run.
func (r *RelayImpl) relayOne(ctx context.Context, sess instagram.Session, chatID int64, item domain.StoryItem, dir string) bool {
	file, err := r.materialize(ctx, sess, item, dir)
	if err != nil {
		if errors.Is(err, ErrNoMediaProduced) {
			r.Logger.Warn("No valid media file produced, skipping item", "item_id", item.ID)
		} else {
			r.Logger.Error("Failed to materialize item, skipping", "item_id", item.ID, "error", err)
		}
		return false
	}
	// Keep the working area empty between items so the next newest-file
	// lookup cannot pick up this artifact.
	defer func() {
		if err := os.Remove(file.Path); err != nil && !os.IsNotExist(err) {
			r.Logger.Error("Failed to remove artifact", "path", file.Path, "error", err)
		}
	}()

	if err := r.gateCheck(file); err != nil {
		r.Logger.Warn("Item rejected by transport gate",
			"item_id", item.ID,
			"size", file.Size,
			"error", err)
		r.notify(chatID, fmt.Sprintf("⚠️ File exceeds %dMB limit.", r.Config.Relay.MaxFileSizeMB))
		return false
	}

	caption := r.caption(file)
	if file.Kind == domain.MediaKindVideo {
		err = r.Telegram.SendVideoFile(chatID, file.Path, caption)
	} else {
		err = r.Telegram.SendPhotoFile(chatID, file.Path, caption)
	}
	if err != nil {
		r.Logger.Error("Failed to send item, skipping", "item_id", item.ID, "error", err)
		return false
	}

	r.recordDelivery(ctx, chatID, item)
	return true
}

// recordDelivery is best effort; relay log failures never affect the run.
func (r *RelayImpl) recordDelivery(ctx context.Context, chatID int64, item domain.StoryItem) {
	logCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	entry := domain.RelayLog{
		ChatID:    chatID,
		UserName:  item.Username,
		MediaKind: item.Kind.String(),
		TakenAt:   item.TakenAt,
	}
	if err := r.RelayLogRepo.Create(logCtx, entry); err != nil {
		r.Logger.Error("Failed to record delivery", "item_id", item.ID, "error", err)
	}
}
