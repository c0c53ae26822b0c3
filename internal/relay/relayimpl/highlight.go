package relayimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/pagination"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/formatter"
)

// SendHighlightList shows one page of the target's highlight albums as an
// inline keyboard. No paging state is kept server side; the reel list is
// re-derived from upstream on every page request.
func (r *RelayImpl) SendHighlightList(ctx context.Context, chatID int64, username string, page int) error {
	if err := r.relayHighlightList(ctx, chatID, username, page); err != nil {
		r.failFlow(chatID, "highlights", username, "⚠️ Failed to fetch highlights.", err)
		return err
	}
	return nil
}

func (r *RelayImpl) relayHighlightList(ctx context.Context, chatID int64, username string, page int) error {
	sess, err := r.session()
	if err != nil {
		if errors.Is(err, credentials.ErrIncomplete) {
			r.notify(chatID, noticeLoginRequired)
			return nil
		}
		return err
	}

	profile, err := r.fetchProfile(ctx, sess, username)
	if err != nil {
		if errors.Is(err, instagram.ErrProfileNotFound) {
			r.notify(chatID, noticeProfileNotFound)
			return nil
		}
		return err
	}

	if !profile.Accessible() {
		r.notify(chatID, noticePrivateProfile)
		return nil
	}

	reels, err := sess.HighlightReels(ctx, profile)
	if err != nil {
		if errors.Is(err, instagram.ErrStoriesForbidden) {
			r.notify(chatID, noticeStoriesForbidden)
			return nil
		}
		return err
	}

	if len(reels) == 0 {
		r.notify(chatID, noticeNoHighlights)
		return nil
	}

	window, hasPrev, hasNext := pagination.Window(reels, page, r.Config.Relay.HighlightPageSize)
	if len(window) == 0 {
		r.notify(chatID, noticeNoHighlights)
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, reel := range window {
		payload, _ := json.Marshal(map[string]string{
			"action":  "dl_highlight",
			"user":    username,
			"reel_id": reel.ID,
		})
		label := fmt.Sprintf("🌟 %s", formatter.TruncateTitle(reel.Title, 15))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, string(payload)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if hasPrev {
		payload, _ := json.Marshal(map[string]any{
			"action": "hl_page",
			"user":   username,
			"page":   page - 1,
		})
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⏪ Back", string(payload)))
	}
	if hasNext {
		payload, _ := json.Marshal(map[string]any{
			"action": "hl_page",
			"user":   username,
			"page":   page + 1,
		})
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⏩ Next", string(payload)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	text := fmt.Sprintf("Select a highlight for @%s (Page %d):", username, page+1)
	return r.Telegram.SendMessageWithKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// SendHighlightItems relays every item of one chosen highlight reel
// through the same materialize/gate/send path as stories.
func (r *RelayImpl) SendHighlightItems(ctx context.Context, chatID int64, username, reelID string) (domain.DeliveryReport, error) {
	report, err := r.relayHighlightItems(ctx, chatID, username, reelID)
	if err != nil {
		r.failFlow(chatID, "highlight_items", username, "⚠️ Failed to download highlight items.", err)
	}
	return report, err
}

func (r *RelayImpl) relayHighlightItems(ctx context.Context, chatID int64, username, reelID string) (domain.DeliveryReport, error) {
	var report domain.DeliveryReport

	sess, err := r.session()
	if err != nil {
		if errors.Is(err, credentials.ErrIncomplete) {
			r.notify(chatID, noticeLoginRequired)
			return report, nil
		}
		return report, err
	}

	profile, err := r.fetchProfile(ctx, sess, username)
	if err != nil {
		if errors.Is(err, instagram.ErrProfileNotFound) {
			r.notify(chatID, noticeProfileNotFound)
			return report, nil
		}
		return report, err
	}

	if !profile.Accessible() {
		r.notify(chatID, noticePrivateProfile)
		return report, nil
	}

	// Highlight reels keep the order the upstream service returns.
	items, err := sess.HighlightItems(ctx, profile, reelID)
	if err != nil {
		return report, err
	}

	if len(items) == 0 {
		r.notify(chatID, "No items found in this highlight album.")
		return report, nil
	}

	r.Logger.Info("Processing highlight items", "username", username, "reel_id", reelID, "count", len(items))

	report, err = r.relayItems(ctx, sess, chatID, items)
	if err != nil {
		return report, err
	}

	r.notify(chatID, fmt.Sprintf("📤 Total %d of %d highlight items sent successfully.", report.Sent, report.Attempted))
	return report, nil
}
