package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
)

// SendStories relays all current stories of the target account, oldest
// first, and reports how many of them made it through.
func (r *RelayImpl) SendStories(ctx context.Context, chatID int64, username string) (domain.DeliveryReport, error) {
	report, err := r.relayStories(ctx, chatID, username)
	if err != nil {
		r.failFlow(chatID, "stories", username, "⚠️ Failed to download stories.", err)
	}
	return report, err
}

func (r *RelayImpl) relayStories(ctx context.Context, chatID int64, username string) (domain.DeliveryReport, error) {
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

	items, err := sess.StoryItems(ctx, profile)
	if err != nil {
		if errors.Is(err, instagram.ErrStoriesForbidden) {
			r.notify(chatID, noticeStoriesForbidden)
			return report, nil
		}
		return report, err
	}

	if len(items) == 0 {
		r.notify(chatID, noticeNoStories)
		return report, nil
	}

	// Stories are relayed oldest first regardless of fetch order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TakenAt.Before(items[j].TakenAt)
	})

	r.Logger.Info("Processing stories", "username", username, "count", len(items))

	report, err = r.relayItems(ctx, sess, chatID, items)
	if err != nil {
		return report, err
	}

	r.notify(chatID, fmt.Sprintf("📤 Total %d of %d stories sent successfully.", report.Sent, report.Attempted))
	return report, nil
}
