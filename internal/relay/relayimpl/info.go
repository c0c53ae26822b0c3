package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/pkg/formatter"
)

// SendProfileInfo formats the target profile's attributes into one text
// message. No media is involved.
func (r *RelayImpl) SendProfileInfo(ctx context.Context, chatID int64, username string) error {
	if err := r.relayProfileInfo(ctx, chatID, username); err != nil {
		r.failFlow(chatID, "profile_info", username, "⚠️ Failed to fetch profile info.", err)
		return err
	}
	return nil
}

func (r *RelayImpl) relayProfileInfo(ctx context.Context, chatID int64, username string) error {
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

	r.notify(chatID, formatProfileInfo(profile))
	r.Logger.Info("Profile info sent", "username", username)
	return nil
}

func formatProfileInfo(p *domain.Profile) string {
	yesNo := func(v bool) string {
		if v {
			return "Yes"
		}
		return "No"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Profile Info for @%s:\n", p.Username)
	fmt.Fprintf(&sb, "👤 Name: %s\n", p.FullName)
	fmt.Fprintf(&sb, "📝 Bio: %s\n", p.Biography)
	fmt.Fprintf(&sb, "✅ Verified: %s\n", yesNo(p.IsVerified))
	fmt.Fprintf(&sb, "🏢 Business: %s\n", yesNo(p.IsBusiness))
	fmt.Fprintf(&sb, "🔗 Followers: %s\n", formatter.FormatNumber(p.FollowerCount))
	fmt.Fprintf(&sb, "👀 Following: %s\n", formatter.FormatNumber(p.FollowingCount))
	fmt.Fprintf(&sb, "📌 Posts: %s", formatter.FormatNumber(p.MediaCount))
	return sb.String()
}
