package relayimpl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/orgball2608/insta-relay-telegram-bot/internal/credentials"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/instagram"
	"github.com/orgball2608/insta-relay-telegram-bot/internal/workdir"
)

// SendProfilePicture downloads the HD avatar of the target account and
// sends it as a document so Telegram does not re-compress it.
func (r *RelayImpl) SendProfilePicture(ctx context.Context, chatID int64, username string) error {
	if err := r.relayProfilePicture(ctx, chatID, username); err != nil {
		r.failFlow(chatID, "profile_picture", username, "⚠️ Failed to download profile picture.", err)
		return err
	}
	return nil
}

func (r *RelayImpl) relayProfilePicture(ctx context.Context, chatID int64, username string) error {
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

	url := hdAvatarURL(profile.AvatarURL)
	r.Logger.Info("Downloading profile picture", "username", username)

	// Run-unique name: concurrent requests for the same username must not
	// collide.
	path := workdir.TempFilePath(r.Config.Relay.TempDir, "profile_"+username, ".jpg")
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			r.Logger.Error("Failed to remove temp avatar file", "path", path, "error", err)
		}
	}()

	if err := sess.DownloadURL(ctx, url, path); err != nil {
		return fmt.Errorf("failed to download avatar: %w", err)
	}

	filename := fmt.Sprintf("%s_profile.jpg", username)
	caption := fmt.Sprintf("📸 Profile Picture of @%s", username)
	if err := r.Telegram.SendDocumentFile(chatID, path, filename, caption); err != nil {
		return err
	}

	r.Logger.Info("Profile picture sent", "username", username)
	return nil
}

// hdAvatarURL upgrades the thumbnail locator to the high-resolution
// variant before download.
func hdAvatarURL(url string) string {
	return strings.Replace(url, "/s150x150/", "/s1080x1080/", 1)
}
