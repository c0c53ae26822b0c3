package commandimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleLogin authenticates against Instagram with the supplied password
// and persists the resulting session tokens. The message carrying the
// password is deleted best effort either way.
func (c *CommandImpl) handleLogin(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID
	args := strings.Fields(update.Message.CommandArguments())

	// The chat history must not keep the plaintext password around.
	defer func() {
		if err := c.Telegram.DeleteMessage(chatID, update.Message.MessageID); err != nil {
			c.Logger.Warn("Failed to delete login message", "chatID", chatID, "error", err)
		}
	}()

	if len(args) != 2 {
		c.reply(chatID, "❌ Usage: /login <username> <password>")
		return nil
	}
	username, password := args[0], args[1]

	c.Logger.Info("Login requested", "username", username)

	creds, err := c.Instagram.Authenticate(ctx, username, password)
	if err != nil {
		c.Logger.Error("Login failed", "username", username, "error", err)
		c.reply(chatID, "❌ Login failed. Please check your credentials.")
		return err
	}

	if err := c.Credentials.Save(creds); err != nil {
		c.reply(chatID, "❌ Login succeeded but saving the session failed.")
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	c.reply(chatID, "✅ Login successful! Session tokens saved.")
	return nil
}
