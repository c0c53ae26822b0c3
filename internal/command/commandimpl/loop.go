package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const greeting = `📸 Send an Instagram profile URL or username to view:
- HD Profile Picture
- Latest Stories
- Highlights
- Profile Info

Example URL: https://www.instagram.com/nasa/

To authenticate the bot, use /login <username> <password>.
Use /stats to see how much media this chat has received.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update",
							"panic", r, "stack", string(debug.Stack()))
					}
				}()
				c.processUpdate(ctx, u)
			}(update)
		}
	}
}

func (c *CommandImpl) processUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		c.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !c.Limiter.Allow(chatID) {
		c.Logger.Warn("Chat rate limited", "chatID", chatID)
		c.reply(chatID, "⏳ Too many requests. Please slow down.")
		return
	}

	c.Logger.Info("Message received", "from", update.Message.From.UserName)

	if update.Message.IsCommand() {
		if err := c.processCommand(ctx, update); err != nil {
			c.Logger.Error("Error processing command",
				"command", update.Message.Command(),
				"error", err)
		}
		return
	}

	c.processTargetMessage(ctx, update)
}

func (c *CommandImpl) reply(chatID int64, text string) {
	if _, err := c.Telegram.SendMessage(chatID, text); err != nil {
		c.Logger.Error("Failed to send reply", "chatID", chatID, "error", err)
	}
}
