package commandimpl

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	switch update.Message.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, greeting)
		return err
	case "login":
		return c.handleLogin(ctx, update)
	case "stats":
		return c.handleStats(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see how to use the bot.")
		return err
	}
}

func (c *CommandImpl) handleStats(ctx context.Context, chatID int64) error {
	count, err := c.RelayLogRepo.CountByChat(ctx, chatID)
	if err != nil {
		c.reply(chatID, "⚠️ Failed to fetch stats.")
		return fmt.Errorf("failed to count relay logs: %w", err)
	}

	c.reply(chatID, fmt.Sprintf("📈 Media delivered to this chat so far: %d", count))
	return nil
}

// processTargetMessage treats every plain message as a profile reference
// and answers with the action menu.
func (c *CommandImpl) processTargetMessage(_ context.Context, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID

	username, ok := parseTarget(update.Message.Text)
	if !ok {
		c.reply(chatID, "❌ Send a valid Instagram username or profile URL, e.g. https://www.instagram.com/nasa/")
		return
	}

	keyboard := actionKeyboard(username)
	text := fmt.Sprintf("What would you like to see for @%s?", username)
	if err := c.Telegram.SendMessageWithKeyboard(chatID, text, keyboard); err != nil {
		c.Logger.Error("Failed to send action menu", "chatID", chatID, "error", err)
	}
}

func actionKeyboard(username string) tgbotapi.InlineKeyboardMarkup {
	button := func(label, action string) tgbotapi.InlineKeyboardButton {
		payload, _ := json.Marshal(map[string]string{
			"action": action,
			"user":   username,
		})
		return tgbotapi.NewInlineKeyboardButtonData(label, string(payload))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("📸 Profile Picture", "dl_picture"),
			button("📹 Stories", "dl_stories"),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("🌟 Highlights", "hl_list"),
			button("📊 Profile Info", "profile_info"),
		),
	)
}
