package commandimpl

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callbackPayload is the JSON carried in every inline button. Only the
// fields relevant to the action are set.
type callbackPayload struct {
	Action string `json:"action"`
	User   string `json:"user"`
	ReelID string `json:"reel_id,omitempty"`
	Page   int    `json:"page,omitempty"`
}

func (c *CommandImpl) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge first so the button stops spinning.
	if _, err := c.Telegram.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		c.Logger.Warn("Failed to acknowledge callback", "error", err)
	}

	var payload callbackPayload
	if err := json.Unmarshal([]byte(query.Data), &payload); err != nil {
		c.Logger.Error("Failed to unmarshal callback data", "error", err)
		return
	}

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	if !c.Limiter.Allow(chatID) {
		c.Logger.Warn("Chat rate limited", "chatID", chatID)
		c.reply(chatID, "⏳ Too many requests. Please slow down.")
		return
	}

	c.Logger.Info("Callback received", "action", payload.Action, "username", payload.User, "chatID", chatID)

	switch payload.Action {
	case "dl_picture":
		if err := c.Relay.SendProfilePicture(ctx, chatID, payload.User); err != nil {
			c.Logger.Error("Profile picture flow failed", "username", payload.User, "error", err)
		}
	case "dl_stories":
		if _, err := c.Relay.SendStories(ctx, chatID, payload.User); err != nil {
			c.Logger.Error("Stories flow failed", "username", payload.User, "error", err)
		}
	case "hl_list":
		if err := c.Relay.SendHighlightList(ctx, chatID, payload.User, 0); err != nil {
			c.Logger.Error("Highlight list flow failed", "username", payload.User, "error", err)
		}
	case "hl_page":
		if err := c.Relay.SendHighlightList(ctx, chatID, payload.User, payload.Page); err != nil {
			c.Logger.Error("Highlight page flow failed", "username", payload.User, "page", payload.Page, "error", err)
		}
	case "dl_highlight":
		if err := c.Telegram.EditMessageText(chatID, query.Message.MessageID,
			fmt.Sprintf("Downloading highlight album for @%s... ⏳", payload.User)); err != nil {
			c.Logger.Warn("Failed to update highlight list message", "error", err)
		}
		if _, err := c.Relay.SendHighlightItems(ctx, chatID, payload.User, payload.ReelID); err != nil {
			c.Logger.Error("Highlight items flow failed", "username", payload.User, "reel_id", payload.ReelID, "error", err)
		}
	case "profile_info":
		if err := c.Relay.SendProfileInfo(ctx, chatID, payload.User); err != nil {
			c.Logger.Error("Profile info flow failed", "username", payload.User, "error", err)
		}
	default:
		c.Logger.Warn("Unknown callback action", "action", payload.Action)
	}
}
