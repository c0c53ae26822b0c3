package telegramimpl

import (
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// GetUpdatesChan wraps the bot's GetUpdatesChan method
func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

func (tg *TelegramImpl) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return tg.TgBot.Request(c)
}

// SendMessage sends a text message and returns the sent message ID.
func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sentMsg, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message",
			"chatID", chatID,
			"error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	return sentMsg.MessageID, nil
}

func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message",
			"chatID", chatID,
			"messageID", messageID,
			"error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) DeleteMessage(chatID int64, messageID int) error {
	if _, err := tg.TgBot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message with keyboard",
			"chatID", chatID,
			"error", err)
		return fmt.Errorf("failed to send message with keyboard: %w", err)
	}
	return nil
}

// SendPhotoFile sends a local image file with a caption.
func (tg *TelegramImpl) SendPhotoFile(chatID int64, path string, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
	photo.Caption = caption
	if _, err := tg.TgBot.Send(photo); err != nil {
		tg.Logger.Error("Error sending photo",
			"chatID", chatID,
			"path", path,
			"error", err)
		return fmt.Errorf("failed to send photo: %w", err)
	}
	return nil
}

// SendVideoFile sends a local video file with a caption. Telegram applies
// its own read/write timeouts on large media at this boundary.
func (tg *TelegramImpl) SendVideoFile(chatID int64, path string, caption string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(path))
	video.Caption = caption
	if _, err := tg.TgBot.Send(video); err != nil {
		tg.Logger.Error("Error sending video",
			"chatID", chatID,
			"path", path,
			"error", err)
		return fmt.Errorf("failed to send video: %w", err)
	}
	return nil
}

// SendDocumentFile sends a local file as a document so Telegram does not
// re-compress it.
func (tg *TelegramImpl) SendDocumentFile(chatID int64, path string, filename, caption string) error {
	file, err := documentFile(path, filename)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(chatID, file)
	doc.Caption = caption
	if _, err := tg.TgBot.Send(doc); err != nil {
		tg.Logger.Error("Error sending document",
			"chatID", chatID,
			"path", path,
			"error", err)
		return fmt.Errorf("failed to send document: %w", err)
	}
	return nil
}

// documentFile loads a local file under the name the receiver should see.
func documentFile(path, filename string) (tgbotapi.RequestFileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return tgbotapi.FileBytes{Name: filename, Bytes: data}, nil
}
