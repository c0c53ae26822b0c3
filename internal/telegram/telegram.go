package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go

// Client is the output channel the relay pipeline streams into.
type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)

	SendMessage(chatID int64, text string) (int, error)
	EditMessageText(chatID int64, messageID int, newText string) error
	DeleteMessage(chatID int64, messageID int) error
	SendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error

	SendPhotoFile(chatID int64, path string, caption string) error
	SendVideoFile(chatID int64, path string, caption string) error
	SendDocumentFile(chatID int64, path string, filename, caption string) error
}
