package common

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseArgFromCallback извлекает аргумент из callback data.
// Например: "view_tutor:abc-123" -> "abc-123". ID сервера — строки.
func ParseArgFromCallback(data string) (string, error) {
	idx := strings.Index(data, ":")
	if idx < 0 || idx == len(data)-1 {
		return "", ErrInvalidFormat
	}
	return data[idx+1:], nil
}

// ParseArgsFromCallback извлекает несколько аргументов.
// Например: "remove_slot:3:09:00" -> ["3", "09:00"] при n=2.
func ParseArgsFromCallback(data string, n int) ([]string, error) {
	idx := strings.Index(data, ":")
	if idx < 0 {
		return nil, ErrInvalidFormat
	}
	parts := strings.SplitN(data[idx+1:], ":", n)
	if len(parts) != n {
		return nil, ErrInvalidFormat
	}
	return parts, nil
}
