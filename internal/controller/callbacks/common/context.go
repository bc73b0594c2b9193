package common

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/session"
)

// HandlerContext содержит общие данные для обработки callback:
// сессию, сообщение, идентификаторы — чтобы не дублировать их получение.
type HandlerContext struct {
	Ctx        context.Context
	Bot        *bot.Bot
	Callback   *models.CallbackQuery
	Handler    *callbacktypes.Handler
	Message    *models.Message
	Session    *session.Session
	TelegramID int64
	ChatID     int64
}

func NewHandlerContext(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
) *HandlerContext {
	msg := GetMessageFromCallback(callback)
	var chatID int64
	if msg != nil {
		chatID = msg.Chat.ID
	}

	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Callback:   callback,
		Handler:    h,
		Message:    msg,
		TelegramID: callback.From.ID,
		ChatID:     chatID,
	}
}

// NewMessageContext строит контекст из обычного сообщения (команды и
// диалоги). Callback отсутствует, поэтому экраны отправляются новыми
// сообщениями вместо редактирования.
func NewMessageContext(
	ctx context.Context,
	b *bot.Bot,
	message *models.Message,
	h *callbacktypes.Handler,
) *HandlerContext {
	return &HandlerContext{
		Ctx:        ctx,
		Bot:        b,
		Handler:    h,
		TelegramID: message.From.ID,
		ChatID:     message.Chat.ID,
	}
}

// LoadSession загружает сессию пользователя в контекст
func (hc *HandlerContext) LoadSession() error {
	sess := hc.Handler.Sessions.Get(hc.TelegramID)
	if sess == nil || sess.User == nil {
		return ErrNotAuthorized
	}
	hc.Session = sess
	return nil
}

// RequireRole загружает сессию и проверяет роль. Сопоставление ролей
// исчерпывающее: неизвестная роль трактуется как запрет.
func (hc *HandlerContext) RequireRole(roles ...model.Role) error {
	if err := hc.LoadSession(); err != nil {
		return err
	}

	switch hc.Session.User.Role {
	case model.RoleStudent, model.RoleTutor, model.RoleAdmin:
		for _, r := range roles {
			if hc.Session.User.Role == r {
				return nil
			}
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}

// Token возвращает токен текущей сессии (пустая строка без сессии)
func (hc *HandlerContext) Token() string {
	if hc.Session == nil {
		return ""
	}
	return hc.Session.Token
}

// User возвращает пользователя текущей сессии
func (hc *HandlerContext) User() *model.User {
	if hc.Session == nil {
		return nil
	}
	return hc.Session.User
}

// Answer отвечает на callback без алерта
func (hc *HandlerContext) Answer(text string) {
	if hc.Callback == nil {
		return
	}
	AnswerCallback(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// AnswerAlert отвечает на callback алертом; без callback шлёт текст в чат
func (hc *HandlerContext) AnswerAlert(text string) {
	if hc.Callback == nil {
		hc.SendMessage(text, nil)
		return
	}
	AnswerCallbackAlert(hc.Ctx, hc.Bot, hc.Callback.ID, text)
}

// EditMessage редактирует сообщение, из которого пришёл callback.
// В контексте без callback отправляет экран новым сообщением.
func (hc *HandlerContext) EditMessage(text string, keyboard *models.InlineKeyboardMarkup) {
	if hc.Message == nil {
		hc.SendMessage(text, keyboard)
		return
	}
	hc.Bot.EditMessageText(hc.Ctx, &bot.EditMessageTextParams{
		ChatID:      hc.ChatID,
		MessageID:   hc.Message.ID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
}

// SendMessage отправляет новое сообщение в тот же чат
func (hc *HandlerContext) SendMessage(text string, keyboard *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: hc.ChatID,
		Text:   text,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	hc.Bot.SendMessage(hc.Ctx, params)
}
