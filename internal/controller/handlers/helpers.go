package handlers

import (
	"context"
	"regexp"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/session"
)

var (
	timePattern  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// isValidTime проверяет формат "ЧЧ:ММ"
func isValidTime(s string) bool {
	return timePattern.MatchString(s)
}

// isValidDate проверяет формат "ГГГГ-ММ-ДД" и что дата существует
func isValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	b.SendMessage(ctx, params)
}

func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendMessage(ctx, b, chatID, text, nil)
}

// getInt достаёт int из временных данных диалога
func (h *Handlers) getInt(telegramID int64, key string) (int, bool) {
	value, ok := h.deps.StateManager.GetData(telegramID, key)
	if !ok {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}

// mainMenuKeyboard строит клавиатуру главного меню по роли
func mainMenuKeyboard(sess *session.Session) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	if sess == nil || sess.User == nil {
		return kb.
			Row(keyboard.Button("🔑 Войти", "login_start")).
			Row(keyboard.Button("📝 Зарегистрироваться", "register_start")).
			Build()
	}

	switch sess.User.Role {
	case model.RoleStudent:
		kb.Row(keyboard.Button("🧑‍🏫 Репетиторы", "browse_tutors")).
			Row(keyboard.Button("📅 Мои записи", "my_bookings"))
	case model.RoleTutor:
		kb.Row(keyboard.Button("📅 Записи учеников", "tutor_bookings")).
			Row(keyboard.Button("🗓 Доступность", "availability_menu")).
			Row(keyboard.Button("👤 Профиль", "profile_menu"))
	case model.RoleAdmin:
		kb.Row(keyboard.Button("🛠 Панель администратора", "admin_menu"))
	}

	return kb.Build()
}
