package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/student"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/tutor"
	"github.com/tutorhub/tutorhub_bot/internal/controller/state"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.deps.Logger.Info("Start command",
		zap.Int64("telegram_id", update.Message.From.ID))

	h.ShowMainMenu(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// ShowMainMenu показывает главное меню. Содержимое зависит от того,
// выполнен ли вход, и от роли пользователя.
func (h *Handlers) ShowMainMenu(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64) {
	sess := h.deps.Sessions.Get(telegramID)

	if sess == nil || sess.User == nil {
		h.sendMessage(ctx, b, chatID,
			"👋 Добро пожаловать в TutorHub!\n\n"+
				"Здесь можно найти репетитора, записаться на занятие "+
				"и оставить отзыв.\n\n"+
				"Войдите или создайте учётную запись:",
			mainMenuKeyboard(nil))
		return
	}

	text := fmt.Sprintf("👋 Привет, %s!\n\nВыберите раздел:", sess.User.Name)
	h.sendMessage(ctx, b, chatID, text, mainMenuKeyboard(sess))
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📖 Справка\n\n" +
		"Общие команды:\n" +
		"/start - Главное меню\n" +
		"/login - Войти\n" +
		"/register - Зарегистрироваться\n" +
		"/logout - Выйти\n" +
		"/cancel - Прервать текущий диалог\n\n" +
		"Для студентов:\n" +
		"/tutors - Каталог репетиторов\n" +
		"/mybookings - Мои записи\n\n" +
		"Для репетиторов:\n" +
		"/mybookings - Записи учеников\n" +
		"/availability - Моя доступность\n" +
		"/profile - Мой профиль\n\n" +
		"Для администраторов:\n" +
		"/admin - Панель администратора"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.StartLogin(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// StartLogin запускает диалог входа
func (h *Handlers) StartLogin(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64) {
	if sess := h.deps.Sessions.Get(telegramID); sess != nil {
		h.sendMessage(ctx, b, chatID,
			"Вы уже вошли. Сначала выполните /logout.", nil)
		return
	}

	h.deps.StateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, chatID,
		"🔑 Вход\n\n"+
			"Введите email\n\n"+
			"Для отмены используйте /cancel", nil)
}

// HandleRegister обрабатывает команду /register
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.StartRegister(ctx, b, update.Message.Chat.ID, update.Message.From.ID)
}

// StartRegister предлагает выбрать роль; дальше диалог ведут callbacks
func (h *Handlers) StartRegister(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64) {
	if sess := h.deps.Sessions.Get(telegramID); sess != nil {
		h.sendMessage(ctx, b, chatID,
			"Вы уже вошли. Сначала выполните /logout.", nil)
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🎓 Я студент", "register_role:"+string(model.RoleStudent))).
		Row(keyboard.Button("🧑‍🏫 Я репетитор", "register_role:"+string(model.RoleTutor))).
		Build()

	h.sendMessage(ctx, b, chatID,
		"📝 Регистрация\n\nКем вы хотите быть на платформе?", kb)
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.deps.AuthService.Logout(telegramID)
	h.deps.StateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Вы вышли из учётной записи.", nil)
	h.ShowMainMenu(ctx, b, update.Message.Chat.ID, telegramID)
}

// HandleCancel прерывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.deps.StateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Нет активного диалога.", nil)
		return
	}

	h.deps.StateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Действие отменено.", nil)
	h.ShowMainMenu(ctx, b, update.Message.Chat.ID, telegramID)
}

// HandleTutors обрабатывает команду /tutors
func (h *Handlers) HandleTutors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := common.NewMessageContext(ctx, b, update.Message, h.deps)
	if err := hc.LoadSession(); err != nil {
		h.sendError(ctx, b, hc.ChatID, common.ErrorMessage(err))
		return
	}

	student.RenderCatalog(hc)
}

// HandleMyBookings обрабатывает команду /mybookings для обеих ролей
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := common.NewMessageContext(ctx, b, update.Message, h.deps)
	if err := hc.LoadSession(); err != nil {
		h.sendError(ctx, b, hc.ChatID, common.ErrorMessage(err))
		return
	}

	switch hc.User().Role {
	case model.RoleTutor:
		tutor.RenderTutorBookings(hc)
	default:
		student.RenderBookingsTab(hc, "upcoming")
	}
}

// HandleProfile обрабатывает команду /profile (только репетитор)
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := common.NewMessageContext(ctx, b, update.Message, h.deps)
	if err := hc.RequireRole(model.RoleTutor); err != nil {
		h.sendError(ctx, b, hc.ChatID, common.ErrorMessage(err))
		return
	}

	detail, err := h.deps.TutorService.Detail(hc.Ctx, hc.Token(), hc.User().ID)
	if err != nil {
		common.HandleError(hc, err, "load own profile")
		return
	}
	text, kb := tutor.BuildProfileScreen(detail.Profile)
	hc.EditMessage(text, kb)
}

// HandleAvailability обрабатывает команду /availability (только репетитор)
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := common.NewMessageContext(ctx, b, update.Message, h.deps)
	if err := hc.RequireRole(model.RoleTutor); err != nil {
		h.sendError(ctx, b, hc.ChatID, common.ErrorMessage(err))
		return
	}

	draft, ok := tutor.Draft(h.deps, hc.TelegramID)
	if !ok {
		slots, err := h.deps.AvailabilityService.Load(hc.Ctx, hc.Token(), hc.User().ID)
		if err != nil {
			common.HandleError(hc, err, "load availability")
			return
		}
		draft = slots
		tutor.SetDraft(h.deps, hc.TelegramID, draft)
	}

	text, kb := tutor.BuildAvailabilityScreen(draft)
	hc.EditMessage(text, kb)
}

// HandleAdmin обрабатывает команду /admin
func (h *Handlers) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	hc := common.NewMessageContext(ctx, b, update.Message, h.deps)
	if err := hc.RequireRole(model.RoleAdmin); err != nil {
		h.sendError(ctx, b, hc.ChatID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🛠 Открыть панель", "admin_menu")).
		Build()
	hc.EditMessage("🛠 Панель администратора", kb)
}
