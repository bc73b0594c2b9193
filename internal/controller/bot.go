package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/handlers"
	"github.com/tutorhub/tutorhub_bot/internal/controller/state"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	bookingService *service.BookingService,
	tutorService *service.TutorService,
	availabilityService *service.AvailabilityService,
	categoryService *service.CategoryService,
	adminService *service.AdminService,
	authService *service.AuthService,
	sessions *session.Manager,
	notifyQueue *notify.Queue,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний диалогов
	stateManager := state.NewManager()

	deps := &callbacktypes.Handler{
		BookingService:      bookingService,
		TutorService:        tutorService,
		AvailabilityService: availabilityService,
		CategoryService:     categoryService,
		AdminService:        adminService,
		AuthService:         authService,
		Sessions:            sessions,
		Notify:              notifyQueue,
		StateManager:        stateManager,
		Logger:              logger,
	}

	cmdHandlers := handlers.NewHandlers(deps)

	callbackHandler := callbacks.NewHandler(
		deps,
		cmdHandlers.ShowMainMenu,
		cmdHandlers.StartLogin,
		cmdHandlers.StartRegister,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/login", bot.MatchTypeExact, c.handlers.HandleLogin)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/register", bot.MatchTypeExact, c.handlers.HandleRegister)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/logout", bot.MatchTypeExact, c.handlers.HandleLogout)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Студент
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tutors", bot.MatchTypeExact, c.handlers.HandleTutors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)

	// Репетитор
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/profile", bot.MatchTypeExact, c.handlers.HandleProfile)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)

	// Админ
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/admin", bot.MatchTypeExact, c.handlers.HandleAdmin)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "login", Description: "🔑 Войти"},
		{Command: "register", Description: "📝 Зарегистрироваться"},
		{Command: "tutors", Description: "🧑‍🏫 Каталог репетиторов"},
		{Command: "mybookings", Description: "📅 Мои записи"},
		{Command: "availability", Description: "🗓 Моя доступность (репетитор)"},
		{Command: "profile", Description: "👤 Мой профиль (репетитор)"},
		{Command: "admin", Description: "🛠 Панель администратора"},
		{Command: "logout", Description: "🚪 Выйти"},
		{Command: "cancel", Description: "❌ Отменить текущее действие"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
