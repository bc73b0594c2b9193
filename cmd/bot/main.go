package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/tutorhub/tutorhub_bot/internal/app"
	"github.com/tutorhub/tutorhub_bot/internal/config"
	"github.com/tutorhub/tutorhub_bot/internal/controller"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

const (
	notifyLimit = 3
	notifyTTL   = 5 * time.Second

	sessionSweepInterval = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting tutorhub bot",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Клиент удалённого API
	gw := gateway.NewClient(cfg.APIBaseURL)

	// Сессии пользователей бота
	sessions := session.NewManager()

	// Сервисы
	bookingService := service.NewBookingService(gw, logger)
	tutorService := service.NewTutorService(gw, logger)
	availabilityService := service.NewAvailabilityService(gw, logger)
	categoryService := service.NewCategoryService(gw, logger)
	adminService := service.NewAdminService(gw, logger)
	authService := service.NewAuthService(gw, sessions, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Очередь уведомлений с автоскрытием
	notifyQueue := notify.NewQueue(b, logger, notifyLimit, notifyTTL)
	defer notifyQueue.Shutdown()

	// Фоновая проверка живости сессий
	sweeper := app.NewSessionSweeper(authService, sessions, logger, sessionSweepInterval)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	botController := controller.NewBotController(
		b,
		bookingService,
		tutorService,
		availabilityService,
		categoryService,
		adminService,
		authService,
		sessions,
		notifyQueue,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Error("Failed to register handlers", zap.Error(err))
	}

	logger.Info("✅ Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
