package app

import (
	"context"
	"time"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

// SessionSweeper фоновая задача: периодически перепроверяет живость токенов
// через AuthService.Refresh и выбрасывает мёртвые сессии. Сервер авторитетен —
// локальная сессия лишь кеш.
type SessionSweeper struct {
	auth     *service.AuthService
	sessions *session.Manager
	logger   *zap.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewSessionSweeper(auth *service.AuthService, sessions *session.Manager, logger *zap.Logger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		auth:     auth,
		sessions: sessions,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую проверку сессий
func (s *SessionSweeper) Start(ctx context.Context) {
	s.logger.Info("Starting session sweeper",
		zap.Duration("interval", s.interval))

	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *SessionSweeper) Stop() {
	s.logger.Info("Stopping session sweeper")
	close(s.stopChan)
}

func (s *SessionSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Session sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Session sweeper cancelled")
			return
		}
	}
}

// sweep обновляет кеш пользователя каждой активной сессии
func (s *SessionSweeper) sweep(ctx context.Context) {
	ids := s.sessions.ActiveIDs()
	if len(ids) == 0 {
		return
	}

	var dropped int
	for _, id := range ids {
		if _, err := s.auth.Refresh(ctx, id); err != nil {
			if apiErr, ok := gateway.IsAPIError(err); ok && apiErr.StatusCode == 401 {
				s.sessions.Clear(id)
				dropped++
			}
			// Сетевые ошибки не выбрасывают сессию: токен может быть жив
		}
	}

	s.logger.Info("Session sweep completed",
		zap.Int("checked", len(ids)),
		zap.Int("dropped", dropped))
}
