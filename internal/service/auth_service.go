package service

import (
	"context"
	"fmt"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

// AuthService владеет жизненным циклом сессии: логин кладёт токен и
// пользователя в session.Manager, логаут очищает. Больше токен нигде не живёт.
type AuthService struct {
	gw       *gateway.Client
	sessions *session.Manager
	logger   *zap.Logger
}

func NewAuthService(gw *gateway.Client, sessions *session.Manager, logger *zap.Logger) *AuthService {
	return &AuthService{
		gw:       gw,
		sessions: sessions,
		logger:   logger,
	}
}

// Login выполняет вход и открывает сессию
func (s *AuthService) Login(ctx context.Context, telegramID int64, creds model.LoginCredentials) (*model.User, error) {
	resp, err := s.gw.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.sessions.Set(telegramID, resp.Token, &resp.User)

	s.logger.Info("User logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", resp.User.ID),
		zap.String("role", string(resp.User.Role)))

	return &resp.User, nil
}

// Register регистрирует пользователя и сразу открывает сессию
func (s *AuthService) Register(ctx context.Context, telegramID int64, data model.RegisterData) (*model.User, error) {
	resp, err := s.gw.Register(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.sessions.Set(telegramID, resp.Token, &resp.User)

	s.logger.Info("User registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("user_id", resp.User.ID),
		zap.String("role", string(resp.User.Role)))

	return &resp.User, nil
}

// Refresh перепроверяет токен сессии и обновляет кеш пользователя
func (s *AuthService) Refresh(ctx context.Context, telegramID int64) (*model.User, error) {
	sess := s.sessions.Get(telegramID)
	if sess == nil {
		return nil, fmt.Errorf("no active session")
	}

	user, err := s.gw.CurrentUser(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	s.sessions.UpdateUser(telegramID, user)
	return user, nil
}

// Logout завершает сессию; токен и пользователь забываются
func (s *AuthService) Logout(telegramID int64) {
	s.sessions.Clear(telegramID)
	s.logger.Info("User logged out", zap.Int64("telegram_id", telegramID))
}
