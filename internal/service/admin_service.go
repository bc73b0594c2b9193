package service

import (
	"context"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

type AdminService struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewAdminService(gw *gateway.Client, logger *zap.Logger) *AdminService {
	return &AdminService{
		gw:     gw,
		logger: logger,
	}
}

// Users возвращает всех пользователей системы
func (s *AdminService) Users(ctx context.Context, token string) ([]model.User, error) {
	return s.gw.ListUsers(ctx, token)
}

// SetUserActive включает/отключает учётную запись
func (s *AdminService) SetUserActive(ctx context.Context, token, userID string, isActive bool) error {
	if err := s.gw.SetUserActive(ctx, token, userID, isActive); err != nil {
		return err
	}

	s.logger.Info("User active flag changed",
		zap.String("user_id", userID),
		zap.Bool("is_active", isActive))
	return nil
}

// AllBookings возвращает все записи системы
func (s *AdminService) AllBookings(ctx context.Context, token string) ([]model.Booking, error) {
	return s.gw.ListAllBookings(ctx, token)
}

// Stats собирает сводку панели администратора.
// Агрегаты считаются на клиенте из двух независимых выборок.
func (s *AdminService) Stats(ctx context.Context, token string) (*AdminStats, error) {
	users, err := s.gw.ListUsers(ctx, token)
	if err != nil {
		return nil, err
	}

	bookings, err := s.gw.ListAllBookings(ctx, token)
	if err != nil {
		return nil, err
	}

	stats := ComputeAdminStats(users, bookings)
	return &stats, nil
}
