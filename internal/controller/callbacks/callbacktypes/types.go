package callbacktypes

import (
	"github.com/tutorhub/tutorhub_bot/internal/controller/state"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"github.com/tutorhub/tutorhub_bot/internal/session"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState = state.UserState

// StateManager интерфейс для управления состоянием диалогов
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetString(telegramID int64, key string) string
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	BookingService      *service.BookingService
	TutorService        *service.TutorService
	AvailabilityService *service.AvailabilityService
	CategoryService     *service.CategoryService
	AdminService        *service.AdminService
	AuthService         *service.AuthService
	Sessions            *session.Manager
	Notify              *notify.Queue
	StateManager        StateManager
	Logger              *zap.Logger
}
