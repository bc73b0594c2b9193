package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

var (
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")
	ErrInvalidSlotRange = errors.New("slot start time must be before end time")
)

// Редактор доступности правит плоский список окон; идентичность окна при
// удалении — пара (dayOfWeek, startTime), стабильных ID у черновика нет.
// Перекрытия не проверяются, сервер принимает список как есть.

// DefaultSlot окно по умолчанию при добавлении дня
func DefaultSlot(dayOfWeek int) model.Availability {
	return model.Availability{
		DayOfWeek:   dayOfWeek,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
}

// ValidateSlot проверяет окно перед добавлением в черновик
func ValidateSlot(slot model.Availability) error {
	if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if slot.StartTime >= slot.EndTime {
		return ErrInvalidSlotRange
	}
	return nil
}

// GroupByDay раскладывает окна по дням недели для показа.
// Индекс — dayOfWeek (0 = воскресенье), внутри дня окна по startTime.
func GroupByDay(slots []model.Availability) [7][]model.Availability {
	var grouped [7][]model.Availability
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
			continue
		}
		grouped[s.DayOfWeek] = append(grouped[s.DayOfWeek], s)
	}
	for day := range grouped {
		sort.SliceStable(grouped[day], func(i, j int) bool {
			return grouped[day][i].StartTime < grouped[day][j].StartTime
		})
	}
	return grouped
}

// RemoveSlot убирает из списка первое окно с данной парой (dayOfWeek, startTime).
// Два окна одного дня с одинаковым началом для редактора неразличимы.
func RemoveSlot(slots []model.Availability, dayOfWeek int, startTime string) []model.Availability {
	for i, s := range slots {
		if s.DayOfWeek == dayOfWeek && s.StartTime == startTime {
			return append(slots[:i:i], slots[i+1:]...)
		}
	}
	return slots
}

type AvailabilityService struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewAvailabilityService(gw *gateway.Client, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{
		gw:     gw,
		logger: logger,
	}
}

// Load возвращает окна доступности репетитора
func (s *AvailabilityService) Load(ctx context.Context, token, tutorUserID string) ([]model.Availability, error) {
	return s.gw.GetTutorAvailability(ctx, token, tutorUserID)
}

// Save целиком заменяет список окон на сервере (без диффа)
func (s *AvailabilityService) Save(ctx context.Context, token string, slots []model.Availability) error {
	for _, slot := range slots {
		if err := ValidateSlot(slot); err != nil {
			return fmt.Errorf("slot %s %s-%s: %w", weekdayName(slot.DayOfWeek), slot.StartTime, slot.EndTime, err)
		}
	}

	if err := s.gw.ReplaceAvailability(ctx, token, slots); err != nil {
		return err
	}

	s.logger.Info("Availability replaced", zap.Int("slots", len(slots)))
	return nil
}

func weekdayName(day int) string {
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if day >= 0 && day < len(names) {
		return names[day]
	}
	return "?"
}
