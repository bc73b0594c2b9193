package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

// Ошибки клиентской валидации формы записи
var (
	ErrMissingDate       = errors.New("date is required")
	ErrMissingTime       = errors.New("start and end time are required")
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrSubjectNotTaught  = errors.New("subject is not taught by this tutor")
	ErrNotCancellable    = errors.New("booking can not be cancelled")
	ErrNotReviewable     = errors.New("booking can not be reviewed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type BookingService struct {
	gw     *gateway.Client
	logger *zap.Logger
}

func NewBookingService(gw *gateway.Client, logger *zap.Logger) *BookingService {
	return &BookingService{
		gw:     gw,
		logger: logger,
	}
}

// ValidateBookingForm проверяет форму записи до отправки на сервер.
// Время сравнивается лексически как "HH:MM".
func ValidateBookingForm(req gateway.CreateBookingRequest, tutor *model.TutorProfile) error {
	if req.Date == "" {
		return ErrMissingDate
	}
	if req.StartTime == "" || req.EndTime == "" {
		return ErrMissingTime
	}
	if req.StartTime >= req.EndTime {
		return ErrInvalidTimeRange
	}
	if tutor != nil && !tutor.TeachesSubject(req.Subject) {
		return ErrSubjectNotTaught
	}
	return nil
}

// Create создаёт запись. Сервер авторитетен: totalAmount и статус приходят из ответа.
func (s *BookingService) Create(ctx context.Context, token string, tutor *model.TutorProfile, req gateway.CreateBookingRequest) (*model.Booking, error) {
	if err := ValidateBookingForm(req, tutor); err != nil {
		return nil, err
	}

	booking, err := s.gw.CreateBooking(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID),
		zap.String("tutor_id", booking.TutorID),
		zap.String("status", string(booking.Status)))

	return booking, nil
}

// List возвращает записи текущего пользователя
func (s *BookingService) List(ctx context.Context, token string) ([]model.Booking, error) {
	return s.gw.ListBookings(ctx, token)
}

// Get возвращает запись по ID
func (s *BookingService) Get(ctx context.Context, token, id string) (*model.Booking, error) {
	return s.gw.GetBooking(ctx, token, id)
}

// CanCancel проверяет что отмена допустима из текущего статуса
func CanCancel(b *model.Booking) bool {
	return b.Status == model.BookingStatusPending || b.Status == model.BookingStatusConfirmed
}

// CanConfirm проверяет что запись можно подтвердить (репетитор/админ)
func CanConfirm(b *model.Booking) bool {
	return b.Status == model.BookingStatusPending
}

// CanComplete проверяет что запись можно завершить (репетитор/админ)
func CanComplete(b *model.Booking) bool {
	return b.Status == model.BookingStatusConfirmed
}

// Reviewable проверяет что к записи можно оставить отзыв
func Reviewable(b *model.Booking) bool {
	return b.Status == model.BookingStatusCompleted && b.Review == nil
}

// Cancel отменяет запись. Отмена необратима: CANCELLED — конечный статус.
// При успехе локальная копия помечается отменённой без рефетча.
func (s *BookingService) Cancel(ctx context.Context, token string, booking *model.Booking) error {
	if !CanCancel(booking) {
		return ErrNotCancellable
	}

	idemKey := uuid.NewString()
	if err := s.gw.CancelBooking(ctx, token, booking.ID, idemKey); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	booking.Status = model.BookingStatusCancelled

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", booking.ID),
		zap.String("idempotency_key", idemKey))

	return nil
}

// UpdateStatus переводит запись в новый статус. Клиент показывает действие
// только для допустимых переходов, но авторитетная проверка — на сервере.
func (s *BookingService) UpdateStatus(ctx context.Context, token string, booking *model.Booking, status model.BookingStatus) error {
	switch status {
	case model.BookingStatusConfirmed:
		if !CanConfirm(booking) {
			return ErrInvalidTransition
		}
	case model.BookingStatusCompleted:
		if !CanComplete(booking) {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}

	if err := s.gw.UpdateBookingStatus(ctx, token, booking.ID, status); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}

	booking.Status = status

	s.logger.Info("Booking status updated",
		zap.String("booking_id", booking.ID),
		zap.String("status", string(status)))

	return nil
}

// SubmitReview оставляет отзыв к завершённой записи и прикрепляет его
// к локальной копии, чтобы Reviewable сразу стал false без рефетча.
func (s *BookingService) SubmitReview(ctx context.Context, token string, booking *model.Booking, rating int, comment string) (*model.Review, error) {
	if !Reviewable(booking) {
		return nil, ErrNotReviewable
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	idemKey := uuid.NewString()
	review, err := s.gw.CreateReview(ctx, token, gateway.CreateReviewRequest{
		BookingID: booking.ID,
		Rating:    rating,
		Comment:   comment,
	}, idemKey)
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	booking.Review = review

	s.logger.Info("Review submitted",
		zap.String("booking_id", booking.ID),
		zap.Int("rating", rating))

	return review, nil
}
