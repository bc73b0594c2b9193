package common

import (
	"errors"

	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNotAuthorized   = errors.New("not authorized")
	ErrForbidden       = errors.New("forbidden for this role")
	ErrNoMessage       = errors.New("no message in callback")
	ErrInvalidFormat   = errors.New("invalid callback format")
	ErrBookingNotFound = errors.New("booking not found")
	ErrTutorNotFound   = errors.New("tutor not found")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки.
// Сообщения сервера (body.error) показываются как есть.
func ErrorMessage(err error) string {
	if apiErr, ok := gateway.IsAPIError(err); ok {
		return "❌ " + apiErr.Message
	}

	switch {
	case errors.Is(err, ErrNotAuthorized):
		return "❌ Вы не вошли в систему. Используйте /login"
	case errors.Is(err, ErrForbidden):
		return "❌ Эта функция недоступна для вашей роли"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrBookingNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, ErrTutorNotFound):
		return "❌ Репетитор не найден"
	case errors.Is(err, service.ErrInvalidTimeRange):
		return "❌ Время начала должно быть раньше времени окончания"
	case errors.Is(err, service.ErrSubjectNotTaught):
		return "❌ Репетитор не ведёт этот предмет"
	case errors.Is(err, service.ErrNotCancellable):
		return "❌ Эту запись уже нельзя отменить"
	case errors.Is(err, service.ErrNotReviewable):
		return "❌ К этой записи нельзя оставить отзыв"
	case errors.Is(err, service.ErrInvalidRating):
		return "❌ Оценка должна быть от 1 до 5"
	default:
		return "❌ Произошла ошибка. Попробуйте позже"
	}
}
