package formatting

import (
	"fmt"
	"strings"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// BookingStatusText возвращает текст статуса записи с иконкой
func BookingStatusText(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusPending:
		return "⏳ Ожидает подтверждения"
	case model.BookingStatusConfirmed:
		return "✅ Подтверждена"
	case model.BookingStatusCompleted:
		return "🎓 Завершена"
	case model.BookingStatusCancelled:
		return "🚫 Отменена"
	default:
		return string(status)
	}
}

// RoleText возвращает название роли
func RoleText(role model.Role) string {
	switch role {
	case model.RoleStudent:
		return "Студент"
	case model.RoleTutor:
		return "Репетитор"
	case model.RoleAdmin:
		return "Администратор"
	default:
		return string(role)
	}
}

// RatingStars возвращает оценку звёздами, например "★★★★☆ (4.2)"
func RatingStars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" (%.1f)", rating)
}

// FormatBookingLine краткая строка записи для списков
func FormatBookingLine(b *model.Booking) string {
	who := ""
	if b.Tutor != nil {
		who = " у " + b.Tutor.Name
	}
	return fmt.Sprintf("📚 %s%s\n📅 %s, %s\n%s · %s",
		b.Subject,
		who,
		FormatDate(b.Date),
		FormatTimeRange(b.StartTime, b.EndTime),
		BookingStatusText(b.Status),
		FormatAmount(b.TotalAmount),
	)
}
