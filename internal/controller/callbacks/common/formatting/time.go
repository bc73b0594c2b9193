package formatting

import (
	"fmt"
	"time"
)

// Даты приходят от API строками "YYYY-MM-DD", время — "HH:MM"

// FormatDate переводит дату API в привычный вид "02.01.2006"
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}

// FormatTimeRange форматирует диапазон времени
func FormatTimeRange(startTime, endTime string) string {
	return fmt.Sprintf("%s-%s", startTime, endTime)
}

// GetWeekdayName возвращает название дня недели (0 = воскресенье)
func GetWeekdayName(weekday int) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// GetWeekdayShortName возвращает краткое название дня недели
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
