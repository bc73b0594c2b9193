package formatting

import (
	"fmt"
	"strings"
)

// FormatAmount форматирует денежную сумму
func FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	s = strings.TrimSuffix(s, ".00")
	return "$" + s
}

// FormatHourlyRate форматирует почасовую ставку
func FormatHourlyRate(rate float64) string {
	return FormatAmount(rate) + "/час"
}

// FormatExperience форматирует стаж в годах
func FormatExperience(years int) string {
	switch {
	case years%10 == 1 && years%100 != 11:
		return fmt.Sprintf("%d год", years)
	case years%10 >= 2 && years%10 <= 4 && (years%100 < 10 || years%100 >= 20):
		return fmt.Sprintf("%d года", years)
	default:
		return fmt.Sprintf("%d лет", years)
	}
}
