package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// Кнопки каталога несут userId репетитора: именно его ждут
// /tutors/:id и /tutors/:id/availability на сервере.
func TestCatalogButtonCarriesUserID(t *testing.T) {
	p := model.TutorProfile{
		ID:         "p1",
		UserID:     "u1",
		Title:      "Преподаватель математики",
		HourlyRate: 30,
		User:       &model.UserRef{ID: "u1", Name: "Анна"},
	}

	btn := catalogButton(p, map[string]float64{"p1": 4.5})

	assert.Equal(t, "view_tutor:u1", btn.CallbackData)
	assert.Contains(t, btn.Text, "Анна")
	assert.Contains(t, btn.Text, "★4.5")
}

func TestCatalogButtonWithoutRating(t *testing.T) {
	p := model.TutorProfile{ID: "p2", UserID: "u2", Title: "Физика", HourlyRate: 25}

	btn := catalogButton(p, nil)

	assert.Equal(t, "view_tutor:u2", btn.CallbackData)
	assert.Contains(t, btn.Text, "Физика")
	assert.NotContains(t, btn.Text, "★")
}
