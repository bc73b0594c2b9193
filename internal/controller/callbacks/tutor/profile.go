package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// profileFields поля профиля, доступные для редактирования через диалог
var profileFields = []struct {
	Key   string
	Label string
	State callbacktypes.UserState
}{
	{"title", "Заголовок", "edit_profile_title"},
	{"bio", "О себе", "edit_profile_bio"},
	{"rate", "Ставка в час", "edit_profile_rate"},
	{"phone", "Телефон", "edit_profile_phone"},
	{"education", "Образование", "edit_profile_education"},
	{"experience", "Опыт (лет)", "edit_profile_experience"},
	{"subjects", "Предметы", "edit_profile_subjects"},
}

// HandleProfileMenu показывает профиль репетитора и кнопки редактирования
func HandleProfileMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		detail, err := h.TutorService.Detail(hc.Ctx, hc.Token(), hc.User().ID)
		if err != nil {
			common.HandleError(hc, err, "load own profile")
			return
		}

		hc.Answer("")
		text, kb := BuildProfileScreen(detail.Profile)
		hc.EditMessage(text, kb)
	})
}

// BuildProfileScreen строит текст и клавиатуру экрана профиля
func BuildProfileScreen(p *model.TutorProfile) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("👤 Мой профиль\n\n")
	fmt.Fprintf(&sb, "Заголовок: %s\n", orDash(p.Title))
	fmt.Fprintf(&sb, "О себе: %s\n", orDash(p.Bio))
	fmt.Fprintf(&sb, "Ставка: %s\n", formatting.FormatHourlyRate(p.HourlyRate))
	fmt.Fprintf(&sb, "Телефон: %s\n", orDash(p.Phone))
	fmt.Fprintf(&sb, "Образование: %s\n", orDash(p.Education))
	fmt.Fprintf(&sb, "Опыт: %s\n", formatting.FormatExperience(p.Experience))
	fmt.Fprintf(&sb, "Предметы: %s\n", orDash(strings.Join(p.Subjects, ", ")))

	kb := keyboard.NewBuilder()
	for i := 0; i < len(profileFields); i += 2 {
		row := []models.InlineKeyboardButton{
			keyboard.Button("✏️ "+profileFields[i].Label, "edit_profile:"+profileFields[i].Key),
		}
		if i+1 < len(profileFields) {
			row = append(row,
				keyboard.Button("✏️ "+profileFields[i+1].Label, "edit_profile:"+profileFields[i+1].Key))
		}
		kb.Row(row...)
	}
	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})

	return sb.String(), kb.Build()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// HandleEditProfile запускает диалог редактирования выбранного поля
func HandleEditProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		field, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		var prompt string
		var state callbacktypes.UserState
		for _, f := range profileFields {
			if f.Key == field {
				state = f.State
				prompt = f.Label
				break
			}
		}
		if state == "" {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		h.StateManager.SetState(hc.TelegramID, state)

		hint := ""
		switch field {
		case "rate":
			hint = " (число, например 35)"
		case "experience":
			hint = " (целое число лет)"
		case "subjects":
			hint = " (через запятую)"
		}

		hc.Answer("")
		hc.SendMessage(fmt.Sprintf(
			"✏️ %s\n\nВведите новое значение%s\n\nДля отмены используйте /cancel",
			prompt, hint), nil)
	})
}
