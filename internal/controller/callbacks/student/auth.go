package student

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"go.uber.org/zap"
)

// HandleRegisterRole фиксирует выбранную роль и запускает диалог регистрации
func HandleRegisterRole(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	roleArg, err := common.ParseArgFromCallback(callback.Data)
	if err != nil {
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	role := model.Role(roleArg)
	// Роль админа через регистрацию не выдаётся
	if role != model.RoleStudent && role != model.RoleTutor {
		hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
		return
	}

	h.StateManager.SetState(hc.TelegramID, "register_email")
	h.StateManager.SetData(hc.TelegramID, "register_role", string(role))

	h.Logger.Info("Registration dialog started",
		zap.Int64("telegram_id", hc.TelegramID),
		zap.String("role", string(role)))

	hc.Answer("")
	hc.SendMessage(
		"📝 Регистрация\n\n"+
			"Шаг 1 из 3: Введите ваш email\n\n"+
			"Для отмены используйте /cancel", nil)
}
