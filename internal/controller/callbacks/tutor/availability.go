package tutor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"go.uber.org/zap"
)

// ========================
// Редактор доступности
// ========================
//
// Черновик списка окон живёт во временных данных диалога и отправляется
// на сервер целиком по кнопке «Сохранить» (замена без диффа).

// DataAvailabilityDraft ключ черновика в данных диалога
const DataAvailabilityDraft = "availability_draft"

// HandleAvailabilityMenu открывает редактор; черновик подгружается с сервера,
// если его ещё нет
func HandleAvailabilityMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		draft, ok := Draft(h, hc.TelegramID)
		if !ok {
			slots, err := h.AvailabilityService.Load(hc.Ctx, hc.Token(), hc.User().ID)
			if err != nil {
				common.HandleError(hc, err, "load availability")
				return
			}
			draft = slots
			SetDraft(h, hc.TelegramID, draft)
		}

		hc.Answer("")
		text, kb := BuildAvailabilityScreen(draft)
		hc.EditMessage(text, kb)
	})
}

// Draft возвращает черновик окон из данных диалога
func Draft(h *callbacktypes.Handler, telegramID int64) ([]model.Availability, bool) {
	value, ok := h.StateManager.GetData(telegramID, DataAvailabilityDraft)
	if !ok {
		return nil, false
	}
	draft, ok := value.([]model.Availability)
	return draft, ok
}

// SetDraft сохраняет черновик окон в данные диалога
func SetDraft(h *callbacktypes.Handler, telegramID int64, draft []model.Availability) {
	h.StateManager.SetData(telegramID, DataAvailabilityDraft, draft)
}

// BuildAvailabilityScreen строит текст и клавиатуру редактора.
// Используется и из callbacks, и из текстовых диалогов.
func BuildAvailabilityScreen(draft []model.Availability) (string, *models.InlineKeyboardMarkup) {
	grouped := service.GroupByDay(draft)

	var sb strings.Builder
	sb.WriteString("🗓 Моя доступность\n\n")

	kb := keyboard.NewBuilder()
	for day := 0; day < 7; day++ {
		fmt.Fprintf(&sb, "%s:", formatting.GetWeekdayName(day))
		if len(grouped[day]) == 0 {
			sb.WriteString(" —\n")
		} else {
			sb.WriteString("\n")
			for _, slot := range grouped[day] {
				marker := "🟢"
				if !slot.IsAvailable {
					marker = "⚪️"
				}
				fmt.Fprintf(&sb, "  %s %s\n", marker,
					formatting.FormatTimeRange(slot.StartTime, slot.EndTime))
			}
		}

		row := []models.InlineKeyboardButton{
			keyboard.Button("➕ "+formatting.GetWeekdayShortName(day),
				fmt.Sprintf("add_slot_day:%d", day)),
		}
		for _, slot := range grouped[day] {
			row = append(row, keyboard.Button(
				"🗑 "+slot.StartTime,
				fmt.Sprintf("remove_slot:%d:%s", day, slot.StartTime)))
		}
		kb.Row(row...)
	}

	sb.WriteString("\nИзменения вступят в силу после сохранения.")

	kb.Row(keyboard.Button("💾 Сохранить", "save_availability"))
	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})

	return sb.String(), kb.Build()
}

// HandleAddSlotDay запускает диалог добавления окна в выбранный день
func HandleAddSlotDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		arg, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := strconv.Atoi(arg)
		if err != nil || day < 0 || day > 6 {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		h.StateManager.SetState(hc.TelegramID, "availability_start")
		h.StateManager.SetData(hc.TelegramID, "availability_day", day)

		hc.Answer("")
		hc.SendMessage(fmt.Sprintf(
			"➕ Новое окно: %s\n\n"+
				"Введите время начала в формате ЧЧ:ММ (например 09:00)\n\n"+
				"Для отмены используйте /cancel",
			formatting.GetWeekdayName(day)), nil)
	})
}

// HandleRemoveSlot убирает окно из черновика по паре (день, время начала)
func HandleRemoveSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		args, err := common.ParseArgsFromCallback(callback.Data, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := strconv.Atoi(args[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		draft, ok := Draft(h, hc.TelegramID)
		if !ok {
			hc.AnswerAlert("❌ Черновик не найден, откройте редактор заново")
			return
		}

		draft = service.RemoveSlot(draft, day, args[1])
		SetDraft(h, hc.TelegramID, draft)

		hc.Answer("Окно убрано")
		text, kb := BuildAvailabilityScreen(draft)
		hc.EditMessage(text, kb)
	})
}

// HandleSaveAvailability отправляет черновик на сервер целиком
func HandleSaveAvailability(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		draft, ok := Draft(h, hc.TelegramID)
		if !ok {
			hc.AnswerAlert("❌ Черновик не найден, откройте редактор заново")
			return
		}

		if err := h.AvailabilityService.Save(hc.Ctx, hc.Token(), draft); err != nil {
			common.HandleError(hc, err, "save availability")
			return
		}

		h.Logger.Info("Availability saved",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int("slots", len(draft)))

		hc.Answer("Сохранено")
		h.Notify.Push(hc.Ctx, hc.ChatID, notify.KindSuccess,
			"Доступность обновлена",
			fmt.Sprintf("Окон в расписании: %d", len(draft)))

		text, kb := BuildAvailabilityScreen(draft)
		hc.EditMessage(text, kb)
	})
}
