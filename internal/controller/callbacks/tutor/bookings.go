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
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
)

// ========================
// Записи репетитора
// ========================

// HandleTutorBookings показывает входящие записи с действиями по статусу
func HandleTutorBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor}, func(hc *common.HandlerContext) {
		hc.Answer("")
		renderTutorBookings(hc)
	})
}

// RenderTutorBookings перерисовывает экран входящих записей.
// Экспортирован для вызова из команды /mybookings.
func RenderTutorBookings(hc *common.HandlerContext) {
	renderTutorBookings(hc)
}

func renderTutorBookings(hc *common.HandlerContext) {
	h := hc.Handler

	bookings, err := h.BookingService.List(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "list tutor bookings")
		return
	}

	pending := service.Pending(bookings)
	upcoming := service.Upcoming(bookings, service.Today())
	revenue := service.Revenue(bookings)

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Мои занятия\n\n")
	fmt.Fprintf(&sb, "💰 Заработано (завершённые): %s\n\n", formatting.FormatAmount(revenue))

	kb := keyboard.NewBuilder()

	if len(pending) > 0 {
		sb.WriteString("⏳ Ждут подтверждения:\n\n")
		for i := range pending {
			bkg := &pending[i]
			fmt.Fprintf(&sb, "%s\n\n", formatting.FormatBookingLine(bkg))
			kb.Row(keyboard.Button(
				fmt.Sprintf("✅ Подтвердить %s %s", formatting.FormatDate(bkg.Date), bkg.StartTime),
				"confirm_booking:"+bkg.ID))
		}
	}

	if len(upcoming) > 0 {
		sb.WriteString("📅 Предстоящие:\n\n")
		for i := range upcoming {
			bkg := &upcoming[i]
			fmt.Fprintf(&sb, "%s\n\n", formatting.FormatBookingLine(bkg))
			kb.Row(keyboard.Button(
				fmt.Sprintf("🎓 Завершить %s %s", formatting.FormatDate(bkg.Date), bkg.StartTime),
				"complete_booking:"+bkg.ID))
		}
	}

	if len(pending) == 0 && len(upcoming) == 0 {
		sb.WriteString("Активных записей нет.")
	}

	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})
	hc.EditMessage(sb.String(), kb.Build())
}

// HandleConfirmBooking переводит запись PENDING -> CONFIRMED
func HandleConfirmBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	updateStatus(ctx, b, callback, h, model.BookingStatusConfirmed, "Запись подтверждена")
}

// HandleCompleteBooking переводит запись CONFIRMED -> COMPLETED
func HandleCompleteBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	updateStatus(ctx, b, callback, h, model.BookingStatusCompleted, "Занятие завершено")
}

func updateStatus(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler, status model.BookingStatus, successText string) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleTutor, model.RoleAdmin}, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		booking, err := h.BookingService.Get(hc.Ctx, hc.Token(), bookingID)
		if err != nil {
			common.HandleError(hc, err, "load booking for status update")
			return
		}

		if err := h.BookingService.UpdateStatus(hc.Ctx, hc.Token(), booking, status); err != nil {
			common.HandleError(hc, err, "update booking status")
			return
		}

		hc.Answer(successText)
		h.Notify.Push(hc.Ctx, hc.ChatID, notify.KindSuccess, successText,
			fmt.Sprintf("%s, %s", formatting.FormatDate(booking.Date),
				formatting.FormatTimeRange(booking.StartTime, booking.EndTime)))
		renderTutorBookings(hc)
	})
}
