package student

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
// Мои записи (вкладки)
// ========================

// HandleMyBookings показывает записи, вкладка по умолчанию — предстоящие
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Answer("")
		RenderBookingsTab(hc, "upcoming")
	})
}

// HandleBookingsTab переключает вкладку списка записей
func HandleBookingsTab(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		tab, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("")
		RenderBookingsTab(hc, tab)
	})
}

// RenderBookingsTab перезапрашивает записи и показывает выбранную вкладку.
// Проекции считаются заново на каждый показ.
func RenderBookingsTab(hc *common.HandlerContext, tab string) {
	h := hc.Handler

	bookings, err := h.BookingService.List(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "list bookings")
		return
	}

	upcoming := service.Upcoming(bookings, service.Today())
	pending := service.Pending(bookings)
	past := service.Past(bookings)

	var selected []model.Booking
	var title string
	switch tab {
	case "pending":
		selected, title = pending, "⏳ В ожидании"
	case "past":
		selected, title = past, "🗂 Прошедшие"
		if n := len(service.ReviewableBookings(bookings)); n > 0 {
			title = fmt.Sprintf("🗂 Прошедшие · ⭐️ без отзыва: %d", n)
		}
	default:
		tab = "upcoming"
		selected, title = upcoming, "📅 Предстоящие"
	}

	stats := service.ComputeStudentStats(bookings)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%d)\n", title, len(selected))
	fmt.Fprintf(&sb, "🎓 Завершено: %d · 📅 Подтверждено: %d · ⏳ Ожидает: %d\n\n",
		stats.TotalSessions, stats.UpcomingSessions, stats.PendingSessions)
	if len(selected) == 0 {
		sb.WriteString("Здесь пока пусто.")
	}

	kb := keyboard.NewBuilder()
	for i := range selected {
		bkg := &selected[i]
		fmt.Fprintf(&sb, "%s\n\n", formatting.FormatBookingLine(bkg))

		var row []models.InlineKeyboardButton
		if service.CanCancel(bkg) {
			row = append(row, keyboard.Button(
				fmt.Sprintf("🚫 Отменить %s %s", formatting.FormatDate(bkg.Date), bkg.StartTime),
				"cancel_booking:"+bkg.ID))
		}
		if service.Reviewable(bkg) {
			row = append(row, keyboard.Button(
				fmt.Sprintf("⭐️ Отзыв · %s", formatting.FormatDate(bkg.Date)),
				"review_booking:"+bkg.ID))
		}
		if len(row) > 0 {
			kb.Row(row...)
		}
	}

	kb.Row(
		keyboard.Button(tabButton("upcoming", tab, fmt.Sprintf("Предстоящие (%d)", len(upcoming))), "bookings_tab:upcoming"),
		keyboard.Button(tabButton("pending", tab, fmt.Sprintf("Ожидание (%d)", len(pending))), "bookings_tab:pending"),
		keyboard.Button(tabButton("past", tab, fmt.Sprintf("Прошедшие (%d)", len(past))), "bookings_tab:past"),
	)
	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})

	hc.EditMessage(sb.String(), kb.Build())
}

func tabButton(tab, active, label string) string {
	if tab == active {
		return "• " + label
	}
	return label
}

// ========================
// Отмена записи
// ========================

// HandleCancelBooking спрашивает подтверждение отмены
func HandleCancelBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("✅ Да, отменить", "confirm_cancel:"+bookingID),
				keyboard.Button("❌ Нет", "my_bookings"),
			).
			Build()

		hc.Answer("")
		hc.EditMessage("🚫 Отменить эту запись?\n\nОтмена необратима.", kb)
	})
}

// HandleConfirmCancel выполняет отмену после подтверждения
func HandleConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		booking, err := h.BookingService.Get(hc.Ctx, hc.Token(), bookingID)
		if err != nil {
			common.HandleError(hc, err, "load booking for cancel")
			return
		}

		if err := h.BookingService.Cancel(hc.Ctx, hc.Token(), booking); err != nil {
			common.HandleError(hc, err, "cancel booking")
			return
		}

		hc.Answer("Запись отменена")
		h.Notify.Push(hc.Ctx, hc.ChatID, notify.KindSuccess, "Запись отменена",
			fmt.Sprintf("%s, %s", formatting.FormatDate(booking.Date),
				formatting.FormatTimeRange(booking.StartTime, booking.EndTime)))
		RenderBookingsTab(hc, "upcoming")
	})
}

// ========================
// Отзыв к завершённой записи
// ========================

// HandleReviewBooking предлагает выбрать оценку
func HandleReviewBooking(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleStudent}, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		booking, err := h.BookingService.Get(hc.Ctx, hc.Token(), bookingID)
		if err != nil {
			common.HandleError(hc, err, "load booking for review")
			return
		}
		if !service.Reviewable(booking) {
			hc.AnswerAlert(common.ErrorMessage(service.ErrNotReviewable))
			return
		}

		var row []models.InlineKeyboardButton
		for rating := 1; rating <= 5; rating++ {
			row = append(row, keyboard.Button(
				strings.Repeat("★", rating),
				fmt.Sprintf("review_rate:%s:%d", bookingID, rating)))
		}
		kb := keyboard.NewBuilder().
			Row(row...).
			AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("my_bookings")}).
			Build()

		hc.Answer("")
		hc.EditMessage(fmt.Sprintf("⭐️ Отзыв о занятии\n\n%s\n\nВыберите оценку:",
			formatting.FormatBookingLine(booking)), kb)
	})
}

// HandleReviewRate фиксирует оценку и спрашивает комментарий
func HandleReviewRate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleStudent}, func(hc *common.HandlerContext) {
		args, err := common.ParseArgsFromCallback(callback.Data, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		rating, err := strconv.Atoi(args[1])
		if err != nil || rating < 1 || rating > 5 {
			hc.AnswerAlert(common.ErrorMessage(service.ErrInvalidRating))
			return
		}

		h.StateManager.SetState(hc.TelegramID, "review_comment")
		h.StateManager.SetData(hc.TelegramID, "review_booking_id", args[0])
		h.StateManager.SetData(hc.TelegramID, "review_rating", rating)

		h.Logger.Info("Review dialog started",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("booking_id", args[0]),
			zap.Int("rating", rating))

		hc.Answer("")
		hc.SendMessage(fmt.Sprintf(
			"Оценка: %s\n\n"+
				"Напишите комментарий к отзыву.\n"+
				"Отправьте - чтобы оставить отзыв без комментария.\n\n"+
				"Для отмены используйте /cancel",
			strings.Repeat("★", rating)), nil)
	})
}
