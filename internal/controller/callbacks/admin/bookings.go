package admin

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
	"github.com/tutorhub/tutorhub_bot/internal/service"
)

// сколько записей показываем в общем списке, новые сверху
const adminBookingsLimit = 15

// HandleAdminBookings общий список записей платформы
func HandleAdminBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		bookings, err := h.AdminService.AllBookings(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "list all bookings")
			return
		}

		var sb strings.Builder
		sb.WriteString("📅 Все записи\n\n")
		fmt.Fprintf(&sb, "Всего: %d, выручка %s\n\n",
			len(bookings), formatting.FormatAmount(service.Revenue(bookings)))

		shown := bookings
		if len(shown) > adminBookingsLimit {
			shown = shown[:adminBookingsLimit]
		}
		for i := range shown {
			bk := &shown[i]
			sb.WriteString(formatting.FormatBookingLine(bk))
			if bk.Student != nil && bk.Tutor != nil {
				fmt.Fprintf(&sb, "   %s → %s\n", bk.Student.Name, bk.Tutor.Name)
			}
			sb.WriteString("\n")
		}
		if len(bookings) > adminBookingsLimit {
			fmt.Fprintf(&sb, "… и ещё %d\n", len(bookings)-adminBookingsLimit)
		}
		if len(bookings) == 0 {
			sb.WriteString("Записей пока нет.")
		}

		kb := keyboard.NewBuilder().
			AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("admin_menu")})

		hc.Answer("")
		hc.EditMessage(sb.String(), kb.Build())
	})
}
