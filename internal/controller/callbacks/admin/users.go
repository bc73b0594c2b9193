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
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"go.uber.org/zap"
)

// HandleAdminMenu показывает панель администратора со сводкой
func HandleAdminMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		stats, err := h.AdminService.Stats(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "load admin stats")
			return
		}

		var sb strings.Builder
		sb.WriteString("🛠 Панель администратора\n\n")
		fmt.Fprintf(&sb, "👥 Пользователей: %d (активных %d)\n", stats.TotalUsers, stats.ActiveUsers)
		fmt.Fprintf(&sb, "🎓 Студентов: %d\n", stats.TotalStudents)
		fmt.Fprintf(&sb, "📚 Репетиторов: %d\n", stats.TotalTutors)
		fmt.Fprintf(&sb, "📅 Записей: %d\n", stats.TotalBookings)
		fmt.Fprintf(&sb, "💰 Выручка: %s\n", formatting.FormatAmount(stats.TotalRevenue))

		kb := keyboard.NewBuilder().
			Row(keyboard.Button("👥 Пользователи", "admin_users")).
			Row(keyboard.Button("📅 Все записи", "admin_bookings")).
			Row(keyboard.Button("🏷 Категории", "admin_categories")).
			AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})

		hc.Answer("")
		hc.EditMessage(sb.String(), kb.Build())
	})
}

// HandleAdminUsers список пользователей с переключателями активности
func HandleAdminUsers(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		hc.Answer("")
		renderUsers(hc)
	})
}

func renderUsers(hc *common.HandlerContext) {
	h := hc.Handler
	users, err := h.AdminService.Users(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "list users")
		return
	}

	var sb strings.Builder
	sb.WriteString("👥 Пользователи\n\n")

	kb := keyboard.NewBuilder()
	for i := range users {
		u := &users[i]
		marker := "🟢"
		action := "🚫"
		if !u.IsActive {
			marker = "🔴"
			action = "✅"
		}
		fmt.Fprintf(&sb, "%s %s — %s (%s)\n", marker, u.Name, u.Email, formatting.RoleText(u.Role))
		if u.Role != model.RoleAdmin {
			kb.Row(keyboard.Button(
				fmt.Sprintf("%s %s", action, u.Name),
				"toggle_user:"+u.ID))
		}
	}
	if len(users) == 0 {
		sb.WriteString("Пока никого нет.")
	}

	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("admin_menu")})
	hc.EditMessage(sb.String(), kb.Build())
}

// HandleToggleUser переключает флаг активности учётной записи
func HandleToggleUser(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		userID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		users, err := h.AdminService.Users(hc.Ctx, hc.Token())
		if err != nil {
			common.HandleError(hc, err, "list users")
			return
		}

		var target *model.User
		for i := range users {
			if users[i].ID == userID {
				target = &users[i]
				break
			}
		}
		if target == nil {
			hc.AnswerAlert("❌ Пользователь не найден")
			return
		}
		if target.Role == model.RoleAdmin {
			hc.AnswerAlert("❌ Нельзя отключить администратора")
			return
		}

		newActive := !target.IsActive
		if err := h.AdminService.SetUserActive(hc.Ctx, hc.Token(), userID, newActive); err != nil {
			common.HandleError(hc, err, "toggle user")
			return
		}

		h.Logger.Info("User toggled by admin",
			zap.Int64("admin_telegram_id", hc.TelegramID),
			zap.String("user_id", userID),
			zap.Bool("is_active", newActive))

		status := "отключена"
		kind := notify.KindWarning
		if newActive {
			status = "включена"
			kind = notify.KindSuccess
		}
		hc.Answer("")
		h.Notify.Push(hc.Ctx, hc.ChatID, kind,
			"Учётная запись "+status, target.Name)

		renderUsers(hc)
	})
}
