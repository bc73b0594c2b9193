package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/keyboard"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
)

// HandleAdminCategories список категорий предметов
func HandleAdminCategories(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		hc.Answer("")
		RenderCategories(hc)
	})
}

// RenderCategories перерисовывает экран категорий.
// Экспортирован для возврата сюда после диалогов создания и редактирования.
func RenderCategories(hc *common.HandlerContext) {
	h := hc.Handler
	categories, err := h.CategoryService.List(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "list categories")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏷 Категории предметов\n\n")

	kb := keyboard.NewBuilder()
	for _, c := range categories {
		icon := c.Icon
		if icon == "" {
			icon = "📖"
		}
		fmt.Fprintf(&sb, "%s %s", icon, c.Name)
		if c.Description != "" {
			fmt.Fprintf(&sb, " — %s", c.Description)
		}
		sb.WriteString("\n")
		kb.Row(
			keyboard.Button("✏️ "+c.Name, "edit_category:"+c.ID),
			keyboard.Button("🗑", "delete_category:"+c.ID),
		)
	}
	if len(categories) == 0 {
		sb.WriteString("Категорий пока нет.")
	}

	kb.Row(keyboard.Button("➕ Новая категория", "create_category"))
	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("admin_menu")})

	hc.EditMessage(sb.String(), kb.Build())
}

// HandleCreateCategory запускает диалог создания категории
func HandleCreateCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		// Снимаем возможный брошенный диалог редактирования вместе с его данными
		h.StateManager.ClearState(hc.TelegramID)
		h.StateManager.SetState(hc.TelegramID, "category_name")

		hc.Answer("")
		hc.SendMessage("➕ Новая категория\n\n"+
			"Введите название\n\n"+
			"Для отмены используйте /cancel", nil)
	})
}

// HandleEditCategory запускает диалог редактирования категории.
// Шаги те же, что при создании; итог уходит в PUT вместо POST.
func HandleEditCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		categoryID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		h.StateManager.SetState(hc.TelegramID, "category_name")
		h.StateManager.SetData(hc.TelegramID, "category_edit_id", categoryID)

		hc.Answer("")
		hc.SendMessage("✏️ Редактирование категории\n\n"+
			"Введите новое название\n\n"+
			"Для отмены используйте /cancel", nil)
	})
}

// HandleDeleteCategory спрашивает подтверждение удаления
func HandleDeleteCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		categoryID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		kb := keyboard.NewBuilder().
			Row(
				keyboard.Button("🗑 Да, удалить", "confirm_delete_cat:"+categoryID),
				keyboard.Button("⬅️ Нет", "admin_categories"),
			)

		hc.Answer("")
		hc.EditMessage("Удалить категорию? Это действие необратимо.", kb.Build())
	})
}

// HandleConfirmDeleteCategory удаляет категорию после подтверждения
func HandleConfirmDeleteCategory(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleAdmin}, func(hc *common.HandlerContext) {
		categoryID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		if err := h.CategoryService.Delete(hc.Ctx, hc.Token(), categoryID); err != nil {
			common.HandleError(hc, err, "delete category")
			return
		}

		hc.Answer("Удалено")
		h.Notify.Push(hc.Ctx, hc.ChatID, notify.KindSuccess, "Категория удалена", "")

		RenderCategories(hc)
	})
}
