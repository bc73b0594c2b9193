package student

import (
	"bytes"
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
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"go.uber.org/zap"
)

// ========================
// Каталог репетиторов
// ========================

// Ключи временных данных каталога (фильтр живёт пока открыт экран)
const (
	dataCatalogSort  = "catalog_sort"
	dataCatalogQuery = "catalog_query"
	dataCatalogMin   = "catalog_min_price"
	dataCatalogMax   = "catalog_max_price"
)

// HandleBrowseTutors показывает каталог с текущим фильтром и сортировкой
func HandleBrowseTutors(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		renderCatalog(hc)
		hc.Answer("")
	})
}

// HandleSortTutors меняет ключ сортировки каталога
func HandleSortTutors(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		key, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		h.StateManager.SetData(hc.TelegramID, dataCatalogSort, key)
		renderCatalog(hc)
		hc.Answer("Сортировка изменена")
	})
}

// HandleSearchStart начинает диалог поиска (запрос, затем диапазон цены)
func HandleSearchStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.StateManager.SetState(hc.TelegramID, "search_query")
		hc.Answer("")
		hc.SendMessage(
			"🔍 Поиск репетиторов\n\n"+
				"Введите имя репетитора или предмет.\n"+
				"Отправьте - чтобы пропустить.\n\n"+
				"Для отмены используйте /cancel", nil)
	})
}

// HandleResetSearch сбрасывает фильтр каталога
func HandleResetSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.StateManager.SetData(hc.TelegramID, dataCatalogQuery, "")
		h.StateManager.SetData(hc.TelegramID, dataCatalogMin, "")
		h.StateManager.SetData(hc.TelegramID, dataCatalogMax, "")
		renderCatalog(hc)
		hc.Answer("Фильтр сброшен")
	})
}

// ApplySearch сохраняет введённый фильтр каталога. Пустые строки
// означают "без ограничения".
func ApplySearch(h *callbacktypes.Handler, telegramID int64, query, minPrice, maxPrice string) {
	h.StateManager.SetData(telegramID, dataCatalogQuery, query)
	h.StateManager.SetData(telegramID, dataCatalogMin, minPrice)
	h.StateManager.SetData(telegramID, dataCatalogMax, maxPrice)
}

// CatalogFilter собирает фильтр каталога из временных данных пользователя
func CatalogFilter(h *callbacktypes.Handler, telegramID int64) service.SearchFilter {
	filter := service.SearchFilter{
		Query: h.StateManager.GetString(telegramID, dataCatalogQuery),
	}
	if s := h.StateManager.GetString(telegramID, dataCatalogMin); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if s := h.StateManager.GetString(telegramID, dataCatalogMax); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	return filter
}

// RenderCatalog строит и показывает экран каталога. Каталог каждый раз
// перезапрашивается у сервера: локального кеша между экранами нет.
func RenderCatalog(hc *common.HandlerContext) {
	renderCatalog(hc)
}

func renderCatalog(hc *common.HandlerContext) {
	h := hc.Handler

	tutors, err := h.TutorService.List(hc.Ctx, hc.Token())
	if err != nil {
		common.HandleError(hc, err, "list tutors")
		return
	}

	filter := CatalogFilter(h, hc.TelegramID)
	sortKey := service.SortKey(h.StateManager.GetString(hc.TelegramID, dataCatalogSort))
	if sortKey == "" {
		sortKey = service.SortRating
	}

	filtered := service.FilterTutors(tutors, filter)

	var ratings map[string]float64
	if sortKey == service.SortRating {
		ratings = h.TutorService.AverageRatings(hc.Ctx, hc.Token(), filtered)
	}
	sorted := service.SortTutors(filtered, sortKey, ratings)

	text := fmt.Sprintf("🧑‍🏫 Репетиторы (%d)\n", len(sorted))
	if filter.Query != "" {
		text += fmt.Sprintf("🔍 Запрос: %s\n", filter.Query)
	}
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		text += fmt.Sprintf("💲 Цена: %s — %s\n",
			priceBound(filter.MinPrice), priceBound(filter.MaxPrice))
	}
	text += "\nВыберите репетитора:"

	kb := keyboard.NewBuilder()
	for _, t := range sorted {
		kb.Row(catalogButton(t, ratings))
	}
	kb.Row(
		keyboard.Button(sortLabel(sortKey), nextSortCallback(sortKey)),
		keyboard.Button("🔍 Поиск", "search_tutors"),
	)
	kb.Row(keyboard.Button("♻️ Сбросить фильтр", "reset_search"))
	kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("back_to_main")})

	hc.EditMessage(text, kb.Build())
}

// catalogButton строит кнопку репетитора. Callback несёт userId:
// по нему сервер адресует репетитора во всех /tutors/:id запросах.
func catalogButton(t model.TutorProfile, ratings map[string]float64) models.InlineKeyboardButton {
	name := t.Title
	if t.User != nil && t.User.Name != "" {
		name = t.User.Name
	}
	label := fmt.Sprintf("%s · %s", name, formatting.FormatHourlyRate(t.HourlyRate))
	if r, ok := ratings[t.ID]; ok {
		label = fmt.Sprintf("%s · ★%.1f", label, r)
	}
	return keyboard.Button(label, "view_tutor:"+t.UserID)
}

func priceBound(v *float64) string {
	if v == nil {
		return "∞"
	}
	return formatting.FormatAmount(*v)
}

// Кнопка сортировки циклически переключает ключи
func sortLabel(key service.SortKey) string {
	switch key {
	case service.SortPriceLow:
		return "↕️ Цена ↑"
	case service.SortPriceHigh:
		return "↕️ Цена ↓"
	case service.SortExperience:
		return "↕️ Опыт"
	default:
		return "↕️ Рейтинг"
	}
}

func nextSortCallback(key service.SortKey) string {
	order := []service.SortKey{
		service.SortRating,
		service.SortPriceLow,
		service.SortPriceHigh,
		service.SortExperience,
	}
	for i, k := range order {
		if k == key {
			return "sort_tutors:" + string(order[(i+1)%len(order)])
		}
	}
	return "sort_tutors:" + string(service.SortRating)
}

// HandleViewTutor показывает карточку репетитора с доступностью и отзывами
func HandleViewTutor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		tutorID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		detail, err := h.TutorService.Detail(hc.Ctx, hc.Token(), tutorID)
		if err != nil {
			common.HandleError(hc, err, "tutor detail")
			return
		}

		hc.Answer("")
		renderTutorCard(hc, detail)
	})
}

func renderTutorCard(hc *common.HandlerContext, detail *service.TutorDetail) {
	p := detail.Profile

	name := p.Title
	if p.User != nil && p.User.Name != "" {
		name = p.User.Name
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🧑‍🏫 %s\n%s\n\n", name, p.Title)
	if p.Bio != "" {
		fmt.Fprintf(&sb, "%s\n\n", p.Bio)
	}
	fmt.Fprintf(&sb, "💲 %s\n", formatting.FormatHourlyRate(p.HourlyRate))
	fmt.Fprintf(&sb, "🎓 %s\n", p.Education)
	fmt.Fprintf(&sb, "⏳ Опыт: %s\n", formatting.FormatExperience(p.Experience))
	fmt.Fprintf(&sb, "📚 Предметы: %s\n", strings.Join(p.Subjects, ", "))

	if detail.Reviews != nil && detail.Reviews.TotalReviews > 0 {
		fmt.Fprintf(&sb, "\n%s · отзывов: %d\n",
			formatting.RatingStars(detail.Reviews.AverageRating),
			detail.Reviews.TotalReviews)
		for i, r := range detail.Reviews.Reviews {
			if i >= 3 {
				break
			}
			who := "Аноним"
			if r.Reviewer != nil {
				who = r.Reviewer.Name
			}
			fmt.Fprintf(&sb, "— %s: %s %s\n", who, strings.Repeat("★", r.Rating), r.Comment)
		}
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📝 Записаться", "book_tutor:"+p.UserID)).
		AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("browse_tutors")}).
		Build()

	hc.EditMessage(sb.String(), kb)

	// Сетка доступности отдельной картинкой; без доступности просто не шлём
	if len(detail.Availability) > 0 {
		img, err := common.GenerateAvailabilityImage(detail.Availability)
		if err != nil {
			hc.Handler.Logger.Warn("Failed to render availability image",
				zap.String("profile_id", p.ID), zap.Error(err))
			return
		}
		hc.Bot.SendPhoto(hc.Ctx, &bot.SendPhotoParams{
			ChatID:  hc.ChatID,
			Photo:   &models.InputFileUpload{Filename: "availability.png", Data: bytes.NewReader(img)},
			Caption: "🗓 Доступность по неделям",
		})
	}
}

// ========================
// Начало записи
// ========================

// HandleBookTutor предлагает выбрать предмет из заявленных репетитором
func HandleBookTutor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleStudent}, func(hc *common.HandlerContext) {
		tutorID, err := common.ParseArgFromCallback(callback.Data)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		tutor, err := h.TutorService.Detail(hc.Ctx, hc.Token(), tutorID)
		if err != nil {
			common.HandleError(hc, err, "load tutor for booking")
			return
		}

		if len(tutor.Profile.Subjects) == 0 {
			hc.AnswerAlert("❌ У репетитора нет заявленных предметов")
			return
		}

		kb := keyboard.NewBuilder()
		for i, s := range tutor.Profile.Subjects {
			kb.Row(keyboard.Button("📚 "+s, fmt.Sprintf("book_subject:%s:%d", tutorID, i)))
		}
		kb.AddRows([][]models.InlineKeyboardButton{keyboard.BackRow("view_tutor:" + tutorID)})

		hc.Answer("")
		hc.EditMessage("📝 Запись на занятие\n\nВыберите предмет:", kb.Build())
	})
}

// HandleBookSubject фиксирует предмет и запускает диалог формы записи
func HandleBookSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithRole(ctx, b, callback, h, []model.Role{model.RoleStudent}, func(hc *common.HandlerContext) {
		args, err := common.ParseArgsFromCallback(callback.Data, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		tutorID := args[0]
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}

		tutor, err := h.TutorService.Detail(hc.Ctx, hc.Token(), tutorID)
		if err != nil {
			common.HandleError(hc, err, "load tutor for booking")
			return
		}
		if idx < 0 || idx >= len(tutor.Profile.Subjects) {
			hc.AnswerAlert(common.ErrorMessage(common.ErrInvalidFormat))
			return
		}
		subject := tutor.Profile.Subjects[idx]

		h.StateManager.SetState(hc.TelegramID, "booking_date")
		h.StateManager.SetData(hc.TelegramID, "booking_tutor_id", tutorID)
		h.StateManager.SetData(hc.TelegramID, "booking_subject", subject)

		h.Logger.Info("Booking dialog started",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("tutor_id", tutorID),
			zap.String("subject", subject))

		hc.Answer("")
		hc.SendMessage(fmt.Sprintf(
			"📝 Запись: %s\n\n"+
				"Шаг 1 из 4: Введите дату занятия в формате ГГГГ-ММ-ДД\n"+
				"Например: %s\n\n"+
				"Для отмены используйте /cancel",
			subject, service.Today()), nil)
	})
}
