package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/admin"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/common/formatting"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/student"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/tutor"
	"github.com/tutorhub/tutorhub_bot/internal/controller/state"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
	"github.com/tutorhub/tutorhub_bot/internal/notify"
	"github.com/tutorhub/tutorhub_bot/internal/service"
	"go.uber.org/zap"
)

// HandleTextMessage ведёт пошаговые диалоги. Каждое текстовое сообщение
// трактуется как ответ на текущий шаг; без активного состояния — подсказка.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	// Команды обрабатываются своими хэндлерами
	if strings.HasPrefix(text, "/") {
		return
	}

	userState := h.deps.StateManager.GetState(telegramID)

	if userState == state.StateNone {
		h.sendMessage(ctx, b, chatID,
			"Я не понял сообщение. Используйте /help для списка команд.", nil)
		return
	}

	h.deps.Logger.Debug("Dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(userState)))

	switch userState {
	// Вход
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, chatID, telegramID, text)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, chatID, telegramID, text)

	// Регистрация
	case state.StateRegisterEmail:
		h.handleRegisterEmailStep(ctx, b, chatID, telegramID, text)
	case state.StateRegisterPassword:
		h.handleRegisterPasswordStep(ctx, b, chatID, telegramID, text)
	case state.StateRegisterName:
		h.handleRegisterNameStep(ctx, b, chatID, telegramID, text)

	// Форма записи
	case state.StateBookingDate:
		h.handleBookingDateStep(ctx, b, chatID, telegramID, text)
	case state.StateBookingStartTime:
		h.handleBookingTimeStep(ctx, b, chatID, telegramID, text,
			"booking_start_time", state.StateBookingEndTime,
			"Шаг 3 из 4: Введите время окончания в формате ЧЧ:ММ")
	case state.StateBookingEndTime:
		h.handleBookingTimeStep(ctx, b, chatID, telegramID, text,
			"booking_end_time", state.StateBookingNotes,
			"Шаг 4 из 4: Добавьте комментарий к записи.\nОтправьте - чтобы пропустить.")
	case state.StateBookingNotes:
		h.handleBookingNotesStep(ctx, b, update.Message, text)

	// Отзыв
	case state.StateReviewComment:
		h.handleReviewCommentStep(ctx, b, update.Message, text)

	// Поиск репетиторов
	case state.StateSearchQuery:
		h.handleSearchStep(ctx, b, chatID, telegramID, text,
			"search_tmp_query", state.StateSearchMinPrice,
			"Минимальная цена за час (число).\nОтправьте - чтобы пропустить.", false)
	case state.StateSearchMinPrice:
		h.handleSearchStep(ctx, b, chatID, telegramID, text,
			"search_tmp_min", state.StateSearchMaxPrice,
			"Максимальная цена за час (число).\nОтправьте - чтобы пропустить.", true)
	case state.StateSearchMaxPrice:
		h.handleSearchFinish(ctx, b, update.Message, text)

	// Профиль репетитора
	case state.StateEditProfileTitle,
		state.StateEditProfileBio,
		state.StateEditProfileRate,
		state.StateEditProfilePhone,
		state.StateEditProfileEducation,
		state.StateEditProfileExperience,
		state.StateEditProfileSubjects:
		h.handleEditProfileStep(ctx, b, update.Message, userState, text)

	// Доступность
	case state.StateAvailabilityStart:
		h.handleAvailabilityStartStep(ctx, b, chatID, telegramID, text)
	case state.StateAvailabilityEnd:
		h.handleAvailabilityEndStep(ctx, b, update.Message, text)

	// Категории
	case state.StateCategoryName:
		h.handleCategoryNameStep(ctx, b, chatID, telegramID, text)
	case state.StateCategoryDescription:
		h.handleCategoryDescriptionStep(ctx, b, chatID, telegramID, text)
	case state.StateCategoryIcon:
		h.handleCategoryIconStep(ctx, b, update.Message, text)

	default:
		h.deps.StateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван. Начните заново.")
	}
}

// ========================
// Вход и регистрация
// ========================

func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if !isValidEmail(text) {
		h.sendError(ctx, b, chatID, "❌ Похоже, это не email. Попробуйте ещё раз:")
		return
	}

	h.deps.StateManager.SetData(telegramID, "login_email", text)
	h.deps.StateManager.SetState(telegramID, state.StateLoginPassword)
	h.sendMessage(ctx, b, chatID, "Введите пароль:", nil)
}

func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, password string) {
	email := h.deps.StateManager.GetString(telegramID, "login_email")
	h.deps.StateManager.ClearState(telegramID)

	user, err := h.deps.AuthService.Login(ctx, telegramID, model.LoginCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте /login ещё раз.")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess,
		"Вы вошли", fmt.Sprintf("%s (%s)", user.Name, formatting.RoleText(user.Role)))
	h.ShowMainMenu(ctx, b, chatID, telegramID)
}

func (h *Handlers) handleRegisterEmailStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if !isValidEmail(text) {
		h.sendError(ctx, b, chatID, "❌ Похоже, это не email. Попробуйте ещё раз:")
		return
	}

	h.deps.StateManager.SetData(telegramID, "register_email", text)
	h.deps.StateManager.SetState(telegramID, state.StateRegisterPassword)
	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("Придумайте пароль (минимум %d символов):", PasswordMinLength), nil)
}

func (h *Handlers) handleRegisterPasswordStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, password string) {
	if len(password) < PasswordMinLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Пароль слишком короткий. Минимум %d символов:", PasswordMinLength))
		return
	}

	h.deps.StateManager.SetData(telegramID, "register_password", password)
	h.deps.StateManager.SetState(telegramID, state.StateRegisterName)
	h.sendMessage(ctx, b, chatID, "Как вас зовут?", nil)
}

func (h *Handlers) handleRegisterNameStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, name string) {
	if len(name) < NameMinLength || len(name) > NameMaxLength {
		h.sendError(ctx, b, chatID, "❌ Имя должно быть от 2 до 100 символов. Попробуйте ещё раз:")
		return
	}

	sm := h.deps.StateManager
	data := model.RegisterData{
		Email:    sm.GetString(telegramID, "register_email"),
		Password: sm.GetString(telegramID, "register_password"),
		Name:     name,
		Role:     model.Role(sm.GetString(telegramID, "register_role")),
	}
	sm.ClearState(telegramID)

	user, err := h.deps.AuthService.Register(ctx, telegramID, data)
	if err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте /register ещё раз.")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess,
		"Учётная запись создана", fmt.Sprintf("%s (%s)", user.Name, formatting.RoleText(user.Role)))
	h.ShowMainMenu(ctx, b, chatID, telegramID)
}

// ========================
// Форма записи
// ========================

func (h *Handlers) handleBookingDateStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if !isValidDate(text) {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Неверный формат даты. Нужен ГГГГ-ММ-ДД, например %s:", service.Today()))
		return
	}
	if text < service.Today() {
		h.sendError(ctx, b, chatID, "❌ Дата уже прошла. Введите будущую дату:")
		return
	}

	h.deps.StateManager.SetData(telegramID, "booking_date", text)
	h.deps.StateManager.SetState(telegramID, state.StateBookingStartTime)
	h.sendMessage(ctx, b, chatID,
		"Шаг 2 из 4: Введите время начала в формате ЧЧ:ММ\nНапример: 14:00", nil)
}

func (h *Handlers) handleBookingTimeStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text, dataKey string, next state.UserState, prompt string) {
	if !isValidTime(text) {
		h.sendError(ctx, b, chatID, "❌ Неверный формат времени. Нужен ЧЧ:ММ, например 14:00:")
		return
	}

	if dataKey == "booking_end_time" {
		start := h.deps.StateManager.GetString(telegramID, "booking_start_time")
		if text <= start {
			h.sendError(ctx, b, chatID, "❌ Окончание должно быть позже начала. Попробуйте ещё раз:")
			return
		}
	}

	h.deps.StateManager.SetData(telegramID, dataKey, text)
	h.deps.StateManager.SetState(telegramID, next)
	h.sendMessage(ctx, b, chatID, prompt, nil)
}

func (h *Handlers) handleBookingNotesStep(ctx context.Context, b *bot.Bot, message *models.Message, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	if text == SkipToken {
		text = ""
	}
	if len(text) > NotesMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Комментарий слишком длинный. Максимум %d символов:", NotesMaxLength))
		return
	}

	sm := h.deps.StateManager
	req := gateway.CreateBookingRequest{
		TutorID:   sm.GetString(telegramID, "booking_tutor_id"),
		Date:      sm.GetString(telegramID, "booking_date"),
		StartTime: sm.GetString(telegramID, "booking_start_time"),
		EndTime:   sm.GetString(telegramID, "booking_end_time"),
		Subject:   sm.GetString(telegramID, "booking_subject"),
		Notes:     text,
	}
	sm.ClearState(telegramID)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.LoadSession(); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	detail, err := h.deps.TutorService.Detail(ctx, hc.Token(), req.TutorID)
	if err != nil {
		common.HandleError(hc, err, "load tutor for booking")
		return
	}

	booking, err := h.deps.BookingService.Create(ctx, hc.Token(), detail.Profile, req)
	if err != nil {
		common.HandleError(hc, err, "create booking")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess,
		"Заявка отправлена",
		fmt.Sprintf("%s, %s %s", booking.Subject,
			formatting.FormatDate(booking.Date),
			formatting.FormatTimeRange(booking.StartTime, booking.EndTime)))

	student.RenderBookingsTab(hc, "pending")
}

// ========================
// Отзыв
// ========================

func (h *Handlers) handleReviewCommentStep(ctx context.Context, b *bot.Bot, message *models.Message, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	if text == SkipToken {
		text = ""
	}
	if len(text) > CommentMaxLength {
		h.sendError(ctx, b, chatID,
			fmt.Sprintf("❌ Комментарий слишком длинный. Максимум %d символов:", CommentMaxLength))
		return
	}

	sm := h.deps.StateManager
	bookingID := sm.GetString(telegramID, "review_booking_id")
	rating, _ := h.getInt(telegramID, "review_rating")
	sm.ClearState(telegramID)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.LoadSession(); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	booking, err := h.deps.BookingService.Get(ctx, hc.Token(), bookingID)
	if err != nil {
		common.HandleError(hc, err, "load booking for review")
		return
	}

	if _, err := h.deps.BookingService.SubmitReview(ctx, hc.Token(), booking, rating, text); err != nil {
		common.HandleError(hc, err, "submit review")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess,
		"Отзыв сохранён", strings.Repeat("★", rating))

	student.RenderBookingsTab(hc, "past")
}

// ========================
// Поиск репетиторов
// ========================

func (h *Handlers) handleSearchStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text, dataKey string, next state.UserState, prompt string, numeric bool) {
	if text == SkipToken {
		text = ""
	}
	if numeric && text != "" {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			h.sendError(ctx, b, chatID, "❌ Нужно число или - для пропуска:")
			return
		}
	}

	h.deps.StateManager.SetData(telegramID, dataKey, text)
	h.deps.StateManager.SetState(telegramID, next)
	h.sendMessage(ctx, b, chatID, prompt, nil)
}

func (h *Handlers) handleSearchFinish(ctx context.Context, b *bot.Bot, message *models.Message, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	if text == SkipToken {
		text = ""
	}
	if text != "" {
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			h.sendError(ctx, b, chatID, "❌ Нужно число или - для пропуска:")
			return
		}
	}

	sm := h.deps.StateManager
	query := sm.GetString(telegramID, "search_tmp_query")
	minPrice := sm.GetString(telegramID, "search_tmp_min")
	sm.ClearState(telegramID)
	student.ApplySearch(h.deps, telegramID, query, minPrice, text)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.LoadSession(); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	student.RenderCatalog(hc)
}

// ========================
// Профиль репетитора
// ========================

func (h *Handlers) handleEditProfileStep(ctx context.Context, b *bot.Bot, message *models.Message, userState state.UserState, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	var update gateway.TutorProfileUpdate
	switch userState {
	case state.StateEditProfileTitle:
		update.Title = text
	case state.StateEditProfileBio:
		update.Bio = text
	case state.StateEditProfilePhone:
		update.Phone = text
	case state.StateEditProfileEducation:
		update.Education = text
	case state.StateEditProfileRate:
		rate, err := strconv.ParseFloat(text, 64)
		if err != nil || rate < 0 {
			h.sendError(ctx, b, chatID, "❌ Нужно неотрицательное число, например 35:")
			return
		}
		update.HourlyRate = &rate
	case state.StateEditProfileExperience:
		years, err := strconv.Atoi(text)
		if err != nil || years < 0 {
			h.sendError(ctx, b, chatID, "❌ Нужно целое число лет:")
			return
		}
		update.Experience = &years
	case state.StateEditProfileSubjects:
		var subjects []string
		for _, s := range strings.Split(text, ",") {
			if s = strings.TrimSpace(s); s != "" {
				subjects = append(subjects, s)
			}
		}
		if len(subjects) == 0 {
			h.sendError(ctx, b, chatID, "❌ Укажите хотя бы один предмет:")
			return
		}
		update.Subjects = subjects
	}

	h.deps.StateManager.ClearState(telegramID)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.RequireRole(model.RoleTutor); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	profile, err := h.deps.TutorService.UpdateProfile(ctx, hc.Token(), update)
	if err != nil {
		common.HandleError(hc, err, "update profile")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess, "Профиль обновлён", "")

	screenText, kb := tutor.BuildProfileScreen(profile)
	hc.EditMessage(screenText, kb)
}

// ========================
// Доступность
// ========================

func (h *Handlers) handleAvailabilityStartStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if !isValidTime(text) {
		h.sendError(ctx, b, chatID, "❌ Неверный формат времени. Нужен ЧЧ:ММ, например 09:00:")
		return
	}

	h.deps.StateManager.SetData(telegramID, "availability_slot_start", text)
	h.deps.StateManager.SetState(telegramID, state.StateAvailabilityEnd)
	h.sendMessage(ctx, b, chatID, "Введите время окончания в формате ЧЧ:ММ:", nil)
}

func (h *Handlers) handleAvailabilityEndStep(ctx context.Context, b *bot.Bot, message *models.Message, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	if !isValidTime(text) {
		h.sendError(ctx, b, chatID, "❌ Неверный формат времени. Нужен ЧЧ:ММ, например 17:00:")
		return
	}

	sm := h.deps.StateManager
	day, ok := h.getInt(telegramID, "availability_day")
	if !ok {
		sm.ClearState(telegramID)
		h.sendError(ctx, b, chatID, "❌ Диалог прерван. Откройте редактор доступности заново.")
		return
	}

	slot := model.Availability{
		DayOfWeek:   day,
		StartTime:   sm.GetString(telegramID, "availability_slot_start"),
		EndTime:     text,
		IsAvailable: true,
	}
	if err := service.ValidateSlot(slot); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nПопробуйте ещё раз:")
		return
	}

	// ClearState стирает и данные, поэтому черновик снимаем до очистки
	draft, _ := tutor.Draft(h.deps, telegramID)
	sm.ClearState(telegramID)
	draft = append(draft, slot)
	tutor.SetDraft(h.deps, telegramID, draft)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.RequireRole(model.RoleTutor); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	screenText, kb := tutor.BuildAvailabilityScreen(draft)
	hc.EditMessage(screenText, kb)
}

// ========================
// Категории
// ========================

func (h *Handlers) handleCategoryNameStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if len(text) < NameMinLength {
		h.sendError(ctx, b, chatID, "❌ Название слишком короткое. Попробуйте ещё раз:")
		return
	}

	h.deps.StateManager.SetData(telegramID, "category_name", text)
	h.deps.StateManager.SetState(telegramID, state.StateCategoryDescription)
	h.sendMessage(ctx, b, chatID,
		"Введите описание.\nОтправьте - чтобы пропустить.", nil)
}

func (h *Handlers) handleCategoryDescriptionStep(ctx context.Context, b *bot.Bot, chatID, telegramID int64, text string) {
	if text == SkipToken {
		text = ""
	}

	h.deps.StateManager.SetData(telegramID, "category_description", text)
	h.deps.StateManager.SetState(telegramID, state.StateCategoryIcon)
	h.sendMessage(ctx, b, chatID,
		"Отправьте эмодзи для категории.\nОтправьте - чтобы пропустить.", nil)
}

func (h *Handlers) handleCategoryIconStep(ctx context.Context, b *bot.Bot, message *models.Message, text string) {
	telegramID := message.From.ID
	chatID := message.Chat.ID

	if text == SkipToken {
		text = ""
	}

	sm := h.deps.StateManager
	data := gateway.CategoryData{
		Name:        sm.GetString(telegramID, "category_name"),
		Description: sm.GetString(telegramID, "category_description"),
		Icon:        text,
	}
	editID := sm.GetString(telegramID, "category_edit_id")
	sm.ClearState(telegramID)

	hc := common.NewMessageContext(ctx, b, message, h.deps)
	if err := hc.RequireRole(model.RoleAdmin); err != nil {
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	var (
		category *model.Category
		err      error
		title    string
	)
	if editID != "" {
		category, err = h.deps.CategoryService.Update(ctx, hc.Token(), editID, data)
		title = "Категория обновлена"
	} else {
		category, err = h.deps.CategoryService.Create(ctx, hc.Token(), data)
		title = "Категория создана"
	}
	if err != nil {
		common.HandleError(hc, err, "save category")
		return
	}

	h.deps.Notify.Push(ctx, chatID, notify.KindSuccess, title, category.Name)

	admin.RenderCategories(hc)
}
