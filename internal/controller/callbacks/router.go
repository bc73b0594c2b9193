package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/admin"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/callbacktypes"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/student"
	"github.com/tutorhub/tutorhub_bot/internal/controller/callbacks/tutor"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================

// Общие и авторизация
const (
	BackToMain    = "back_to_main"
	LoginStart    = "login_start"
	RegisterStart = "register_start"
	RegisterRole  = "register_role:" // register_role:STUDENT
)

// Студент — каталог и записи
const (
	BrowseTutors = "browse_tutors"
	SortTutors   = "sort_tutors:" // sort_tutors:price_low
	SearchTutors = "search_tutors"
	ResetSearch  = "reset_search"
	ViewTutor    = "view_tutor:"   // view_tutor:<tutorUserID>
	BookTutor    = "book_tutor:"   // book_tutor:<tutorUserID>
	BookSubject  = "book_subject:" // book_subject:<tutorUserID>:<subjectIndex>

	MyBookings    = "my_bookings"
	BookingsTab   = "bookings_tab:"   // bookings_tab:upcoming|pending|past
	CancelBooking = "cancel_booking:" // cancel_booking:<bookingID>
	ConfirmCancel = "confirm_cancel:" // confirm_cancel:<bookingID>
	ReviewBooking = "review_booking:" // review_booking:<bookingID>
	ReviewRate    = "review_rate:"    // review_rate:<bookingID>:<rating>
)

// Репетитор
const (
	TutorBookings    = "tutor_bookings"
	ConfirmBooking   = "confirm_booking:"  // confirm_booking:<bookingID>
	CompleteBooking  = "complete_booking:" // complete_booking:<bookingID>
	AvailabilityMenu = "availability_menu"
	AddSlotDay       = "add_slot_day:" // add_slot_day:<0..6>
	RemoveSlot       = "remove_slot:"  // remove_slot:<day>:<HH:MM>
	SaveAvailability = "save_availability"
	ProfileMenu      = "profile_menu"
	EditProfile      = "edit_profile:" // edit_profile:title|bio|rate|...
)

// Админ
const (
	AdminMenu        = "admin_menu"
	AdminUsers       = "admin_users"
	ToggleUser       = "toggle_user:"        // toggle_user:<userID>
	AdminBookings    = "admin_bookings"
	AdminCategories  = "admin_categories"
	CreateCategory   = "create_category"
	EditCategory     = "edit_category:"      // edit_category:<categoryID>
	DeleteCategory   = "delete_category:"    // delete_category:<categoryID>
	ConfirmDeleteCat = "confirm_delete_cat:" // confirm_delete_cat:<categoryID>
)

// Handler маршрутизирует callback queries по обработчикам
type Handler struct {
	deps *callbacktypes.Handler

	// Хэндлеры команд из основного контроллера (для навигации "назад")
	showMain      func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64)
	startLogin    func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64)
	startRegister func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64)
}

func NewHandler(
	deps *callbacktypes.Handler,
	showMain func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64),
	startLogin func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64),
	startRegister func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64),
) *Handler {
	return &Handler{
		deps:          deps,
		showMain:      showMain,
		startLogin:    startLogin,
		startRegister: startRegister,
	}
}

// HandleCallbackQuery единая точка входа для нажатий inline кнопок
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	data := callback.Data
	h.deps.Logger.Debug("Callback received",
		zap.Int64("telegram_id", callback.From.ID),
		zap.String("data", data))

	switch {
	// Общие
	case data == BackToMain:
		h.handleBackToMain(ctx, b, callback)
	case data == LoginStart:
		h.handleAuthStart(ctx, b, callback, h.startLogin)
	case data == RegisterStart:
		h.handleAuthStart(ctx, b, callback, h.startRegister)
	case strings.HasPrefix(data, RegisterRole):
		student.HandleRegisterRole(ctx, b, callback, h.deps)

	// Студент — каталог
	case data == BrowseTutors:
		student.HandleBrowseTutors(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, SortTutors):
		student.HandleSortTutors(ctx, b, callback, h.deps)
	case data == SearchTutors:
		student.HandleSearchStart(ctx, b, callback, h.deps)
	case data == ResetSearch:
		student.HandleResetSearch(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ViewTutor):
		student.HandleViewTutor(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, BookTutor):
		student.HandleBookTutor(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, BookSubject):
		student.HandleBookSubject(ctx, b, callback, h.deps)

	// Студент — записи
	case data == MyBookings:
		student.HandleMyBookings(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, BookingsTab):
		student.HandleBookingsTab(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, CancelBooking):
		student.HandleCancelBooking(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ConfirmCancel):
		student.HandleConfirmCancel(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ReviewBooking):
		student.HandleReviewBooking(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ReviewRate):
		student.HandleReviewRate(ctx, b, callback, h.deps)

	// Репетитор
	case data == TutorBookings:
		tutor.HandleTutorBookings(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ConfirmBooking):
		tutor.HandleConfirmBooking(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, CompleteBooking):
		tutor.HandleCompleteBooking(ctx, b, callback, h.deps)
	case data == AvailabilityMenu:
		tutor.HandleAvailabilityMenu(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, AddSlotDay):
		tutor.HandleAddSlotDay(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, RemoveSlot):
		tutor.HandleRemoveSlot(ctx, b, callback, h.deps)
	case data == SaveAvailability:
		tutor.HandleSaveAvailability(ctx, b, callback, h.deps)
	case data == ProfileMenu:
		tutor.HandleProfileMenu(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, EditProfile):
		tutor.HandleEditProfile(ctx, b, callback, h.deps)

	// Админ
	case data == AdminMenu:
		admin.HandleAdminMenu(ctx, b, callback, h.deps)
	case data == AdminUsers:
		admin.HandleAdminUsers(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ToggleUser):
		admin.HandleToggleUser(ctx, b, callback, h.deps)
	case data == AdminBookings:
		admin.HandleAdminBookings(ctx, b, callback, h.deps)
	case data == AdminCategories:
		admin.HandleAdminCategories(ctx, b, callback, h.deps)
	case data == CreateCategory:
		admin.HandleCreateCategory(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, EditCategory):
		admin.HandleEditCategory(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, DeleteCategory):
		admin.HandleDeleteCategory(ctx, b, callback, h.deps)
	case strings.HasPrefix(data, ConfirmDeleteCat):
		admin.HandleConfirmDeleteCategory(ctx, b, callback, h.deps)

	default:
		h.deps.Logger.Warn("Unknown callback data",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
	}
}

func (h *Handler) handleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	msg := callback.Message.Message
	if msg == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callback.ID})
	h.showMain(ctx, b, msg.Chat.ID, callback.From.ID)
}

func (h *Handler) handleAuthStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, start func(ctx context.Context, b *bot.Bot, chatID int64, telegramID int64)) {
	msg := callback.Message.Message
	if msg == nil {
		return
	}
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callback.ID})
	start(ctx, b, msg.Chat.ID, callback.From.ID)
}
