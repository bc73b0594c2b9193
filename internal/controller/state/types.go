package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход и регистрация
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	StateRegisterEmail    UserState = "register_email"
	StateRegisterPassword UserState = "register_password"
	StateRegisterName     UserState = "register_name"

	// Форма записи к репетитору (предмет выбирается кнопкой)
	StateBookingDate      UserState = "booking_date"
	StateBookingStartTime UserState = "booking_start_time"
	StateBookingEndTime   UserState = "booking_end_time"
	StateBookingNotes     UserState = "booking_notes"

	// Отзыв (оценка выбирается кнопкой)
	StateReviewComment UserState = "review_comment"

	// Поиск репетиторов
	StateSearchQuery    UserState = "search_query"
	StateSearchMinPrice UserState = "search_min_price"
	StateSearchMaxPrice UserState = "search_max_price"

	// Редактирование профиля репетитора
	StateEditProfileTitle      UserState = "edit_profile_title"
	StateEditProfileBio        UserState = "edit_profile_bio"
	StateEditProfileRate       UserState = "edit_profile_rate"
	StateEditProfilePhone      UserState = "edit_profile_phone"
	StateEditProfileEducation  UserState = "edit_profile_education"
	StateEditProfileExperience UserState = "edit_profile_experience"
	StateEditProfileSubjects   UserState = "edit_profile_subjects"

	// Добавление окна доступности (день выбирается кнопкой)
	StateAvailabilityStart UserState = "availability_start"
	StateAvailabilityEnd   UserState = "availability_end"

	// Категории (админ)
	StateCategoryName        UserState = "category_name"
	StateCategoryDescription UserState = "category_description"
	StateCategoryIcon        UserState = "category_icon"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{}
}
