package model

import "time"

type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleTutor   Role = "TUTOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid проверяет что роль — одна из известных
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// Профили подгружаются сервером опционально
	StudentProfile *StudentProfile `json:"studentProfile,omitempty"`
	TutorProfile   *TutorProfile   `json:"tutorProfile,omitempty"`
}

type StudentProfile struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	Phone    string   `json:"phone,omitempty"`
	Bio      string   `json:"bio,omitempty"`
	Subjects []string `json:"subjects"`
}

// UserRef краткая ссылка на пользователя во вложенных объектах
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
