package model

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
}

// AuthResponse ответ сервера на login/register
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
