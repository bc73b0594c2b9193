package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// Login выполняет вход по email/паролю. Токен не требуется.
func (c *Client) Login(ctx context.Context, creds model.LoginCredentials) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", "", creds, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя. Токен не требуется.
func (c *Client) Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", "", data, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &resp, nil
}

// CurrentUser проверяет токен и возвращает текущего пользователя
func (c *Client) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return &resp.User, nil
}
