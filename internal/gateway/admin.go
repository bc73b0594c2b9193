package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// ListUsers возвращает всех пользователей (только админ)
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, "", nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetUserActive включает/отключает учётную запись (только админ)
func (c *Client) SetUserActive(ctx context.Context, token, userID string, isActive bool) error {
	body := struct {
		IsActive bool `json:"isActive"`
	}{IsActive: isActive}

	if err := c.do(ctx, http.MethodPatch, "/admin/users/"+userID+"/status", token, "", body, nil); err != nil {
		return fmt.Errorf("set user active: %w", err)
	}
	return nil
}

// ListAllBookings возвращает все записи системы (только админ)
func (c *Client) ListAllBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, "/admin/bookings", token, "", nil, &bookings); err != nil {
		return nil, fmt.Errorf("list all bookings: %w", err)
	}
	return bookings, nil
}
