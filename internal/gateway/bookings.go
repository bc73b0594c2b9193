package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// CreateBookingRequest данные формы создания записи
type CreateBookingRequest struct {
	TutorID   string `json:"tutorId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Subject   string `json:"subject"`
	Notes     string `json:"notes,omitempty"`
}

// CreateBooking создаёт запись; сервер сам считает totalAmount и ставит PENDING
func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (*model.Booking, error) {
	var booking model.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", token, "", req, &booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// ListBookings возвращает записи текущего пользователя (скоуп по роли — на сервере)
func (c *Client) ListBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", token, "", nil, &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// GetBooking возвращает запись по ID
func (c *Client) GetBooking(ctx context.Context, token, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/"+id, token, "", nil, &booking); err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

// UpdateBookingStatus переводит запись в новый статус (репетитор/админ)
func (c *Client) UpdateBookingStatus(ctx context.Context, token, id string, status model.BookingStatus) error {
	body := struct {
		Status model.BookingStatus `json:"status"`
	}{Status: status}

	if err := c.do(ctx, http.MethodPatch, "/bookings/"+id+"/status", token, "", body, nil); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}

// CancelBooking отменяет запись. Idempotency-Key защищает от двойной отправки.
func (c *Client) CancelBooking(ctx context.Context, token, id, idemKey string) error {
	if err := c.do(ctx, http.MethodPost, "/bookings/"+id+"/cancel", token, idemKey, nil, nil); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}
