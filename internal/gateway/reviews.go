package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// CreateReviewRequest данные формы отзыва
type CreateReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// CreateReview оставляет отзыв к завершённой записи.
// Idempotency-Key защищает от двойной отправки.
func (c *Client) CreateReview(ctx context.Context, token string, req CreateReviewRequest, idemKey string) (*model.Review, error) {
	var review model.Review
	if err := c.do(ctx, http.MethodPost, "/reviews", token, idemKey, req, &review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return &review, nil
}

// GetTutorReviews возвращает отзывы репетитора со средним рейтингом
func (c *Client) GetTutorReviews(ctx context.Context, token, tutorID string) (*model.TutorReviews, error) {
	var resp model.TutorReviews
	if err := c.do(ctx, http.MethodGet, "/reviews/tutor/"+tutorID, token, "", nil, &resp); err != nil {
		return nil, fmt.Errorf("get tutor reviews: %w", err)
	}
	return &resp, nil
}
