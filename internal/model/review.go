package model

import "time"

type Review struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"bookingId"`
	ReviewerID string    `json:"reviewerId"`
	TutorID    string    `json:"tutorId"`
	Rating     int       `json:"rating"` // 1..5
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`

	Reviewer *UserRef `json:"reviewer,omitempty"`
}

// TutorReviews ответ сервера на запрос отзывов репетитора
type TutorReviews struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	TotalReviews  int      `json:"totalReviews"`
}
