package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"   // Ожидает подтверждения репетитора
	BookingStatusConfirmed BookingStatus = "CONFIRMED" // Подтверждено
	BookingStatusCompleted BookingStatus = "COMPLETED" // Завершено
	BookingStatusCancelled BookingStatus = "CANCELLED" // Отменено
)

// Terminal проверяет что статус конечный
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

type Booking struct {
	ID             string        `json:"id"`
	StudentID      string        `json:"studentId"`
	TutorID        string        `json:"tutorId"`
	TutorProfileID string        `json:"tutorProfileId"`
	Date           string        `json:"date"` // "YYYY-MM-DD"
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	Status         BookingStatus `json:"status"`
	Subject        string        `json:"subject"`
	Notes          string        `json:"notes,omitempty"`
	TotalAmount    float64       `json:"totalAmount"` // считается сервером, клиент не пересчитывает
	CreatedAt      time.Time     `json:"createdAt"`

	Student      *UserRef      `json:"student,omitempty"`
	Tutor        *UserRef      `json:"tutor,omitempty"`
	TutorProfile *TutorProfile `json:"tutorProfile,omitempty"`
	Review       *Review       `json:"review,omitempty"`
}
