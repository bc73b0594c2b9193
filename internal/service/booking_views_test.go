package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func mkBooking(id, date string, status model.BookingStatus, amount float64) model.Booking {
	return model.Booking{
		ID:          id,
		Date:        date,
		Status:      status,
		TotalAmount: amount,
	}
}

func TestUpcoming(t *testing.T) {
	today := "2025-05-10"
	bookings := []model.Booking{
		mkBooking("b1", "2025-05-20", model.BookingStatusConfirmed, 0),
		mkBooking("b2", "2025-05-09", model.BookingStatusConfirmed, 0), // вчера
		mkBooking("b3", "2025-05-10", model.BookingStatusConfirmed, 0), // сегодня
		mkBooking("b4", "2025-05-15", model.BookingStatusPending, 0),
		mkBooking("b5", "2025-05-11", model.BookingStatusConfirmed, 0),
	}

	out := Upcoming(bookings, today)

	require.Len(t, out, 3)
	// Сегодняшняя запись — предстоящая, порядок по дате вверх
	assert.Equal(t, "b3", out[0].ID)
	assert.Equal(t, "b5", out[1].ID)
	assert.Equal(t, "b1", out[2].ID)
}

func TestUpcomingStableOnEqualDates(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("first", "2025-05-10", model.BookingStatusConfirmed, 0),
		mkBooking("second", "2025-05-10", model.BookingStatusConfirmed, 0),
	}

	out := Upcoming(bookings, "2025-05-01")

	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].ID)
	assert.Equal(t, "second", out[1].ID)
}

func TestPending(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("b1", "2025-05-20", model.BookingStatusPending, 0),
		mkBooking("b2", "2025-05-10", model.BookingStatusPending, 0),
		mkBooking("b3", "2025-05-15", model.BookingStatusConfirmed, 0),
	}

	out := Pending(bookings)

	require.Len(t, out, 2)
	assert.Equal(t, "b2", out[0].ID)
	assert.Equal(t, "b1", out[1].ID)
}

func TestPast(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("b1", "2025-04-01", model.BookingStatusCompleted, 0),
		mkBooking("b2", "2025-04-20", model.BookingStatusCancelled, 0),
		mkBooking("b3", "2025-04-10", model.BookingStatusConfirmed, 0),
		mkBooking("b4", "2025-04-15", model.BookingStatusCompleted, 0),
	}

	out := Past(bookings)

	// Конечные статусы, по дате вниз
	require.Len(t, out, 3)
	assert.Equal(t, "b2", out[0].ID)
	assert.Equal(t, "b4", out[1].ID)
	assert.Equal(t, "b1", out[2].ID)
}

func TestRevenueCountsOnlyCompleted(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("b1", "2025-04-01", model.BookingStatusCompleted, 50),
		mkBooking("b2", "2025-04-02", model.BookingStatusCompleted, 30),
		mkBooking("b3", "2025-04-03", model.BookingStatusPending, 100),
		mkBooking("b4", "2025-04-04", model.BookingStatusConfirmed, 100),
		mkBooking("b5", "2025-04-05", model.BookingStatusCancelled, 100),
	}

	assert.Equal(t, 80.0, Revenue(bookings))
	assert.Equal(t, 0.0, Revenue(nil))
}

func TestComputeStudentStats(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("b1", "2025-04-01", model.BookingStatusCompleted, 0),
		mkBooking("b2", "2025-04-02", model.BookingStatusCompleted, 0),
		mkBooking("b3", "2025-04-03", model.BookingStatusConfirmed, 0),
		mkBooking("b4", "2025-04-04", model.BookingStatusPending, 0),
		mkBooking("b5", "2025-04-05", model.BookingStatusCancelled, 0),
	}

	stats := ComputeStudentStats(bookings)

	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.UpcomingSessions)
	assert.Equal(t, 1, stats.PendingSessions)
}

func TestComputeAdminStats(t *testing.T) {
	users := []model.User{
		{ID: "u1", Role: model.RoleStudent, IsActive: true},
		{ID: "u2", Role: model.RoleStudent, IsActive: false},
		{ID: "u3", Role: model.RoleTutor, IsActive: true},
		{ID: "u4", Role: model.RoleAdmin, IsActive: true},
	}
	bookings := []model.Booking{
		mkBooking("b1", "2025-04-01", model.BookingStatusCompleted, 40),
		mkBooking("b2", "2025-04-02", model.BookingStatusPending, 40),
	}

	stats := ComputeAdminStats(users, bookings)

	assert.Equal(t, 4, stats.TotalUsers)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalTutors)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 40.0, stats.TotalRevenue)
}

func TestReviewableBookings(t *testing.T) {
	bookings := []model.Booking{
		mkBooking("b1", "2025-04-01", model.BookingStatusCompleted, 0),
		{
			ID:     "b2",
			Date:   "2025-04-02",
			Status: model.BookingStatusCompleted,
			Review: &model.Review{Rating: 4},
		},
		mkBooking("b3", "2025-04-03", model.BookingStatusConfirmed, 0),
	}

	out := ReviewableBookings(bookings)

	require.Len(t, out, 1)
	assert.Equal(t, "b1", out[0].ID)
}
