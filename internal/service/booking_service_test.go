package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/gateway"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func TestValidateBookingForm(t *testing.T) {
	tutor := &model.TutorProfile{
		ID:       "tp1",
		Subjects: []string{"Математика", "Физика"},
	}

	valid := gateway.CreateBookingRequest{
		TutorID:   "u1",
		Date:      "2025-06-01",
		StartTime: "10:00",
		EndTime:   "11:00",
		Subject:   "Математика",
	}

	t.Run("valid form", func(t *testing.T) {
		require.NoError(t, ValidateBookingForm(valid, tutor))
	})

	t.Run("missing date", func(t *testing.T) {
		req := valid
		req.Date = ""
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrMissingDate)
	})

	t.Run("missing times", func(t *testing.T) {
		req := valid
		req.StartTime = ""
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrMissingTime)

		req = valid
		req.EndTime = ""
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrMissingTime)
	})

	t.Run("start must be before end", func(t *testing.T) {
		req := valid
		req.StartTime = "11:00"
		req.EndTime = "10:00"
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrInvalidTimeRange)

		// Равное время тоже недопустимо
		req.EndTime = "11:00"
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrInvalidTimeRange)
	})

	t.Run("times compare lexically across midday", func(t *testing.T) {
		req := valid
		req.StartTime = "09:30"
		req.EndTime = "10:15"
		require.NoError(t, ValidateBookingForm(req, tutor))
	})

	t.Run("subject must be taught", func(t *testing.T) {
		req := valid
		req.Subject = "Химия"
		assert.ErrorIs(t, ValidateBookingForm(req, tutor), ErrSubjectNotTaught)
	})

	t.Run("nil tutor skips subject check", func(t *testing.T) {
		req := valid
		req.Subject = "Химия"
		require.NoError(t, ValidateBookingForm(req, nil))
	})
}

func TestCanCancel(t *testing.T) {
	cases := []struct {
		status model.BookingStatus
		want   bool
	}{
		{model.BookingStatusPending, true},
		{model.BookingStatusConfirmed, true},
		{model.BookingStatusCompleted, false},
		{model.BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		b := &model.Booking{Status: tc.status}
		assert.Equal(t, tc.want, CanCancel(b), "status %s", tc.status)
	}
}

func TestCanConfirmAndComplete(t *testing.T) {
	pending := &model.Booking{Status: model.BookingStatusPending}
	confirmed := &model.Booking{Status: model.BookingStatusConfirmed}
	completed := &model.Booking{Status: model.BookingStatusCompleted}
	cancelled := &model.Booking{Status: model.BookingStatusCancelled}

	assert.True(t, CanConfirm(pending))
	assert.False(t, CanConfirm(confirmed))
	assert.False(t, CanConfirm(completed))
	assert.False(t, CanConfirm(cancelled))

	assert.True(t, CanComplete(confirmed))
	assert.False(t, CanComplete(pending))
	assert.False(t, CanComplete(completed))
	assert.False(t, CanComplete(cancelled))
}

func TestReviewable(t *testing.T) {
	completed := &model.Booking{Status: model.BookingStatusCompleted}
	assert.True(t, Reviewable(completed))

	// Уже есть отзыв
	reviewed := &model.Booking{
		Status: model.BookingStatusCompleted,
		Review: &model.Review{Rating: 5},
	}
	assert.False(t, Reviewable(reviewed))

	for _, status := range []model.BookingStatus{
		model.BookingStatusPending,
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
	} {
		b := &model.Booking{Status: status}
		assert.False(t, Reviewable(b), "status %s", status)
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, model.BookingStatusCompleted.Terminal())
	assert.True(t, model.BookingStatusCancelled.Terminal())
	assert.False(t, model.BookingStatusPending.Terminal())
	assert.False(t, model.BookingStatusConfirmed.Terminal())
}
