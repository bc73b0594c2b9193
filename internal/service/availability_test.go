package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func mkSlot(day int, start, end string) model.Availability {
	return model.Availability{
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
}

func TestDefaultSlot(t *testing.T) {
	slot := DefaultSlot(3)

	assert.Equal(t, 3, slot.DayOfWeek)
	assert.Equal(t, "09:00", slot.StartTime)
	assert.Equal(t, "17:00", slot.EndTime)
	assert.True(t, slot.IsAvailable)
	require.NoError(t, ValidateSlot(slot))
}

func TestValidateSlot(t *testing.T) {
	require.NoError(t, ValidateSlot(mkSlot(0, "08:00", "12:00")))
	require.NoError(t, ValidateSlot(mkSlot(6, "23:00", "23:30")))

	assert.ErrorIs(t, ValidateSlot(mkSlot(-1, "08:00", "12:00")), ErrInvalidDayOfWeek)
	assert.ErrorIs(t, ValidateSlot(mkSlot(7, "08:00", "12:00")), ErrInvalidDayOfWeek)
	assert.ErrorIs(t, ValidateSlot(mkSlot(1, "12:00", "08:00")), ErrInvalidSlotRange)
	assert.ErrorIs(t, ValidateSlot(mkSlot(1, "12:00", "12:00")), ErrInvalidSlotRange)
}

func TestGroupByDay(t *testing.T) {
	slots := []model.Availability{
		mkSlot(1, "14:00", "16:00"),
		mkSlot(1, "09:00", "11:00"),
		mkSlot(5, "10:00", "12:00"),
		mkSlot(9, "10:00", "12:00"), // мусорный день отбрасывается
	}

	grouped := GroupByDay(slots)

	require.Len(t, grouped[1], 2)
	// Внутри дня окна по возрастанию startTime
	assert.Equal(t, "09:00", grouped[1][0].StartTime)
	assert.Equal(t, "14:00", grouped[1][1].StartTime)

	require.Len(t, grouped[5], 1)
	assert.Empty(t, grouped[0])
	assert.Empty(t, grouped[6])
}

func TestRemoveSlot(t *testing.T) {
	slots := []model.Availability{
		mkSlot(1, "09:00", "11:00"),
		mkSlot(1, "14:00", "16:00"),
		mkSlot(2, "09:00", "11:00"),
	}

	out := RemoveSlot(slots, 1, "09:00")

	require.Len(t, out, 2)
	assert.Equal(t, "14:00", out[0].StartTime)
	assert.Equal(t, 2, out[1].DayOfWeek)

	// Идентичность — пара (день, начало): другой день не трогается
	out = RemoveSlot(out, 3, "14:00")
	assert.Len(t, out, 2)
}
