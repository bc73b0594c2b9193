package common

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func TestGenerateAvailabilityImage(t *testing.T) {
	slots := []model.Availability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsAvailable: true},
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00", IsAvailable: true},
		{DayOfWeek: 3, StartTime: "10:30", EndTime: "13:00", IsAvailable: false},
		{DayOfWeek: 6, StartTime: "07:00", EndTime: "21:00", IsAvailable: true}, // расширяет диапазон часов
	}

	data, err := GenerateAvailabilityImage(slots)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1120, img.Bounds().Dx())
	assert.Equal(t, 640, img.Bounds().Dy())
}

func TestGenerateAvailabilityImageEmpty(t *testing.T) {
	data, err := GenerateAvailabilityImage(nil)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}
