package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStates(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StateNone, m.GetState(100))

	m.SetState(100, StateBookingDate)
	assert.Equal(t, StateBookingDate, m.GetState(100))

	m.SetState(100, StateBookingStartTime)
	assert.Equal(t, StateBookingStartTime, m.GetState(100))

	// Состояния пользователей независимы
	assert.Equal(t, StateNone, m.GetState(200))
}

func TestManagerData(t *testing.T) {
	m := NewManager()

	m.SetState(100, StateBookingDate)
	m.SetData(100, "booking_subject", "Математика")
	m.SetData(100, "attempt", 2)

	assert.Equal(t, "Математика", m.GetString(100, "booking_subject"))

	value, ok := m.GetData(100, "attempt")
	require.True(t, ok)
	assert.Equal(t, 2, value)

	_, ok = m.GetData(100, "missing")
	assert.False(t, ok)
	assert.Empty(t, m.GetString(100, "missing"))
}

func TestManagerClearStateDropsData(t *testing.T) {
	m := NewManager()

	m.SetState(100, StateReviewComment)
	m.SetData(100, "review_rating", 5)

	m.ClearState(100)

	assert.Equal(t, StateNone, m.GetState(100))
	_, ok := m.GetData(100, "review_rating")
	assert.False(t, ok)
}

func TestManagerSetStateNoneResets(t *testing.T) {
	m := NewManager()

	m.SetState(100, StateSearchQuery)
	m.SetData(100, "search_tmp_query", "физика")

	m.SetState(100, StateNone)

	assert.Equal(t, StateNone, m.GetState(100))
	_, ok := m.GetData(100, "search_tmp_query")
	assert.False(t, ok)
}
