package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub_bot/internal/model"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	assert.Nil(t, m.Get(100))

	user := &model.User{ID: "u1", Name: "Анна", Role: model.RoleStudent}
	m.Set(100, "tok-1", user)

	sess := m.Get(100)
	require.NotNil(t, sess)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)

	// Повторный Set заменяет сессию целиком
	m.Set(100, "tok-2", user)
	assert.Equal(t, "tok-2", m.Get(100).Token)

	m.Clear(100)
	assert.Nil(t, m.Get(100))
}

func TestManagerUpdateUser(t *testing.T) {
	m := NewManager()
	m.Set(100, "tok", &model.User{ID: "u1", Name: "Анна"})

	m.UpdateUser(100, &model.User{ID: "u1", Name: "Анна Петрова"})

	sess := m.Get(100)
	require.NotNil(t, sess)
	assert.Equal(t, "Анна Петрова", sess.User.Name)
	assert.Equal(t, "tok", sess.Token)

	// Без сессии обновление не создаёт её
	m.UpdateUser(200, &model.User{ID: "u2"})
	assert.Nil(t, m.Get(200))
}

func TestManagerActiveIDs(t *testing.T) {
	m := NewManager()
	assert.Empty(t, m.ActiveIDs())

	m.Set(1, "a", &model.User{ID: "u1"})
	m.Set(2, "b", &model.User{ID: "u2"})

	ids := m.ActiveIDs()
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	m.Clear(1)
	assert.ElementsMatch(t, []int64{2}, m.ActiveIDs())
}
