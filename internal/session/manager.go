package session

import (
	"sync"

	"github.com/tutorhub/tutorhub_bot/internal/model"
)

// Session авторизованная сессия одного Telegram-пользователя.
// Токен и пользователь живут только здесь: logout очищает оба.
type Session struct {
	Token string
	User  *model.User
}

// Manager единственный владелец состояния авторизации
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session // telegramID -> Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get возвращает сессию пользователя или nil
func (m *Manager) Get(telegramID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.sessions[telegramID]
}

// Set сохраняет сессию после успешного login/register
func (m *Manager) Set(telegramID int64, token string, user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[telegramID] = &Session{Token: token, User: user}
}

// UpdateUser обновляет кешированного пользователя в существующей сессии
func (m *Manager) UpdateUser(telegramID int64, user *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, exists := m.sessions[telegramID]; exists {
		s.User = user
	}
}

// Clear завершает сессию (logout)
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, telegramID)
}

// ActiveIDs возвращает ID пользователей с активной сессией
func (m *Manager) ActiveIDs() []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}
