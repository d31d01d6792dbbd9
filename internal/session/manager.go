package session

import (
	"sync"
	"time"
)

// Manager holds the sessions of all active conversations, keyed by user ID.
// The map is guarded so conversations of different users can be handled on
// independent goroutines.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Get returns the session for a user, creating one at StageEntry on the
// first interaction.
func (m *Manager) Get(userID, chatID int64) *Session {
	m.mu.RLock()
	s, ok := m.sessions[userID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s = &Session{
		UserID:    userID,
		ChatID:    chatID,
		Stage:     StageEntry,
		UpdatedAt: time.Now(),
	}
	m.sessions[userID] = s
	return s
}

// Len reports the number of active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
