// Package session tracks per-chat conversation state.
package session

import (
	"sync"
	"time"

	"github.com/AmirMakir/speechbot/internal/i18n"
)

// State is the per-chat lifecycle phase.
type State int

const (
	// AwaitingLanguage means /start was received and the language keyboard is up.
	AwaitingLanguage State = iota
	// Ready is terminal and reentrant: every audio message runs the pipeline.
	Ready
)

// Session holds the state of one chat.
type Session struct {
	ChatID    int64
	Lang      i18n.Language
	State     State
	CreatedAt time.Time
}

// Manager owns all chat sessions. Lifetime is the process lifetime.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[int64]*Session
	defaultLang i18n.Language
	clock       func() time.Time
}

func NewManager(defaultLang i18n.Language) *Manager {
	return &Manager{
		sessions:    make(map[int64]*Session),
		defaultLang: defaultLang,
		clock:       time.Now,
	}
}

// Start creates (or resets) the session for chatID and puts it into
// AwaitingLanguage. The previously selected language, if any, is kept so the
// welcome message can be shown in a familiar language.
func (m *Manager) Start(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = &Session{ChatID: chatID, Lang: m.defaultLang, CreatedAt: m.clock()}
		m.sessions[chatID] = s
	}
	s.State = AwaitingLanguage
	snapshot := *s
	return &snapshot
}

// SetLanguage updates the chat language and moves the session to Ready.
// Unknown codes are ignored and reported as false.
func (m *Manager) SetLanguage(chatID int64, code string) bool {
	if !i18n.Supported(code) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = &Session{ChatID: chatID, CreatedAt: m.clock()}
		m.sessions[chatID] = s
	}
	s.Lang = i18n.Language(code)
	s.State = Ready
	return true
}

// Language returns the interface language for chatID, defaulting when the
// chat has no session yet.
func (m *Manager) Language(chatID int64) i18n.Language {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[chatID]; ok && s.Lang != "" {
		return s.Lang
	}
	return m.defaultLang
}

// Get returns a snapshot of the session for chatID, or nil.
func (m *Manager) Get(chatID int64) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[chatID]
	if !ok {
		return nil
	}
	snapshot := *s
	return &snapshot
}
