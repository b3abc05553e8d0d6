// Package conversation keeps per-session exchange history for iterative
// resume refinement. Sessions live in memory and are pruned to a bounded
// number of exchanges so prompts stay within model limits.
package conversation

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Message roles. A session alternates user prompts and assistant replies.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultMaxExchanges bounds how many user/assistant exchanges a session
// retains before the oldest are dropped.
const DefaultMaxExchanges = 10

// Message is a single turn in a refinement session.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is one refinement conversation.
type Session struct {
	ID        string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotFoundError indicates a session id with no live session behind it.
type NotFoundError struct {
	SessionID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("conversation session not found: %s", e.SessionID)
}

// Manager holds refinement sessions. All methods are safe for concurrent
// use.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	maxExchanges int
	now          func() time.Time
	log          *zap.SugaredLogger
}

// NewManager creates a Manager. maxExchanges <= 0 falls back to
// DefaultMaxExchanges. A nil logger disables logging.
func NewManager(maxExchanges int, logger *zap.SugaredLogger) *Manager {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		sessions:     make(map[string]*Session),
		maxExchanges: maxExchanges,
		now:          time.Now,
		log:          logger,
	}
}

// WithClock overrides the manager's clock. Intended for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Create ensures a session exists and returns its id. An empty id gets a
// generated one; an id that already names a session is returned unchanged.
func (m *Manager) Create(sessionID string) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; ok {
		return sessionID
	}

	now := m.now().UTC()
	m.sessions[sessionID] = &Session{
		ID:        sessionID,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.log.Infow("conversation session created", "session_id", sessionID)
	return sessionID
}

// Get returns a copy of the session.
func (m *Manager) Get(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, &NotFoundError{SessionID: sessionID}
	}
	out := *session
	out.Messages = append([]Message(nil), session.Messages...)
	return &out, nil
}

// History returns the session's messages, oldest first. An unknown session
// yields an empty history rather than an error so callers can treat a fresh
// session and a missing one the same way when building prompts.
func (m *Manager) History(sessionID string) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	return append([]Message(nil), session.Messages...)
}

// Append adds a message to the session, creating the session when needed.
// Oldest messages are dropped once the session exceeds its exchange bound.
func (m *Manager) Append(sessionID, role, content string) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("invalid conversation role: %q", role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		now := m.now().UTC()
		session = &Session{ID: sessionID, Messages: []Message{}, CreatedAt: now, UpdatedAt: now}
		m.sessions[sessionID] = session
	}

	session.Messages = append(session.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: m.now().UTC(),
	})
	session.UpdatedAt = m.now().UTC()

	// One exchange is a user message plus an assistant reply.
	maxMessages := m.maxExchanges * 2
	if len(session.Messages) > maxMessages {
		dropped := len(session.Messages) - maxMessages
		session.Messages = append([]Message(nil), session.Messages[dropped:]...)
		m.log.Infow("pruned conversation session",
			"session_id", sessionID, "dropped", dropped)
	}
	return nil
}

// Reset clears the session's messages but keeps the session alive.
func (m *Manager) Reset(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return &NotFoundError{SessionID: sessionID}
	}
	session.Messages = []Message{}
	session.UpdatedAt = m.now().UTC()
	return nil
}

// Delete removes the session entirely.
func (m *Manager) Delete(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return &NotFoundError{SessionID: sessionID}
	}
	delete(m.sessions, sessionID)
	return nil
}

// SessionIDs lists the ids of all live sessions, sorted.
func (m *Manager) SessionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CleanupOlderThan deletes sessions whose last update is before the cutoff
// and returns how many were removed.
func (m *Manager) CleanupOlderThan(cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.Infow("cleaned up stale conversation sessions", "removed", removed)
	}
	return removed
}
