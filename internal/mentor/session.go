package mentor

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Message is a single turn in a mentor session.
type Message struct {
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Model        string    `json:"model,omitempty"`
	InputTokens  int       `json:"input_tokens,omitempty"`
	OutputTokens int       `json:"output_tokens,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is one learner's conversation with the mentor.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Messages    []Message `json:"messages"`
	Summary     string    `json:"summary,omitempty"`
	CompactedAt int       `json:"compacted_at,omitempty"` // number of messages included in Summary
	StartedAt   time.Time `json:"started_at"`
}

// SessionStore persists sessions and their message history.
type SessionStore interface {
	Create(userID string) (string, error)
	Get(id string) (*Session, error)
	Append(id string, msg Message) error
	SetSummary(id, summary string, compactedAt int) error
	Delete(id string) error
}

// MemoryStore is an in-memory SessionStore.
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Create(userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &Session{
		ID:        id,
		UserID:    userID,
		Messages:  []Message{},
		StartedAt: time.Now(),
	}
	return id, nil
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	c := *sess
	c.Messages = append([]Message{}, sess.Messages...)
	return &c, nil
}

func (s *MemoryStore) Append(id string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	sess.Messages = append(sess.Messages, msg)
	return nil
}

func (s *MemoryStore) SetSummary(id, summary string, compactedAt int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Summary = summary
	sess.CompactedAt = compactedAt
	return nil
}

func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
