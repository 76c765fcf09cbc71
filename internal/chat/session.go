// Package chat implements the conversational helper: session state, canned
// FAQ answers and the fallback to the case knowledge base.
package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"callhelper/internal/models"
)

const (
	// DefaultSessionTTL is how long an idle session is kept.
	DefaultSessionTTL = time.Hour

	// MaxHistory bounds the stored conversation.
	MaxHistory = 50

	maxSessionIDLength = 64
	sessionKeyPrefix   = "chat:session:"
)

// ErrSessionStorage wraps failures of the backing key/value store.
var ErrSessionStorage = errors.New("chat session storage failure")

// Storage is the subset of a Fiber storage driver the session store needs.
// Missing keys return nil, nil.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// Session is the per-conversation state.
type Session struct {
	ID           string               `json:"id"`
	Context      map[string]string    `json:"context"`
	History      []models.ChatMessage `json:"history"`
	LastActivity time.Time            `json:"last_activity"`
}

// AddMessage appends a turn, dropping the oldest turns past MaxHistory.
func (s *Session) AddMessage(role, content string) {
	s.History = append(s.History, models.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = append(s.History[:0], s.History[over:]...)
	}
}

// SetContext stores a conversation context value.
func (s *Session) SetContext(key, value string) {
	if s.Context == nil {
		s.Context = make(map[string]string)
	}
	s.Context[key] = value
}

// GetContext returns a conversation context value, or "" when unset.
func (s *Session) GetContext(key string) string {
	return s.Context[key]
}

// SessionStore persists sessions as JSON with a sliding TTL.
type SessionStore struct {
	storage Storage
	ttl     time.Duration
}

// NewSessionStore creates a store. A non-positive ttl uses DefaultSessionTTL.
func NewSessionStore(storage Storage, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{storage: storage, ttl: ttl}
}

// GetOrCreate loads the session for id. Unknown ids start a fresh session
// under the same id; an empty or oversized id gets a new random one.
func (s *SessionStore) GetOrCreate(id string) (*Session, error) {
	if id == "" || len(id) > maxSessionIDLength {
		return newSession(uuid.NewString()), nil
	}

	raw, err := s.storage.Get(sessionKeyPrefix + id)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrSessionStorage, id, err)
	}
	if raw == nil {
		return newSession(id), nil
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt entry is replaced rather than failing the conversation.
		return newSession(id), nil
	}
	sess.ID = id
	return &sess, nil
}

// Save writes the session and restarts its TTL.
func (s *SessionStore) Save(sess *Session) error {
	sess.LastActivity = time.Now().UTC()
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.storage.Set(sessionKeyPrefix+sess.ID, raw, s.ttl); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrSessionStorage, sess.ID, err)
	}
	return nil
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) error {
	if err := s.storage.Delete(sessionKeyPrefix + id); err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrSessionStorage, id, err)
	}
	return nil
}

func newSession(id string) *Session {
	return &Session{
		ID:           id,
		Context:      make(map[string]string),
		LastActivity: time.Now().UTC(),
	}
}
