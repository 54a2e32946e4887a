package memory

import (
	"context"
	"sync"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
)

var _ auth.SessionStore = (*SessionStore)(nil)

type sessionEntry struct {
	s   auth.Session
	exp time.Time
}

// SessionStore sesiones en proceso; se pierden al reiniciar.
type SessionStore struct {
	mu    sync.Mutex
	items map[string]sessionEntry
	nowFn func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]sessionEntry), nowFn: time.Now}
}

func (m *SessionStore) Save(_ context.Context, key string, s auth.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = sessionEntry{s: s, exp: m.nowFn().Add(ttl)}
	return nil
}

func (m *SessionStore) Load(_ context.Context, key string) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	if m.nowFn().After(e.exp) {
		delete(m.items, key)
		return nil, nil
	}
	out := e.s
	return &out, nil
}

func (m *SessionStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
