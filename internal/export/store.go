package export

import (
	"context"
	"sync"
	"time"
)

// SessionStore keeps preview sessions alive between the configure, inspect
// and download requests of one interaction. A missing or expired session
// surfaces as SessionExpiredError.
type SessionStore interface {
	Save(ctx context.Context, s *PreviewSession) error
	Get(ctx context.Context, id string) (*PreviewSession, error)
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	session   *PreviewSession
	expiresAt time.Time
}

type memorySessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemorySessionStore is the in-process store used when no Redis address
// is configured, and in tests.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *memorySessionStore) Save(ctx context.Context, s *PreviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.ID] = memoryEntry{session: s, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *memorySessionStore) Get(ctx context.Context, id string) (*PreviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[id]
	if !ok || m.now().After(entry.expiresAt) {
		delete(m.entries, id)
		return nil, &SessionExpiredError{SessionID: id}
	}
	return entry.session, nil
}

func (m *memorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
