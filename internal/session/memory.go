package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store for single-instance
// deployments and tests. Entries expire after the configured TTL.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

type memoryEntry struct {
	sess      *Session
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

// Get returns the session for the id, or ErrNotFound when missing or expired.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	// Return a copy so callers cannot mutate stored state without Save.
	cp := *entry.sess
	cp.Items = append(cp.Items[:0:0], entry.sess.Items...)
	cp.Flash = append([]Flash(nil), entry.sess.Flash...)
	return &cp, nil
}

// Save stores the session, resetting its TTL.
func (m *MemoryStore) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()

	cp := *sess
	cp.Items = append(cp.Items[:0:0], sess.Items...)
	cp.Flash = append([]Flash(nil), sess.Flash...)

	m.mu.Lock()
	m.sessions[sess.ID] = memoryEntry{
		sess:      &cp,
		expiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
