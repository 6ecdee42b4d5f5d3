package session

import (
	"sync"
	"time"
)

// Store maps session IDs to sessions. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(id string) (*Session, bool)
	Put(id string, s *Session)
	Delete(id string)
}

type entry struct {
	session    *Session
	lastAccess time.Time
}

// MemoryStore keeps sessions in process memory and evicts entries
// that have not been touched within the timeout.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	timeout time.Duration
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates a store that expires idle sessions after
// timeout. A background sweep runs until Stop is called.
func NewMemoryStore(timeout time.Duration) *MemoryStore {
	m := &MemoryStore{
		entries: make(map[string]*entry),
		timeout: timeout,
		ticker:  time.NewTicker(10 * time.Minute),
		done:    make(chan struct{}),
	}
	go m.sweep()
	return m
}

func (m *MemoryStore) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, false
	}
	e.lastAccess = time.Now()
	return e.session, true
}

func (m *MemoryStore) Put(id string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &entry{session: s, lastAccess: time.Now()}
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
}

func (m *MemoryStore) sweep() {
	for {
		select {
		case <-m.ticker.C:
			m.mu.Lock()
			now := time.Now()
			for id, e := range m.entries {
				if now.Sub(e.lastAccess) > m.timeout {
					delete(m.entries, id)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Stop halts the background sweep.
func (m *MemoryStore) Stop() {
	m.ticker.Stop()
	close(m.done)
}

// expireIdle evicts idle entries immediately. Test hook.
func (m *MemoryStore) expireIdle(olderThan time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, e := range m.entries {
		if now.Sub(e.lastAccess) > olderThan {
			delete(m.entries, id)
		}
	}
}
