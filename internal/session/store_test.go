package session

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	m := NewMemoryStore(time.Hour)
	t.Cleanup(m.Stop)
	return m
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := newTestStore(t)

	s := &Session{}
	m.Put("id-1", s)

	got, ok := m.Get("id-1")
	if !ok {
		t.Fatal("session not found after Put")
	}
	if got != s {
		t.Error("Get returned a different session")
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("Get returned a session for an unknown id")
	}

	m.Delete("id-1")
	if _, ok := m.Get("id-1"); ok {
		t.Error("session still present after Delete")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	m := newTestStore(t)

	m.Put("stale", &Session{})
	time.Sleep(20 * time.Millisecond)
	m.Put("fresh", &Session{})

	m.expireIdle(10 * time.Millisecond)

	if _, ok := m.entries["stale"]; ok {
		t.Error("stale session survived expiry")
	}
	if _, ok := m.entries["fresh"]; !ok {
		t.Error("fresh session was evicted")
	}
}
