package session

import (
	"context"
	"sync"
	"time"

	"tomato-harvest/internal/domain"
)

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// Memory keeps sessions in process with a sliding idle TTL.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Load(_ context.Context, id string) (State, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return State{}, domain.ErrNotFound
	}
	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		if current, ok := m.entries[id]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, id)
		}
		m.mu.Unlock()
		return State{}, domain.ErrNotFound
	}
	return cloneState(entry.state), nil
}

func (m *Memory) Save(_ context.Context, id string, state State) error {
	entry := memoryEntry{
		state:     cloneState(state),
		expiresAt: m.now().Add(m.ttl),
	}
	m.mu.Lock()
	m.entries[id] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	dropped := 0
	for id, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of stored sessions, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration, onSweep func(dropped int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dropped := m.Sweep()
			if onSweep != nil {
				onSweep(dropped)
			}
		}
	}
}

func cloneState(s State) State {
	if s.Lines != nil {
		lines := make([]domain.CartLine, len(s.Lines))
		copy(lines, s.Lines)
		s.Lines = lines
	}
	return s
}

var _ Backend = (*Memory)(nil)
