package journal

import "sync"

// Memory is an in-memory journal. Append never fails.
type Memory struct {
	mu     sync.RWMutex
	stream string
	events []Event
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{stream: newStreamID()}
}

// Append stores a copy of ev with the next sequence number.
func (m *Memory) Append(ev *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev.Seq = uint64(len(m.events)) + 1
	m.events = append(m.events, *ev)
	return nil
}

// Events returns the stored events in append order.
func (m *Memory) Events() ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

// Stream returns the journal instance identifier.
func (m *Memory) Stream() string { return m.stream }

// Close is a no-op for the in-memory journal.
func (m *Memory) Close() error { return nil }

var _ Journal = (*Memory)(nil)
