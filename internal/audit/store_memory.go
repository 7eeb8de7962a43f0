package audit

import (
	"sync"
)

// InMemoryStore keeps events in process memory. Tests use it to capture the
// audit trail instead of writing log files.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListAll() ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

func (s *InMemoryStore) ListBySubject(subject string) ([]Event, error) {
	return s.filter(func(e Event) bool { return e.Subject == subject }), nil
}

// ListByChannel returns the events recorded on one channel.
func (s *InMemoryStore) ListByChannel(channel Channel) []Event {
	return s.filter(func(e Event) bool { return e.Channel == channel })
}

func (s *InMemoryStore) filter(keep func(Event) bool) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// NewRecorder returns a Logger without text output whose events land in a fresh
// in-memory store.
func NewRecorder() (*Logger, *InMemoryStore) {
	store := NewInMemoryStore()
	return NewLogger(nil, nil, WithEmitter(NewPublisher(store))), store
}
