package core

import (
	"sync"
	"time"
)

type expiryKey struct {
	room string
	id   string
}

// ExpiryScheduler arms one-shot timers that remove ephemeral messages after
// a fixed delay. Firing only invokes the callback; the actual removal is
// applied by the hub loop so it re-enters the same mutation discipline as
// every other state change.
type ExpiryScheduler struct {
	ttl  time.Duration
	fire func(roomID, messageID string)

	mu     sync.Mutex
	timers map[expiryKey]*time.Timer
}

// NewExpiryScheduler builds a scheduler. fire runs on a timer goroutine.
func NewExpiryScheduler(ttl time.Duration, fire func(roomID, messageID string)) *ExpiryScheduler {
	return &ExpiryScheduler{
		ttl:    ttl,
		fire:   fire,
		timers: make(map[expiryKey]*time.Timer),
	}
}

// Schedule arms a timer for (roomID, messageID), replacing any armed one.
func (s *ExpiryScheduler) Schedule(roomID, messageID string) {
	key := expiryKey{room: roomID, id: messageID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(s.ttl, func() {
		s.expire(key)
	})
}

func (s *ExpiryScheduler) expire(key expiryKey) {
	s.mu.Lock()
	_, armed := s.timers[key]
	delete(s.timers, key)
	s.mu.Unlock()

	// A concurrent Cancel may have won; only a still-armed timer notifies.
	if armed {
		s.fire(key.room, key.id)
	}
}

// Cancel stops the timer for one message, if armed.
func (s *ExpiryScheduler) Cancel(roomID, messageID string) {
	key := expiryKey{room: roomID, id: messageID}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[key]; ok {
		t.Stop()
		delete(s.timers, key)
	}
}

// CancelRoom stops every pending timer for a room. Called on clear so a
// stale timer cannot re-notify removal in a freshly cleared room.
func (s *ExpiryScheduler) CancelRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		if key.room == roomID {
			t.Stop()
			delete(s.timers, key)
		}
	}
}

// Stop cancels all pending timers.
func (s *ExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}

// Pending reports the number of armed timers.
func (s *ExpiryScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
