package core

import (
	"sync"
	"time"
)

// typingTracker arms a per-client auto-clear timer so a stuck "is typing"
// flag never outlives its TTL. Firing posts back into the hub loop, which
// broadcasts the cleared state on the client's behalf.
type typingTracker struct {
	ttl  time.Duration
	fire func(c *Client)

	mu     sync.Mutex
	timers map[*Client]*time.Timer
}

func newTypingTracker(ttl time.Duration, fire func(c *Client)) *typingTracker {
	return &typingTracker{
		ttl:    ttl,
		fire:   fire,
		timers: make(map[*Client]*time.Timer),
	}
}

// touch arms or resets the auto-clear timer for a client.
func (t *typingTracker) touch(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[c]; ok {
		timer.Stop()
	}
	t.timers[c] = time.AfterFunc(t.ttl, func() {
		t.expire(c)
	})
}

func (t *typingTracker) expire(c *Client) {
	t.mu.Lock()
	_, armed := t.timers[c]
	delete(t.timers, c)
	t.mu.Unlock()

	if armed {
		t.fire(c)
	}
}

// cancel drops the timer for a client, if armed.
func (t *typingTracker) cancel(c *Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[c]; ok {
		timer.Stop()
		delete(t.timers, c)
	}
}

// stop cancels all pending timers.
func (t *typingTracker) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for c, timer := range t.timers {
		timer.Stop()
		delete(t.timers, c)
	}
}
