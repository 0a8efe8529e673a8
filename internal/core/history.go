package core

// History is a bounded, insertion-ordered message buffer. Eviction is
// strictly FIFO and ignores the ephemeral flag.
type History struct {
	limit int
	msgs  []Message
}

// NewHistory constructs an empty buffer holding at most limit messages.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append pushes a message to the end and returns the entries evicted from
// the front to get back within capacity. The common case evicts at most
// one entry, but bulk overflow is handled too.
func (h *History) Append(m Message) []Message {
	h.msgs = append(h.msgs, m)
	if len(h.msgs) <= h.limit {
		return nil
	}
	n := len(h.msgs) - h.limit
	evicted := make([]Message, n)
	copy(evicted, h.msgs[:n])
	h.msgs = append(h.msgs[:0], h.msgs[n:]...)
	return evicted
}

// RemoveByID deletes the message with the given id, preserving order.
// Returns false if the id is absent (already evicted or never existed).
func (h *History) RemoveByID(id string) bool {
	for i := range h.msgs {
		if h.msgs[i].ID == id {
			h.msgs = append(h.msgs[:i], h.msgs[i+1:]...)
			return true
		}
	}
	return false
}

// Clear truncates the buffer to empty.
func (h *History) Clear() {
	h.msgs = h.msgs[:0]
}

// Len reports the number of buffered messages.
func (h *History) Len() int {
	return len(h.msgs)
}

// Snapshot returns a copy of the buffered messages in insertion order.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.msgs))
	copy(out, h.msgs)
	return out
}
