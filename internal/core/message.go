package core

import "time"

// Message is the domain model for a chat message. Once appended to a room's
// history its relative order is fixed; only capacity eviction or ephemeral
// expiry removes it, never in-place edits.
type Message struct {
	ID        string
	Author    string
	Text      string
	CreatedAt time.Time
	Ephemeral bool
}
