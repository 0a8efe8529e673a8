package core

import (
	"sort"

	"github.com/samber/lo"
)

// Room groups clients that joined the same channel. A room is created by an
// explicit create action and lives for the rest of the process even when
// empty, so history survives reconnects.
type Room struct {
	ID       string
	password string
	history  *History
	members  map[*Client]string
}

// NewRoom constructs a room with no members and empty history. An empty
// password makes the room public.
func NewRoom(id, password string, historyLimit int) *Room {
	return &Room{
		ID:       id,
		password: password,
		history:  NewHistory(historyLimit),
		members:  make(map[*Client]string),
	}
}

// Protected reports whether joining requires a password.
func (r *Room) Protected() bool {
	return r.password != ""
}

// Authorize checks the supplied password by exact string equality.
// A room without a password accepts any value, including none.
func (r *Room) Authorize(password string) bool {
	return r.password == "" || r.password == password
}

// AddMember registers a client under its display name. Returns true if
// newly added.
func (r *Room) AddMember(c *Client, name string) bool {
	_, exists := r.members[c]
	r.members[c] = name
	return !exists
}

// RemoveMember deletes a client from the room. Returns true if removed.
func (r *Room) RemoveMember(c *Client) bool {
	if _, exists := r.members[c]; !exists {
		return false
	}
	delete(r.members, c)
	return true
}

// Usernames returns the deduplicated display names of all members, sorted
// for a deterministic snapshot. Two connections sharing a name show once.
func (r *Room) Usernames() []string {
	names := make([]string, 0, len(r.members))
	for _, name := range r.members {
		names = append(names, name)
	}
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// Broadcast sends an event to all members of the room.
func (r *Room) Broadcast(event *Event) {
	for client := range r.members {
		client.send(event)
	}
}

// BroadcastExcept sends an event to all members except one.
func (r *Room) BroadcastExcept(skip *Client, event *Event) {
	for client := range r.members {
		if client == skip {
			continue
		}
		client.send(event)
	}
}

// Empty returns true if no members are in the room.
func (r *Room) Empty() bool {
	return len(r.members) == 0
}

// History exposes the room's message buffer.
func (r *Room) History() *History {
	return r.history
}
