package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomJoined acknowledges a successful join to the joining client.
	EventRoomJoined EventKind = iota
	// EventJoinError reports a failed join to the joining client.
	EventJoinError
	// EventHistory delivers message history to a single client.
	EventHistory
	// EventNewMessage notifies a room about a new chat message.
	EventNewMessage
	// EventMessageExpired notifies a room that an ephemeral message was removed.
	EventMessageExpired
	// EventMessagesCleared notifies a room that its history was wiped.
	EventMessagesCleared
	// EventUserTyping notifies a room about another member's typing state.
	EventUserTyping
	// EventUsersOnline delivers a deduplicated presence snapshot to a room.
	EventUsersOnline
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind      EventKind
	Room      string
	User      string
	IsTyping  bool
	Message   Message
	Messages  []Message // for EventHistory
	MessageID string    // for EventMessageExpired
	Users     []string  // for EventUsersOnline
	Error     *CoreError
}
