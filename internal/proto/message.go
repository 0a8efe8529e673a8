package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoinRoom      = "joinRoom"
	InboundTypeSendMessage   = "sendMessage"
	InboundTypeTyping        = "typing"
	InboundTypeClearMessages = "clearMessages"
	InboundTypeGetMessages   = "getMessages"

	OutboundTypeRoomJoined      = "roomJoined"
	OutboundTypeJoinError       = "joinError"
	OutboundTypeMessageHistory  = "messageHistory"
	OutboundTypeNewMessage      = "newMessage"
	OutboundTypeMessageExpired  = "messageExpired"
	OutboundTypeMessagesCleared = "messagesCleared"
	OutboundTypeUserTyping      = "userTyping"
	OutboundTypeUsersOnline     = "usersOnline"
	OutboundTypeError           = "error"
)

// JoinRoomData requests to create or join a room.
type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password,omitempty"`
	Username string `json:"username"`
	Action   string `json:"action,omitempty"` // "create" or "join" (default)
}

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	Username  string `json:"username,omitempty"`
	Text      string `json:"text"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

// TypingData reports the client's typing state.
type TypingData struct {
	IsTyping bool `json:"isTyping"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// WireMessage is a chat message as rendered on the wire.
type WireMessage struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

// RoomJoinedData acknowledges a successful join.
type RoomJoinedData struct {
	RoomID string `json:"roomId"`
}

// JoinErrorData reports why a join failed.
type JoinErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageHistoryData delivers the room history to one client.
type MessageHistoryData struct {
	RoomID   string        `json:"roomId"`
	Messages []WireMessage `json:"messages"`
}

// MessageExpiredData notifies that an ephemeral message was removed.
type MessageExpiredData struct {
	MessageID string `json:"messageId"`
}

// UserTypingData notifies about another member's typing state.
type UserTypingData struct {
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

// UsersOnlineData is the deduplicated presence snapshot of a room.
type UsersOnlineData struct {
	Users []string `json:"users"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
