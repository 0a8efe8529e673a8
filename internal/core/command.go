package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom creates or joins a room for the client.
	CommandJoinRoom CommandKind = iota
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandTyping reports the client's typing state to the room.
	CommandTyping
	// CommandClearMessages wipes the history of the client's room.
	CommandClearMessages
	// CommandGetMessages re-sends the room history to the client.
	CommandGetMessages
)

// JoinAction selects between creating a room and joining an existing one.
type JoinAction string

const (
	JoinActionCreate JoinAction = "create"
	JoinActionJoin   JoinAction = "join"
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	Room      string
	Password  string
	Username  string
	Action    JoinAction
	Text      string
	Ephemeral bool
	IsTyping  bool
}
