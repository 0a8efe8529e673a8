package core

// Client is a chat participant as seen by the core layer. Name stays empty
// until the first successful join sets the display name.
type Client struct {
	ID       string
	Name     string
	Commands chan *Command
	Events   chan *Event

	// done is closed by the hub on unregister; it stops the command pump
	// without closing Commands under the transport's feet.
	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
	}
}

// send delivers an event without blocking. Slow consumers drop; a failed
// transport is the transport layer's concern, not retried here.
func (c *Client) send(event *Event) {
	select {
	case c.Events <- event:
	default:
	}
}
