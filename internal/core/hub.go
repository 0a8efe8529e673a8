package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine tuning knobs. Zero-valued options fall back to these.
const (
	DefaultHistoryLimit = 100
	DefaultEphemeralTTL = 10 * time.Second
	DefaultTypingTTL    = 3 * time.Second
)

// Options tunes the hub's buffers and timers.
type Options struct {
	HistoryLimit int
	EphemeralTTL time.Duration
	TypingTTL    time.Duration
}

func (o Options) withDefaults() Options {
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.EphemeralTTL <= 0 {
		o.EphemeralTTL = DefaultEphemeralTTL
	}
	if o.TypingTTL <= 0 {
		o.TypingTTL = DefaultTypingTTL
	}
	return o
}

// RoomInfo is a read-only room snapshot for the HTTP API.
type RoomInfo struct {
	ID        string `json:"id"`
	Users     int    `json:"users"`
	Messages  int    `json:"messages"`
	Protected bool   `json:"protected"`
}

type envelope struct {
	client *Client
	cmd    *Command
}

type expiredTimer struct {
	room string
	id   string
}

// Hub owns all mutable shared state: the room table, the connection-to-room
// registry, presence and history. A single goroutine inside Run applies
// every mutation, so each logical event is atomic to observers and
// broadcast order matches mutation order within a room.
type Hub struct {
	log  *zerolog.Logger
	opts Options

	register   chan *Client
	unregister chan *Client
	commands   chan envelope
	expired    chan expiredTimer
	typedOut   chan *Client
	queries    chan chan []RoomInfo
	stopped    chan struct{}

	clients     map[*Client]struct{}
	rooms       map[string]*Room
	memberships map[*Client]string

	expiry *ExpiryScheduler
	typing *typingTracker
}

// NewHub creates a hub. A nil logger disables logging.
func NewHub(logger *zerolog.Logger, opts Options) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	h := &Hub{
		log:         logger,
		opts:        opts.withDefaults(),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		commands:    make(chan envelope),
		expired:     make(chan expiredTimer),
		typedOut:    make(chan *Client),
		queries:     make(chan chan []RoomInfo),
		stopped:     make(chan struct{}),
		clients:     make(map[*Client]struct{}),
		rooms:       make(map[string]*Room),
		memberships: make(map[*Client]string),
	}
	h.expiry = NewExpiryScheduler(h.opts.EphemeralTTL, func(roomID, messageID string) {
		select {
		case h.expired <- expiredTimer{room: roomID, id: messageID}:
		case <-h.stopped:
		}
	})
	h.typing = newTypingTracker(h.opts.TypingTTL, func(c *Client) {
		select {
		case h.typedOut <- c:
		case <-h.stopped:
		}
	})
	return h
}

// RegisterClient attaches a client and starts pumping its commands into the
// hub loop. Must be called after Run has started.
func (h *Hub) RegisterClient(c *Client) {
	c.done = make(chan struct{})
	select {
	case h.register <- c:
	case <-h.stopped:
		return
	}

	go func() {
		for {
			select {
			case cmd, ok := <-c.Commands:
				if !ok {
					return
				}
				select {
				case h.commands <- envelope{client: c, cmd: cmd}:
				case <-c.done:
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}

// UnregisterClient detaches a client. Called by the transport on close; the
// client is unbound and presence updated before any later event could be
// observed for it.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Rooms returns a read-only snapshot of all rooms.
func (h *Hub) Rooms(ctx context.Context) ([]RoomInfo, error) {
	reply := make(chan []RoomInfo, 1)
	select {
	case h.queries <- reply:
	case <-h.stopped:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case infos := <-reply:
		return infos, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes events until the context is cancelled. All state mutations
// happen on this goroutine.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.stopped)
		h.expiry.Stop()
		h.typing.stop()
		for c := range h.clients {
			close(c.done)
			close(c.Events)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Debug().Str("client_id", c.ID).Msg("client registered")
		case c := <-h.unregister:
			h.handleDisconnect(c)
		case env := <-h.commands:
			h.dispatch(env.client, env.cmd)
		case t := <-h.expired:
			h.handleExpired(t.room, t.id)
		case c := <-h.typedOut:
			h.handleTypingTimeout(c)
		case reply := <-h.queries:
			reply <- h.snapshotRooms()
		}
	}
}

type handlerFunc func(*Hub, *Client, *Command)

// handlers maps each command kind to its handler. Every handler runs on the
// hub goroutine and returns only after all resulting events are queued.
var handlers = map[CommandKind]handlerFunc{
	CommandJoinRoom:      (*Hub).handleJoin,
	CommandSendMessage:   (*Hub).handleSend,
	CommandTyping:        (*Hub).handleTyping,
	CommandClearMessages: (*Hub).handleClear,
	CommandGetMessages:   (*Hub).handleGetMessages,
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	handler, ok := handlers[cmd.Kind]
	if !ok {
		h.log.Warn().Int("kind", int(cmd.Kind)).Str("client_id", c.ID).Msg("unknown command kind")
		return
	}
	handler(h, c, cmd)
}

// handleJoin resolves the create/join action, transfers the client out of
// its previous room, and emits ack, history and presence in that order.
// On failure the client's prior membership is left untouched.
func (h *Hub) handleJoin(c *Client, cmd *Command) {
	target, exists := h.rooms[cmd.Room]

	switch cmd.Action {
	case JoinActionCreate:
		if exists {
			c.send(&Event{
				Kind:  EventJoinError,
				Room:  cmd.Room,
				Error: coreError(ErrCodeRoomExists, "room already exists"),
			})
			return
		}
		target = NewRoom(cmd.Room, cmd.Password, h.opts.HistoryLimit)
		h.rooms[cmd.Room] = target
		h.log.Info().Str("room", cmd.Room).Bool("protected", target.Protected()).Msg("room created")
	default:
		if !exists {
			c.send(&Event{
				Kind:  EventJoinError,
				Room:  cmd.Room,
				Error: coreError(ErrCodeRoomNotFound, "room not found"),
			})
			return
		}
		if !target.Authorize(cmd.Password) {
			c.send(&Event{
				Kind:  EventJoinError,
				Room:  cmd.Room,
				Error: coreError(ErrCodeInvalidPassword, "invalid password"),
			})
			return
		}
	}

	h.leaveCurrentRoom(c)

	c.Name = cmd.Username
	target.AddMember(c, cmd.Username)
	h.memberships[c] = target.ID

	c.send(&Event{Kind: EventRoomJoined, Room: target.ID})
	c.send(&Event{Kind: EventHistory, Room: target.ID, Messages: target.History().Snapshot()})
	h.broadcastPresence(target)

	h.log.Debug().Str("client_id", c.ID).Str("user", c.Name).Str("room", target.ID).Msg("client joined room")
}

// handleSend appends a message, evicting the oldest entries over capacity,
// broadcasts it and arms expiry for ephemerals. Sending while unjoined is a
// deliberate no-op, not an error.
func (h *Hub) handleSend(c *Client, cmd *Command) {
	room := h.currentRoom(c)
	if room == nil {
		return
	}

	author := cmd.Username
	if author == "" {
		author = c.Name
	}
	msg := Message{
		ID:        uuid.NewString(),
		Author:    author,
		Text:      cmd.Text,
		CreatedAt: time.Now(),
		Ephemeral: cmd.Ephemeral,
	}

	for _, evicted := range room.History().Append(msg) {
		if evicted.Ephemeral {
			h.expiry.Cancel(room.ID, evicted.ID)
		}
	}

	room.Broadcast(&Event{Kind: EventNewMessage, Room: room.ID, Message: msg})

	if msg.Ephemeral {
		h.expiry.Schedule(room.ID, msg.ID)
	}
}

// handleTyping broadcasts the sender's typing state to everyone else in the
// room. The state is transient and never touches history.
func (h *Hub) handleTyping(c *Client, cmd *Command) {
	room := h.currentRoom(c)
	if room == nil {
		return
	}
	if cmd.IsTyping {
		h.typing.touch(c)
	} else {
		h.typing.cancel(c)
	}
	room.BroadcastExcept(c, &Event{
		Kind:     EventUserTyping,
		Room:     room.ID,
		User:     c.Name,
		IsTyping: cmd.IsTyping,
	})
}

// handleClear wipes the room's history, cancels its pending expiry timers
// and notifies the whole room. Any member may clear.
func (h *Hub) handleClear(c *Client, _ *Command) {
	room := h.currentRoom(c)
	if room == nil {
		return
	}
	room.History().Clear()
	h.expiry.CancelRoom(room.ID)
	room.Broadcast(&Event{Kind: EventMessagesCleared, Room: room.ID})
	h.log.Info().Str("room", room.ID).Str("user", c.Name).Msg("history cleared")
}

// handleGetMessages re-sends the current history to the requesting client.
func (h *Hub) handleGetMessages(c *Client, _ *Command) {
	room := h.currentRoom(c)
	if room == nil {
		return
	}
	c.send(&Event{Kind: EventHistory, Room: room.ID, Messages: room.History().Snapshot()})
}

// handleExpired removes an ephemeral message and notifies the room. The
// message may already be gone through eviction or clear; the notification
// is idempotent render-side, so it is emitted regardless.
func (h *Hub) handleExpired(roomID, messageID string) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	room.History().RemoveByID(messageID)
	room.Broadcast(&Event{Kind: EventMessageExpired, Room: roomID, MessageID: messageID})
}

// handleTypingTimeout clears a stale typing flag on the client's behalf.
func (h *Hub) handleTypingTimeout(c *Client) {
	room := h.currentRoom(c)
	if room == nil {
		return
	}
	room.BroadcastExcept(c, &Event{Kind: EventUserTyping, Room: room.ID, User: c.Name, IsTyping: false})
}

// handleDisconnect unbinds the client and updates presence synchronously,
// so no partial-disconnect state is observable.
func (h *Hub) handleDisconnect(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.leaveCurrentRoom(c)
	close(c.done)
	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}

// leaveCurrentRoom unbinds the client from whatever room it occupies and
// broadcasts the resulting presence view there. No-op for unjoined clients.
func (h *Hub) leaveCurrentRoom(c *Client) {
	roomID, ok := h.memberships[c]
	if !ok {
		return
	}
	delete(h.memberships, c)
	h.typing.cancel(c)

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	room.RemoveMember(c)
	h.broadcastPresence(room)
}

func (h *Hub) currentRoom(c *Client) *Room {
	roomID, ok := h.memberships[c]
	if !ok {
		return nil
	}
	return h.rooms[roomID]
}

func (h *Hub) broadcastPresence(room *Room) {
	room.Broadcast(&Event{Kind: EventUsersOnline, Room: room.ID, Users: room.Usernames()})
}

func (h *Hub) snapshotRooms() []RoomInfo {
	infos := make([]RoomInfo, 0, len(h.rooms))
	for _, room := range h.rooms {
		infos = append(infos, RoomInfo{
			ID:        room.ID,
			Users:     len(room.Usernames()),
			Messages:  room.History().Len(),
			Protected: room.Protected(),
		})
	}
	return infos
}
