package core

import (
	"testing"
	"time"
)

// mustEvent waits for an event of the given kind, discarding others.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// nextEvent waits for the next event of any kind.
func nextEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("expected an event, got none")
		return nil
	}
}

// mustNoEvent asserts that no event arrives within the window.
func mustNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got kind %v", ev.Kind)
	case <-time.After(150 * time.Millisecond):
	}
}

// joinRoom registers the command and consumes the three join events
// (ack, history, presence) so tests start from a quiet channel.
func joinRoom(t *testing.T, c *Client, room, user string, action JoinAction) {
	t.Helper()

	c.Commands <- &Command{Kind: CommandJoinRoom, Room: room, Username: user, Action: action}
	mustEvent(t, c.Events, EventRoomJoined)
	mustEvent(t, c.Events, EventHistory)
	mustEvent(t, c.Events, EventUsersOnline)
}

// drain empties any queued events.
func drain(c *Client) {
	for {
		select {
		case <-c.Events:
		default:
			return
		}
	}
}
