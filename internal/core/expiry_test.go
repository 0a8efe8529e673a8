package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpirySchedulerFires(t *testing.T) {
	fired := make(chan expiryKey, 1)
	s := NewExpiryScheduler(20*time.Millisecond, func(room, id string) {
		fired <- expiryKey{room: room, id: id}
	})
	defer s.Stop()

	s.Schedule("demo", "m1")

	select {
	case key := <-fired:
		require.Equal(t, expiryKey{room: "demo", id: "m1"}, key)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	require.Zero(t, s.Pending())
}

func TestExpirySchedulerCancel(t *testing.T) {
	fired := make(chan expiryKey, 1)
	s := NewExpiryScheduler(30*time.Millisecond, func(room, id string) {
		fired <- expiryKey{room: room, id: id}
	})
	defer s.Stop()

	s.Schedule("demo", "m1")
	s.Cancel("demo", "m1")

	select {
	case <-fired:
		t.Fatal("cancelled timer fired")
	case <-time.After(100 * time.Millisecond):
	}
	require.Zero(t, s.Pending())
}

func TestExpirySchedulerCancelRoom(t *testing.T) {
	fired := make(chan expiryKey, 4)
	s := NewExpiryScheduler(30*time.Millisecond, func(room, id string) {
		fired <- expiryKey{room: room, id: id}
	})
	defer s.Stop()

	s.Schedule("demo", "m1")
	s.Schedule("demo", "m2")
	s.Schedule("other", "m3")
	s.CancelRoom("demo")
	require.Equal(t, 1, s.Pending())

	select {
	case key := <-fired:
		require.Equal(t, "other", key.room)
	case <-time.After(time.Second):
		t.Fatal("surviving timer did not fire")
	}

	select {
	case key := <-fired:
		t.Fatalf("cancelled timer fired: %+v", key)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubEphemeralLifecycle(t *testing.T) {
	hub := startHub(t, Options{EphemeralTTL: 80 * time.Millisecond})

	alice := NewClient("a")
	bob := NewClient("b")
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	joinRoom(t, alice, "demo", "alice", JoinActionCreate)
	joinRoom(t, bob, "demo", "bob", JoinActionJoin)
	mustEvent(t, alice.Events, EventUsersOnline)

	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "keep"}
	keep := mustEvent(t, bob.Events, EventNewMessage)
	mustEvent(t, alice.Events, EventNewMessage)

	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "secret", Ephemeral: true}
	secret := mustEvent(t, bob.Events, EventNewMessage)
	require.True(t, secret.Message.Ephemeral)

	// Both room members observe exactly one expiry for the ephemeral id.
	expired := mustEvent(t, bob.Events, EventMessageExpired)
	require.Equal(t, secret.Message.ID, expired.MessageID)
	mustEvent(t, alice.Events, EventMessageExpired)
	mustNoEvent(t, bob.Events)

	// The non-ephemeral message survives.
	bob.Commands <- &Command{Kind: CommandGetMessages}
	hist := mustEvent(t, bob.Events, EventHistory)
	require.Len(t, hist.Messages, 1)
	require.Equal(t, keep.Message.ID, hist.Messages[0].ID)
}

func TestHubNonEphemeralNeverExpires(t *testing.T) {
	hub := startHub(t, Options{EphemeralTTL: 50 * time.Millisecond})

	alice := NewClient("a")
	hub.RegisterClient(alice)
	joinRoom(t, alice, "demo", "alice", JoinActionCreate)

	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "stays"}
	mustEvent(t, alice.Events, EventNewMessage)

	mustNoEvent(t, alice.Events)
}

func TestHubClearCancelsPendingExpiry(t *testing.T) {
	hub := startHub(t, Options{EphemeralTTL: 200 * time.Millisecond})

	alice := NewClient("a")
	hub.RegisterClient(alice)
	joinRoom(t, alice, "demo", "alice", JoinActionCreate)

	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "gone soon", Ephemeral: true}
	mustEvent(t, alice.Events, EventNewMessage)

	alice.Commands <- &Command{Kind: CommandClearMessages}
	mustEvent(t, alice.Events, EventMessagesCleared)
	require.Eventually(t, func() bool { return hub.expiry.Pending() == 0 },
		time.Second, 10*time.Millisecond)

	// No stale expiry notification after the clear.
	time.Sleep(250 * time.Millisecond)
	mustNoEvent(t, alice.Events)
}

func TestHubCapacityEvictionCancelsEphemeralTimer(t *testing.T) {
	hub := startHub(t, Options{HistoryLimit: 1, EphemeralTTL: 200 * time.Millisecond})

	alice := NewClient("a")
	hub.RegisterClient(alice)
	joinRoom(t, alice, "demo", "alice", JoinActionCreate)

	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "old", Ephemeral: true}
	mustEvent(t, alice.Events, EventNewMessage)
	alice.Commands <- &Command{Kind: CommandSendMessage, Text: "new"}
	mustEvent(t, alice.Events, EventNewMessage)

	require.Eventually(t, func() bool { return hub.expiry.Pending() == 0 },
		time.Second, 10*time.Millisecond)
}
