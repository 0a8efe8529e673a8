package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoomAuthorize(t *testing.T) {
	public := NewRoom("pub", "", 10)
	require.False(t, public.Protected())
	require.True(t, public.Authorize(""))
	require.True(t, public.Authorize("anything"))

	locked := NewRoom("locked", "s3cret", 10)
	require.True(t, locked.Protected())
	require.True(t, locked.Authorize("s3cret"))
	require.False(t, locked.Authorize(""))
	require.False(t, locked.Authorize("S3CRET"), "comparison is exact")
}

func TestRoomUsernamesDeduplicated(t *testing.T) {
	room := NewRoom("demo", "", 10)

	c1, c2, c3 := NewClient("1"), NewClient("2"), NewClient("3")
	require.True(t, room.AddMember(c1, "sam"))
	require.True(t, room.AddMember(c2, "sam"))
	require.True(t, room.AddMember(c3, "alice"))

	require.Equal(t, []string{"alice", "sam"}, room.Usernames())

	require.True(t, room.RemoveMember(c2))
	require.Equal(t, []string{"alice", "sam"}, room.Usernames(), "name persists while one connection holds it")

	require.True(t, room.RemoveMember(c1))
	require.Equal(t, []string{"alice"}, room.Usernames())
}

func TestRoomMembership(t *testing.T) {
	room := NewRoom("demo", "", 10)
	c := NewClient("1")

	require.True(t, room.Empty())
	require.True(t, room.AddMember(c, "sam"))
	require.False(t, room.AddMember(c, "sam"), "re-add is idempotent")
	require.False(t, room.Empty())

	require.True(t, room.RemoveMember(c))
	require.False(t, room.RemoveMember(c))
	require.True(t, room.Empty())
}
