package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomcast-server/internal/core"
	"github.com/vovakirdan/roomcast-server/internal/proto"
)

func inboundJSON(t *testing.T, typ string, data any) proto.Inbound {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return proto.Inbound{Type: typ, Data: raw}
}

func TestMapperJoinRoom(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inboundJSON(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		RoomID:   "  Demo ",
		Username: " alice ",
		Password: "x",
		Action:   "create",
	}))
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.CommandJoinRoom, cmd.Kind)
	require.Equal(t, "demo", cmd.Room, "room id is case-normalized and trimmed")
	require.Equal(t, "alice", cmd.Username)
	require.Equal(t, "x", cmd.Password)
	require.Equal(t, core.JoinActionCreate, cmd.Action)
}

func TestMapperJoinDefaults(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inboundJSON(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		RoomID: "demo",
	}))
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.JoinActionJoin, cmd.Action)
	require.Equal(t, "Anonymous", cmd.Username)
}

func TestMapperJoinValidation(t *testing.T) {
	_, protoErr, err := inboundToCommand(inboundJSON(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		RoomID: "   ",
	}))
	require.NoError(t, err)
	require.NotNil(t, protoErr)
	require.Equal(t, core.ErrCodeBadRequest, protoErr.Code)

	_, protoErr, err = inboundToCommand(inboundJSON(t, proto.InboundTypeJoinRoom, proto.JoinRoomData{
		RoomID: "demo",
		Action: "squat",
	}))
	require.NoError(t, err)
	require.NotNil(t, protoErr)
	require.Equal(t, core.ErrCodeBadRequest, protoErr.Code)
}

func TestMapperSendMessage(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inboundJSON(t, proto.InboundTypeSendMessage, proto.SendMessageData{
		Username:  "alice",
		Text:      "hi",
		Ephemeral: true,
	}))
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.CommandSendMessage, cmd.Kind)
	require.Equal(t, "hi", cmd.Text)
	require.True(t, cmd.Ephemeral)

	_, protoErr, err = inboundToCommand(inboundJSON(t, proto.InboundTypeSendMessage, proto.SendMessageData{}))
	require.NoError(t, err)
	require.NotNil(t, protoErr)
}

func TestMapperSimpleCommands(t *testing.T) {
	cmd, protoErr, err := inboundToCommand(inboundJSON(t, proto.InboundTypeTyping, proto.TypingData{IsTyping: true}))
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.CommandTyping, cmd.Kind)
	require.True(t, cmd.IsTyping)

	cmd, protoErr, err = inboundToCommand(proto.Inbound{Type: proto.InboundTypeClearMessages})
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.CommandClearMessages, cmd.Kind)

	cmd, protoErr, err = inboundToCommand(proto.Inbound{Type: proto.InboundTypeGetMessages})
	require.NoError(t, err)
	require.Nil(t, protoErr)
	require.Equal(t, core.CommandGetMessages, cmd.Kind)
}

func TestMapperUnknownType(t *testing.T) {
	_, protoErr, err := inboundToCommand(proto.Inbound{Type: "teleport"})
	require.NoError(t, err)
	require.NotNil(t, protoErr)
	require.Equal(t, "invalid_message", protoErr.Code)
}

func TestOutboundFromEvent(t *testing.T) {
	out := outboundFromEvent(&core.Event{Kind: core.EventRoomJoined, Room: "demo"})
	require.Equal(t, proto.OutboundTypeRoomJoined, out.Type)
	require.Equal(t, proto.RoomJoinedData{RoomID: "demo"}, out.Data)

	out = outboundFromEvent(&core.Event{
		Kind:  core.EventJoinError,
		Error: &core.CoreError{Code: core.ErrCodeInvalidPassword, Message: "invalid password"},
	})
	require.Equal(t, proto.OutboundTypeJoinError, out.Type)
	require.Equal(t, proto.JoinErrorData{Code: core.ErrCodeInvalidPassword, Message: "invalid password"}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventUsersOnline, Users: []string{"alice", "bob"}})
	require.Equal(t, proto.OutboundTypeUsersOnline, out.Type)
	require.Equal(t, proto.UsersOnlineData{Users: []string{"alice", "bob"}}, out.Data)

	out = outboundFromEvent(&core.Event{Kind: core.EventMessageExpired, MessageID: "m1"})
	require.Equal(t, proto.OutboundTypeMessageExpired, out.Type)
	require.Equal(t, proto.MessageExpiredData{MessageID: "m1"}, out.Data)
}
