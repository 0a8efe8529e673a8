package http

import (
	"encoding/json"
	"strings"

	"github.com/vovakirdan/roomcast-server/internal/core"
	"github.com/vovakirdan/roomcast-server/internal/proto"
)

// normalizeRoomID lowercases and trims a room identifier so "Demo " and
// "demo" address the same room.
func normalizeRoomID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		roomID := normalizeRoomID(join.RoomID)
		if roomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		action := core.JoinAction(join.Action)
		switch action {
		case "":
			action = core.JoinActionJoin
		case core.JoinActionCreate, core.JoinActionJoin:
		default:
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "action must be create or join"}, nil
		}
		username := strings.TrimSpace(join.Username)
		if username == "" {
			username = "Anonymous"
		}
		return &core.Command{
			Kind:     core.CommandJoinRoom,
			Room:     roomID,
			Password: join.Password,
			Username: username,
			Action:   action,
		}, nil, nil
	case proto.InboundTypeSendMessage:
		var msg proto.SendMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, nil, err
		}
		if msg.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandSendMessage,
			Username:  strings.TrimSpace(msg.Username),
			Text:      msg.Text,
			Ephemeral: msg.Ephemeral,
		}, nil, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:     core.CommandTyping,
			IsTyping: typing.IsTyping,
		}, nil, nil
	case proto.InboundTypeClearMessages:
		return &core.Command{Kind: core.CommandClearMessages}, nil, nil
	case proto.InboundTypeGetMessages:
		return &core.Command{Kind: core.CommandGetMessages}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func wireMessage(msg core.Message) proto.WireMessage {
	return proto.WireMessage{
		ID:        msg.ID,
		Username:  msg.Author,
		Text:      msg.Text,
		Timestamp: msg.CreatedAt.UnixMilli(),
		Ephemeral: msg.Ephemeral,
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomJoined:
		return proto.Outbound{
			Type: proto.OutboundTypeRoomJoined,
			Data: proto.RoomJoinedData{RoomID: event.Room},
		}
	case core.EventJoinError:
		data := proto.JoinErrorData{Code: "unknown", Message: "unknown error"}
		if event.Error != nil {
			data = proto.JoinErrorData{Code: event.Error.Code, Message: event.Error.Message}
		}
		return proto.Outbound{Type: proto.OutboundTypeJoinError, Data: data}
	case core.EventHistory:
		messages := make([]proto.WireMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, wireMessage(msg))
		}
		return proto.Outbound{
			Type: proto.OutboundTypeMessageHistory,
			Data: proto.MessageHistoryData{RoomID: event.Room, Messages: messages},
		}
	case core.EventNewMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeNewMessage,
			Data: wireMessage(event.Message),
		}
	case core.EventMessageExpired:
		return proto.Outbound{
			Type: proto.OutboundTypeMessageExpired,
			Data: proto.MessageExpiredData{MessageID: event.MessageID},
		}
	case core.EventMessagesCleared:
		return proto.Outbound{Type: proto.OutboundTypeMessagesCleared}
	case core.EventUserTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeUserTyping,
			Data: proto.UserTypingData{Username: event.User, IsTyping: event.IsTyping},
		}
	case core.EventUsersOnline:
		return proto.Outbound{
			Type: proto.OutboundTypeUsersOnline,
			Data: proto.UsersOnlineData{Users: event.Users},
		}
	default:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: "unknown", Msg: "unknown event"},
		}
	}
}
