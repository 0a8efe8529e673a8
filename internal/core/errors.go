package core

import "errors"

// Error codes for domain errors surfaced to clients.
const (
	ErrCodeRoomNotFound    = "room_not_found"
	ErrCodeRoomExists      = "room_exists"
	ErrCodeInvalidPassword = "invalid_password"
	ErrCodeBadRequest      = "bad_request"
)

// ErrHubStopped is returned by queries once the hub loop has exited.
var ErrHubStopped = errors.New("hub stopped")

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
