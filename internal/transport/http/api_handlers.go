package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/roomcast-server/internal/core"
)

// ErrorResponse is the JSON body for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomListResponse wraps the room snapshots.
type RoomListResponse struct {
	Rooms []core.RoomInfo `json:"rooms"`
}

// listRoomsHandler returns a snapshot of all rooms. Passwords are never
// included; only whether a room is protected.
func listRoomsHandler(hub *core.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms, err := hub.Rooms(c.Request.Context())
		if err != nil {
			c.JSON(stdhttp.StatusServiceUnavailable, ErrorResponse{Error: "engine unavailable"})
			return
		}
		c.JSON(stdhttp.StatusOK, RoomListResponse{Rooms: rooms})
	}
}
