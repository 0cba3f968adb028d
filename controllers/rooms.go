package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tambola-backend/services"
)

// RoomController serves read-only REST views of live rooms. All mutation
// happens over the websocket; these endpoints only read snapshots.
type RoomController struct {
	registry *services.Registry
}

func NewRoomController(registry *services.Registry) *RoomController {
	return &RoomController{registry: registry}
}

type roomListEntry struct {
	Code        string `json:"code"`
	Phase       string `json:"phase"`
	PlayerCount int    `json:"playerCount"`
}

// ListRooms returns a summary of every live room.
func (rc *RoomController) ListRooms(c *gin.Context) {
	rooms := rc.registry.Rooms()
	out := make([]roomListEntry, 0, len(rooms))
	for _, room := range rooms {
		snap := room.Snapshot()
		out = append(out, roomListEntry{
			Code:        snap.Code,
			Phase:       string(snap.Phase),
			PlayerCount: len(snap.Players),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetRoom returns the full snapshot of one room.
func (rc *RoomController) GetRoom(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	room, ok := rc.registry.Get(code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, room.Snapshot())
}
