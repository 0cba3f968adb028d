package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tambola-backend/controllers"
)

// SetupRoutes registers the REST API.
func SetupRoutes(r *gin.Engine, rooms *controllers.RoomController, records *controllers.RecordController) {
	api := r.Group("/api")

	// Room routes (read-only; play happens over the websocket)
	api.GET("/rooms", rooms.ListRooms)
	api.GET("/rooms/:code", rooms.GetRoom)

	// Game history routes
	api.GET("/records", records.ListRecords)
}
