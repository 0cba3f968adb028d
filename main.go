package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bellapacxx/tambola-backend/config"
	"github.com/bellapacxx/tambola-backend/controllers"
	"github.com/bellapacxx/tambola-backend/routes"
	"github.com/bellapacxx/tambola-backend/services"
	"github.com/bellapacxx/tambola-backend/utils/logger"
)

// setupRouter initializes the gin engine, middleware and routes.
func setupRouter(cfg config.Config, hub *services.Hub, gateway *services.Gateway,
	rooms *controllers.RoomController, records *controllers.RecordController) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, rooms, records)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket endpoint; all game intents flow through here
	r.GET("/ws", services.HandleWebSocket(hub, gateway))

	return r
}

func main() {
	defer logger.Sync()

	cfg := config.Load()
	db := config.SetupDatabase(cfg)

	registry := services.NewRegistry()
	tracker := services.NewTracker(cfg.JoinRequestTTL)
	hub := services.NewHub()
	history := services.NewHistory(db)
	gateway := services.NewGateway(registry, tracker, hub, history)

	rooms := controllers.NewRoomController(registry)
	records := controllers.NewRecordController(history)

	router := setupRouter(cfg, hub, gateway, rooms, records)

	logger.Infof("Tambola server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Errorf("Failed to start server: %v", err)
	}
}
