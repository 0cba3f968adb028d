package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bellapacxx/tambola-backend/utils/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to the frontend domains
		return true
	},
}

// HandleWebSocket returns the gin handler that upgrades a connection,
// assigns it an ephemeral id and starts its pumps. Everything after the
// upgrade is driven by intents read off the socket.
func HandleWebSocket(hub *Hub, gateway *Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Errorf("[WS] upgrade error: %v", err)
			return
		}

		client := NewClient(uuid.NewString(), conn, hub, gateway)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump()

		hub.ToClient(client.ID(), EventConnected, connectedNotice{ID: client.ID()})
		logger.Infof("[WS] new connection %s", client.ID())
	}
}
