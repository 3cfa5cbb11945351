package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, c *websocket.Conn, userID uuid.UUID) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		UserID:  userID,
		Send:    make(chan []byte, 256),
		inbound: make(chan []byte, inboundQueueSize),
	}
	client.Hub.register <- client

	go client.writePump()
	go client.processPump()
	client.readPump() // Run readPump in current goroutine (handler)
}
