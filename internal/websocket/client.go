package websocket

import (
	"context"
	"encoding/base64"
	"log"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Voice notes arrive base64-encoded inside the frame; a minute of
	// opus at chat-client bitrates fits comfortably under this.
	maxMessageSize = 2 * 1024 * 1024

	inboundQueueSize = 16
)

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// UserID associated with this connection
	UserID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	// Inbound frames queued for sequential processing. Dispatching off
	// the read loop keeps pings flowing during long gateway calls while
	// preserving per-connection arrival order.
	inbound chan []byte
}

// readPump pumps messages from the websocket connection into the inbound
// queue.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		close(c.inbound)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for user %s: %v", c.UserID, err)
			}
			break
		}
		select {
		case c.inbound <- message:
		default:
			log.Printf("inbound queue full for user %s, dropping frame", c.UserID)
		}
	}
}

// processPump consumes queued frames one at a time, in arrival order.
func (c *Client) processPump() {
	for message := range c.inbound {
		c.Hub.dispatch(context.Background(), c.UserID, message)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func decodeAudio(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}
