package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"voicenote-be/internal/dto"
	"voicenote-be/internal/pkg/logger"
	"voicenote-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "voicenote_cluster_events"

// InboundHandler consumes parsed client frames. The hub itself stays
// transport-only; conversation logic lives behind this interface.
type InboundHandler interface {
	HandleVoice(ctx context.Context, userID uuid.UUID, audio []byte, mime string)
	HandleText(ctx context.Context, userID uuid.UUID, text string)
}

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// instanceID lets the subscriber skip messages this instance already
	// delivered locally.
	instanceID string

	handler InboundHandler

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

// SetHandler wires the conversation logic. Must be called before Run.
func (h *Hub) SetHandler(handler InboundHandler) {
	h.handler = handler
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendFrame delivers a frame to every connection of the user, locally and
// via Redis for connections held by other instances.
func (h *Hub) SendFrame(userID uuid.UUID, frame dto.OutboundFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Error("Hub", "Frame marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				// Drop the stalled client. Run's unregister branch is the
				// only place that closes Send; closing here too would close
				// the channel twice.
				h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": userID})
				h.unregister <- client
			}
		}
	}

	// Always publish for multi-device support across instances.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"origin":         h.instanceID,
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

func (h *Hub) dispatch(ctx context.Context, userID uuid.UUID, raw []byte) {
	if h.handler == nil {
		return
	}

	var frame dto.InboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		h.SendFrame(userID, dto.OutboundFrame{Type: dto.FrameTypeError, Text: "unreadable frame"})
		return
	}
	if err := serverutils.ValidateRequest(&frame); err != nil {
		h.SendFrame(userID, dto.OutboundFrame{Type: dto.FrameTypeError, Text: err.Error()})
		return
	}

	switch frame.Type {
	case dto.FrameTypeVoice:
		audio, err := decodeAudio(frame.Audio)
		if err != nil {
			h.SendFrame(userID, dto.OutboundFrame{Type: dto.FrameTypeError, Text: "invalid audio encoding"})
			return
		}
		h.handler.HandleVoice(ctx, userID, audio, frame.Mime)
	case dto.FrameTypeText:
		h.handler.HandleText(ctx, userID, frame.Text)
	default:
		h.SendFrame(userID, dto.OutboundFrame{Type: dto.FrameTypeError, Text: "unknown frame type"})
	}
}

func (h *Hub) subscribeToRedis() {
	// All instances subscribe to one channel carrying {target_user_id,
	// message}; each delivers to the users it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			Origin       string          `json:"origin"`
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
