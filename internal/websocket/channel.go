package websocket

import (
	"context"

	"voicenote-be/internal/dto"

	"github.com/google/uuid"
)

// UserChannel exposes one user's connections as a conversation channel:
// Send delivers a new message, Edit replaces a previously sent one by id.
// Delivery is fire-and-forget; a user with no open connection simply
// misses the frame, the session state is authoritative either way.
type UserChannel struct {
	hub    *Hub
	userID uuid.UUID
}

func NewUserChannel(hub *Hub, userID uuid.UUID) *UserChannel {
	return &UserChannel{hub: hub, userID: userID}
}

func (c *UserChannel) Send(_ context.Context, text string) (string, error) {
	id := uuid.NewString()
	c.hub.SendFrame(c.userID, dto.OutboundFrame{
		Type: dto.FrameTypeMessage,
		ID:   id,
		Text: text,
	})
	return id, nil
}

func (c *UserChannel) Edit(_ context.Context, messageID, text string) error {
	c.hub.SendFrame(c.userID, dto.OutboundFrame{
		Type: dto.FrameTypeMessageEdit,
		ID:   messageID,
		Text: text,
	})
	return nil
}
