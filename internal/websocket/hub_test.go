package websocket

import (
	"testing"
	"time"

	"voicenote-be/internal/dto"
	"voicenote-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registeredClient(t *testing.T, h *Hub, buffer int) *Client {
	t.Helper()
	client := &Client{
		Hub:    h,
		UserID: uuid.New(),
		Send:   make(chan []byte, buffer),
	}
	h.register <- client
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		return len(h.clients[client.UserID]) == 1
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestSendFrameDropsSlowClientWithoutCrashing(t *testing.T) {
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run()

	slow := registeredClient(t, h, 1)
	slow.Send <- []byte("occupied") // nobody draining, buffer now full

	h.SendFrame(slow.UserID, dto.OutboundFrame{Type: dto.FrameTypeMessage, Text: "第一条"})

	// The stalled client is removed, and its Send channel is closed exactly
	// once by the unregister path.
	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.clients[slow.UserID]
		return !ok
	}, time.Second, 5*time.Millisecond)

	<-slow.Send // the buffered frame
	select {
	case _, ok := <-slow.Send:
		assert.False(t, ok, "send channel should be closed after removal")
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}

	// The hub goroutine survived and still delivers to healthy clients.
	healthy := registeredClient(t, h, 1)
	h.SendFrame(healthy.UserID, dto.OutboundFrame{Type: dto.FrameTypeMessage, Text: "第二条"})
	select {
	case frame := <-healthy.Send:
		assert.Contains(t, string(frame), "第二条")
	case <-time.After(time.Second):
		t.Fatal("hub stopped delivering after dropping a slow client")
	}
}
