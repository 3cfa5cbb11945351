package dto

import (
	"time"
)

// InboundFrame is one client-to-server websocket message: either a voice
// note (base64 audio) or free text.
type InboundFrame struct {
	Type  string `json:"type" validate:"required,oneof=voice text"`
	Audio string `json:"audio,omitempty"`
	Mime  string `json:"mime,omitempty"`
	Text  string `json:"text,omitempty"`
}

const (
	FrameTypeVoice = "voice"
	FrameTypeText  = "text"

	FrameTypeMessage     = "message"
	FrameTypeMessageEdit = "message_edit"
	FrameTypeError       = "error"
)

// OutboundFrame is one server-to-client websocket message. A message_edit
// frame replaces the text of the message previously delivered under the
// same id.
type OutboundFrame struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// ThoughtDTO is the REST projection of one history entry.
type ThoughtDTO struct {
	Tag             string            `json:"tag"`
	Fields          map[string]string `json:"fields"`
	DerivationOrder []string          `json:"derivation_order"`
	ActiveField     string            `json:"active_field"`
	Model           string            `json:"model"`
	CreatedAt       time.Time         `json:"created_at"`
}

// SessionDumpResponse is the /history payload: the full session state as
// currently persisted.
type SessionDumpResponse struct {
	Mode         string       `json:"mode"`
	ActiveModel  string       `json:"active_model"`
	OutlineLines []string     `json:"outline_lines,omitempty"`
	History      []ThoughtDTO `json:"history"`
}

// ModelInfo describes one selectable generation model.
type ModelInfo struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}
