package thought

import (
	"time"
)

// Mode is the conversation mode of a session.
type Mode string

const (
	ModeRegular Mode = "REGULAR"
	ModeOutline Mode = "OUTLINE"
)

// Session is the per-user conversation state. History is append-only
// (only an explicit clear empties it) and a session is never touched by
// two events at once; the service serializes access per user.
type Session struct {
	UserID       string    `json:"user_id"`
	History      []*Record `json:"history"`
	Mode         Mode      `json:"mode"`
	OutlineLines []string  `json:"outline_lines,omitempty"`
	ActiveModel  string    `json:"active_model"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewSession creates the lazily-initialized state for a first interaction.
func NewSession(userID, defaultModel string) *Session {
	return &Session{
		UserID:      userID,
		History:     []*Record{},
		Mode:        ModeRegular,
		ActiveModel: defaultModel,
		CreatedAt:   time.Now(),
	}
}

// LastRecord returns the most recent thought, or nil for an empty history.
func (s *Session) LastRecord() *Record {
	if len(s.History) == 0 {
		return nil
	}
	return s.History[len(s.History)-1]
}

// Append commits a record to the history.
func (s *Session) Append(r *Record) {
	s.History = append(s.History, r)
}

// EnterOutline switches to outline mode with an empty document.
func (s *Session) EnterOutline() {
	s.Mode = ModeOutline
	s.OutlineLines = []string{}
}

// ExitOutline returns to regular mode. The draft is discarded so a later
// outline session starts clean.
func (s *Session) ExitOutline() {
	s.Mode = ModeRegular
	s.OutlineLines = nil
}

// Clear resets the session to its initial state, keeping the chosen model.
func (s *Session) Clear() {
	s.History = []*Record{}
	s.Mode = ModeRegular
	s.OutlineLines = nil
}
