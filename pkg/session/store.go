package session

import (
	"context"

	"voicenote-be/pkg/thought"
)

// Store is the keyed session persistence contract: one entry per user,
// holding the whole Session. Load returns (nil, false, nil) when the user
// has no session yet.
type Store interface {
	Load(ctx context.Context, userID string) (*thought.Session, bool, error)
	Save(ctx context.Context, sess *thought.Session) error
	Delete(ctx context.Context, userID string) error
}
