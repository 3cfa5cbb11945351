package session

import (
	"context"

	"voicenote-be/pkg/thought"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in-process. Used in tests and in deployments
// without Redis, where sessions do not survive a restart.
type MemoryStore struct {
	cache *cache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	// No expiration: a session only disappears via explicit delete.
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Load(_ context.Context, userID string) (*thought.Session, bool, error) {
	if x, found := s.cache.Get(userID); found {
		return x.(*thought.Session), true, nil
	}
	return nil, false, nil
}

func (s *MemoryStore) Save(_ context.Context, sess *thought.Session) error {
	s.cache.Set(sess.UserID, sess, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.cache.Delete(userID)
	return nil
}
