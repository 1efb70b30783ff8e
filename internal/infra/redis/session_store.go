package redis

import (
	"context"
	"time"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
	"pub-trivia-service/internal/infra/memory"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of game.SessionRegistry.
// Notes:
//   - Sessions themselves stay in process memory (the core is
//     process-lifetime state); Redis only carries liveness markers keyed by
//     join code, which lets operators see active rooms across instances.
//   - For true distribution you'd pair this with routing that pins a room to
//     one instance; the markers give you the lookup table for that.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	local  *memory.SessionStore
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		local:  memory.NewSessionStore(),
	}
}

func (s *SessionStore) Create(host domain.Host) (*game.Session, error) {
	session, err := s.local.Create(host)
	if err != nil {
		return nil, err
	}
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(session.Code()), "1", s.ttl).Err()
	return session, nil
}

func (s *SessionStore) Get(code string) (*game.Session, bool) {
	return s.local.Get(code)
}

func (s *SessionStore) DeleteIfEmpty(code string) {
	session, ok := s.local.Get(code)
	if !ok {
		return
	}
	empty := session.IsEmpty()
	s.local.DeleteIfEmpty(code)
	if empty {
		_ = s.client.Del(context.Background(), s.key(code)).Err()
	}
}

func (s *SessionStore) key(code string) string {
	return "trivia:session:" + code
}
