package memory

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"pub-trivia-service/internal/domain"
	"pub-trivia-service/internal/game"
)

// Join codes skip I and O to stay unambiguous when read aloud.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ"

const codeLength = 5

// SessionStore is an in-memory implementation of game.SessionRegistry. It
// owns join-code allocation; the core never sees codes except as opaque ids.
type SessionStore struct {
	mu       sync.RWMutex
	rnd      *rand.Rand
	sessions map[string]*game.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions: make(map[string]*game.Session),
	}
}

func (s *SessionStore) Create(host domain.Host) (*game.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := s.freeCodeLocked()
	if err != nil {
		return nil, err
	}
	session := game.NewSession(code, host)
	s.sessions[code] = session
	return session, nil
}

func (s *SessionStore) Get(code string) (*game.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[code]
	return session, ok
}

func (s *SessionStore) DeleteIfEmpty(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[code]
	if !ok {
		return
	}
	if session.IsEmpty() {
		delete(s.sessions, code)
	}
}

func (s *SessionStore) freeCodeLocked() (string, error) {
	// 24^5 codes; collisions only matter near full occupancy.
	for attempt := 0; attempt < 100; attempt++ {
		buf := make([]byte, codeLength)
		for i := range buf {
			buf[i] = codeAlphabet[s.rnd.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := s.sessions[code]; !taken {
			return code, nil
		}
	}
	return "", errors.New("join code space exhausted")
}
